package order

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Breakdown itemizes a unit price. Receipts depend on the base / extra
// topping / premium decomposition, so it is part of the contract rather than
// a convenience. Quantity is deliberately absent: unit prices stay comparable
// across quantities and are what gets frozen into a Line.
type Breakdown struct {
	BasePrice        decimal.Decimal
	ExtraToppingCost decimal.Decimal
	PremiumCost      decimal.Decimal
	UnitPrice        decimal.Decimal
}

// PriceLine computes the unit price of a prospective configuration. All
// selected names are validated against the catalog; an unknown name fails
// with catalog.NotFoundError instead of pricing as zero.
func (e *Engine) PriceLine(cfg LineConfig) (Breakdown, error) {
	switch c := cfg.(type) {
	case SaladConfig:
		return e.priceSalad(c)
	case SmoothieConfig:
		return e.priceSmoothie(c)
	default:
		return Breakdown{}, errors.Errorf("unsupported line configuration %T", cfg)
	}
}

func (e *Engine) priceSalad(c SaladConfig) (Breakdown, error) {
	basePrice, err := e.catalog.BasePrice(c.Base, c.Size)
	if err != nil {
		return Breakdown{}, err
	}

	// Zero toppings is valid; the allowance only ever subtracts from the
	// chargeable count, it never produces credit.
	regular := dedupe(c.RegularToppings)
	for _, name := range regular {
		if err := e.catalog.RegularTopping(name); err != nil {
			return Breakdown{}, err
		}
	}
	policy := e.catalog.Policy()
	extra := len(regular) - policy.FreeRegularToppingAllowance
	if extra < 0 {
		extra = 0
	}
	extraCost := policy.ExtraRegularToppingFee.Mul(decimal.NewFromInt(int64(extra)))

	premiumCost := decimal.Zero
	for _, name := range dedupe(c.PremiumToppings) {
		surcharge, err := e.catalog.PremiumSurcharge(name)
		if err != nil {
			return Breakdown{}, err
		}
		premiumCost = premiumCost.Add(surcharge)
	}

	return Breakdown{
		BasePrice:        basePrice,
		ExtraToppingCost: extraCost,
		PremiumCost:      premiumCost,
		UnitPrice:        basePrice.Add(extraCost).Add(premiumCost),
	}, nil
}

func (e *Engine) priceSmoothie(c SmoothieConfig) (Breakdown, error) {
	price, err := e.catalog.SmoothiePrice(c.Name)
	if err != nil {
		return Breakdown{}, err
	}
	return Breakdown{UnitPrice: price}, nil
}
