// Package catalog holds the static pricing data for the counter: base bowls
// priced by size, regular and premium toppings, smoothies, and the pricing
// policy constants. A Catalog is built once at process start and is read-only
// afterwards; lookups by unknown key fail loudly instead of defaulting to
// zero, since a silent zero would corrupt a total undetected.
package catalog

import (
	"fmt"
	"sort"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Size is a base item portion size.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// Sizes lists all valid sizes in menu display order.
func Sizes() []Size {
	return []Size{SizeSmall, SizeMedium, SizeLarge}
}

// ParseSize validates a raw size string.
func ParseSize(s string) (Size, error) {
	switch Size(s) {
	case SizeSmall, SizeMedium, SizeLarge:
		return Size(s), nil
	}
	return "", &NotFoundError{Kind: "size", Key: s}
}

// NotFoundError indicates a catalog lookup by an unknown key.
type NotFoundError struct {
	Kind string // "base", "size", "regular topping", "premium topping", "smoothie"
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

// Policy holds the pricing policy constants applied on top of the raw menu
// prices. All values are caller-visible through Catalog.Policy.
type Policy struct {
	// FreeRegularToppingAllowance is how many regular toppings are included
	// in the base price.
	FreeRegularToppingAllowance int
	// ExtraRegularToppingFee is charged per regular topping beyond the allowance.
	ExtraRegularToppingFee decimal.Decimal
	TaxRate                decimal.Decimal
	ServiceChargeRate      decimal.Decimal
	MemberDiscountRate     decimal.Decimal
	// ComboDiscountAmount is a flat discount applied once per order when the
	// cart contains both a salad-kind and a smoothie-kind line.
	ComboDiscountAmount decimal.Decimal
}

// DefaultPolicy returns the house pricing policy.
func DefaultPolicy() Policy {
	return Policy{
		FreeRegularToppingAllowance: 3,
		ExtraRegularToppingFee:      decimal.RequireFromString("0.80"),
		TaxRate:                     decimal.RequireFromString("0.07"),
		ServiceChargeRate:           decimal.RequireFromString("0.05"),
		MemberDiscountRate:          decimal.RequireFromString("0.10"),
		ComboDiscountAmount:         decimal.RequireFromString("2.00"),
	}
}

// BaseItem is a bowl or salad base priced by size.
type BaseItem struct {
	Name   string
	Prices map[Size]decimal.Decimal
}

// PremiumTopping carries a flat surcharge regardless of the allowance.
type PremiumTopping struct {
	Name      string
	Surcharge decimal.Decimal
}

// SmoothieItem is a fixed-price drink.
type SmoothieItem struct {
	Name  string
	Price decimal.Decimal
}

// Definition is the raw menu as loaded from the embedded data or an external
// menu file. It is validated by New before use.
type Definition struct {
	Bases           map[string]map[string]decimal.Decimal `json:"bases"`
	RegularToppings []string                              `json:"regular_toppings"`
	PremiumToppings map[string]decimal.Decimal            `json:"premium_toppings"`
	Smoothies       map[string]decimal.Decimal            `json:"smoothies"`
}

// Catalog is the validated, immutable menu plus policy constants.
type Catalog struct {
	bases     map[string]BaseItem
	regular   map[string]struct{}
	premium   map[string]decimal.Decimal
	smoothies map[string]decimal.Decimal
	policy    Policy
}

// New validates a menu definition and builds a Catalog with the given policy.
func New(def Definition, policy Policy) (*Catalog, error) {
	if len(def.Bases) == 0 {
		return nil, errors.New("menu has no base items")
	}

	bases := make(map[string]BaseItem, len(def.Bases))
	for name, sizes := range def.Bases {
		if name == "" {
			return nil, errors.New("base item with empty name")
		}
		prices := make(map[Size]decimal.Decimal, len(sizes))
		for raw, price := range sizes {
			size, err := ParseSize(raw)
			if err != nil {
				return nil, errors.Wrapf(err, "base %q", name)
			}
			if price.IsNegative() {
				return nil, errors.Errorf("base %q size %s: negative price %s", name, size, price)
			}
			prices[size] = price
		}
		for _, size := range Sizes() {
			if _, ok := prices[size]; !ok {
				return nil, errors.Errorf("base %q: missing price for size %s", name, size)
			}
		}
		bases[name] = BaseItem{Name: name, Prices: prices}
	}

	regular := make(map[string]struct{}, len(def.RegularToppings))
	for _, name := range def.RegularToppings {
		if name == "" {
			return nil, errors.New("regular topping with empty name")
		}
		regular[name] = struct{}{}
	}

	premium := make(map[string]decimal.Decimal, len(def.PremiumToppings))
	for name, surcharge := range def.PremiumToppings {
		if name == "" {
			return nil, errors.New("premium topping with empty name")
		}
		if surcharge.IsNegative() {
			return nil, errors.Errorf("premium topping %q: negative surcharge %s", name, surcharge)
		}
		premium[name] = surcharge
	}

	smoothies := make(map[string]decimal.Decimal, len(def.Smoothies))
	for name, price := range def.Smoothies {
		if name == "" {
			return nil, errors.New("smoothie with empty name")
		}
		if price.IsNegative() {
			return nil, errors.Errorf("smoothie %q: negative price %s", name, price)
		}
		smoothies[name] = price
	}

	return &Catalog{
		bases:     bases,
		regular:   regular,
		premium:   premium,
		smoothies: smoothies,
		policy:    policy,
	}, nil
}

// Policy returns the pricing policy constants.
func (c *Catalog) Policy() Policy {
	return c.policy
}

// BasePrice returns the unit price of a base item for the given size.
func (c *Catalog) BasePrice(name string, size Size) (decimal.Decimal, error) {
	base, ok := c.bases[name]
	if !ok {
		return decimal.Zero, &NotFoundError{Kind: "base", Key: name}
	}
	price, ok := base.Prices[size]
	if !ok {
		return decimal.Zero, &NotFoundError{Kind: "size", Key: string(size)}
	}
	return price, nil
}

// RegularTopping reports whether a regular topping exists by exact name.
func (c *Catalog) RegularTopping(name string) error {
	if _, ok := c.regular[name]; !ok {
		return &NotFoundError{Kind: "regular topping", Key: name}
	}
	return nil
}

// PremiumSurcharge returns the flat surcharge of a premium topping.
func (c *Catalog) PremiumSurcharge(name string) (decimal.Decimal, error) {
	surcharge, ok := c.premium[name]
	if !ok {
		return decimal.Zero, &NotFoundError{Kind: "premium topping", Key: name}
	}
	return surcharge, nil
}

// SmoothiePrice returns the unit price of a smoothie.
func (c *Catalog) SmoothiePrice(name string) (decimal.Decimal, error) {
	price, ok := c.smoothies[name]
	if !ok {
		return decimal.Zero, &NotFoundError{Kind: "smoothie", Key: name}
	}
	return price, nil
}

// Bases returns all base items sorted by name.
func (c *Catalog) Bases() []BaseItem {
	out := make([]BaseItem, 0, len(c.bases))
	for _, b := range c.bases {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// RegularToppings returns all regular topping names sorted.
func (c *Catalog) RegularToppings() []string {
	out := make([]string, 0, len(c.regular))
	for name := range c.regular {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// PremiumToppings returns all premium toppings sorted by name.
func (c *Catalog) PremiumToppings() []PremiumTopping {
	out := make([]PremiumTopping, 0, len(c.premium))
	for name, surcharge := range c.premium {
		out = append(out, PremiumTopping{Name: name, Surcharge: surcharge})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Smoothies returns all smoothies sorted by name.
func (c *Catalog) Smoothies() []SmoothieItem {
	out := make([]SmoothieItem, 0, len(c.smoothies))
	for name, price := range c.smoothies {
		out = append(out, SmoothieItem{Name: name, Price: price})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
