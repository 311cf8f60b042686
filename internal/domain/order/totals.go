package order

import "github.com/shopspring/decimal"

// Context holds the order-level flags set by the caller before totaling.
type Context struct {
	Member bool
	DineIn bool
}

// Totals is the payable total breakdown for an order.
type Totals struct {
	Subtotal       decimal.Decimal
	ComboDiscount  decimal.Decimal
	MemberDiscount decimal.Decimal
	ServiceCharge  decimal.Decimal
	Tax            decimal.Decimal
	FinalTotal     decimal.Decimal
}

// Totals computes the order total. The steps form a pipeline and their order
// matters:
//
//  1. subtotal = sum of line totals
//  2. flat combo discount when the cart holds both a salad and a smoothie
//     kind line (once per order, not per pair)
//  3. member discount against the pre-discount subtotal
//  4. afterDiscounts = subtotal - combo - member, not clamped at zero
//  5. service charge on afterDiscounts for dine-in
//  6. tax on afterDiscounts + service charge (tax compounds on the charge)
//  7. final total
//
// An empty cart yields all-zero totals; that is a defined terminal case, not
// an error. No rounding happens here: decimal arithmetic is exact and any
// display rounding belongs to the presentation layer.
func (e *Engine) Totals(ctx Context) Totals {
	if len(e.lines) == 0 {
		return Totals{
			Subtotal:       decimal.Zero,
			ComboDiscount:  decimal.Zero,
			MemberDiscount: decimal.Zero,
			ServiceCharge:  decimal.Zero,
			Tax:            decimal.Zero,
			FinalTotal:     decimal.Zero,
		}
	}

	policy := e.catalog.Policy()

	subtotal := decimal.Zero
	var hasSalad, hasSmoothie bool
	for _, line := range e.lines {
		subtotal = subtotal.Add(line.Total)
		switch line.Kind {
		case KindSalad:
			hasSalad = true
		case KindSmoothie:
			hasSmoothie = true
		}
	}

	combo := decimal.Zero
	if hasSalad && hasSmoothie {
		combo = policy.ComboDiscountAmount
	}

	member := decimal.Zero
	if ctx.Member {
		member = subtotal.Mul(policy.MemberDiscountRate)
	}

	afterDiscounts := subtotal.Sub(combo).Sub(member)

	service := decimal.Zero
	if ctx.DineIn {
		service = afterDiscounts.Mul(policy.ServiceChargeRate)
	}

	tax := afterDiscounts.Add(service).Mul(policy.TaxRate)

	return Totals{
		Subtotal:       subtotal,
		ComboDiscount:  combo,
		MemberDiscount: member,
		ServiceCharge:  service,
		Tax:            tax,
		FinalTotal:     afterDiscounts.Add(service).Add(tax),
	}
}
