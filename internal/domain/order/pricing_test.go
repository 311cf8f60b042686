package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/freshbowl-pos/internal/domain/catalog"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	c, err := catalog.Load()
	require.NoError(t, err)
	return New(c)
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	return decimal.RequireFromString(s)
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestPriceLine_SaladWithExtrasAndPremium(t *testing.T) {
	e := newTestEngine(t)

	// Power Grain Bowl medium 9.90 + one extra regular 0.80 + Avocado 2.50.
	bd, err := e.PriceLine(SaladConfig{
		Base:            "Power Grain Bowl",
		Size:            catalog.SizeMedium,
		RegularToppings: []string{"Cherry Tomatoes", "Cucumber", "Corn", "Carrots"},
		PremiumToppings: []string{"Avocado"},
	})
	require.NoError(t, err)

	assertMoney(t, "9.90", bd.BasePrice)
	assertMoney(t, "0.80", bd.ExtraToppingCost)
	assertMoney(t, "2.50", bd.PremiumCost)
	assertMoney(t, "13.20", bd.UnitPrice)
}

func TestPriceLine_RegularToppingAllowance(t *testing.T) {
	e := newTestEngine(t)
	toppings := []string{"Cherry Tomatoes", "Cucumber", "Corn", "Carrots", "Red Onion"}

	priceWith := func(n int) decimal.Decimal {
		bd, err := e.PriceLine(SaladConfig{
			Base:            "Green Garden Salad",
			Size:            catalog.SizeSmall,
			RegularToppings: toppings[:n],
		})
		require.NoError(t, err)
		return bd.UnitPrice
	}

	// Zero toppings is valid and the allowance never produces credit:
	// 0 and 3 toppings cost the same, 4 costs exactly one fee more.
	assert.True(t, priceWith(0).Equal(priceWith(3)))
	assertMoney(t, "0.80", priceWith(4).Sub(priceWith(3)))
	assertMoney(t, "1.60", priceWith(5).Sub(priceWith(3)))
}

func TestPriceLine_PremiumSurchargesSum(t *testing.T) {
	e := newTestEngine(t)

	bd, err := e.PriceLine(SaladConfig{
		Base:            "Mediterranean Mix",
		Size:            catalog.SizeLarge,
		PremiumToppings: []string{"Grilled Chicken", "Feta Cheese", "Walnuts"},
	})
	require.NoError(t, err)

	// 3.50 + 2.00 + 1.50 on top of 11.90.
	assertMoney(t, "7.00", bd.PremiumCost)
	assertMoney(t, "18.90", bd.UnitPrice)
}

func TestPriceLine_DuplicateToppingsCollapse(t *testing.T) {
	e := newTestEngine(t)

	bd, err := e.PriceLine(SaladConfig{
		Base:            "Green Garden Salad",
		Size:            catalog.SizeSmall,
		RegularToppings: []string{"Corn", "Corn", "Corn", "Corn"},
		PremiumToppings: []string{"Avocado", "Avocado"},
	})
	require.NoError(t, err)

	// One distinct regular topping (within allowance) and one avocado.
	assertMoney(t, "0", bd.ExtraToppingCost)
	assertMoney(t, "2.50", bd.PremiumCost)
}

func TestPriceLine_Smoothie(t *testing.T) {
	e := newTestEngine(t)

	bd, err := e.PriceLine(SmoothieConfig{Name: "Berry Blast"})
	require.NoError(t, err)

	assertMoney(t, "5.50", bd.UnitPrice)
	assert.True(t, bd.BasePrice.IsZero())
	assert.True(t, bd.ExtraToppingCost.IsZero())
	assert.True(t, bd.PremiumCost.IsZero())
}

func TestPriceLine_UnknownNames(t *testing.T) {
	e := newTestEngine(t)

	cases := []struct {
		name string
		cfg  LineConfig
	}{
		{"unknown base", SaladConfig{Base: "Nope", Size: catalog.SizeSmall}},
		{"unknown regular topping", SaladConfig{
			Base: "Green Garden Salad", Size: catalog.SizeSmall,
			RegularToppings: []string{"Croutons"},
		}},
		{"unknown premium topping", SaladConfig{
			Base: "Green Garden Salad", Size: catalog.SizeSmall,
			PremiumToppings: []string{"Gold Leaf"},
		}},
		{"unknown smoothie", SmoothieConfig{Name: "Nope"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.PriceLine(tc.cfg)
			var nf *catalog.NotFoundError
			require.ErrorAs(t, err, &nf)
		})
	}
}

func TestPriceLine_ToppingsNeverReducePrice(t *testing.T) {
	e := newTestEngine(t)

	base := dec(t, "6.90") // Green Garden Salad small
	combos := [][]string{
		nil,
		{"Cherry Tomatoes"},
		{"Cherry Tomatoes", "Cucumber", "Red Onion"},
		{"Cherry Tomatoes", "Cucumber", "Red Onion", "Bell Pepper", "Carrots"},
	}
	for _, regular := range combos {
		bd, err := e.PriceLine(SaladConfig{
			Base:            "Green Garden Salad",
			Size:            catalog.SizeSmall,
			RegularToppings: regular,
		})
		require.NoError(t, err)
		assert.True(t, bd.UnitPrice.GreaterThanOrEqual(base),
			"unit price %s below base %s with %d toppings", bd.UnitPrice, base, len(regular))
	}
}
