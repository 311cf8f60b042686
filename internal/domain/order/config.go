package order

import (
	"fmt"

	"github.com/xenking/freshbowl-pos/internal/domain/catalog"
)

// Kind distinguishes the two item families an order line can hold.
type Kind string

const (
	KindSalad    Kind = "salad"
	KindSmoothie Kind = "smoothie"
)

// LineConfig is a prospective item configuration submitted by the caller.
// Topping selection arrives as sets of catalog names, not UI toggles.
type LineConfig interface {
	Kind() Kind
	// DisplayName is the receipt label for a line built from this configuration.
	DisplayName() string
}

// SaladConfig configures a build-your-own bowl or salad.
type SaladConfig struct {
	Base            string
	Size            catalog.Size
	RegularToppings []string
	PremiumToppings []string
}

func (SaladConfig) Kind() Kind { return KindSalad }

func (c SaladConfig) DisplayName() string {
	return fmt.Sprintf("%s (%s)", c.Base, c.Size)
}

// normalized returns a copy with duplicate topping names collapsed,
// preserving first-seen order. The result is what gets frozen into a Line.
func (c SaladConfig) normalized() SaladConfig {
	c.RegularToppings = dedupe(c.RegularToppings)
	c.PremiumToppings = dedupe(c.PremiumToppings)
	return c
}

// SmoothieConfig configures a fixed-price smoothie. No toppings.
type SmoothieConfig struct {
	Name string
}

func (SmoothieConfig) Kind() Kind { return KindSmoothie }

func (c SmoothieConfig) DisplayName() string { return c.Name }

func dedupe(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
