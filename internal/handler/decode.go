package handler

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/xenking/freshbowl-pos/internal/domain/catalog"
	"github.com/xenking/freshbowl-pos/internal/domain/order"
)

// itemRequest is the wire form shared by quote and commit requests.
type itemRequest struct {
	kind     string
	base     string
	size     string
	regular  []string
	premium  []string
	smoothie string
	quantity int
}

// decodeItemRequest parses an item configuration body. Quantity defaults to 1
// when absent; an explicit non-positive value is passed through so the engine
// rejects it.
func decodeItemRequest(body []byte) (itemRequest, error) {
	req := itemRequest{quantity: 1}

	d := jx.DecodeBytes(body)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "kind":
			req.kind, err = d.Str()
		case "base":
			req.base, err = d.Str()
		case "size":
			req.size, err = d.Str()
		case "smoothie":
			req.smoothie, err = d.Str()
		case "quantity":
			req.quantity, err = d.Int()
		case "regular_toppings":
			err = decodeStrings(d, &req.regular)
		case "premium_toppings":
			err = decodeStrings(d, &req.premium)
		default:
			err = d.Skip()
		}
		return err
	}); err != nil {
		return itemRequest{}, errors.Wrap(err, "decode item request")
	}

	return req, nil
}

func decodeStrings(d *jx.Decoder, out *[]string) error {
	return d.Arr(func(d *jx.Decoder) error {
		s, err := d.Str()
		if err != nil {
			return err
		}
		*out = append(*out, s)
		return nil
	})
}

// config converts the wire form into an engine configuration. The size is
// validated here; topping and item names are validated by the engine against
// the catalog.
func (r itemRequest) config() (order.LineConfig, error) {
	switch order.Kind(r.kind) {
	case order.KindSalad:
		size, err := catalog.ParseSize(r.size)
		if err != nil {
			return nil, err
		}
		return order.SaladConfig{
			Base:            r.base,
			Size:            size,
			RegularToppings: r.regular,
			PremiumToppings: r.premium,
		}, nil
	case order.KindSmoothie:
		return order.SmoothieConfig{Name: r.smoothie}, nil
	default:
		return nil, errors.Errorf("unknown item kind %q", r.kind)
	}
}

// decodeContextRequest parses the order-level flags body.
func decodeContextRequest(body []byte) (order.Context, error) {
	var ctx order.Context

	d := jx.DecodeBytes(body)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "member":
			ctx.Member, err = d.Bool()
		case "dine_in":
			ctx.DineIn, err = d.Bool()
		default:
			err = d.Skip()
		}
		return err
	}); err != nil {
		return order.Context{}, errors.Wrap(err, "decode order context")
	}

	return ctx, nil
}
