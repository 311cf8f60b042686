package handler

import (
	"net/http"
	"time"

	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/xenking/freshbowl-pos/internal/domain/catalog"
	"github.com/xenking/freshbowl-pos/internal/domain/order"
)

func writeJSON(w http.ResponseWriter, status int, e *jx.Encoder) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

func writeError(w http.ResponseWriter, status int, message string) {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("code")
	e.Int(status)
	e.FieldStart("message")
	e.Str(message)
	e.ObjEnd()
	writeJSON(w, status, &e)
}

// money renders a decimal amount as a JSON number. The engine keeps exact
// decimals; the wire representation is presentation glue.
func money(e *jx.Encoder, d decimal.Decimal) {
	e.Float64(d.InexactFloat64())
}

func encodeMenu(c *catalog.Catalog) *jx.Encoder {
	var e jx.Encoder
	e.ObjStart()

	e.FieldStart("bases")
	e.ArrStart()
	for _, base := range c.Bases() {
		e.ObjStart()
		e.FieldStart("name")
		e.Str(base.Name)
		e.FieldStart("prices")
		e.ObjStart()
		for _, size := range catalog.Sizes() {
			e.FieldStart(string(size))
			money(&e, base.Prices[size])
		}
		e.ObjEnd()
		e.ObjEnd()
	}
	e.ArrEnd()

	e.FieldStart("regular_toppings")
	e.ArrStart()
	for _, name := range c.RegularToppings() {
		e.Str(name)
	}
	e.ArrEnd()

	e.FieldStart("premium_toppings")
	e.ArrStart()
	for _, t := range c.PremiumToppings() {
		e.ObjStart()
		e.FieldStart("name")
		e.Str(t.Name)
		e.FieldStart("surcharge")
		money(&e, t.Surcharge)
		e.ObjEnd()
	}
	e.ArrEnd()

	e.FieldStart("smoothies")
	e.ArrStart()
	for _, s := range c.Smoothies() {
		e.ObjStart()
		e.FieldStart("name")
		e.Str(s.Name)
		e.FieldStart("price")
		money(&e, s.Price)
		e.ObjEnd()
	}
	e.ArrEnd()

	policy := c.Policy()
	e.FieldStart("policy")
	e.ObjStart()
	e.FieldStart("free_regular_topping_allowance")
	e.Int(policy.FreeRegularToppingAllowance)
	e.FieldStart("extra_regular_topping_fee")
	money(&e, policy.ExtraRegularToppingFee)
	e.FieldStart("tax_rate")
	money(&e, policy.TaxRate)
	e.FieldStart("service_charge_rate")
	money(&e, policy.ServiceChargeRate)
	e.FieldStart("member_discount_rate")
	money(&e, policy.MemberDiscountRate)
	e.FieldStart("combo_discount_amount")
	money(&e, policy.ComboDiscountAmount)
	e.ObjEnd()

	e.ObjEnd()
	return &e
}

func encodeBreakdown(bd order.Breakdown) *jx.Encoder {
	var e jx.Encoder
	e.ObjStart()
	fieldsBreakdown(&e, bd)
	e.ObjEnd()
	return &e
}

func fieldsBreakdown(e *jx.Encoder, bd order.Breakdown) {
	e.FieldStart("base_price")
	money(e, bd.BasePrice)
	e.FieldStart("extra_topping_cost")
	money(e, bd.ExtraToppingCost)
	e.FieldStart("premium_cost")
	money(e, bd.PremiumCost)
	e.FieldStart("unit_price")
	money(e, bd.UnitPrice)
}

func encodeLine(line order.Line) *jx.Encoder {
	var e jx.Encoder
	fieldsLine(&e, line)
	return &e
}

func fieldsLine(e *jx.Encoder, line order.Line) {
	e.ObjStart()
	e.FieldStart("id")
	e.Int64(line.ID)
	e.FieldStart("kind")
	e.Str(string(line.Kind))
	e.FieldStart("name")
	e.Str(line.Name)
	e.FieldStart("unit_price")
	money(e, line.UnitPrice)
	e.FieldStart("quantity")
	e.Int(line.Quantity)
	e.FieldStart("total")
	money(e, line.Total)

	// Configuration snapshot for receipt detail.
	if cfg, ok := line.Config.(order.SaladConfig); ok {
		e.FieldStart("config")
		e.ObjStart()
		e.FieldStart("base")
		e.Str(cfg.Base)
		e.FieldStart("size")
		e.Str(string(cfg.Size))
		e.FieldStart("regular_toppings")
		e.ArrStart()
		for _, name := range cfg.RegularToppings {
			e.Str(name)
		}
		e.ArrEnd()
		e.FieldStart("premium_toppings")
		e.ArrStart()
		for _, name := range cfg.PremiumToppings {
			e.Str(name)
		}
		e.ArrEnd()
		e.ObjEnd()
	}
	e.ObjEnd()
}

func fieldsTotals(e *jx.Encoder, t order.Totals) {
	e.ObjStart()
	e.FieldStart("subtotal")
	money(e, t.Subtotal)
	e.FieldStart("combo_discount")
	money(e, t.ComboDiscount)
	e.FieldStart("member_discount")
	money(e, t.MemberDiscount)
	e.FieldStart("service_charge")
	money(e, t.ServiceCharge)
	e.FieldStart("tax")
	money(e, t.Tax)
	e.FieldStart("final_total")
	money(e, t.FinalTotal)
	e.ObjEnd()
}

func fieldsContext(e *jx.Encoder, ctx order.Context) {
	e.ObjStart()
	e.FieldStart("member")
	e.Bool(ctx.Member)
	e.FieldStart("dine_in")
	e.Bool(ctx.DineIn)
	e.ObjEnd()
}

func encodeOrder(lines []order.Line, totals order.Totals, ctx order.Context) *jx.Encoder {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("lines")
	e.ArrStart()
	for _, line := range lines {
		fieldsLine(&e, line)
	}
	e.ArrEnd()
	e.FieldStart("totals")
	fieldsTotals(&e, totals)
	e.FieldStart("context")
	fieldsContext(&e, ctx)
	e.ObjEnd()
	return &e
}

func encodeReceipt(r *order.Receipt) *jx.Encoder {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("id")
	e.Str(r.ID)
	e.FieldStart("created_at")
	e.Str(r.CreatedAt.UTC().Format(time.RFC3339))
	e.FieldStart("lines")
	e.ArrStart()
	for _, line := range r.Lines {
		fieldsLine(&e, line)
	}
	e.ArrEnd()
	e.FieldStart("context")
	fieldsContext(&e, r.Context)
	e.FieldStart("totals")
	fieldsTotals(&e, r.Totals)
	e.ObjEnd()
	return &e
}
