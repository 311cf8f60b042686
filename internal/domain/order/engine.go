// Package order implements the order engine: it prices item configurations
// against the catalog, accumulates committed lines in a cart, and computes
// the payable total under the fixed discount and tax pipeline.
//
// An Engine models exactly one order. It is single-threaded and never blocks;
// hosts driving it from multiple goroutines must serialize access (see
// internal/session).
package order

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/freshbowl-pos/internal/domain/catalog"
)

// Sentinel errors for cart mutation and checkout.
var (
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrEmptyCart       = errors.New("cannot checkout an empty cart")
	ErrOrderClosed     = errors.New("order is closed")
)

// Line is a committed, priced cart entry. UnitPrice is frozen at commit time
// and never recalculated; Total == UnitPrice * Quantity always holds.
type Line struct {
	ID        int64
	Kind      Kind
	Name      string
	Config    LineConfig
	UnitPrice decimal.Decimal
	Quantity  int
	Total     decimal.Decimal
}

// Engine owns the current order: its cart lines, the line ID counter, and the
// open/closed state. The catalog is shared read-only state, never copied.
type Engine struct {
	catalog *catalog.Catalog
	lines   []Line
	nextID  int64
	closed  bool
}

// New creates an empty open order against the given catalog.
func New(c *catalog.Catalog) *Engine {
	return &Engine{catalog: c}
}

// Commit prices the configuration, assigns the next line ID, and appends a
// new line. On any error the cart is left unchanged. Lines are never mutated
// in place; the only cart operations are append, remove, and clear.
func (e *Engine) Commit(cfg LineConfig, quantity int) (Line, error) {
	if e.closed {
		return Line{}, ErrOrderClosed
	}
	if quantity < 1 {
		return Line{}, errors.Wrapf(ErrInvalidQuantity, "got %d", quantity)
	}

	bd, err := e.PriceLine(cfg)
	if err != nil {
		return Line{}, err
	}

	if salad, ok := cfg.(SaladConfig); ok {
		cfg = salad.normalized()
	}

	e.nextID++
	line := Line{
		ID:        e.nextID,
		Kind:      cfg.Kind(),
		Name:      cfg.DisplayName(),
		Config:    cfg,
		UnitPrice: bd.UnitPrice,
		Quantity:  quantity,
		Total:     bd.UnitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
	e.lines = append(e.lines, line)
	return line, nil
}

// Remove deletes the line with the given ID. Removing an unknown ID is a
// no-op rather than an error: the UI may race a double-click.
func (e *Engine) Remove(id int64) error {
	if e.closed {
		return ErrOrderClosed
	}
	for i, line := range e.lines {
		if line.ID == id {
			e.lines = append(e.lines[:i], e.lines[i+1:]...)
			return nil
		}
	}
	return nil
}

// Clear empties the cart. The ID counter is kept so identifiers stay unique
// for the lifetime of the engine and stale UI references never match a
// newly added line.
func (e *Engine) Clear() error {
	if e.closed {
		return ErrOrderClosed
	}
	e.lines = e.lines[:0]
	return nil
}

// Lines returns a copy of the cart in insertion order.
func (e *Engine) Lines() []Line {
	out := make([]Line, len(e.lines))
	copy(out, e.lines)
	return out
}

// Empty reports whether the cart has no lines.
func (e *Engine) Empty() bool {
	return len(e.lines) == 0
}

// Closed reports whether the order has been checked out.
func (e *Engine) Closed() bool {
	return e.closed
}
