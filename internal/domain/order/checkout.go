package order

import (
	"time"

	"github.com/google/uuid"
)

// Receipt is the snapshot taken at checkout: the lines, the order flags, and
// the totals at that instant. It is plain immutable data for the caller to
// render; the engine does no formatting.
type Receipt struct {
	ID        string
	CreatedAt time.Time
	Lines     []Line
	Context   Context
	Totals    Totals
}

// Checkout records a successful payment, transitioning the order from Open
// to Closed. Closed is terminal: every later mutation or checkout fails with
// ErrOrderClosed and the host must start a fresh Engine for the next order.
// Checking out an empty cart fails with ErrEmptyCart rather than producing a
// zero-value receipt.
func (e *Engine) Checkout(ctx Context) (*Receipt, error) {
	if e.closed {
		return nil, ErrOrderClosed
	}
	if len(e.lines) == 0 {
		return nil, ErrEmptyCart
	}

	r := &Receipt{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		Lines:     e.Lines(),
		Context:   ctx,
		Totals:    e.Totals(ctx),
	}
	e.closed = true
	return r, nil
}
