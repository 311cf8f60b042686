// Package session owns the single active order of a till. The engine itself
// is lock-free and single-threaded; the session is the host-side
// serialization point that guards it with one mutex, holds the order-level
// flags, and swaps in a fresh engine after each checkout.
package session

import (
	"sync"

	"github.com/xenking/freshbowl-pos/internal/domain/catalog"
	"github.com/xenking/freshbowl-pos/internal/domain/order"
)

// Session serializes access to the current order.
type Session struct {
	mu      sync.Mutex
	catalog *catalog.Catalog
	engine  *order.Engine
	ctx     order.Context
}

// New creates a session with an empty open order.
func New(c *catalog.Catalog) *Session {
	return &Session{
		catalog: c,
		engine:  order.New(c),
	}
}

// SetContext replaces the order-level member/dine-in flags.
func (s *Session) SetContext(ctx order.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx = ctx
}

// Context returns the current order-level flags.
func (s *Session) Context() order.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}

// Quote prices a prospective configuration without committing it.
func (s *Session) Quote(cfg order.LineConfig) (order.Breakdown, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.PriceLine(cfg)
}

// Commit adds a priced line to the current order.
func (s *Session) Commit(cfg order.LineConfig, quantity int) (order.Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Commit(cfg, quantity)
}

// Remove deletes a line by ID. Unknown IDs are a no-op.
func (s *Session) Remove(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Remove(id)
}

// Clear empties the current cart.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Clear()
}

// Snapshot returns the current lines, provisional totals, and flags.
func (s *Session) Snapshot() ([]order.Line, order.Totals, order.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Lines(), s.engine.Totals(s.ctx), s.ctx
}

// Checkout closes the current order and starts a fresh one. The returned
// receipt is the only remaining reference to the closed order; the flags
// reset with the new order since they are order-level, not customer-level.
func (s *Session) Checkout() (*order.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.engine.Checkout(s.ctx)
	if err != nil {
		return nil, err
	}
	s.engine = order.New(s.catalog)
	s.ctx = order.Context{}
	return r, nil
}
