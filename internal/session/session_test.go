package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/freshbowl-pos/internal/domain/catalog"
	"github.com/xenking/freshbowl-pos/internal/domain/order"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	c, err := catalog.Load()
	require.NoError(t, err)
	return New(c)
}

func TestSession_CheckoutStartsFreshOrder(t *testing.T) {
	s := newTestSession(t)
	s.SetContext(order.Context{Member: true, DineIn: true})

	_, err := s.Commit(order.SaladConfig{Base: "Power Grain Bowl", Size: catalog.SizeMedium}, 1)
	require.NoError(t, err)
	_, err = s.Commit(order.SmoothieConfig{Name: "Berry Blast"}, 1)
	require.NoError(t, err)

	receipt, err := s.Checkout()
	require.NoError(t, err)
	assert.Len(t, receipt.Lines, 2)
	assert.True(t, receipt.Context.Member)

	// The next order is open, empty, and has fresh order-level flags.
	lines, totals, ctx := s.Snapshot()
	assert.Empty(t, lines)
	assert.True(t, totals.FinalTotal.IsZero())
	assert.Equal(t, order.Context{}, ctx)

	_, err = s.Commit(order.SmoothieConfig{Name: "Berry Blast"}, 1)
	require.NoError(t, err, "the session must never expose a closed order")
}

func TestSession_CheckoutEmptyCart(t *testing.T) {
	s := newTestSession(t)

	_, err := s.Checkout()
	require.ErrorIs(t, err, order.ErrEmptyCart)

	// The failed checkout leaves the current order usable.
	_, err = s.Commit(order.SmoothieConfig{Name: "Berry Blast"}, 1)
	require.NoError(t, err)
}

func TestSession_SerializesConcurrentCallers(t *testing.T) {
	s := newTestSession(t)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Commit(order.SmoothieConfig{Name: "Berry Blast"}, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	lines, totals, _ := s.Snapshot()
	assert.Len(t, lines, 20)
	assert.False(t, totals.Subtotal.IsZero())

	seen := make(map[int64]bool, len(lines))
	for _, line := range lines {
		assert.False(t, seen[line.ID], "duplicate line id %d", line.ID)
		seen[line.ID] = true
	}
}
