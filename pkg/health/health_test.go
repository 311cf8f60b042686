package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func probe(t *testing.T, endpoint http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	endpoint(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	return rec
}

func TestLiveEndpoint_HealthyByDefault(t *testing.T) {
	s := New()
	s.AddLivenessCheck("noop", time.Second, func(context.Context) error { return nil })

	rec := probe(t, s.LiveEndpoint)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestLiveEndpoint_FailureThreshold(t *testing.T) {
	s := New()
	s.AddLivenessCheck("broken", time.Second, func(context.Context) error {
		return errors.New("down")
	})

	c := s.checks[0]
	ctx := context.Background()

	// One or two failed runs are tolerated before the probe flips.
	c.run(ctx)
	c.run(ctx)
	require.Equal(t, http.StatusOK, probe(t, s.LiveEndpoint).Code)

	c.run(ctx)
	rec := probe(t, s.LiveEndpoint)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status": "unhealthy", "checks": {"broken": "down"}}`, rec.Body.String())
}

func TestCheck_RecoversAfterSuccess(t *testing.T) {
	s := New()
	fail := true
	s.AddLivenessCheck("flappy", time.Second, func(context.Context) error {
		if fail {
			return errors.New("down")
		}
		return nil
	})

	c := s.checks[0]
	ctx := context.Background()
	for range failureThreshold {
		c.run(ctx)
	}
	require.False(t, c.healthy.Load())

	fail = false
	c.run(ctx)
	assert.True(t, c.healthy.Load())
	assert.Equal(t, http.StatusOK, probe(t, s.LiveEndpoint).Code)
}

func TestReadyEndpoint_ManualGate(t *testing.T) {
	s := New()

	rec := probe(t, s.ReadyEndpoint)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "service is not ready")
	assert.False(t, s.IsReady())

	s.SetReady(true)
	assert.Equal(t, http.StatusOK, probe(t, s.ReadyEndpoint).Code)
	assert.True(t, s.IsReady())

	// Draining flips it back.
	s.SetReady(false)
	assert.Equal(t, http.StatusServiceUnavailable, probe(t, s.ReadyEndpoint).Code)
}

func TestIsReady_GatedByReadinessChecks(t *testing.T) {
	s := New()
	s.SetReady(true)
	s.AddReadinessCheck("dep", time.Second, func(context.Context) error {
		return errors.New("unreachable")
	})
	require.True(t, s.IsReady(), "a registered check starts healthy")

	c := s.checks[0]
	for range failureThreshold {
		c.run(context.Background())
	}
	assert.False(t, s.IsReady())
	assert.Equal(t, http.StatusServiceUnavailable, probe(t, s.ReadyEndpoint).Code)
}

func TestLivenessDoesNotGateReadinessAndViceVersa(t *testing.T) {
	s := New()
	s.SetReady(true)
	s.AddLivenessCheck("live-broken", time.Second, func(context.Context) error {
		return errors.New("down")
	})

	for range failureThreshold {
		s.checks[0].run(context.Background())
	}

	assert.Equal(t, http.StatusServiceUnavailable, probe(t, s.LiveEndpoint).Code)
	assert.Equal(t, http.StatusOK, probe(t, s.ReadyEndpoint).Code)
}

func TestServiceStartStop(t *testing.T) {
	s := New()
	ran := make(chan struct{}, 1)
	s.AddLivenessCheck("tick", time.Second, func(context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start(context.Background(), 10*time.Millisecond)
	defer s.Stop()

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("check never ran")
	}

	s.Stop()
	s.Stop() // idempotent
}

func TestGoroutineCountCheck(t *testing.T) {
	require.NoError(t, GoroutineCountCheck(1 << 20)(context.Background()))
	assert.Error(t, GoroutineCountCheck(0)(context.Background()))
}
