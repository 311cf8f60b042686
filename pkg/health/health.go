// Package health provides liveness and readiness probe endpoints backed by
// periodically executed checks. A check must fail a few times in a row before
// it is reported unhealthy, so a single slow run does not flap the probe.
package health

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-faster/jx"
)

// CheckFunc reports the health of one component; nil means healthy.
type CheckFunc func(ctx context.Context) error

// probeClass separates liveness from readiness checks.
type probeClass int

const (
	classLiveness probeClass = iota
	classReadiness
)

const (
	failureThreshold = 3
	successThreshold = 1
)

// check is one registered probe with its runtime state. The consecutive
// counters are touched only by the single run goroutine; the healthy flag and
// last error are shared with HTTP handlers and use atomics.
type check struct {
	name    string
	class   probeClass
	timeout time.Duration
	fn      CheckFunc

	healthy atomic.Bool
	lastErr atomic.Pointer[error]

	fails int
	oks   int
}

func (c *check) run(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	err := c.fn(runCtx)
	c.lastErr.Store(&err)

	if err != nil {
		c.oks = 0
		if c.fails++; c.fails >= failureThreshold {
			c.healthy.Store(false)
		}
		return
	}
	c.fails = 0
	if c.oks++; c.oks >= successThreshold {
		c.healthy.Store(true)
	}
}

// Service runs health checks and serves /livez and /readyz style endpoints.
type Service struct {
	ready atomic.Bool

	mu     sync.RWMutex
	checks []*check
	cancel context.CancelFunc
}

// New creates a Service in the not-ready state; call SetReady(true) once
// initialization is complete.
func New() *Service {
	return &Service{}
}

// AddLivenessCheck registers a check that gates the liveness probe.
func (s *Service) AddLivenessCheck(name string, timeout time.Duration, fn CheckFunc) {
	s.add(name, classLiveness, timeout, fn)
}

// AddReadinessCheck registers a check that gates the readiness probe.
func (s *Service) AddReadinessCheck(name string, timeout time.Duration, fn CheckFunc) {
	s.add(name, classReadiness, timeout, fn)
}

func (s *Service) add(name string, class probeClass, timeout time.Duration, fn CheckFunc) {
	c := &check{name: name, class: class, timeout: timeout, fn: fn}
	c.healthy.Store(true)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.checks = append(s.checks, c)
}

// Start launches one goroutine per registered check, each running at the
// given interval until Stop or context cancellation.
func (s *Service) Start(ctx context.Context, interval time.Duration) {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	s.cancel = cancel
	checks := make([]*check, len(s.checks))
	copy(checks, s.checks)
	s.mu.Unlock()

	for _, c := range checks {
		go func(c *check) {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			c.run(ctx)
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					c.run(ctx)
				}
			}
		}(c)
	}
}

// Stop cancels all check goroutines. Safe to call more than once.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// SetReady flips the manual readiness gate. Set false during graceful
// shutdown to drain traffic before the listener closes.
func (s *Service) SetReady(ready bool) {
	s.ready.Store(ready)
}

// IsReady reports whether the service is marked ready and all readiness
// checks pass.
func (s *Service) IsReady() bool {
	if !s.ready.Load() {
		return false
	}
	for _, c := range s.snapshot(classReadiness) {
		if !c.healthy.Load() {
			return false
		}
	}
	return true
}

func (s *Service) snapshot(class probeClass) []*check {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*check, 0, len(s.checks))
	for _, c := range s.checks {
		if c.class == class {
			out = append(out, c)
		}
	}
	return out
}

// LiveEndpoint serves the liveness probe.
func (s *Service) LiveEndpoint(w http.ResponseWriter, _ *http.Request) {
	writeStatus(w, failures(s.snapshot(classLiveness)))
}

// ReadyEndpoint serves the readiness probe.
func (s *Service) ReadyEndpoint(w http.ResponseWriter, _ *http.Request) {
	fails := failures(s.snapshot(classReadiness))
	if !s.ready.Load() {
		fails = append(fails, failure{name: "_readiness", message: "service is not ready"})
	}
	writeStatus(w, fails)
}

type failure struct {
	name    string
	message string
}

func failures(checks []*check) []failure {
	var out []failure
	for _, c := range checks {
		if c.healthy.Load() {
			continue
		}
		msg := "check is unhealthy"
		if p := c.lastErr.Load(); p != nil && *p != nil {
			msg = (*p).Error()
		}
		out = append(out, failure{name: c.name, message: msg})
	}
	return out
}

func writeStatus(w http.ResponseWriter, fails []failure) {
	status := http.StatusOK

	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("status")
	if len(fails) == 0 {
		e.Str("ok")
	} else {
		status = http.StatusServiceUnavailable
		e.Str("unhealthy")
		e.FieldStart("checks")
		e.ObjStart()
		for _, f := range fails {
			e.FieldStart(f.name)
			e.Str(f.message)
		}
		e.ObjEnd()
	}
	e.ObjEnd()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}
