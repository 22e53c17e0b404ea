package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBridge = errors.New("bridge down")

func failing(ctx context.Context) error { return errBridge }
func passing(ctx context.Context) error { return nil }

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *clock {
	return &clock{t: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
}

func withClock(cb *CircuitBreaker, c *clock) {
	cb.now = c.now
	cb.deadline = c.now().Add(cb.cfg.Interval)
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	// Arrange
	cfg := DefaultConfig("locker")
	cfg.FailureThreshold = 2
	cb := New(cfg, nil)

	// Act
	first := cb.Execute(context.Background(), failing)
	stateAfterFirst := cb.State()
	second := cb.Execute(context.Background(), failing)

	// Assert
	assert.ErrorIs(t, first, errBridge)
	assert.Equal(t, StateClosed, stateAfterFirst)
	assert.ErrorIs(t, second, errBridge)
	assert.Equal(t, StateOpen, cb.State())
	assert.ErrorIs(t, cb.Execute(context.Background(), passing), ErrCircuitBreakerOpen)
	assert.ErrorIs(t, cb.CheckHealth(context.Background()), ErrCircuitBreakerOpen)
}

func TestCircuitBreaker_HalfOpenRecovers(t *testing.T) {
	// Arrange
	var transitions []string
	cfg := DefaultConfig("payment")
	cfg.FailureThreshold = 1
	cfg.Timeout = time.Minute
	cfg.OnStateChange = func(name string, from, to State) {
		transitions = append(transitions, from.String()+"->"+to.String())
	}
	c := newClock()
	cb := New(cfg, nil)
	withClock(cb, c)

	_ = cb.Execute(context.Background(), failing)
	require.Equal(t, StateOpen, cb.State())
	assert.Equal(t, c.now().Add(time.Minute), cb.Snapshot().RetryAt)

	// Act
	c.advance(time.Minute + time.Second)
	err := cb.Execute(context.Background(), passing)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, []string{"CLOSED->OPEN", "OPEN->HALF_OPEN", "HALF_OPEN->CLOSED"}, transitions)
	assert.NoError(t, cb.CheckHealth(context.Background()))
	assert.True(t, cb.Snapshot().RetryAt.IsZero())
}

func TestCircuitBreaker_StaysOpenUntilTimeout(t *testing.T) {
	// Arrange
	cfg := DefaultConfig("payment")
	cfg.FailureThreshold = 1
	cfg.Timeout = time.Minute
	c := newClock()
	cb := New(cfg, nil)
	withClock(cb, c)
	_ = cb.Execute(context.Background(), failing)

	// Act
	c.advance(59 * time.Second)
	calls := 0
	err := cb.Execute(context.Background(), func(context.Context) error { calls++; return nil })

	// Assert
	assert.ErrorIs(t, err, ErrCircuitBreakerOpen)
	assert.Zero(t, calls)
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	// Arrange
	cfg := DefaultConfig("payment")
	cfg.FailureThreshold = 1
	cfg.Timeout = time.Minute
	c := newClock()
	cb := New(cfg, nil)
	withClock(cb, c)
	_ = cb.Execute(context.Background(), failing)
	c.advance(2 * time.Minute)

	// Act
	_ = cb.Execute(context.Background(), failing)

	// Assert
	assert.Equal(t, StateOpen, cb.State())
	assert.Equal(t, c.now().Add(time.Minute), cb.Snapshot().RetryAt)
}

func TestCircuitBreaker_HalfOpenAdmitsLimitedProbes(t *testing.T) {
	// Arrange
	cfg := DefaultConfig("locker")
	cfg.FailureThreshold = 1
	cfg.Timeout = time.Minute
	c := newClock()
	cb := New(cfg, nil)
	withClock(cb, c)
	_ = cb.Execute(context.Background(), failing)
	c.advance(2 * time.Minute)

	// Act
	var nested error
	outer := cb.Execute(context.Background(), func(ctx context.Context) error {
		nested = cb.Execute(ctx, passing)
		return nil
	})

	// Assert
	assert.NoError(t, outer)
	assert.ErrorIs(t, nested, ErrTooManyRequests)
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_IntervalClearsSparseFailures(t *testing.T) {
	// Arrange
	cfg := DefaultConfig("payment")
	cfg.FailureThreshold = 2
	cfg.Interval = 10 * time.Second
	c := newClock()
	cb := New(cfg, nil)
	withClock(cb, c)
	_ = cb.Execute(context.Background(), failing)

	// Act
	c.advance(11 * time.Second)
	_ = cb.Execute(context.Background(), failing)

	// Assert
	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(1), cb.Snapshot().ConsecutiveFailures)
	assert.Equal(t, uint32(2), cb.Snapshot().TotalFailures)
}

func TestCircuitBreaker_IgnoredErrorsDoNotTrip(t *testing.T) {
	// Arrange
	rejected := errors.New("422 invalid amount")
	cfg := DefaultConfig("payment")
	cfg.FailureThreshold = 1
	cfg.IsFailure = func(err error) bool { return err != nil && !errors.Is(err, rejected) }
	cb := New(cfg, nil)

	// Act
	err := cb.Execute(context.Background(), func(ctx context.Context) error { return rejected })

	// Assert
	assert.ErrorIs(t, err, rejected)
	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(1), cb.Snapshot().TotalSuccesses)
}
