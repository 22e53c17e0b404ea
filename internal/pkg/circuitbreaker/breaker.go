package circuitbreaker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/piresc/smartlocker/internal/pkg/logger"
)

var (
	ErrCircuitBreakerOpen = errors.New("circuit breaker is open")
	ErrTooManyRequests    = errors.New("too many requests in half-open state")
)

// State is the breaker position
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	}
	return "UNKNOWN"
}

// Config tunes one breaker. Zero values fall back to DefaultConfig.
type Config struct {
	Name string

	// FailureThreshold consecutive failures open a closed breaker
	FailureThreshold uint32
	// Interval clears the closed-state counters so sparse failures never add up
	Interval time.Duration
	// Timeout is how long the breaker stays open before letting probes through
	Timeout time.Duration
	// MaxRequests concurrent probes are admitted while half-open
	MaxRequests uint32
	// SuccessThreshold successful probes close a half-open breaker
	SuccessThreshold uint32

	OnStateChange func(name string, from, to State)
	// IsFailure decides which errors count against the upstream. Nil counts every error.
	IsFailure func(err error) bool
}

// DefaultConfig opens after five consecutive failures and probes again after 30s
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		FailureThreshold: 5,
		Interval:         30 * time.Second,
		Timeout:          30 * time.Second,
		MaxRequests:      1,
		SuccessThreshold: 1,
	}
}

// Snapshot is a point-in-time view used for logs and health output
type Snapshot struct {
	Name                string
	State               State
	ConsecutiveFailures uint32
	TotalSuccesses      uint32
	TotalFailures       uint32
	// RetryAt is when an open breaker admits its next probe
	RetryAt time.Time
}

// CircuitBreaker guards calls to one upstream such as the payment provider or the locker device cloud
type CircuitBreaker struct {
	cfg    Config
	logger *logger.ZapLogger
	now    func() time.Time

	mu         sync.Mutex
	state      State
	deadline   time.Time // counter reset while closed, probe time while open
	inFlight   uint32
	failStreak uint32
	okStreak   uint32
	successes  uint32
	failures   uint32
}

// New creates a closed breaker
func New(cfg Config, l *logger.ZapLogger) *CircuitBreaker {
	def := DefaultConfig(cfg.Name)
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = def.MaxRequests
	}
	if cfg.SuccessThreshold == 0 {
		cfg.SuccessThreshold = def.SuccessThreshold
	}
	if cfg.IsFailure == nil {
		cfg.IsFailure = func(err error) bool { return err != nil }
	}
	if l == nil {
		l = logger.NewNopLogger()
	}

	cb := &CircuitBreaker{cfg: cfg, logger: l, now: time.Now}
	cb.deadline = cb.now().Add(cfg.Interval)
	return cb
}

// Execute runs fn unless the breaker is open. fn's error is returned unchanged.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	probe, err := cb.admit()
	if err != nil {
		return err
	}
	err = fn(ctx)
	cb.record(probe, err)
	return err
}

func (cb *CircuitBreaker) admit() (bool, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := cb.now()
	switch cb.state {
	case StateClosed:
		if now.After(cb.deadline) {
			cb.failStreak = 0
			cb.deadline = now.Add(cb.cfg.Interval)
		}
		return false, nil
	case StateOpen:
		if now.Before(cb.deadline) {
			return false, ErrCircuitBreakerOpen
		}
		cb.transition(StateHalfOpen)
		cb.okStreak = 0
		cb.inFlight = 0
	}

	if cb.inFlight >= cb.cfg.MaxRequests {
		return false, ErrTooManyRequests
	}
	cb.inFlight++
	return true, nil
}

func (cb *CircuitBreaker) record(probe bool, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if probe && cb.inFlight > 0 {
		cb.inFlight--
	}

	if !cb.cfg.IsFailure(err) {
		cb.successes++
		cb.failStreak = 0
		if cb.state == StateHalfOpen {
			cb.okStreak++
			if cb.okStreak >= cb.cfg.SuccessThreshold {
				cb.transition(StateClosed)
				cb.deadline = cb.now().Add(cb.cfg.Interval)
			}
		}
		return
	}

	cb.failures++
	cb.failStreak++
	if cb.state == StateHalfOpen || (cb.state == StateClosed && cb.failStreak >= cb.cfg.FailureThreshold) {
		cb.transition(StateOpen)
		cb.deadline = cb.now().Add(cb.cfg.Timeout)
	}
}

// transition must be called with mu held
func (cb *CircuitBreaker) transition(to State) {
	from := cb.state
	if from == to {
		return
	}
	cb.state = to

	cb.logger.Warn("Circuit breaker state changed",
		logger.String("name", cb.cfg.Name),
		logger.String("from", from.String()),
		logger.String("to", to.String()),
		logger.Int("consecutive_failures", int(cb.failStreak)))

	if cb.cfg.OnStateChange != nil {
		cb.cfg.OnStateChange(cb.cfg.Name, from, to)
	}
}

// State returns the current position
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Snapshot returns the counters and, for an open breaker, the next probe time
func (cb *CircuitBreaker) Snapshot() Snapshot {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	s := Snapshot{
		Name:                cb.cfg.Name,
		State:               cb.state,
		ConsecutiveFailures: cb.failStreak,
		TotalSuccesses:      cb.successes,
		TotalFailures:       cb.failures,
	}
	if cb.state == StateOpen {
		s.RetryAt = cb.deadline
	}
	return s
}

// Name returns the upstream name the breaker guards
func (cb *CircuitBreaker) Name() string {
	return cb.cfg.Name
}

// CheckHealth fails while the breaker is open so readiness reflects a dead upstream
func (cb *CircuitBreaker) CheckHealth(ctx context.Context) error {
	s := cb.Snapshot()
	if s.State != StateOpen {
		return nil
	}
	return fmt.Errorf("%s: %w until %s", s.Name, ErrCircuitBreakerOpen, s.RetryAt.UTC().Format(time.RFC3339))
}
