// Package fallback runs an ordered list of strategies until one succeeds
// and reports why each earlier one failed. Every network-backed strategy
// sits behind its own circuit breaker, so a dead service is skipped
// quickly instead of costing a timeout on every call.
package fallback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker"
)

// Reason classifies a strategy failure.
type Reason string

const (
	ReasonUnavailable Reason = "unavailable"
	ReasonQuota       Reason = "quota"
	ReasonInvalid     Reason = "invalid"
	ReasonCircuitOpen Reason = "circuit_open"
	ReasonSkipped     Reason = "skipped"
)

var (
	// ErrSkip is returned by a strategy that cannot run, such as one with
	// no API key. Skips never count against the breaker.
	ErrSkip = errors.New("strategy skipped")

	// ErrInvalid marks a response that arrived but could not be used.
	ErrInvalid = errors.New("invalid response")

	// ErrQuota marks a billing, quota or rate limit failure.
	ErrQuota = errors.New("quota exceeded")

	// ErrExhausted is returned when every strategy failed.
	ErrExhausted = errors.New("all strategies failed")
)

type haltError struct{ err error }

func (h *haltError) Error() string { return h.err.Error() }
func (h *haltError) Unwrap() error { return h.err }

// Halt marks err as final: the chain records the failure and stops
// instead of trying the next strategy.
func Halt(err error) error {
	if err == nil {
		return nil
	}
	return &haltError{err: err}
}

// Strategy is one way of producing a value.
type Strategy[T any] struct {
	Name string
	Run  func(ctx context.Context) (T, error)

	// Local strategies (static lists, echo) bypass the breaker.
	Local bool
}

// Failure records one strategy that did not produce a value.
type Failure struct {
	Strategy string
	Reason   Reason
	Err      error
}

func (f Failure) String() string {
	return fmt.Sprintf("%s: %s (%v)", f.Strategy, f.Reason, f.Err)
}

// Result is the value from the first successful strategy.
type Result[T any] struct {
	Value    T
	Strategy string
	Failures []Failure
}

// Degraded reports whether any earlier strategy failed.
func (r Result[T]) Degraded() bool {
	return len(r.Failures) > 0
}

// Call is reported to the observer after every attempt.
type Call struct {
	Chain    string
	Strategy string
	Latency  time.Duration
	Err      error
	Reason   Reason
}

// Observer receives one Call per attempted strategy.
type Observer func(ctx context.Context, c Call)

// Options tune a Chain.
type Options struct {
	// FailureThreshold is the number of consecutive failures that opens
	// a strategy's breaker.
	FailureThreshold uint32
	// OpenTimeout is how long a breaker stays open before a trial call.
	OpenTimeout time.Duration
	// Classify maps an error to a Reason. Returning "" falls back to the
	// default classification.
	Classify func(error) Reason
	Observer Observer
	Logger   *slog.Logger
}

// Chain tries strategies in order. It keeps one breaker per strategy
// name across calls. Safe for concurrent use.
type Chain[T any] struct {
	name string
	opts Options

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
}

// New creates a chain. Zero options get defaults.
func New[T any](name string, opts Options) *Chain[T] {
	if opts.FailureThreshold == 0 {
		opts.FailureThreshold = 3
	}
	if opts.OpenTimeout == 0 {
		opts.OpenTimeout = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	opts.Logger = opts.Logger.With("component", "fallback", "chain", name)
	return &Chain[T]{
		name:     name,
		opts:     opts,
		breakers: make(map[string]*gobreaker.CircuitBreaker),
	}
}

// Name returns the chain name.
func (c *Chain[T]) Name() string {
	return c.name
}

func (c *Chain[T]) breaker(strategy string) *gobreaker.CircuitBreaker {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cb, ok := c.breakers[strategy]; ok {
		return cb
	}
	threshold := c.opts.FailureThreshold
	logger := c.opts.Logger
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        c.name + "/" + strategy,
		MaxRequests: 1,
		Timeout:     c.opts.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrSkip) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
	c.breakers[strategy] = cb
	return cb
}

// BreakerState returns the breaker state for a strategy name.
func (c *Chain[T]) BreakerState(strategy string) gobreaker.State {
	return c.breaker(strategy).State()
}

// Do runs strategies in order and returns the first success. When every
// strategy fails the error wraps ErrExhausted and the Result still lists
// the failures.
func (c *Chain[T]) Do(ctx context.Context, strategies ...Strategy[T]) (Result[T], error) {
	var res Result[T]
	for _, s := range strategies {
		if err := ctx.Err(); err != nil {
			res.Failures = append(res.Failures, Failure{Strategy: s.Name, Reason: ReasonUnavailable, Err: err})
			break
		}

		start := time.Now()
		v, err := c.run(ctx, s)
		latency := time.Since(start)

		var reason Reason
		if err != nil {
			reason = c.classify(err)
		}
		if c.opts.Observer != nil && reason != ReasonSkipped {
			c.opts.Observer(ctx, Call{Chain: c.name, Strategy: s.Name, Latency: latency, Err: err, Reason: reason})
		}

		if err == nil {
			res.Value = v
			res.Strategy = s.Name
			if res.Degraded() {
				c.opts.Logger.Debug("served by fallback", "strategy", s.Name, "failures", len(res.Failures))
			}
			return res, nil
		}

		res.Failures = append(res.Failures, Failure{Strategy: s.Name, Reason: reason, Err: err})
		if reason != ReasonSkipped {
			c.opts.Logger.Warn("strategy failed", "strategy", s.Name, "reason", string(reason), "error", err)
		}
		var halt *haltError
		if errors.As(err, &halt) {
			return res, fmt.Errorf("%s: %s: %w", c.name, s.Name, halt.err)
		}
	}
	return res, fmt.Errorf("%s: %w: %s", c.name, ErrExhausted, summarize(res.Failures))
}

func (c *Chain[T]) run(ctx context.Context, s Strategy[T]) (T, error) {
	if s.Local {
		return s.Run(ctx)
	}
	out, err := c.breaker(s.Name).Execute(func() (interface{}, error) {
		return s.Run(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	v, _ := out.(T)
	return v, nil
}

func (c *Chain[T]) classify(err error) Reason {
	if c.opts.Classify != nil {
		if r := c.opts.Classify(err); r != "" {
			return r
		}
	}
	return Classify(err)
}

// Classify is the default error classification.
func Classify(err error) Reason {
	switch {
	case errors.Is(err, ErrSkip):
		return ReasonSkipped
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return ReasonCircuitOpen
	case errors.Is(err, ErrQuota):
		return ReasonQuota
	case errors.Is(err, ErrInvalid):
		return ReasonInvalid
	default:
		return ReasonUnavailable
	}
}

func summarize(failures []Failure) string {
	parts := make([]string, len(failures))
	for i, f := range failures {
		parts[i] = f.Strategy + "=" + string(f.Reason)
	}
	return strings.Join(parts, ", ")
}
