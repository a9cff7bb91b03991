// Package resilience wraps calls to unreliable upstreams with bounded retry
// and a circuit breaker. The two decorators share the Policy interface and
// are composed retry-inside-breaker, so the breaker sees one outcome per
// logical call.
package resilience

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/purchase_fx_app/internal/platform/metrics"
)

// Operation is a single attempt against an upstream.
type Operation func(ctx context.Context) error

// Policy executes an Operation under some failure-handling strategy.
type Policy interface {
	Execute(ctx context.Context, op Operation) error
}

// Direct runs the operation once with no failure handling.
type Direct struct{}

func (Direct) Execute(ctx context.Context, op Operation) error {
	return op(ctx)
}

type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// Transient marks err as retryable. Errors not marked are treated as fatal.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// IsTransient reports whether any error in err's chain was marked Transient.
func IsTransient(err error) bool {
	var t *transientError
	return errors.As(err, &t)
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Config describes the composed retry and breaker policy.
type Config struct {
	Name             string
	MaxRetries       int
	BaseDelay        time.Duration
	FailureThreshold uint32
	OpenDuration     time.Duration
	Logger           *slog.Logger
	Metrics          *metrics.RateMetrics
}

// NewPolicy builds a circuit breaker around a retrier, wiring retries and
// state transitions into logs and metrics.
func NewPolicy(cfg Config) *Breaker {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	retrier := NewRetrier(RetryConfig{
		MaxRetries: cfg.MaxRetries,
		BaseDelay:  cfg.BaseDelay,
		OnRetry: func(attempt int, delay time.Duration, err error) {
			cfg.Metrics.Retry()
			logger.Warn("Retrying upstream call",
				slog.String("upstream", cfg.Name),
				slog.Int("attempt", attempt),
				slog.Duration("delay", delay),
				slog.String("error", err.Error()))
		},
	})

	return NewBreaker(BreakerConfig{
		Name:             cfg.Name,
		FailureThreshold: cfg.FailureThreshold,
		OpenDuration:     cfg.OpenDuration,
		OnStateChange: func(from, to State) {
			cfg.Metrics.SetCircuitState(int(to))
			logger.Warn("Circuit breaker state changed",
				slog.String("upstream", cfg.Name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}, retrier)
}
