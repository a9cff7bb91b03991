package resilience

import (
	"context"
	"fmt"
	"time"
)

// RetryConfig configures a Retrier. Delay before retry n (1-based) is
// BaseDelay * 2^(n-1).
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	OnRetry    func(attempt int, delay time.Duration, err error)
	// Sleep waits for d or until ctx is done. Defaults to a timer select.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Retrier re-runs an operation while it fails with a transient error.
type Retrier struct {
	maxRetries int
	baseDelay  time.Duration
	onRetry    func(attempt int, delay time.Duration, err error)
	sleep      func(ctx context.Context, d time.Duration) error
}

func NewRetrier(cfg RetryConfig) *Retrier {
	r := &Retrier{
		maxRetries: cfg.MaxRetries,
		baseDelay:  cfg.BaseDelay,
		onRetry:    cfg.OnRetry,
		sleep:      cfg.Sleep,
	}
	if r.maxRetries < 0 {
		r.maxRetries = 0
	}
	if r.sleep == nil {
		r.sleep = sleepContext
	}
	return r
}

func (r *Retrier) Execute(ctx context.Context, op Operation) error {
	for attempt := 0; ; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if !IsTransient(err) || attempt >= r.maxRetries {
			return err
		}
		if ctx.Err() != nil {
			return abortErr(attempt+1, ctx.Err(), err)
		}

		delay := r.baseDelay << attempt
		if r.onRetry != nil {
			r.onRetry(attempt+1, delay, err)
		}
		if sleepErr := r.sleep(ctx, delay); sleepErr != nil {
			return abortErr(attempt+1, sleepErr, err)
		}
	}
}

func abortErr(attempts int, cause, last error) error {
	return fmt.Errorf("retry aborted after %d attempt(s): %w (last error: %w)", attempts, cause, last)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
