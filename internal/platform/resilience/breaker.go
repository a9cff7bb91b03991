package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"
)

// ErrCircuitOpen is returned without calling the upstream while the breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State mirrors the metrics gauge encoding: 0 closed, 1 half-open, 2 open.
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

func fromGobreaker(s gobreaker.State) State {
	switch s {
	case gobreaker.StateHalfOpen:
		return StateHalfOpen
	case gobreaker.StateOpen:
		return StateOpen
	default:
		return StateClosed
	}
}

type BreakerConfig struct {
	Name string
	// FailureThreshold consecutive transient failures open the circuit.
	FailureThreshold uint32
	// OpenDuration is how long the circuit stays open before a single trial call.
	OpenDuration  time.Duration
	OnStateChange func(from, to State)
}

// Breaker is a circuit breaker decorating another Policy. Only transient
// failures count against it and only a success closes it; fatal and
// canceled outcomes are not counted at all.
type Breaker struct {
	name string
	cb   *gobreaker.CircuitBreaker[struct{}]
	next Policy
}

func NewBreaker(cfg BreakerConfig, next Policy) *Breaker {
	if next == nil {
		next = Direct{}
	}
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.OpenDuration,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// Canceled and fatal outcomes say nothing about upstream health, so they
		// neither close a half-open circuit nor break a failure streak.
		IsExcluded: func(err error) bool {
			return err != nil && (isCanceled(err) || !IsTransient(err))
		},
		IsSuccessful: func(err error) bool {
			return err == nil
		},
	}
	if cfg.OnStateChange != nil {
		settings.OnStateChange = func(_ string, from, to gobreaker.State) {
			cfg.OnStateChange(fromGobreaker(from), fromGobreaker(to))
		}
	}

	return &Breaker{
		name: cfg.Name,
		cb:   gobreaker.NewCircuitBreaker[struct{}](settings),
		next: next,
	}
}

func (b *Breaker) Execute(ctx context.Context, op Operation) error {
	_, err := b.cb.Execute(func() (struct{}, error) {
		return struct{}{}, b.next.Execute(ctx, op)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%s: %w", b.name, ErrCircuitOpen)
	}
	return err
}

// State reports the current circuit state.
func (b *Breaker) State() State {
	return fromGobreaker(b.cb.State())
}
