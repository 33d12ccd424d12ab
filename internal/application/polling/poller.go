package polling

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/victoragudo/hotel-booking-aggregator/internal/domain/hotel"
)

const (
	DefaultMaxAttempts = 5
	DefaultInterval    = 5 * time.Second
)

var ErrPollExhausted = errors.New("polling exceeded maximum retries")

type State int

const (
	StatePolling State = iota
	StateCompleted
	StateExhausted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePolling:
		return "polling"
	case StateCompleted:
		return "completed"
	case StateExhausted:
		return "exhausted"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type Policy struct {
	MaxAttempts int
	Interval    time.Duration
}

func DefaultPolicy() Policy {
	return Policy{MaxAttempts: DefaultMaxAttempts, Interval: DefaultInterval}
}

func (p Policy) Validate() error {
	if p.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be at least 1, got %d", p.MaxAttempts)
	}
	if p.Interval < 0 {
		return fmt.Errorf("interval must not be negative, got %s", p.Interval)
	}
	return nil
}

// WaitFunc suspends the caller for d or until ctx is done.
type WaitFunc func(ctx context.Context, d time.Duration) error

func TimerWait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type Recorder interface {
	ObservePoll(endpoint string, attempts int, state string)
}

type Option func(*Poller)

func WithWaitFunc(wait WaitFunc) Option {
	return func(p *Poller) {
		p.wait = wait
	}
}

func WithRecorder(recorder Recorder) Option {
	return func(p *Poller) {
		p.recorder = recorder
	}
}

// Poller re-issues a pricing request until the upstream reports completion.
// Attempts are strictly sequential.
type Poller struct {
	provider hotel.Provider
	policy   Policy
	wait     WaitFunc
	recorder Recorder
	logger   *slog.Logger
}

func NewPoller(provider hotel.Provider, policy Policy, logger *slog.Logger, opts ...Option) (*Poller, error) {
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid polling policy: %w", err)
	}

	p := &Poller{
		provider: provider,
		policy:   policy,
		wait:     TimerWait,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *Poller) Policy() Policy {
	return p.policy
}

// WithPolicy returns a copy of the poller using a different policy.
func (p *Poller) WithPolicy(policy Policy) (*Poller, error) {
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid polling policy: %w", err)
	}
	clone := *p
	clone.policy = policy
	return &clone, nil
}

// PollUntilCompleted returns the first completed envelope. After the last
// incomplete attempt it fails with ErrPollExhausted without waiting again.
// An upstream error ends polling immediately.
func (p *Poller) PollUntilCompleted(ctx context.Context, endpoint hotel.Endpoint, params hotel.QueryParams) (*hotel.PriceEnvelope, error) {
	startTime := time.Now()
	state := StatePolling
	attempts := 0

	for state == StatePolling {
		raw, err := p.provider.Get(ctx, endpoint, params)
		if err != nil {
			p.finish(endpoint, attempts+1, StateFailed, startTime, err)
			return nil, fmt.Errorf("poll attempt %d failed: %w", attempts+1, err)
		}

		envelope, err := hotel.DecodePriceEnvelope(raw)
		if err != nil {
			p.finish(endpoint, attempts+1, StateFailed, startTime, err)
			return nil, err
		}

		if envelope.Completed {
			p.finish(endpoint, attempts+1, StateCompleted, startTime, nil)
			return envelope, nil
		}

		attempts++
		if attempts >= p.policy.MaxAttempts {
			state = StateExhausted
			continue
		}

		p.logger.Debug("Prices not ready, waiting before next attempt",
			"endpoint", endpoint.Name,
			"attempt", attempts,
			"max_attempts", p.policy.MaxAttempts,
			"interval", p.policy.Interval)

		if err := p.wait(ctx, p.policy.Interval); err != nil {
			p.finish(endpoint, attempts, StateFailed, startTime, err)
			return nil, fmt.Errorf("polling interrupted after %d attempts: %w", attempts, err)
		}
	}

	p.finish(endpoint, attempts, StateExhausted, startTime, ErrPollExhausted)
	return nil, ErrPollExhausted
}

func (p *Poller) finish(endpoint hotel.Endpoint, attempts int, state State, startTime time.Time, err error) {
	if p.recorder != nil {
		p.recorder.ObservePoll(endpoint.Name, attempts, state.String())
	}

	if err != nil {
		p.logger.Warn("Polling ended without completion",
			"endpoint", endpoint.Name,
			"state", state.String(),
			"attempts", attempts,
			"duration", time.Since(startTime),
			"error", err)
		return
	}

	p.logger.Debug("Polling completed",
		"endpoint", endpoint.Name,
		"attempts", attempts,
		"duration", time.Since(startTime))
}
