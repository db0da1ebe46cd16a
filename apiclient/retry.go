package apiclient

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/jrsteele09/go-member-client/internal/errors"
)

const DefaultRetryBaseDelay = time.Second

// RetryPolicy controls Retry. The pipeline itself never retries; callers opt
// in per operation.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Clock       clockwork.Clock

	// ShouldRetry decides whether err is worth another attempt. Nil retries
	// every error.
	ShouldRetry func(err error) bool
	OnRetry     func(attempt int, err error, delay time.Duration)
}

// Retry runs op up to MaxAttempts times, waiting BaseDelay after the first
// failure and doubling the wait after each further one. The last error is
// returned wrapped together with ErrRetriesExhausted, so both match with
// errors.Is and errors.As.
func Retry[T any](ctx context.Context, p RetryPolicy, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = DefaultRetryBaseDelay
	}
	if p.Clock == nil {
		p.Clock = clockwork.NewRealClock()
	}

	delay := p.BaseDelay
	for attempt := 1; ; attempt++ {
		val, err := op(ctx)
		if err == nil {
			return val, nil
		}
		if p.ShouldRetry != nil && !p.ShouldRetry(err) {
			return zero, err
		}
		if attempt >= p.MaxAttempts {
			return zero, fmt.Errorf("%w after %d attempts: %w", errors.ErrRetriesExhausted, attempt, err)
		}

		if p.OnRetry != nil {
			p.OnRetry(attempt, err, delay)
		}

		select {
		case <-p.Clock.After(delay):
			delay *= 2
		case <-ctx.Done():
			return zero, errors.Wrapf(ctx.Err(), "retry interrupted")
		}
	}
}
