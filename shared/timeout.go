package shared

import (
	"context"
	"errors"
	"time"
)

const DefaultOperationTimeout = 30 * time.Second

var ErrOperationTimeout = errors.New("operation timed out")

// WithTimeout races fn against a timer so a slow collaborator cannot hang a
// request indefinitely. The underlying operation is not cancelled beyond the
// context signal; its result is discarded once the timer wins.
func WithTimeout[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if timeout <= 0 {
		timeout = DefaultOperationTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		value T
		err   error
	}

	done := make(chan result, 1)
	go func() {
		value, err := fn(ctx)
		done <- result{value: value, err: err}
	}()

	select {
	case res := <-done:
		return res.value, res.err
	case <-ctx.Done():
		var zero T
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, ErrOperationTimeout
		}
		return zero, ctx.Err()
	}
}
