package shared

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTimeoutReturnsResult(t *testing.T) {
	value, err := WithTimeout(context.Background(), time.Second, func(ctx context.Context) (string, error) {
		return "listo", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "listo", value)
}

func TestWithTimeoutPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	_, err := WithTimeout(context.Background(), time.Second, func(ctx context.Context) (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestWithTimeoutExpires(t *testing.T) {
	value, err := WithTimeout(context.Background(), 10*time.Millisecond, func(ctx context.Context) (string, error) {
		time.Sleep(200 * time.Millisecond)
		return "tarde", nil
	})
	assert.ErrorIs(t, err, ErrOperationTimeout)
	assert.Empty(t, value, "the late result is discarded")
}

func TestWithTimeoutHonorsCancelledParent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WithTimeout(ctx, time.Second, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrOperationTimeout)
}
