package utils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSleepContext(t *testing.T) {
	ctx := context.Background()
	assert.NoError(t, SleepContext(ctx, time.Millisecond))

	ctx, cancel := context.WithCancel(ctx)
	cancel()
	assert.Equal(t, context.Canceled, SleepContext(ctx, time.Minute))
}

func TestIsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	assert.False(t, IsCanceled(ctx))
	cancel()
	assert.True(t, IsCanceled(ctx))
}

func TestTimeDiff(t *testing.T) {
	t0 := time.Now()
	t1 := t0.Add(1500399 * time.Microsecond)
	assert.Equal(t, 1500*time.Millisecond, TimeDiff(t1, t0))
}
