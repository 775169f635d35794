package testutil

import (
	"context"
	"sync/atomic"
	"time"
)

// MockClock sleeps instantly by default and counts every sleep, so polling
// loops can be driven through all attempts without real timers.
type MockClock struct {
	NowFunc   func() time.Time
	SleepFunc func(ctx context.Context, d time.Duration) error

	sleepCalls int64
}

func (c *MockClock) Now() time.Time {
	if c.NowFunc != nil {
		return c.NowFunc()
	}

	return time.Now()
}

func (c *MockClock) Sleep(ctx context.Context, d time.Duration) error {
	atomic.AddInt64(&c.sleepCalls, 1)
	if c.SleepFunc != nil {
		return c.SleepFunc(ctx, d)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return nil
}

func (c *MockClock) SleepCalls() int {
	return int(atomic.LoadInt64(&c.sleepCalls))
}
