package sched

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSchedulerRunsJobImmediately(t *testing.T) {
	s := New(zap.NewNop())
	var runs atomic.Int32
	s.AddJob("tick", time.Hour, func(context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool { return runs.Load() >= 1 },
		time.Second, 10*time.Millisecond)
}

func TestSchedulerStopCancelsContext(t *testing.T) {
	s := New(zap.NewNop())
	done := make(chan struct{})
	s.AddJob("wait", time.Hour, func(ctx context.Context) error {
		<-ctx.Done()
		close(done)
		return ctx.Err()
	})

	s.Start()
	s.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job context was not cancelled on Stop")
	}
}
