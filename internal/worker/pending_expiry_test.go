package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingExpirer struct {
	calls atomic.Int32
	err   error
}

func (e *countingExpirer) Execute(context.Context, time.Time) (int, error) {
	e.calls.Add(1)
	return 1, e.err
}

func TestPendingExpiryWorker_RunsUntilCancelled(t *testing.T) {
	exp := &countingExpirer{}
	w := NewPendingExpiryWorker(exp, 5*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return exp.calls.Load() >= 2 }, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestPendingExpiryWorker_SurvivesErrors(t *testing.T) {
	exp := &countingExpirer{err: errors.New("db down")}
	w := NewPendingExpiryWorker(exp, 5*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	require.Eventually(t, func() bool { return exp.calls.Load() >= 3 }, time.Second, time.Millisecond)
}

func TestNewPendingExpiryWorker_Defaults(t *testing.T) {
	w := NewPendingExpiryWorker(&countingExpirer{}, 0, nil)
	assert.Equal(t, time.Minute, w.interval)
	assert.NotNil(t, w.now)
}
