package workers

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

// scriptedWorker drives the supervisor with a plain function and counts
// how many times it was launched.
type scriptedWorker struct {
	runs int64
	run  func(ctx context.Context) error
}

func (w *scriptedWorker) Run(ctx context.Context) error {
	atomic.AddInt64(&w.runs, 1)
	return w.run(ctx)
}

func (w *scriptedWorker) launches() int64 {
	return atomic.LoadInt64(&w.runs)
}

func TestSupervisorRestartsPanickingWorker(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	worker := &scriptedWorker{run: func(ctx context.Context) error {
		panic("adapter stream tore down")
	}}

	sup := NewSupervisor(log)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sup.Add(worker).Run(ctx)

	req.Eventually(func() bool { return worker.launches() >= 3 },
		3*time.Second, 10*time.Millisecond,
		"panicking worker should be relaunched after the restart delay")
}

func TestSupervisorRetiresWorkerOnCleanReturn(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	worker := &scriptedWorker{run: func(ctx context.Context) error {
		return nil
	}}

	sup := NewSupervisor(log)
	done := make(chan struct{})
	go func() {
		sup.Add(worker).Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		req.Fail("supervisor should unblock once its only worker finishes")
	}
	req.EqualValues(1, worker.launches(), "a finished worker must not be relaunched")
}

func TestSupervisorStopDrainsWorkers(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	worker := &scriptedWorker{run: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}}

	sup := NewSupervisor(log)
	started := make(chan struct{})
	done := make(chan struct{})
	go func() {
		close(started)
		sup.Add(worker).Run(context.Background())
		close(done)
	}()

	<-started
	req.Eventually(func() bool { return worker.launches() == 1 },
		3*time.Second, 10*time.Millisecond)
	sup.Stop()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		req.Fail("Stop should release Run once workers drained")
	}
}
