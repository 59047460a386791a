// Package workers contains the supervised goroutines of the relay: the
// per-channel connection drains, the event fanout, the command
// executors and the health probe, all running under one Supervisor.
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"chatmux/contract"
	"chatmux/errors"
)

// restartDelay spaces out restarts of a crashing worker so a
// persistently failing adapter cannot spin the process.
const restartDelay = 200 * time.Millisecond

// Supervisor owns the lifecycle of every relay worker. Workers register
// through Add before Run; connection drains for channels linked at
// runtime join later through Start. A panicking worker is restarted, a
// worker returning nil is considered finished and stays down.
type Supervisor struct {
	log     *slog.Logger
	workers []contract.Worker

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

var _ contract.ISupervisor = (*Supervisor)(nil)

func NewSupervisor(log *slog.Logger) *Supervisor {
	return &Supervisor{log: log}
}

// Add registers workers to be launched by Run. Workers appearing after
// Run has started go through Start instead.
func (s *Supervisor) Add(worker ...contract.Worker) contract.ISupervisor {
	s.workers = append(s.workers, worker...)
	return s
}

// Run launches every registered worker and blocks until all of them,
// including the ones attached later through Start, have stopped. The
// supervised context ends when the parent context ends or Stop is
// called, whichever comes first.
func (s *Supervisor) Run(ctx context.Context) {
	supervisedCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()
	defer cancel()

	s.log.Info(fmt.Sprintf("Supervising %d relay workers", len(s.workers)))
	for _, worker := range s.workers {
		s.Start(supervisedCtx, worker)
	}
	s.wg.Wait()
}

// Start attaches one worker to the supervision loop. The worker runs on
// its own goroutine; a panic or error restarts it after restartDelay, a
// nil return retires it. One crashing worker never takes the relay
// down: a dead connection drain must leave every other channel flowing.
func (s *Supervisor) Start(ctx context.Context, worker contract.Worker) {
	s.wg.Add(1)
	workerName := contract.GetWorkerName(worker)

	go func() {
		defer s.wg.Done()

		for attempt := 1; ; attempt++ {
			if ctx.Err() != nil {
				s.log.Info("Worker stopped", "worker", workerName)
				return
			}

			err := s.runGuarded(ctx, worker)
			if err == nil {
				// A clean return is terminal. Connection drains are not
				// restartable: reviving one would double-read the channel.
				s.log.Info("Worker finished", "worker", workerName)
				return
			}
			if ctx.Err() != nil {
				s.log.Info("Worker stopped", "worker", workerName)
				return
			}

			s.log.Warn("Worker crashed, restarting",
				"worker", workerName, "attempt", attempt, "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(restartDelay):
			}
		}
	}()
}

// runGuarded runs one worker iteration, converting a panic into an
// error so the restart loop above stays in control.
func (s *Supervisor) runGuarded(ctx context.Context, worker contract.Worker) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errors.ErrWorkerPanic, r)
		}
	}()
	return worker.Run(ctx)
}

// Stop cancels the supervised context. Run keeps blocking until every
// worker has drained out.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}
