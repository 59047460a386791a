package workers

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"

	"chatmux/contract"

	"github.com/shirou/gopsutil/process"
)

var _ contract.Worker = (*HealthWorker)(nil)

// HealthWorker periodically logs the relay's own resource usage.
type HealthWorker struct {
	log      *slog.Logger
	interval time.Duration
}

func NewHealthWorker(log *slog.Logger, interval time.Duration) *HealthWorker {
	return &HealthWorker{log: log, interval: interval}
}

func (w *HealthWorker) Run(ctx context.Context) error {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.report(p)
		}
	}
}

func (w *HealthWorker) report(p *process.Process) {
	cpu, err := p.CPUPercent()
	if err != nil {
		w.log.Debug("CPU usage unavailable", "error", err)
		return
	}
	mem, err := p.MemoryInfo()
	if err != nil {
		w.log.Debug("Memory usage unavailable", "error", err)
		return
	}
	w.log.Info("Health",
		"cpu_percent", cpu,
		"rss_mb", mem.RSS/1024/1024,
		"goroutines", runtime.NumGoroutine(),
	)
}
