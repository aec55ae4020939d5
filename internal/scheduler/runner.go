package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/julienmorel/caisse-backend/pkg/logger"
)

const defaultInterval = 30 * time.Second

// Task is one unit of periodic work, typically a table recompute.
type Task interface {
	Name() string
	Run(ctx context.Context) error
}

// TaskFunc adapts a function to the Task interface.
type TaskFunc struct {
	TaskName string
	Fn       func(ctx context.Context) error
}

func (t TaskFunc) Name() string                  { return t.TaskName }
func (t TaskFunc) Run(ctx context.Context) error { return t.Fn(ctx) }

// RunnerParams configure the refresh runner.
type RunnerParams struct {
	Logger   *logger.Logger
	Tasks    []Task
	Interval time.Duration
}

// Runner executes its tasks on a fixed cadence. Stop and a later Start
// are both safe, so an operator action can suspend the refresh loop
// without tearing down the process.
type Runner struct {
	logg     *logger.Logger
	tasks    []Task
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRunner builds a refresh runner.
func NewRunner(params RunnerParams) (*Runner, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	interval := params.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Runner{
		logg:     params.Logger,
		tasks:    params.Tasks,
		interval: interval,
	}, nil
}

// Start launches the loop. Calling Start on a running runner is a no-op.
func (r *Runner) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return
	}
	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done
	go r.loop(loopCtx, done)
}

// Stop halts the loop and waits for the in-flight cycle to finish.
// Calling Stop on a stopped runner is a no-op.
func (r *Runner) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (r *Runner) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	r.runCycle(ctx)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logg.Info(ctx, "refresh runner stopped")
			return
		case <-ticker.C:
			r.runCycle(ctx)
		}
	}
}

func (r *Runner) runCycle(ctx context.Context) {
	for _, task := range r.tasks {
		if ctx.Err() != nil {
			return
		}
		taskCtx := r.logg.WithField(ctx, "task", task.Name())
		start := time.Now()
		if err := task.Run(taskCtx); err != nil {
			r.logg.Error(taskCtx, "refresh task failed", err)
			continue
		}
		taskCtx = r.logg.WithField(taskCtx, "duration_ms", time.Since(start).Milliseconds())
		r.logg.Debug(taskCtx, "refresh task completed")
	}
}
