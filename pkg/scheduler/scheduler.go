// Package scheduler runs jobs on fixed intervals from a single goroutine
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
)

// Task is a named job repeated every Interval
type Task struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// TaskStatus describes the last execution of a task
type TaskStatus struct {
	Name      string        `json:"name"`
	Interval  time.Duration `json:"interval"`
	Runs      int           `json:"runs"`
	LastRun   time.Time     `json:"last_run,omitzero"`
	Duration  time.Duration `json:"duration"`
	LastError string        `json:"last_error,omitempty"`
	NextRun   time.Time     `json:"next_run,omitzero"`
}

// Scheduler runs tasks one at a time, so they never overlap
type Scheduler struct {
	tasks  []Task
	wg     sync.WaitGroup
	cancel context.CancelFunc

	mu     sync.Mutex
	status []TaskStatus
}

// NewScheduler creates a scheduler for the given tasks. All tasks are due on start, in order.
func NewScheduler(tasks ...Task) *Scheduler {
	status := make([]TaskStatus, len(tasks))
	for i, t := range tasks {
		status[i] = TaskStatus{Name: t.Name, Interval: t.Interval}
	}
	return &Scheduler{tasks: tasks, status: status}
}

// Start begins the scheduler
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.loop(ctx)

	for _, t := range s.tasks {
		lgr.Printf("[INFO] scheduled %s every %v", t.Name, t.Interval)
	}
}

// Stop gracefully stops the scheduler, waiting for a running task to return
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// Status returns a snapshot of all tasks in registration order
func (s *Scheduler) Status() []TaskStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]TaskStatus, len(s.status))
	copy(res, s.status)
	return res
}

func (s *Scheduler) loop(ctx context.Context) {
	defer s.wg.Done()
	if len(s.tasks) == 0 {
		<-ctx.Done()
		return
	}

	next := make([]time.Time, len(s.tasks))
	for {
		for i, t := range s.tasks {
			if ctx.Err() != nil {
				return
			}
			if time.Now().Before(next[i]) {
				continue
			}
			s.runTask(ctx, i, t)
			next[i] = time.Now().Add(t.Interval)
			s.mu.Lock()
			s.status[i].NextRun = next[i]
			s.mu.Unlock()
		}

		earliest := next[0]
		for _, n := range next[1:] {
			if n.Before(earliest) {
				earliest = n
			}
		}

		timer := time.NewTimer(max(time.Until(earliest), 0))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

func (s *Scheduler) runTask(ctx context.Context, idx int, t Task) {
	lgr.Printf("[DEBUG] running %s", t.Name)
	start := time.Now()
	err := t.Run(ctx)
	elapsed := time.Since(start)

	s.mu.Lock()
	st := &s.status[idx]
	st.Runs++
	st.LastRun = start
	st.Duration = elapsed
	st.LastError = ""
	if err != nil {
		st.LastError = err.Error()
	}
	s.mu.Unlock()

	if err != nil {
		lgr.Printf("[WARN] %s failed after %v: %v", t.Name, elapsed.Round(time.Millisecond), err)
		return
	}
	lgr.Printf("[INFO] %s completed in %v", t.Name, elapsed.Round(time.Millisecond))
}
