// Package sched runs registered jobs on fixed intervals for watch mode.
package sched

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is one scheduled unit of work.
type Job struct {
	Name     string
	Interval time.Duration
	Fn       func(ctx context.Context) error
}

// Scheduler runs jobs on their intervals until stopped.
type Scheduler struct {
	jobs   []Job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
	log    *zap.Logger
}

// New creates a scheduler.
func New(log *zap.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{ctx: ctx, cancel: cancel, log: log}
}

// AddJob registers a job.
func (s *Scheduler) AddJob(name string, interval time.Duration, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, Job{Name: name, Interval: interval, Fn: fn})
	s.log.Info("job registered", zap.String("name", name), zap.Duration("interval", interval))
}

// Start launches all registered jobs. Each job runs once immediately, then
// on its interval.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runJob(job)
	}
	s.log.Info("scheduler started", zap.Int("jobs", len(s.jobs)))
}

// Stop cancels all jobs and waits for them to finish.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) runJob(job Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	s.executeJob(job)
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.executeJob(job)
		}
	}
}

func (s *Scheduler) executeJob(job Job) {
	start := time.Now()
	if err := job.Fn(s.ctx); err != nil {
		s.log.Error("job failed", zap.String("name", job.Name), zap.Error(err))
		return
	}
	s.log.Info("job completed", zap.String("name", job.Name), zap.Duration("took", time.Since(start)))
}
