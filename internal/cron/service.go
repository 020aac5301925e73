package cron

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/astrosocial-backend/pkg/logger"
	"github.com/angelmondragon/astrosocial-backend/pkg/metrics"
)

const defaultTick = time.Minute

// Entry schedules a job. A zero Every runs the job on every tick.
type Entry struct {
	Job   Job
	Every time.Duration
}

// Every pairs job with its cadence.
func Every(job Job, d time.Duration) Entry {
	return Entry{Job: job, Every: d}
}

type ServiceParams struct {
	Logger  *logger.Logger
	Entries []Entry
	Lock    Lock
	Metrics *metrics.CronJobMetrics
	// Tick is how often due jobs are checked.
	Tick time.Duration
	Now  func() time.Time
}

// Service wakes every tick and, while holding the lock, runs each job whose
// cadence has elapsed. Jobs run in entry order and a failing job does not stop
// the ones after it.
type Service struct {
	logg    *logger.Logger
	lock    Lock
	metrics *metrics.CronJobMetrics
	tick    time.Duration
	now     func() time.Time

	entries []Entry
	nextRun map[string]time.Time
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Logger == nil {
		return nil, errors.New("logger required")
	}
	if params.Lock == nil {
		return nil, errors.New("lock required")
	}
	s := &Service{
		logg:    params.Logger,
		lock:    params.Lock,
		metrics: params.Metrics,
		tick:    params.Tick,
		now:     params.Now,
		nextRun: map[string]time.Time{},
	}
	if s.tick <= 0 {
		s.tick = defaultTick
	}
	if s.now == nil {
		s.now = time.Now
	}
	for _, e := range params.Entries {
		if e.Job == nil {
			continue
		}
		if _, dup := s.nextRun[e.Job.Name()]; dup {
			return nil, errors.New("duplicate cron job " + e.Job.Name())
		}
		s.nextRun[e.Job.Name()] = time.Time{}
		s.entries = append(s.entries, e)
	}
	return s, nil
}

// Jobs lists scheduled job names in run order.
func (s *Service) Jobs() []string {
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.Job.Name()
	}
	return names
}

// Run ticks until ctx is done. The first tick happens immediately.
func (s *Service) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	for {
		s.tickOnce(ctx)
		select {
		case <-ctx.Done():
			s.logg.Info(ctx, "cron.stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *Service) tickOnce(ctx context.Context) {
	due := s.due(s.now())
	if len(due) == 0 {
		return
	}
	release, ok, err := s.lock.TryAcquire(ctx)
	if err != nil {
		s.logg.Error(ctx, "cron.lock_failed", err)
		return
	}
	if !ok {
		s.logg.Debug(ctx, "cron.lock_held_elsewhere")
		return
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			s.logg.Error(ctx, "cron.lock_release_failed", err)
		}
	}()

	for _, e := range due {
		if ctx.Err() != nil {
			return
		}
		s.run(ctx, e.Job)
		s.nextRun[e.Job.Name()] = s.now().Add(e.Every)
	}
}

func (s *Service) due(now time.Time) []Entry {
	var out []Entry
	for _, e := range s.entries {
		if !now.Before(s.nextRun[e.Job.Name()]) {
			out = append(out, e)
		}
	}
	return out
}

func (s *Service) run(ctx context.Context, job Job) {
	name := job.Name()
	ctx = s.logg.WithField(ctx, "job", name)
	started := time.Now()
	err := job.Run(ctx)
	elapsed := time.Since(started)

	s.metrics.JobFinished(name, elapsed, err)
	ctx = s.logg.WithField(ctx, "duration_ms", elapsed.Milliseconds())
	if err != nil {
		s.logg.Error(ctx, "cron.job_failed", err)
		return
	}
	s.logg.Info(ctx, "cron.job_complete")
}
