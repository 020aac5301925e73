package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/astrosocial-backend/pkg/logger"
	"github.com/angelmondragon/astrosocial-backend/pkg/metrics"
)

const (
	JobOTPExpiry              = "otp-expiry-sweep"
	JobPlanSubscriptionExpiry = "plan-subscription-expiry"
	JobNotificationRetention  = "notification-retention"

	defaultReadRetention = 90 * 24 * time.Hour
)

// Job represents a scheduled task that runs inside the cron worker.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

type otpSweeper interface {
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

type subscriptionExpirer interface {
	ExpireDue(ctx context.Context, now time.Time) (int64, error)
}

type readNotificationPurger interface {
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// sweepJob runs one bulk statement against a time boundary and reports the rows it touched.
type sweepJob struct {
	name    string
	sweep   func(ctx context.Context, boundary time.Time) (int64, error)
	age     time.Duration
	logg    *logger.Logger
	metrics *metrics.CronJobMetrics
	now     func() time.Time
}

func (j *sweepJob) Name() string { return j.name }

func (j *sweepJob) Run(ctx context.Context) error {
	boundary := j.now().UTC().Add(-j.age)
	rows, err := j.sweep(ctx, boundary)
	if err != nil {
		return fmt.Errorf("%s: %w", j.name, err)
	}
	j.metrics.AddAffected(j.name, rows)
	j.logg.Info(j.logg.WithFields(ctx, map[string]any{
		"boundary": boundary,
		"rows":     rows,
	}), "cron.sweep_complete")
	return nil
}

func newSweepJob(name string, logg *logger.Logger, m *metrics.CronJobMetrics, age time.Duration, sweep func(context.Context, time.Time) (int64, error)) (*sweepJob, error) {
	if logg == nil {
		return nil, fmt.Errorf("%s: logger required", name)
	}
	return &sweepJob{
		name:    name,
		sweep:   sweep,
		age:     age,
		logg:    logg,
		metrics: m,
		now:     time.Now,
	}, nil
}

// NewOTPExpiryJob deactivates unused codes whose expiry has passed.
func NewOTPExpiryJob(repo otpSweeper, logg *logger.Logger, m *metrics.CronJobMetrics) (Job, error) {
	if repo == nil {
		return nil, fmt.Errorf("otp repository required")
	}
	return newSweepJob(JobOTPExpiry, logg, m, 0, repo.DeactivateExpired)
}

// NewPlanSubscriptionExpiryJob switches off subscriptions past their expiry date.
func NewPlanSubscriptionExpiryJob(expirer subscriptionExpirer, logg *logger.Logger, m *metrics.CronJobMetrics) (Job, error) {
	if expirer == nil {
		return nil, fmt.Errorf("subscription expirer required")
	}
	return newSweepJob(JobPlanSubscriptionExpiry, logg, m, 0, expirer.ExpireDue)
}

// NewNotificationRetentionJob hard-deletes read notifications older than retention.
func NewNotificationRetentionJob(repo readNotificationPurger, retention time.Duration, logg *logger.Logger, m *metrics.CronJobMetrics) (Job, error) {
	if repo == nil {
		return nil, fmt.Errorf("notifications repository required")
	}
	if retention <= 0 {
		retention = defaultReadRetention
	}
	return newSweepJob(JobNotificationRetention, logg, m, retention, repo.DeleteReadBefore)
}
