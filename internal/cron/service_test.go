package cron

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/astrosocial-backend/pkg/logger"
	"github.com/angelmondragon/astrosocial-backend/pkg/metrics"
)

type fakeLock struct {
	heldElsewhere bool
	acquires      int
	releases      int
}

func (f *fakeLock) TryAcquire(context.Context) (ReleaseFunc, bool, error) {
	if f.heldElsewhere {
		return nil, false, nil
	}
	f.acquires++
	return func(context.Context) error {
		f.releases++
		return nil
	}, true, nil
}

type testJob struct {
	name string
	err  error
	runs int
}

func (t *testJob) Name() string { return t.name }

func (t *testJob) Run(context.Context) error {
	t.runs++
	return t.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "cron-test", Output: &bytes.Buffer{}})
}

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func TestServiceRunsEveryJobEvenWhenOneFails(t *testing.T) {
	ok := &testJob{name: "otp-expiry-sweep"}
	failing := &testJob{name: "notification-retention", err: errors.New("boom")}
	lock := &fakeLock{}
	service, err := NewService(ServiceParams{
		Logger:  testLogger(),
		Entries: []Entry{Every(failing, 0), {}, Every(ok, 0)},
		Lock:    lock,
		Metrics: metrics.NewCronJobMetrics(prometheus.NewRegistry()),
	})
	if err != nil {
		t.Fatalf("construct service: %v", err)
	}
	if got := service.Jobs(); len(got) != 2 || got[0] != "notification-retention" {
		t.Fatalf("expected empty entry dropped and order kept, got %v", got)
	}

	service.tickOnce(context.Background())
	if ok.runs != 1 || failing.runs != 1 {
		t.Fatalf("expected both jobs to run once, got %d and %d", ok.runs, failing.runs)
	}
	if lock.acquires != 1 || lock.releases != 1 {
		t.Fatalf("expected one lock round trip, got %d/%d", lock.acquires, lock.releases)
	}
}

func TestServiceHonoursPerJobCadence(t *testing.T) {
	fast := &testJob{name: "otp-expiry-sweep"}
	slow := &testJob{name: "plan-subscription-expiry"}
	clk := &clock{now: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)}
	lock := &fakeLock{}
	service, err := NewService(ServiceParams{
		Logger:  testLogger(),
		Entries: []Entry{Every(fast, time.Minute), Every(slow, time.Hour)},
		Lock:    lock,
		Now:     clk.Now,
	})
	if err != nil {
		t.Fatalf("construct service: %v", err)
	}

	for i := 0; i < 3; i++ {
		service.tickOnce(context.Background())
		clk.now = clk.now.Add(time.Minute)
	}
	if fast.runs != 3 || slow.runs != 1 {
		t.Fatalf("expected 3 fast and 1 slow run, got %d and %d", fast.runs, slow.runs)
	}

	clk.now = clk.now.Add(30 * time.Second)
	service.tickOnce(context.Background())
	if fast.runs != 4 {
		t.Fatalf("expected fast job due again, got %d runs", fast.runs)
	}

	clk.now = clk.now.Add(10 * time.Second)
	acquires := lock.acquires
	service.tickOnce(context.Background())
	if lock.acquires != acquires {
		t.Fatal("lock should not be taken when nothing is due")
	}
}

func TestServiceSkipsTickWhenLockHeldElsewhere(t *testing.T) {
	job := &testJob{name: "otp-expiry-sweep"}
	lock := &fakeLock{heldElsewhere: true}
	service, err := NewService(ServiceParams{
		Logger:  testLogger(),
		Entries: []Entry{Every(job, time.Hour)},
		Lock:    lock,
	})
	if err != nil {
		t.Fatalf("construct service: %v", err)
	}
	service.tickOnce(context.Background())
	if job.runs != 0 {
		t.Fatalf("expected job skipped, ran %d", job.runs)
	}

	lock.heldElsewhere = false
	service.tickOnce(context.Background())
	if job.runs != 1 {
		t.Fatalf("skipped job should still be due, ran %d", job.runs)
	}
}

func TestServiceRunStopsOnCancel(t *testing.T) {
	job := &testJob{name: "otp-expiry-sweep"}
	service, err := NewService(ServiceParams{
		Logger:  testLogger(),
		Entries: []Entry{Every(job, time.Hour)},
		Lock:    &fakeLock{},
		Tick:    time.Hour,
	})
	if err != nil {
		t.Fatalf("construct service: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := service.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if job.runs != 0 {
		t.Fatalf("canceled context should stop before running jobs, ran %d", job.runs)
	}
}

func TestNewServiceValidates(t *testing.T) {
	if _, err := NewService(ServiceParams{Logger: testLogger()}); err == nil {
		t.Fatal("expected error without lock")
	}
	dup := &testJob{name: "otp-expiry-sweep"}
	_, err := NewService(ServiceParams{
		Logger:  testLogger(),
		Lock:    &fakeLock{},
		Entries: []Entry{Every(dup, 0), Every(dup, time.Hour)},
	})
	if err == nil {
		t.Fatal("expected duplicate job error")
	}
}
