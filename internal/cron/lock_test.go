package cron

import (
	"context"
	"testing"
	"time"
)

type memoryLockStore struct {
	values map[string]string
}

func (m *memoryLockStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := m.values[key]; ok {
		return false, nil
	}
	m.values[key] = value.(string)
	return true, nil
}

func (m *memoryLockStore) DelIfEquals(_ context.Context, key, value string) (bool, error) {
	if m.values[key] != value {
		return false, nil
	}
	delete(m.values, key)
	return true, nil
}

func TestRedisLockIsExclusive(t *testing.T) {
	store := &memoryLockStore{values: map[string]string{}}
	ctx := context.Background()
	lock, err := NewRedisLock(store, "astro:lock:cron-worker", 0)
	if err != nil {
		t.Fatalf("new lock: %v", err)
	}

	release, ok, err := lock.TryAcquire(ctx)
	if err != nil || !ok {
		t.Fatalf("expected first acquire, got %v %v", ok, err)
	}
	if _, ok, _ := lock.TryAcquire(ctx); ok {
		t.Fatal("expected second acquire to fail while held")
	}
	if err := release(ctx); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, ok, _ := lock.TryAcquire(ctx); !ok {
		t.Fatal("expected acquire after release")
	}
}

func TestRedisLockReleaseLeavesForeignLease(t *testing.T) {
	store := &memoryLockStore{values: map[string]string{}}
	ctx := context.Background()
	lock, _ := NewRedisLock(store, "astro:lock:cron-worker", time.Minute)

	release, ok, err := lock.TryAcquire(ctx)
	if err != nil || !ok {
		t.Fatalf("acquire: %v %v", ok, err)
	}
	// lease expired and another worker took it
	store.values["astro:lock:cron-worker"] = "other-worker"

	if err := release(ctx); err != nil {
		t.Fatalf("release: %v", err)
	}
	if store.values["astro:lock:cron-worker"] != "other-worker" {
		t.Fatal("release must not drop another worker's lease")
	}

	delete(store.values, "astro:lock:cron-worker")
	if err := release(ctx); err != nil {
		t.Fatalf("release of vanished key should be a no-op: %v", err)
	}
}

func TestNewRedisLockValidates(t *testing.T) {
	if _, err := NewRedisLock(nil, "k", time.Minute); err == nil {
		t.Fatal("expected error for nil client")
	}
	if _, err := NewRedisLock(&memoryLockStore{}, "", time.Minute); err == nil {
		t.Fatal("expected error for empty key")
	}
}
