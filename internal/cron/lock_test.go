package cron

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type fakeLockStore struct {
	values map[string]string
}

func newFakeLockStore() *fakeLockStore {
	return &fakeLockStore{values: map[string]string{}}
}

func (f *fakeLockStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := f.values[key]; ok {
		return false, nil
	}
	f.values[key] = value.(string)
	return true, nil
}

func (f *fakeLockStore) Get(_ context.Context, key string) (string, error) {
	if v, ok := f.values[key]; ok {
		return v, nil
	}
	return "", redis.Nil
}

func (f *fakeLockStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func TestRedisLock_AcquireAndRelease(t *testing.T) {
	store := newFakeLockStore()
	lock, err := NewRedisLock(store, "ntx:lock:cron", time.Minute)
	if err != nil {
		t.Fatalf("NewRedisLock: %v", err)
	}
	ctx := context.Background()

	ok, err := lock.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if !ok {
		t.Fatal("expected first acquire to succeed")
	}

	second, err := NewRedisLock(store, "ntx:lock:cron", time.Minute)
	if err != nil {
		t.Fatalf("NewRedisLock: %v", err)
	}
	ok, err = second.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if ok {
		t.Fatal("expected second acquire to be blocked")
	}

	if err := lock.Release(ctx); err != nil {
		t.Fatalf("Release: %v", err)
	}
	ok, err = second.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire after release: %v", err)
	}
	if !ok {
		t.Fatal("expected acquire after release to succeed")
	}
}

func TestRedisLock_ReleaseOnlyOwnValue(t *testing.T) {
	store := newFakeLockStore()
	lock, err := NewRedisLock(store, "ntx:lock:cron", time.Minute)
	if err != nil {
		t.Fatalf("NewRedisLock: %v", err)
	}
	ctx := context.Background()

	if ok, _ := lock.Acquire(ctx); !ok {
		t.Fatal("expected acquire to succeed")
	}
	// Another owner took the key over (TTL expiry scenario).
	store.values["ntx:lock:cron"] = "someone-else"

	if err := lock.Release(ctx); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if store.values["ntx:lock:cron"] != "someone-else" {
		t.Fatal("release must not delete a lock owned by another worker")
	}
}

func TestRegistry_SkipsNilJobs(t *testing.T) {
	registry := NewRegistry(nil)
	registry.Register(nil)
	if len(registry.Jobs()) != 0 {
		t.Fatalf("expected empty registry, got %d jobs", len(registry.Jobs()))
	}
}
