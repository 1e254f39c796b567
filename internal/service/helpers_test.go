package service

import (
	"context"
	"testing"
	"time"

	"github.com/portfolio/backend/internal/repository"
)

// newTestStore returns a store over an in-memory remote and a temp-dir file tier.
func newTestStore(t *testing.T) (*repository.Store, *repository.MemoryBackend, *repository.FileBackend) {
	t.Helper()
	remote := repository.NewMemoryBackend()
	file := repository.NewFileBackend(t.TempDir())
	store, err := repository.NewStore(remote, file, time.Second)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store, remote, file
}

// seed writes raw JSON to both tiers.
func seed(t *testing.T, store *repository.Store, key, data string) {
	t.Helper()
	if err := store.Save(context.Background(), key, []byte(data)); err != nil {
		t.Fatalf("seed %s: %v", key, err)
	}
}

// fixedClock returns a clock that advances by one millisecond per call.
func fixedClock(start time.Time) func() time.Time {
	cur := start
	return func() time.Time {
		t := cur
		cur = cur.Add(time.Millisecond)
		return t
	}
}
