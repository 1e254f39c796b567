package main

import (
	"context"
	"errors"
	"testing"

	"github.com/portfolio/backend/internal/repository"
)

func TestCopyKeys_CopiesPresentKeys(t *testing.T) {
	ctx := context.Background()
	src := repository.NewFileBackend(t.TempDir())
	dst := repository.NewMemoryBackend()
	if err := src.Set(ctx, "projects", []byte(`[{"id":1}]`)); err != nil {
		t.Fatal(err)
	}
	if err := dst.Set(ctx, "posts", []byte(`[{"id":7}]`)); err != nil {
		t.Fatal(err)
	}

	n, err := copyKeys(ctx, src, dst, []string{"projects", "posts"}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 copied, got %d", n)
	}
	got, _ := dst.Get(ctx, "projects")
	if string(got) != `[{"id":1}]` {
		t.Errorf("unexpected projects: %s", got)
	}
	got, _ = dst.Get(ctx, "posts")
	if string(got) != `[{"id":7}]` {
		t.Errorf("missing source key must not clear destination, got %s", got)
	}
}

func TestCopyKeys_DryRunWritesNothing(t *testing.T) {
	ctx := context.Background()
	src := repository.NewMemoryBackend()
	dst := repository.NewMemoryBackend()
	_ = src.Set(ctx, "stats", []byte(`{"totalVisitors":3}`))

	n, err := copyKeys(ctx, src, dst, []string{"stats"}, true)
	if err != nil || n != 0 {
		t.Fatalf("expected 0 copied and no error, got %d, %v", n, err)
	}
	if _, err := dst.Get(ctx, "stats"); !errors.Is(err, repository.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}

type failingBackend struct{ repository.Backend }

func (failingBackend) Name() string { return "broken" }
func (failingBackend) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func TestCopyKeys_ReadErrorFails(t *testing.T) {
	_, err := copyKeys(context.Background(), failingBackend{}, repository.NewMemoryBackend(), []string{"projects"}, false)
	if err == nil {
		t.Error("expected error")
	}
}
