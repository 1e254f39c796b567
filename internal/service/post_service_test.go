package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
)

func TestPostService_List_SortsByDateDescending(t *testing.T) {
	store, _, _ := newTestStore(t)
	seed(t, store, PostCollection, `[{"id":1,"date":"2023-01-01"},{"id":2,"date":"2024-06-01"},{"id":3,"date":"2022-12-31"}]`)
	svc := NewPostService(store)

	snap, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int64{2, 1, 3}
	for i, p := range snap.Items {
		if p.ID != want[i] {
			t.Fatalf("expected order %v, got %+v", want, snap.Items)
		}
	}
}

func TestPostService_GetBySlug(t *testing.T) {
	store, _, _ := newTestStore(t)
	seed(t, store, PostCollection, `[{"id":1,"slug":"hello","title":"Hello"}]`)
	svc := NewPostService(store)

	p, err := svc.GetBySlug(context.Background(), "hello")
	if err != nil || p.Title != "Hello" {
		t.Errorf("expected Hello, got %+v (err=%v)", p, err)
	}
	if _, err := svc.GetBySlug(context.Background(), "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPostService_Create_DefaultsDateAndRejectsDuplicateSlug(t *testing.T) {
	store, _, _ := newTestStore(t)
	svc := NewPostService(store).(*PostServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 3, 5, 23, 0, 0, 0, time.UTC) }

	p, err := svc.Create(context.Background(), model.Post{Slug: "a", Title: "A"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != 1 || p.Date != "2024-03-05" {
		t.Errorf("unexpected post: %+v", p)
	}

	if _, err := svc.Create(context.Background(), model.Post{Slug: "a", Title: "again"}); !errors.Is(err, ErrSlugTaken) {
		t.Errorf("expected ErrSlugTaken, got %v", err)
	}
}

func TestPostService_Update_PartialMergeAndSlugUniqueness(t *testing.T) {
	store, _, _ := newTestStore(t)
	seed(t, store, PostCollection, `[{"id":1,"slug":"a","title":"A","content":"body"},{"id":2,"slug":"b","title":"B"}]`)
	svc := NewPostService(store)

	title := "A2"
	p, err := svc.Update(context.Background(), 1, model.PostPatch{Title: &title})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Title != "A2" || p.Content != "body" || p.Slug != "a" {
		t.Errorf("unexpected post: %+v", p)
	}

	slug := "b"
	if _, err := svc.Update(context.Background(), 1, model.PostPatch{Slug: &slug}); !errors.Is(err, ErrSlugTaken) {
		t.Errorf("expected ErrSlugTaken, got %v", err)
	}
	// keeping its own slug is not a collision
	own := "a"
	if _, err := svc.Update(context.Background(), 1, model.PostPatch{Slug: &own}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestPostService_Delete_RemovesOnlyTarget(t *testing.T) {
	store, _, _ := newTestStore(t)
	seed(t, store, PostCollection, `[{"id":1,"slug":"a"},{"id":2,"slug":"b"}]`)
	svc := NewPostService(store)

	if err := svc.Delete(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap, _ := svc.List(context.Background())
	if len(snap.Items) != 1 || snap.Items[0].ID != 2 {
		t.Errorf("expected only post 2, got %+v", snap.Items)
	}
	if err := svc.Delete(context.Background(), 1); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
