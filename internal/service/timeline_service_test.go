package service

import (
	"context"
	"testing"

	"github.com/portfolio/backend/internal/model"
)

func TestSortTimeline_ByExtractedYear(t *testing.T) {
	events := []model.TimelineEvent{
		{ID: 1, Date: "2019"},
		{ID: 2, Date: "March 2023"},
		{ID: 3, Date: "no year here"},
	}
	SortTimeline(events)

	want := []string{"no year here", "March 2023", "2019"}
	for i, e := range events {
		if e.Date != want[i] {
			t.Fatalf("expected %v, got %+v", want, events)
		}
	}
}

func TestSortTimeline_UsesFirstMatchAndIsStable(t *testing.T) {
	events := []model.TimelineEvent{
		{ID: 1, Date: "2018 - 2021"},
		{ID: 2, Date: "2020"},
		{ID: 3, Date: "Spring 2018"},
	}
	SortTimeline(events)

	want := []int64{2, 1, 3}
	for i, e := range events {
		if e.ID != want[i] {
			t.Fatalf("expected ids %v, got %+v", want, events)
		}
	}
}

func TestTimelineService_CreateAndList(t *testing.T) {
	store, _, _ := newTestStore(t)
	svc := NewTimelineService(store)

	if _, err := svc.Create(context.Background(), model.TimelineEvent{Date: "2015", Title: "old"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e, err := svc.Create(context.Background(), model.TimelineEvent{Date: "2024", Title: "new"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.ID != 2 {
		t.Errorf("expected id=2, got %d", e.ID)
	}

	snap, _ := svc.List(context.Background())
	if len(snap.Items) != 2 || snap.Items[0].Title != "new" {
		t.Errorf("expected newest first, got %+v", snap.Items)
	}
}

func TestTimelineService_Update(t *testing.T) {
	store, _, _ := newTestStore(t)
	seed(t, store, TimelineCollection, `[{"id":1,"date":"2020","company":"Acme","title":"Dev"}]`)
	svc := NewTimelineService(store)

	company := "Globex"
	e, err := svc.Update(context.Background(), 1, model.TimelineEventPatch{Company: &company})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Company != "Globex" || e.Title != "Dev" {
		t.Errorf("unexpected event: %+v", e)
	}
}
