package service

import (
	"context"
	"testing"
)

func TestStatsService_RecordVisitAndPageView(t *testing.T) {
	store, _, _ := newTestStore(t)
	svc := NewStatsService(store)

	st, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.TotalVisitors != 0 || st.PageViews != 0 {
		t.Errorf("expected zero stats, got %+v", st)
	}

	svc.RecordVisit(context.Background())
	st, err = svc.RecordVisit(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.TotalVisitors != 2 {
		t.Errorf("expected totalVisitors=2, got %d", st.TotalVisitors)
	}

	st, _ = svc.RecordPageView(context.Background())
	if st.PageViews != 1 || st.TotalVisitors != 2 {
		t.Errorf("unexpected stats: %+v", st)
	}
}

func TestStatsService_ReadsExistingDocument(t *testing.T) {
	store, _, _ := newTestStore(t)
	seed(t, store, StatsDocument, `{"totalVisitors":41,"pageViews":7}`)
	svc := NewStatsService(store)

	st, err := svc.RecordVisit(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.TotalVisitors != 42 || st.PageViews != 7 {
		t.Errorf("unexpected stats: %+v", st)
	}
}
