package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
)

func newTestTimelineHandler(t *testing.T) *TimelineHandler {
	t.Helper()
	store := newTestStore(t, repository.NewMemoryBackend(), nil)
	return NewTimelineHandler(service.NewTimelineService(store))
}

func TestTimelineHandler_ListSortedByYear(t *testing.T) {
	h := newTestTimelineHandler(t)
	for _, body := range []string{
		`{"date":"2019 - 2021","title":"Junior"}`,
		`{"date":"March 2023","title":"Senior"}`,
		`{"date":"Someday","title":"Undated"}`,
	} {
		rec := httptest.NewRecorder()
		h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/timeline", strings.NewReader(body)))
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %s: expected 201, got %d", body, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/timeline", nil))

	var events []model.TimelineEvent
	if err := json.Unmarshal(rec.Body.Bytes(), &events); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var titles []string
	for _, e := range events {
		titles = append(titles, e.Title)
	}
	if strings.Join(titles, ",") != "Undated,Senior,Junior" {
		t.Errorf("unexpected order: %v", titles)
	}
	if rec.Header().Get("ETag") == "" {
		t.Error("expected ETag")
	}
}

func TestTimelineHandler_Create_TitleRequired(t *testing.T) {
	h := newTestTimelineHandler(t)
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/timeline", strings.NewReader(`{"date":"2020"}`)))

	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != "title_required" {
		t.Errorf("expected 400 title_required, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestTimelineHandler_Update_NotFound(t *testing.T) {
	h := newTestTimelineHandler(t)
	rec := httptest.NewRecorder()
	h.Update(rec, httptest.NewRequest(http.MethodPut, "/api/timeline", strings.NewReader(`{"id":42,"title":"x"}`)))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestTimelineHandler_Replace_DuplicateID(t *testing.T) {
	h := newTestTimelineHandler(t)
	rec := httptest.NewRecorder()
	body := `[{"id":1,"title":"a"},{"id":1,"title":"b"}]`
	h.Replace(rec, httptest.NewRequest(http.MethodPut, "/api/timeline/collection", strings.NewReader(body)))

	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != "duplicate_id" {
		t.Errorf("expected 400 duplicate_id, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestTimelineHandler_Replace_NullKeepsCollection(t *testing.T) {
	h := newTestTimelineHandler(t)
	for _, title := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/timeline", strings.NewReader(`{"title":"`+title+`"}`)))
	}

	rec := httptest.NewRecorder()
	h.Replace(rec, httptest.NewRequest(http.MethodPut, "/api/timeline/collection", strings.NewReader(`null`)))
	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != "invalid_json" {
		t.Fatalf("expected 400 invalid_json, got %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/timeline", nil))
	var events []model.TimelineEvent
	_ = json.Unmarshal(rec.Body.Bytes(), &events)
	if len(events) != 2 {
		t.Errorf("expected collection untouched, got %d events", len(events))
	}
}
