package handler

import (
	"net/http"
	"strings"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/service"
)

// TimelineHandler は経歴タイムラインの HTTP ハンドラ
type TimelineHandler struct {
	timelineService service.TimelineService
}

// NewTimelineHandler は TimelineHandler を生成する
func NewTimelineHandler(timelineService service.TimelineService) *TimelineHandler {
	return &TimelineHandler{timelineService: timelineService}
}

type timelineUpdateRequest struct {
	ID *int64 `json:"id"`
	model.TimelineEventPatch
}

// List は GET /api/timeline を処理する
func (h *TimelineHandler) List(w http.ResponseWriter, r *http.Request) {
	snap, err := h.timelineService.List(r.Context())
	if err != nil {
		writeStoreError(w, r, "list timeline", err)
		return
	}
	setETag(w, snap.Version)
	writeJSON(w, http.StatusOK, snap.Items)
}

// Create は POST /api/timeline を処理する
func (h *TimelineHandler) Create(w http.ResponseWriter, r *http.Request) {
	var e model.TimelineEvent
	if !decodeJSON(w, r, &e) {
		return
	}
	if strings.TrimSpace(e.Title) == "" {
		writeError(w, http.StatusBadRequest, "title_required")
		return
	}
	e.ID = 0

	created, err := h.timelineService.Create(r.Context(), e)
	if err != nil {
		writeStoreError(w, r, "create timeline event", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update は PUT /api/timeline を処理する
func (h *TimelineHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req timelineUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ID == nil {
		writeError(w, http.StatusBadRequest, "id_required")
		return
	}

	updated, err := h.timelineService.Update(r.Context(), *req.ID, req.TimelineEventPatch)
	if err != nil {
		writeStoreError(w, r, "update timeline event", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete は DELETE /api/timeline?id= を処理する
func (h *TimelineHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := queryID(w, r)
	if !ok {
		return
	}
	if err := h.timelineService.Delete(r.Context(), id); err != nil {
		writeStoreError(w, r, "delete timeline event", err)
		return
	}
	writeOK(w)
}

// Replace は PUT /api/timeline/collection を処理する
func (h *TimelineHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var events []model.TimelineEvent
	if !decodeJSON(w, r, &events) {
		return
	}
	if events == nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	version, err := h.timelineService.Replace(r.Context(), events, ifMatch(r))
	if err != nil {
		writeStoreError(w, r, "replace timeline", err)
		return
	}
	setETag(w, version)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "version": version})
}
