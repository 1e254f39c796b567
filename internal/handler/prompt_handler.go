package handler

import (
	"net/http"
	"strings"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/service"
)

// PromptHandler はプロンプトライブラリの HTTP ハンドラ
type PromptHandler struct {
	promptService service.PromptService
}

// NewPromptHandler は PromptHandler を生成する
func NewPromptHandler(promptService service.PromptService) *PromptHandler {
	return &PromptHandler{promptService: promptService}
}

type promptUpdateRequest struct {
	ID *string `json:"id"`
	model.PromptPatch
}

// List は GET /api/prompts[?category=] を処理する
func (h *PromptHandler) List(w http.ResponseWriter, r *http.Request) {
	snap, err := h.promptService.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeStoreError(w, r, "list prompts", err)
		return
	}
	setETag(w, snap.Version)
	writeJSON(w, http.StatusOK, snap.Items)
}

// Create は POST /api/prompts を処理する
func (h *PromptHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p model.Prompt
	if !decodeJSON(w, r, &p) {
		return
	}
	if strings.TrimSpace(p.Title) == "" {
		writeError(w, http.StatusBadRequest, "title_required")
		return
	}
	if strings.TrimSpace(p.Content) == "" {
		writeError(w, http.StatusBadRequest, "content_required")
		return
	}
	p.ID = ""

	created, err := h.promptService.Create(r.Context(), p)
	if err != nil {
		writeStoreError(w, r, "create prompt", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update は PUT /api/prompts を処理する
func (h *PromptHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req promptUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ID == nil || *req.ID == "" {
		writeError(w, http.StatusBadRequest, "id_required")
		return
	}

	updated, err := h.promptService.Update(r.Context(), *req.ID, req.PromptPatch)
	if err != nil {
		writeStoreError(w, r, "update prompt", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete は DELETE /api/prompts?id= を処理する
func (h *PromptHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id_required")
		return
	}
	if err := h.promptService.Delete(r.Context(), id); err != nil {
		writeStoreError(w, r, "delete prompt", err)
		return
	}
	writeOK(w)
}
