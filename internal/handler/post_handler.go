package handler

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/service"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// PostHandler はブログ記事の HTTP ハンドラ
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler は PostHandler を生成する
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

type postUpdateRequest struct {
	ID *int64 `json:"id"`
	model.PostPatch
}

// List は GET /api/posts を処理する（日付の新しい順）
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	snap, err := h.postService.List(r.Context())
	if err != nil {
		writeStoreError(w, r, "list posts", err)
		return
	}
	setETag(w, snap.Version)
	writeJSON(w, http.StatusOK, snap.Items)
}

// Get は GET /api/posts/{slug} を処理する
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.postService.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeStoreError(w, r, "get post", err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Create は POST /api/posts を処理する。slug と title は必須
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p model.Post
	if !decodeJSON(w, r, &p) {
		return
	}
	if p.Slug == "" {
		writeError(w, http.StatusBadRequest, "slug_required")
		return
	}
	if !slugPattern.MatchString(p.Slug) {
		writeError(w, http.StatusBadRequest, "invalid_slug")
		return
	}
	if strings.TrimSpace(p.Title) == "" {
		writeError(w, http.StatusBadRequest, "title_required")
		return
	}
	p.ID = 0

	created, err := h.postService.Create(r.Context(), p)
	if err != nil {
		writeStoreError(w, r, "create post", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update は PUT /api/posts を処理する（部分更新）
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req postUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ID == nil {
		writeError(w, http.StatusBadRequest, "id_required")
		return
	}
	if req.Slug != nil && !slugPattern.MatchString(*req.Slug) {
		writeError(w, http.StatusBadRequest, "invalid_slug")
		return
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		writeError(w, http.StatusBadRequest, "title_required")
		return
	}

	updated, err := h.postService.Update(r.Context(), *req.ID, req.PostPatch)
	if err != nil {
		writeStoreError(w, r, "update post", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete は DELETE /api/posts?id= を処理する
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := queryID(w, r)
	if !ok {
		return
	}
	if err := h.postService.Delete(r.Context(), id); err != nil {
		writeStoreError(w, r, "delete post", err)
		return
	}
	writeOK(w)
}
