package handler

import (
	"net/http"
	"strings"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/service"
)

// ProjectHandler はプロジェクト CRUD の HTTP ハンドラ
type ProjectHandler struct {
	projectService service.ProjectService
}

// NewProjectHandler は ProjectHandler を生成する
func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// projectUpdateRequest は PUT /api/projects のボディ（id + 更新するフィールド）
type projectUpdateRequest struct {
	ID *int64 `json:"id"`
	model.ProjectPatch
}

// List は GET /api/projects を処理する（?featured=true で注目プロジェクトのみ）
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	featured := r.URL.Query().Get("featured") == "true"
	snap, err := h.projectService.List(r.Context(), featured)
	if err != nil {
		writeStoreError(w, r, "list projects", err)
		return
	}
	setETag(w, snap.Version)
	writeJSON(w, http.StatusOK, snap.Items)
}

// Create は POST /api/projects を処理する
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p model.Project
	if !decodeJSON(w, r, &p) {
		return
	}
	if strings.TrimSpace(p.Title) == "" {
		writeError(w, http.StatusBadRequest, "title_required")
		return
	}
	p.ID = 0

	created, err := h.projectService.Create(r.Context(), p)
	if err != nil {
		writeStoreError(w, r, "create project", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update は PUT /api/projects を処理する。指定されたフィールドのみ上書きする
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req projectUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ID == nil {
		writeError(w, http.StatusBadRequest, "id_required")
		return
	}

	updated, err := h.projectService.Update(r.Context(), *req.ID, req.ProjectPatch)
	if err != nil {
		writeStoreError(w, r, "update project", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete は DELETE /api/projects?id= を処理する
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := queryID(w, r)
	if !ok {
		return
	}
	if err := h.projectService.Delete(r.Context(), id); err != nil {
		writeStoreError(w, r, "delete project", err)
		return
	}
	writeOK(w)
}

// Get は GET /api/projects/{id} を処理する
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r.PathValue("id"))
	if !ok {
		return
	}
	project, err := h.projectService.GetByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, "get project", err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// Replace は PUT /api/projects/collection を処理する（If-Match で楽観的排他）
func (h *ProjectHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var projects []model.Project
	if !decodeJSON(w, r, &projects) {
		return
	}
	if projects == nil {
		// null で全件削除されないよう配列のみ受け付ける
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	for _, p := range projects {
		if strings.TrimSpace(p.Title) == "" {
			writeError(w, http.StatusBadRequest, "title_required")
			return
		}
	}

	version, err := h.projectService.Replace(r.Context(), projects, ifMatch(r))
	if err != nil {
		writeStoreError(w, r, "replace projects", err)
		return
	}
	setETag(w, version)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "version": version})
}
