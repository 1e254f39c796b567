package handler

import (
	"net/http"
	"strings"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/service"
)

const (
	maxNicknameLength       = 50
	maxCommentContentLength = 2000
)

// CommentHandler はコメントの HTTP ハンドラ
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler は CommentHandler を生成する
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

type commentRequest struct {
	PostID   string `json:"postId"`
	Nickname string `json:"nickname"`
	Content  string `json:"content"`
}

// List は GET /api/comments[?postId=] を処理する
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	comments, err := h.commentService.List(r.Context(), r.URL.Query().Get("postId"))
	if err != nil {
		writeStoreError(w, r, "list comments", err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

// Create は POST /api/comments を処理する（認証不要）
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.PostID = strings.TrimSpace(req.PostID)
	req.Nickname = strings.TrimSpace(req.Nickname)
	req.Content = strings.TrimSpace(req.Content)

	switch {
	case req.PostID == "":
		writeError(w, http.StatusBadRequest, "post_id_required")
		return
	case req.Nickname == "":
		writeError(w, http.StatusBadRequest, "nickname_required")
		return
	case req.Content == "":
		writeError(w, http.StatusBadRequest, "content_required")
		return
	case len([]rune(req.Nickname)) > maxNicknameLength:
		writeError(w, http.StatusBadRequest, "nickname_too_long")
		return
	case len([]rune(req.Content)) > maxCommentContentLength:
		writeError(w, http.StatusBadRequest, "content_too_long")
		return
	}

	created, err := h.commentService.Create(r.Context(), model.Comment{
		PostID:   req.PostID,
		Nickname: req.Nickname,
		Content:  req.Content,
	})
	if err != nil {
		writeStoreError(w, r, "create comment", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Delete は DELETE /api/comments?id= を処理する（管理者のみ）
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := queryID(w, r)
	if !ok {
		return
	}
	if err := h.commentService.Delete(r.Context(), id); err != nil {
		writeStoreError(w, r, "delete comment", err)
		return
	}
	writeOK(w)
}
