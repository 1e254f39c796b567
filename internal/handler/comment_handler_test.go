package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/portfolio/backend/internal/model"
)

type mockCommentService struct {
	listFunc   func(ctx context.Context, postID string) ([]model.Comment, error)
	createFunc func(ctx context.Context, c model.Comment) (model.Comment, error)
	deleteFunc func(ctx context.Context, id int64) error
}

func (m *mockCommentService) List(ctx context.Context, postID string) ([]model.Comment, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, postID)
	}
	return []model.Comment{}, nil
}

func (m *mockCommentService) Create(ctx context.Context, c model.Comment) (model.Comment, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, c)
	}
	c.ID = 1
	return c, nil
}

func (m *mockCommentService) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func TestCommentHandler_List_ForwardsPostID(t *testing.T) {
	var got string
	mock := &mockCommentService{
		listFunc: func(ctx context.Context, postID string) ([]model.Comment, error) {
			got = postID
			return []model.Comment{}, nil
		},
	}
	h := NewCommentHandler(mock)

	req := httptest.NewRequest(http.MethodGet, "/api/comments?postId=hello", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if got != "hello" {
		t.Errorf("expected postId=hello, got %q", got)
	}
}

func TestCommentHandler_Create_TrimsInput(t *testing.T) {
	var captured model.Comment
	mock := &mockCommentService{
		createFunc: func(ctx context.Context, c model.Comment) (model.Comment, error) {
			captured = c
			return c, nil
		},
	}
	h := NewCommentHandler(mock)

	req := httptest.NewRequest(http.MethodPost, "/api/comments", strings.NewReader(`{"postId":"hello","nickname":"  alice ","content":" hi "}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.Nickname != "alice" || captured.Content != "hi" {
		t.Errorf("expected trimmed input, got %+v", captured)
	}
}

func TestCommentHandler_Create_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{"missing postId", `{"nickname":"a","content":"c"}`, "post_id_required"},
		{"missing nickname", `{"postId":"p","content":"c"}`, "nickname_required"},
		{"blank content", `{"postId":"p","nickname":"a","content":"   "}`, "content_required"},
		{"long nickname", `{"postId":"p","nickname":"` + strings.Repeat("n", 51) + `","content":"c"}`, "nickname_too_long"},
		{"long content", `{"postId":"p","nickname":"a","content":"` + strings.Repeat("c", 2001) + `"}`, "content_too_long"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewCommentHandler(&mockCommentService{})
			req := httptest.NewRequest(http.MethodPost, "/api/comments", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Create(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if got := errorCode(t, rec); got != tt.code {
				t.Errorf("expected %s, got %s", tt.code, got)
			}
		})
	}
}
