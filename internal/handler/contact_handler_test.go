package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
)

// ---------------------------------------------------------------------------
// Mock ContactService
// ---------------------------------------------------------------------------

type mockContactService struct {
	submitFunc   func(ctx context.Context, msg model.ContactMessage) (model.ContactMessage, error)
	listFunc     func(ctx context.Context) ([]model.ContactMessage, error)
	markReadFunc func(ctx context.Context, id int64) (model.ContactMessage, error)
}

func (m *mockContactService) Submit(ctx context.Context, msg model.ContactMessage) (model.ContactMessage, error) {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, msg)
	}
	return msg, nil
}

func (m *mockContactService) List(ctx context.Context) ([]model.ContactMessage, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []model.ContactMessage{}, nil
}

func (m *mockContactService) MarkRead(ctx context.Context, id int64) (model.ContactMessage, error) {
	if m.markReadFunc != nil {
		return m.markReadFunc(ctx, id)
	}
	return model.ContactMessage{ID: id, Status: model.ContactStatusRead}, nil
}

// ---------------------------------------------------------------------------
// POST /api/contact tests
// ---------------------------------------------------------------------------

func TestContactHandler_Submit_Success(t *testing.T) {
	var captured model.ContactMessage
	mock := &mockContactService{
		submitFunc: func(ctx context.Context, msg model.ContactMessage) (model.ContactMessage, error) {
			captured = msg
			return msg, nil
		},
	}
	h := NewContactHandler(mock)

	body := `{"email":"test@example.com","name":"Alice","message":"Hello!"}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d; body: %s", rec.Code, rec.Body.String())
	}
	if captured.Email != "test@example.com" {
		t.Errorf("expected email=test@example.com, got %q", captured.Email)
	}
	if captured.Name != "Alice" {
		t.Errorf("expected name=Alice, got %q", captured.Name)
	}
	if captured.Message != "Hello!" {
		t.Errorf("expected message=Hello!, got %q", captured.Message)
	}
}

func TestContactHandler_Submit_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{"bad json", `not json`, "invalid_json"},
		{"missing email", `{"message":"hi"}`, "email_required"},
		{"invalid email", `{"email":"not-an-email","message":"hi"}`, "invalid_email"},
		{"missing message", `{"email":"a@b.com"}`, "message_required"},
		{"message too long", `{"email":"a@b.com","message":"` + strings.Repeat("あ", maxMessageLength+1) + `"}`, "message_too_long"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewContactHandler(&mockContactService{})
			req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Submit(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if got := errorCode(t, rec); got != tt.code {
				t.Errorf("expected %s, got %s", tt.code, got)
			}
		})
	}
}

func TestContactHandler_Submit_MessageAtLimit(t *testing.T) {
	h := NewContactHandler(&mockContactService{})
	body := `{"email":"a@b.com","message":"` + strings.Repeat("あ", maxMessageLength) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201 at the limit, got %d", rec.Code)
	}
}

// ---------------------------------------------------------------------------
// Admin tests
// ---------------------------------------------------------------------------

func TestContactHandler_AdminList_FiltersByStatus(t *testing.T) {
	mock := &mockContactService{
		listFunc: func(ctx context.Context) ([]model.ContactMessage, error) {
			return []model.ContactMessage{
				{ID: 1, Status: model.ContactStatusUnread},
				{ID: 2, Status: model.ContactStatusRead},
			}, nil
		},
	}
	h := NewContactHandler(mock)

	req := httptest.NewRequest(http.MethodGet, "/api/contact?status=unread", nil)
	rec := httptest.NewRecorder()
	h.AdminList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp adminListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Messages) != 1 || resp.Messages[0].ID != 1 {
		t.Errorf("expected only unread message, got %+v", resp.Messages)
	}
}

func TestContactHandler_AdminList_EmptyIsArray(t *testing.T) {
	h := NewContactHandler(&mockContactService{})

	req := httptest.NewRequest(http.MethodGet, "/api/contact", nil)
	rec := httptest.NewRecorder()
	h.AdminList(rec, req)

	if !strings.Contains(rec.Body.String(), `"messages":[]`) {
		t.Errorf("expected empty messages array, got %s", rec.Body.String())
	}
}

func TestContactHandler_MarkRead(t *testing.T) {
	mock := &mockContactService{
		markReadFunc: func(ctx context.Context, id int64) (model.ContactMessage, error) {
			if id != 5 {
				return model.ContactMessage{}, repository.ErrNotFound
			}
			return model.ContactMessage{ID: 5, Status: model.ContactStatusRead}, nil
		},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /api/contact/{id}/read", NewContactHandler(mock).MarkRead)

	tests := []struct {
		path   string
		status int
	}{
		{"/api/contact/5/read", http.StatusOK},
		{"/api/contact/6/read", http.StatusNotFound},
		{"/api/contact/abc/read", http.StatusBadRequest},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPatch, tt.path, nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		if rec.Code != tt.status {
			t.Errorf("%s: expected %d, got %d", tt.path, tt.status, rec.Code)
		}
	}
}
