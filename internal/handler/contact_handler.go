package handler

import (
	"net/http"
	"net/mail"
	"strings"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/service"
)

const maxMessageLength = 5000

// ContactHandler handles contact form submission and admin listing.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// submitRequest is the expected JSON body for POST /api/contact.
type submitRequest struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Submit handles POST /api/contact.
// email and message are required; name is optional; message max 5000 chars.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)

	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email_required")
		return
	}
	if addr, err := mail.ParseAddress(req.Email); err != nil || addr.Address != req.Email {
		writeError(w, http.StatusBadRequest, "invalid_email")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message_required")
		return
	}
	if len([]rune(req.Message)) > maxMessageLength {
		writeError(w, http.StatusBadRequest, "message_too_long")
		return
	}

	_, err := h.contactService.Submit(r.Context(), model.ContactMessage{
		Email:   req.Email,
		Name:    req.Name,
		Message: req.Message,
	})
	if err != nil {
		writeStoreError(w, r, "submit contact", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]bool{"ok": true})
}

// adminListResponse is the JSON response for GET /api/contact.
type adminListResponse struct {
	Messages []model.ContactMessage `json:"messages"`
}

// AdminList handles GET /api/contact (admin only).
// ?status=unread|read filters by status.
func (h *ContactHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	messages, err := h.contactService.List(r.Context())
	if err != nil {
		writeStoreError(w, r, "list contact", err)
		return
	}

	status := r.URL.Query().Get("status")
	filtered := make([]model.ContactMessage, 0, len(messages))
	for _, m := range messages {
		if status == "" || status == "all" || m.Status == status {
			filtered = append(filtered, m)
		}
	}
	writeJSON(w, http.StatusOK, adminListResponse{Messages: filtered})
}

// MarkRead handles PATCH /api/contact/{id}/read (admin only).
func (h *ContactHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r.PathValue("id"))
	if !ok {
		return
	}
	msg, err := h.contactService.MarkRead(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, "mark contact read", err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}
