package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
)

const maxBodyBytes = 1 << 20 // 1 MB

// storageExhaustedMessage is shown to the operator when neither tier accepted a write.
const storageExhaustedMessage = "Failed to save: both the key-value store and the data file rejected the write. Check KV connectivity and that DATA_DIR is writable."

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

func writeOK(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// writeStoreError maps service and storage errors to HTTP responses.
func writeStoreError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, repository.ErrConflict):
		writeError(w, http.StatusConflict, "conflict")
	case errors.Is(err, service.ErrSlugTaken):
		writeError(w, http.StatusConflict, "slug_taken")
	case errors.Is(err, repository.ErrDuplicateID):
		writeError(w, http.StatusBadRequest, "duplicate_id")
	case errors.Is(err, repository.ErrStoreUnavailable):
		slog.Error("store unavailable", "op", op, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusServiceUnavailable, "store_unavailable")
	case errors.Is(err, repository.ErrStorageExhausted):
		slog.Error("storage exhausted", "op", op, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "storage_exhausted",
			"message": storageExhaustedMessage,
		})
	default:
		slog.Error("request failed", "op", op, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error")
	}
}

// decodeJSON decodes the request body into v, rejecting unknown fields.
// It writes the 400 response and returns false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case strings.HasPrefix(err.Error(), "json: unknown field"):
			writeError(w, http.StatusBadRequest, "unknown_field")
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "body_too_large")
		default:
			writeError(w, http.StatusBadRequest, "invalid_json")
		}
		return false
	}
	return true
}

// queryID parses the ?id= parameter as an int64.
func queryID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.URL.Query().Get("id")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "id_required")
		return 0, false
	}
	return parseID(w, raw)
}

func parseID(w http.ResponseWriter, raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_id")
		return 0, false
	}
	return id, true
}

// setETag exposes a collection version as a strong ETag.
func setETag(w http.ResponseWriter, version string) {
	if version != "" {
		w.Header().Set("ETag", `"`+version+`"`)
	}
}

// ifMatch returns the version named by the If-Match header, or "" when absent or "*".
func ifMatch(r *http.Request) string {
	v := strings.TrimSpace(r.Header.Get("If-Match"))
	v = strings.TrimPrefix(v, "W/")
	v = strings.Trim(v, `"`)
	if v == "*" {
		return ""
	}
	return v
}
