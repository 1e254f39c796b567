package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/portfolio/backend/internal/storage"
)

const maxImageSize = 4 << 20 // 4 MB

var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// UploadHandler は管理画面からの画像アップロードを処理する
type UploadHandler struct {
	storage storage.Storage
}

// NewUploadHandler は UploadHandler を生成する
func NewUploadHandler(store storage.Storage) *UploadHandler {
	return &UploadHandler{storage: store}
}

// Upload は POST /api/upload を処理する（multipart の "file" フィールド）
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize+(64<<10))
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		writeError(w, http.StatusBadRequest, "file_too_large")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file_required")
		return
	}
	defer file.Close()

	if header.Size > maxImageSize {
		writeError(w, http.StatusBadRequest, "file_too_large")
		return
	}

	// 申告された Content-Type ではなく先頭バイトで判定する
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		writeError(w, http.StatusBadRequest, "file_required")
		return
	}
	ct := http.DetectContentType(head[:n])
	ext, ok := allowedContentTypes[ct]
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_content_type")
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		writeError(w, http.StatusInternalServerError, "upload_failed")
		return
	}

	key := uuid.NewString() + ext
	url, err := h.storage.Save(r.Context(), key, file, ct)
	if errors.Is(err, storage.ErrUnavailable) {
		slog.Error("upload storage unavailable", "error", err)
		writeError(w, http.StatusServiceUnavailable, "upload_unavailable")
		return
	}
	if err != nil {
		slog.Error("image upload failed", "error", err, "key", key)
		writeError(w, http.StatusInternalServerError, "upload_failed")
		return
	}

	slog.Info("image uploaded", "key", key, "size", header.Size, "content_type", ct)
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
