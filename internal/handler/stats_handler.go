package handler

import (
	"net/http"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/service"
)

// StatsHandler は訪問者統計の HTTP ハンドラ
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler は StatsHandler を生成する
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Get は GET /api/stats を処理する
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	st, err := h.statsService.Get(r.Context())
	if err != nil {
		writeStoreError(w, r, "get stats", err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// Record は POST /api/stats を処理する。?type=pageview でページビュー、それ以外は訪問者数を加算する
func (h *StatsHandler) Record(w http.ResponseWriter, r *http.Request) {
	var (
		st  model.Stats
		err error
	)
	if r.URL.Query().Get("type") == "pageview" {
		st, err = h.statsService.RecordPageView(r.Context())
	} else {
		st, err = h.statsService.RecordVisit(r.Context())
	}
	if err != nil {
		writeStoreError(w, r, "record stats", err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
