package handler

import (
	"context"
	"net/http"
	"time"
)

const healthTimeout = 2 * time.Second

type healthResponse struct {
	Status string            `json:"status"`
	Tiers  map[string]string `json:"tiers"`
}

// Health reports each storage tier. It is healthy while at least one tier answers.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	resp := healthResponse{Status: "ok", Tiers: map[string]string{}}
	healthy := false
	for _, tier := range h.store.Tiers() {
		name := string(tier.Source) + ":" + tier.Backend.Name()
		if err := tier.Backend.Ping(ctx); err != nil {
			resp.Tiers[name] = err.Error()
			continue
		}
		resp.Tiers[name] = "ok"
		healthy = true
	}

	if !healthy {
		resp.Status = "unhealthy"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
