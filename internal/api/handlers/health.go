package handlers

import (
	"net/http"
	"time"
)

// HealthHandler reports liveness and which optional features are wired.
type HealthHandler struct {
	RoadMetric bool
	Started    time.Time
}

type healthResponse struct {
	Status     string `json:"status"`
	RoadMetric bool   `json:"road_metric"`
	UptimeSec  int64  `json:"uptime_sec"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, r, http.StatusOK, healthResponse{
		Status:     "ok",
		RoadMetric: h.RoadMetric,
		UptimeSec:  int64(time.Since(h.Started).Seconds()),
	})
}
