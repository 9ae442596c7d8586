package handlers

import (
	"genetic-route-service/internal/api/dto"
	"genetic-route-service/internal/ports"
	"log"
	"net/http"
	"strconv"
)

const (
	defaultRunsLimit = 20
	maxRunsLimit     = 100
)

// RunsHandler exposes read-only access to recorded runs.
type RunsHandler struct {
	Repo ports.RunRepository
}

func (h *RunsHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	limit := defaultRunsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxRunsLimit {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	runs, err := h.Repo.ListRuns(r.Context(), limit)
	if err != nil {
		log.Printf("list runs failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListRunsResponse{Runs: make([]dto.RunResponse, 0, len(runs))}
	for _, run := range runs {
		res.Runs = append(res.Runs, dto.RunResponse{
			RunID:        run.RunID,
			Source:       run.Source,
			Metric:       run.Metric,
			CityCount:    run.CityCount,
			PopSize:      run.Params.PopSize,
			MutationRate: run.Params.MutationRate,
			Elitism:      run.Params.Elitism,
			Distance:     run.Distance,
			Generations:  run.Generations,
			ElapsedMs:    run.ElapsedMs,
			StopReason:   run.StopReason,
			Order:        run.Order,
			CreatedAt:    run.CreatedAt,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
