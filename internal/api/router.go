package api

import (
	"genetic-route-service/internal/api/handlers"
	"genetic-route-service/internal/ports"
	"genetic-route-service/internal/services"
	"net/http"
	"time"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(solver *services.Solver, runs ports.RunRepository, limits handlers.Limits) http.Handler {
	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{RoadMetric: solver.Matrix != nil, Started: time.Now()}
	solveHandler := &handlers.SolveHandler{Solver: solver, Limits: limits}
	runsHandler := &handlers.RunsHandler{Repo: runs}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/solve", solveHandler.Solve)
	mux.HandleFunc("/runs", runsHandler.List)

	return loggingMiddleware(mux)
}
