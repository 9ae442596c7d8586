package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"genetic-route-service/internal/api/dto"
	"genetic-route-service/internal/domain"
	"genetic-route-service/internal/services"
	"io"
	"log"
	"math"
	"net/http"
	"strings"
	"time"
)

// Limits bound the work a single request may ask for.
type Limits struct {
	MaxCities int
	// Used when the request sets no budget at all.
	DefaultTimeLimit time.Duration
	// Upper bound for any requested time limit; every run is capped by it.
	MaxTimeLimit time.Duration
}

func DefaultLimits() Limits {
	return Limits{
		MaxCities:        500,
		DefaultTimeLimit: 5 * time.Second,
		MaxTimeLimit:     60 * time.Second,
	}
}

type SolveHandler struct {
	Solver *services.Solver
	Limits Limits
}

// Solve evolves a closed route over the cities in the request body.
// The run ends at the first budget reached or when the client goes away.
func (h *SolveHandler) Solve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.SolveRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	svcReq, err := h.toServiceRequest(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := h.Solver.Solve(r.Context(), svcReq)
	if err != nil {
		if isClientError(err) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("solve failed: source=%s err=%v", svcReq.Source, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.SolveResponse{
		Name:        svcReq.Source,
		Metric:      plan.Metric,
		Distance:    plan.Distance,
		Baseline:    plan.Baseline,
		Fitness:     plan.Fitness,
		Generations: plan.Generations,
		ElapsedMs:   plan.Elapsed.Milliseconds(),
		StopReason:  plan.StopReason,
		Route:       make([]dto.RouteStopResponse, 0, len(plan.Order)),
	}
	for _, i := range plan.Order {
		c := svcReq.Cities[i]
		res.Route = append(res.Route, dto.RouteStopResponse{Index: i, Name: c.Name, Lat: c.Lat, Lon: c.Lon})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// toServiceRequest applies defaults and limits. Values out of range are
// rejected rather than clamped.
func (h *SolveHandler) toServiceRequest(req dto.SolveRequest) (services.SolveRequest, error) {
	if len(req.Cities) > h.Limits.MaxCities {
		return services.SolveRequest{}, fmt.Errorf("at most %d cities are allowed", h.Limits.MaxCities)
	}

	cities := make([]domain.City, 0, len(req.Cities))
	for i, c := range req.Cities {
		if math.Abs(c.Lat) > 90 || math.Abs(c.Lon) > 180 {
			return services.SolveRequest{}, fmt.Errorf("city %d: coordinates out of range", i)
		}
		name := strings.TrimSpace(c.Name)
		if name == "" {
			name = fmt.Sprintf("city-%d", i)
		}
		cities = append(cities, domain.City{Name: name, Coordinates: domain.Coordinates{Lat: c.Lat, Lon: c.Lon}})
	}

	params := domain.DefaultParams()
	if req.PopSize != nil {
		params.PopSize = *req.PopSize
	}
	if req.MutationPercent != nil {
		params.MutationRate = *req.MutationPercent / 100
	}
	if req.Elitism != nil {
		params.Elitism = *req.Elitism
	}

	if req.TimeLimitMs < 0 {
		return services.SolveRequest{}, errors.New("time_limit_ms must not be negative")
	}
	// Checked in milliseconds so large values cannot wrap on conversion.
	if maxMs := h.Limits.MaxTimeLimit.Milliseconds(); req.TimeLimitMs > maxMs {
		return services.SolveRequest{}, fmt.Errorf("time_limit_ms must not exceed %d", maxMs)
	}
	budgets := services.Budgets{
		TimeLimit:      time.Duration(req.TimeLimitMs) * time.Millisecond,
		MaxGenerations: req.Generations,
		TargetDistance: req.TargetDistance,
	}
	if budgets.TimeLimit == 0 {
		budgets.TimeLimit = h.Limits.DefaultTimeLimit
		if budgets.MaxGenerations > 0 || budgets.TargetDistance > 0 {
			budgets.TimeLimit = h.Limits.MaxTimeLimit
		}
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "api"
	}

	return services.SolveRequest{
		Source:  name,
		Cities:  cities,
		Metric:  strings.ToLower(strings.TrimSpace(req.Metric)),
		Params:  params,
		Budgets: budgets,
		Seed:    req.Seed,
	}, nil
}

func isClientError(err error) bool {
	return errors.Is(err, domain.ErrInvalidParams) ||
		errors.Is(err, domain.ErrTooFewPoints) ||
		errors.Is(err, domain.ErrDuplicatePoint) ||
		errors.Is(err, services.ErrUnknownMetric) ||
		errors.Is(err, services.ErrMetricUnavailable) ||
		errors.Is(err, services.ErrZeroLengthRoute) ||
		errors.Is(err, services.ErrInvalidBudget)
}
