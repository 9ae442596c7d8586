package distance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"genetic-route-service/internal/domain"
	"genetic-route-service/internal/ports"
	"math"
	"net/http"
)

type matrixRequest struct {
	Locations    [][]float64 `json:"locations"`
	Destinations []int       `json:"destinations"`
	Metrics      []string    `json:"metrics"`
	Sources      []int       `json:"sources"`
}

type matrixResponse struct {
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// fetchMatrixRows retrieves distance and duration from every source index to
// every location using the OpenRouteService matrix endpoint. Row k of the
// result belongs to sources[k].
func (o *ORSMatrixProvider) fetchMatrixRows(
	ctx context.Context,
	locations []domain.Coordinates,
	sources []int,
) ([][]ports.DistanceResult, error) {
	if len(sources) == 0 {
		return [][]ports.DistanceResult{}, nil
	}

	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.baseURL, o.profile)

	locs := make([][]float64, 0, len(locations))
	dests := make([]int, 0, len(locations))
	for i, c := range locations {
		locs = append(locs, c.CoordsToList())
		dests = append(dests, i)
	}

	payload, err := json.Marshal(matrixRequest{
		Locations:    locs,
		Destinations: dests,
		Metrics:      []string{"distance", "duration"},
		Sources:      sources,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal matrix request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, fmt.Errorf("matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("decode matrix response: %w", err)
	}

	if len(mr.Distances) != len(sources) || len(mr.Durations) != len(sources) {
		return nil, fmt.Errorf(
			"expected %d source rows; got distances=%d durations=%d",
			len(sources), len(mr.Distances), len(mr.Durations),
		)
	}

	out := make([][]ports.DistanceResult, len(sources))
	for k := range sources {
		rowDistances := mr.Distances[k]
		rowDurations := mr.Durations[k]

		if len(rowDistances) != len(locations) || len(rowDurations) != len(locations) {
			return nil, fmt.Errorf(
				"row %d lengths do not match locations: distances=%d durations=%d locations=%d",
				k, len(rowDistances), len(rowDurations), len(locations),
			)
		}

		row := make([]ports.DistanceResult, len(locations))
		for j := range locations {
			if rowDistances[j] == nil || rowDurations[j] == nil {
				return nil, fmt.Errorf("matrix returned no route from location %d to %d", sources[k], j)
			}

			// ORS returns float metrics; round to nearest integer for domain consistency.
			row[j] = ports.DistanceResult{
				DistanceMeters:  int(math.Round(*rowDistances[j])),
				DurationSeconds: int(math.Round(*rowDurations[j])),
			}
		}
		out[k] = row
	}

	return out, nil
}
