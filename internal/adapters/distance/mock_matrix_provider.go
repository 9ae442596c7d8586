package distance

import (
	"context"
	"fmt"
	"genetic-route-service/internal/domain"
	"genetic-route-service/internal/ports"
	"math"
)

// MockMatrixProvider derives road distances from straight-line distances
// scaled by Detour, giving tests a deterministic symmetric matrix
// without network access.
type MockMatrixProvider struct {
	Detour float64
	Calls  int
}

func NewMockMatrixProvider(detour float64) *MockMatrixProvider {
	return &MockMatrixProvider{Detour: detour}
}

func (p *MockMatrixProvider) GetDistance(ctx context.Context, origin, destination domain.Coordinates) (ports.DistanceResult, error) {
	m, err := p.GetMatrix(ctx, []domain.Coordinates{origin, destination})
	if err != nil {
		return ports.DistanceResult{}, err
	}
	return m[0][1], nil
}

func (p *MockMatrixProvider) GetMatrix(ctx context.Context, locations []domain.Coordinates) ([][]ports.DistanceResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("mock matrix: %w", err)
	}
	p.Calls++

	out := make([][]ports.DistanceResult, len(locations))
	for i, a := range locations {
		out[i] = make([]ports.DistanceResult, len(locations))
		for j, b := range locations {
			alat, alon := a.Radians()
			blat, blon := b.Radians()
			km := domain.Haversine(domain.NewPoint(0, "", alat, alon), domain.NewPoint(1, "", blat, blon))
			meters := int(math.Round(km * 1000 * p.Detour))
			// Assume 50 km/h.
			out[i][j] = ports.DistanceResult{DistanceMeters: meters, DurationSeconds: meters * 72 / 1000}
		}
	}
	return out, nil
}
