package ports

import (
	"context"
	"genetic-route-service/internal/domain"
)

// Receives progress of a running evolution. Implementations must not block
// for long; the evolution loop calls Report synchronously.
type ProgressReporter interface {
	Report(ctx context.Context, s domain.Snapshot)
	Finish(ctx context.Context, plan domain.RoutePlan)
}
