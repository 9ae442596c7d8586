package ports

import (
	"context"
	"genetic-route-service/internal/domain"
)

// Port: stores finished run summaries.
type RunRepository interface {
	SaveRun(ctx context.Context, run domain.Run) (int64, error)
	// Return the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]domain.Run, error)
}
