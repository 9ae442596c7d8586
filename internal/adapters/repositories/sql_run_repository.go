package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"genetic-route-service/internal/domain"
	"genetic-route-service/internal/platform/obs"
)

// SQLRunRepository is a postgres-backed implementation of the RunRepository port.
type SQLRunRepository struct{ DB *sql.DB }

func NewSQLRunRepository(db *sql.DB) *SQLRunRepository {
	return &SQLRunRepository{DB: db}
}

// Store a finished run and return its id.
func (s *SQLRunRepository) SaveRun(ctx context.Context, run domain.Run) (_ int64, err error) {
	defer obs.Time(ctx, "runs.sql.SaveRun")(&err)

	if s.DB == nil {
		return 0, errors.New("sql run repository: DB is nil")
	}

	q := `
	INSERT INTO runs (
		source, metric, city_count, pop_size, mutation_rate, elitism,
		distance, generations, elapsed_ms, stop_reason, route, created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	RETURNING run_id;
	`

	var id int64
	err = s.DB.QueryRowContext(ctx, q,
		run.Source,
		run.Metric,
		run.CityCount,
		run.Params.PopSize,
		run.Params.MutationRate,
		run.Params.Elitism,
		run.Distance,
		run.Generations,
		run.ElapsedMs,
		run.StopReason,
		encodeOrder(run.Order),
		run.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("save run: insert source=%q: %w", run.Source, err)
	}

	return id, nil
}

// Return the most recent runs, newest first.
func (s *SQLRunRepository) ListRuns(ctx context.Context, limit int) (_ []domain.Run, err error) {
	defer obs.Time(ctx, "runs.sql.ListRuns")(&err)

	if s.DB == nil {
		return nil, errors.New("sql run repository: DB is nil")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("list runs: limit %d must be positive", limit)
	}

	q := `
	SELECT run_id, source, metric, city_count, pop_size, mutation_rate, elitism,
		distance, generations, elapsed_ms, stop_reason, route, created_at
	FROM runs
	ORDER BY created_at DESC, run_id DESC
	LIMIT $1;
	`
	rows, err := s.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: query runs table: %w", err)
	}
	defer rows.Close()

	runs := make([]domain.Run, 0, limit)
	for rows.Next() {
		var (
			r     domain.Run
			route string
		)
		err := rows.Scan(
			&r.RunID, &r.Source, &r.Metric, &r.CityCount,
			&r.Params.PopSize, &r.Params.MutationRate, &r.Params.Elitism,
			&r.Distance, &r.Generations, &r.ElapsedMs, &r.StopReason,
			&route, &r.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("list runs: scan row: %w", err)
		}

		if r.Order, err = decodeOrder(route); err != nil {
			return nil, fmt.Errorf("list runs: run_id=%d: %w", r.RunID, err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: row iteration: %w", err)
	}

	return runs, nil
}
