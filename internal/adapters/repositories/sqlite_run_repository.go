package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"genetic-route-service/internal/domain"
	"genetic-route-service/internal/platform/obs"
	"time"
)

// SQLite-backed implementation of the RunRepository port.
type SqliteRunRepository struct{ DB *sql.DB }

func NewSqliteRunRepository(db *sql.DB) *SqliteRunRepository {
	return &SqliteRunRepository{DB: db}
}

// Store a finished run and return its id.
func (s *SqliteRunRepository) SaveRun(ctx context.Context, run domain.Run) (_ int64, err error) {
	defer obs.Time(ctx, "runs.sqlite.SaveRun")(&err)

	if s.DB == nil {
		return 0, errors.New("sqlite run repository: DB is nil")
	}

	query := `
	INSERT INTO runs (
		source,
		metric,
		city_count,
		pop_size,
		mutation_rate,
		elitism,
		distance,
		generations,
		elapsed_ms,
		stop_reason,
		route,
		created_at_ms
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	res, err := s.DB.ExecContext(ctx, query,
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
		run.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("save run: insert source=%q: %w", run.Source, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("save run: last insert id: %w", err)
	}
	return id, nil
}

// Return the most recent runs, newest first.
func (s *SqliteRunRepository) ListRuns(ctx context.Context, limit int) (_ []domain.Run, err error) {
	defer obs.Time(ctx, "runs.sqlite.ListRuns")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite run repository: DB is nil")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("list runs: limit %d must be positive", limit)
	}

	query := `
	SELECT
		run_id,
		source,
		metric,
		city_count,
		pop_size,
		mutation_rate,
		elitism,
		distance,
		generations,
		elapsed_ms,
		stop_reason,
		route,
		created_at_ms
	FROM runs
	ORDER BY created_at_ms DESC, run_id DESC
	LIMIT ?;
	`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: query runs table: %w", err)
	}
	defer rows.Close()

	runs := make([]domain.Run, 0, limit)
	for rows.Next() {
		var (
			r         domain.Run
			route     string
			createdMs int64
		)
		err := rows.Scan(
			&r.RunID,
			&r.Source,
			&r.Metric,
			&r.CityCount,
			&r.Params.PopSize,
			&r.Params.MutationRate,
			&r.Params.Elitism,
			&r.Distance,
			&r.Generations,
			&r.ElapsedMs,
			&r.StopReason,
			&route,
			&createdMs,
		)
		if err != nil {
			return nil, fmt.Errorf("list runs: scan row: %w", err)
		}

		if r.Order, err = decodeOrder(route); err != nil {
			return nil, fmt.Errorf("list runs: run_id=%d: %w", r.RunID, err)
		}
		r.CreatedAt = time.UnixMilli(createdMs).UTC()
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: row iteration: %w", err)
	}

	return runs, nil
}
