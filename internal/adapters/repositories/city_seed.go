package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"genetic-route-service/internal/domain"
	"strings"
)

// Replace the postgres city dataset named dataset with cities, keeping their order.
func SeedCities(ctx context.Context, db *sql.DB, dataset string, cities []domain.City) error {
	if db == nil {
		return errors.New("seed cities: DB is nil")
	}

	dataset = strings.TrimSpace(dataset)
	if dataset == "" {
		return errors.New("seed cities: dataset must not be empty")
	}

	for i, c := range cities {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("seed cities: item at index %d: name cannot be empty", i+1)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed cities: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cities WHERE dataset = $1;`, dataset); err != nil {
		return fmt.Errorf("seed cities: clear dataset %q: %w", dataset, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO cities (dataset, position, name, lat, lon)
	VALUES ($1, $2, $3, $4, $5);
	`)
	if err != nil {
		return fmt.Errorf("seed cities: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range cities {
		if _, err := stmt.ExecContext(ctx, dataset, i, strings.TrimSpace(c.Name), c.Lat, c.Lon); err != nil {
			return fmt.Errorf("seed cities: insert position=%d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed cities: commit tx: %w", err)
	}

	return nil
}
