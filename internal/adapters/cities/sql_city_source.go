package cities

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"genetic-route-service/internal/domain"
	"genetic-route-service/internal/platform/obs"
)

// Reads a city dataset seeded into postgres by dbtool.
type SQLCitySource struct {
	DB      *sql.DB
	Dataset string
}

func NewSQLCitySource(db *sql.DB, dataset string) *SQLCitySource {
	return &SQLCitySource{DB: db, Dataset: dataset}
}

func (s *SQLCitySource) Name() string { return s.Dataset }

// Return the dataset's cities ordered by their seeded position.
func (s *SQLCitySource) LoadCities(ctx context.Context) (_ []domain.City, err error) {
	defer obs.Time(ctx, "cities.sql.LoadCities")(&err)

	if s.DB == nil {
		return nil, errors.New("sql city source: DB is nil")
	}

	q := `
	SELECT name, lat, lon
	FROM cities
	WHERE dataset = $1
	ORDER BY position;
	`
	rows, err := s.DB.QueryContext(ctx, q, s.Dataset)
	if err != nil {
		return nil, fmt.Errorf("load sql cities: query dataset %q: %w", s.Dataset, err)
	}
	defer rows.Close()

	cities := make([]domain.City, 0, 64)
	for rows.Next() {
		var c domain.City
		if err := rows.Scan(&c.Name, &c.Lat, &c.Lon); err != nil {
			return nil, fmt.Errorf("load sql cities: scan row: %w", err)
		}
		cities = append(cities, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load sql cities: row iteration: %w", err)
	}

	if len(cities) == 0 {
		return nil, fmt.Errorf("load sql cities: dataset %q is empty or missing", s.Dataset)
	}
	return cities, nil
}
