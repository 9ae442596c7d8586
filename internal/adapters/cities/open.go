package cities

import (
	"database/sql"
	"errors"
	"fmt"
	"genetic-route-service/internal/ports"
	"path/filepath"
	"strings"
)

// Prefix selecting a postgres dataset instead of a file, e.g. "db:berlin".
const DatasetPrefix = "db:"

// Open picks a city source for a CLI argument: "db:<dataset>" reads postgres,
// ".json" files are JSON and every other file is CSV.
func Open(arg string, db *sql.DB) (ports.CitySource, error) {
	if dataset, ok := strings.CutPrefix(arg, DatasetPrefix); ok {
		if db == nil {
			return nil, fmt.Errorf("open cities %q: dataset input requires DATABASE_URL", arg)
		}
		if strings.TrimSpace(dataset) == "" {
			return nil, errors.New("open cities: dataset name must not be empty")
		}
		return NewSQLCitySource(db, dataset), nil
	}

	if strings.EqualFold(filepath.Ext(arg), ".json") {
		return NewJSONCitySource(arg), nil
	}
	return NewCSVCitySource(arg), nil
}
