package routes

import (
	"encoding/csv"
	"fmt"
	"genetic-route-service/internal/domain"
	"io"
	"strconv"
)

// Writes the route as "name,lat,lon" rows in visiting order, starting at the
// first input city. The closing leg back to the start is implied.
type CSVWriter struct{}

func (CSVWriter) Ext() string { return "csv" }

func (CSVWriter) WriteRoute(w io.Writer, cities []domain.City, plan domain.RoutePlan) error {
	cw := csv.NewWriter(w)
	for _, c := range plan.Cities(cities) {
		rec := []string{
			c.Name,
			strconv.FormatFloat(c.Lat, 'f', -1, 64),
			strconv.FormatFloat(c.Lon, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv route: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write csv route: flush: %w", err)
	}
	return nil
}
