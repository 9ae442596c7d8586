package routes

import (
	"fmt"
	"genetic-route-service/internal/domain"
	"genetic-route-service/internal/ports"
	"os"
	"path/filepath"
	"strings"
)

// Return a writer for format ("csv" or "gpx").
func ForFormat(format string) (ports.RouteWriter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "csv":
		return CSVWriter{}, nil
	case "gpx":
		return GPXWriter{}, nil
	}
	return nil, fmt.Errorf("route writer: unknown format %q", format)
}

// FileName builds "<dir>/<source base>-<distance>km.<ext>".
func FileName(dir, source string, distance float64, ext string) string {
	base := filepath.Base(source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, fmt.Sprintf("%s-%.1fkm.%s", base, distance, ext))
}

// WriteFile writes the route next to dir and returns the file path.
func WriteFile(rw ports.RouteWriter, dir, source string, cities []domain.City, plan domain.RoutePlan) (string, error) {
	path := FileName(dir, source, plan.Distance, rw.Ext())

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("write route file: create %q: %w", path, err)
	}

	if err := rw.WriteRoute(f, cities, plan); err != nil {
		f.Close()
		return "", fmt.Errorf("write route file %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("write route file: close %q: %w", path, err)
	}
	return path, nil
}
