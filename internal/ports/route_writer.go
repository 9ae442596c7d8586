package ports

import (
	"genetic-route-service/internal/domain"
	"io"
)

// Port: serializes a finished route.
type RouteWriter interface {
	WriteRoute(w io.Writer, cities []domain.City, plan domain.RoutePlan) error
	// File extension without the dot, e.g. "csv".
	Ext() string
}
