package routes

import (
	"encoding/xml"
	"fmt"
	"genetic-route-service/internal/domain"
	"io"
)

type gpxDoc struct {
	XMLName   xml.Name      `xml:"gpx"`
	Version   string        `xml:"version,attr"`
	Creator   string        `xml:"creator,attr"`
	Waypoints []gpxWaypoint `xml:"wpt"`
	Track     gpxTrack      `xml:"trk"`
}

type gpxWaypoint struct {
	Lat  float64 `xml:"lat,attr"`
	Lon  float64 `xml:"lon,attr"`
	Name string  `xml:"name,omitempty"`
}

type gpxTrack struct {
	Name    string     `xml:"name"`
	Segment gpxSegment `xml:"trkseg"`
}

type gpxSegment struct {
	Points []gpxWaypoint `xml:"trkpt"`
}

// Writes all cities as waypoints and the closed route as a single track
// segment that returns to its first point.
type GPXWriter struct {
	// Track name; defaults to "route".
	TrackName string
}

func (GPXWriter) Ext() string { return "gpx" }

func (g GPXWriter) WriteRoute(w io.Writer, cities []domain.City, plan domain.RoutePlan) error {
	name := g.TrackName
	if name == "" {
		name = "route"
	}

	doc := gpxDoc{
		Version:   "1.1",
		Creator:   "genetic-route-service",
		Waypoints: make([]gpxWaypoint, 0, len(cities)),
		Track:     gpxTrack{Name: name},
	}
	for _, c := range cities {
		doc.Waypoints = append(doc.Waypoints, gpxWaypoint{Lat: c.Lat, Lon: c.Lon, Name: c.Name})
	}

	route := plan.Cities(cities)
	if len(route) > 0 {
		route = append(route, route[0])
	}
	pts := make([]gpxWaypoint, 0, len(route))
	for _, c := range route {
		pts = append(pts, gpxWaypoint{Lat: c.Lat, Lon: c.Lon})
	}
	doc.Track.Segment.Points = pts

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write gpx route: header: %w", err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("write gpx route: encode: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("write gpx route: %w", err)
	}
	return nil
}
