package staticmap

import (
	"strconv"
	"strings"
)

// Location is a geographic coordinate pair in decimal degrees.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// String renders the location as "lat,lng" for use in query parameters.
// Integral values keep a trailing ".0", so 38 renders as "38.0".
func (l Location) String() string {
	return formatCoord(l.Latitude) + "," + formatCoord(l.Longitude)
}

func formatCoord(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Marker is a location rendered as a pin on the map image.
type Marker struct {
	Location
}

// NewMarker returns a Marker at the given coordinates.
func NewMarker(lat, lng float64) Marker {
	return Marker{Location{Latitude: lat, Longitude: lng}}
}

// Polyline is a connected line drawn through an ordered set of points.
// Color is optional; both "#RRGGBB" and "#AARRGGBB" are accepted, and the
// alpha channel is dropped when the line is encoded into a URL.
type Polyline struct {
	Points []Location `json:"points"`
	Color  string     `json:"color,omitempty"`
}
