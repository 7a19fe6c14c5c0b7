package staticmap

import "fmt"

// Defaults applied when the corresponding Options field is nil.
const (
	DefaultWidth  = 600
	DefaultHeight = 400
	DefaultZoom   = 4
)

// DefaultStyle is the rendering style used when none is requested.
const DefaultStyle = StyleRoadmap

// DefaultCenter is the fallback center used when neither a center nor any
// markers or polylines are supplied.
var DefaultCenter = Location{Latitude: 45.5231233, Longitude: -122.6733130}

// Options configures a single static-map URL. Nil fields resolve to the
// package defaults. Markers take precedence over Polylines, which take
// precedence over Center/Zoom; no field is validated, malformed values pass
// through into the URL unchanged.
type Options struct {
	Center    *Location
	Zoom      *int
	Width     *int
	Height    *int
	Style     *MapStyle
	Markers   []Marker
	Polylines []Polyline
}

func (o Options) center() Location {
	if o.Center != nil {
		return *o.Center
	}
	return DefaultCenter
}

func (o Options) zoom() int {
	if o.Zoom != nil {
		return *o.Zoom
	}
	return DefaultZoom
}

func (o Options) size() string {
	w, h := DefaultWidth, DefaultHeight
	if o.Width != nil {
		w = *o.Width
	}
	if o.Height != nil {
		h = *o.Height
	}
	return fmt.Sprintf("%dx%d", w, h)
}

func (o Options) style() MapStyle {
	if o.Style != nil {
		return *o.Style
	}
	return DefaultStyle
}

// Int returns a pointer to v, for building Options literals.
func Int(v int) *int { return &v }

// Style returns a pointer to v, for building Options literals.
func Style(v MapStyle) *MapStyle { return &v }

// Loc returns a pointer to a Location, for building Options literals.
func Loc(lat, lng float64) *Location {
	return &Location{Latitude: lat, Longitude: lng}
}
