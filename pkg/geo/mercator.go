// Package geo holds the small amount of map geometry the rest of the module
// needs: bounding boxes over locations, web-mercator pixel math, and a
// zoom-to-fit search for sizing a viewport around a set of points.
package geo

import (
	"math"

	"mapsnap/pkg/staticmap"
)

const tileSize = 256

// Zoom levels supported by the static-map endpoint.
const (
	MinZoom = 0
	MaxZoom = 21
)

// Bounds is a latitude/longitude bounding box.
type Bounds struct {
	MinLat, MinLon float64
	MaxLat, MaxLon float64
}

// BoundsOf returns the box enclosing all points. ok is false when the slice
// is empty.
func BoundsOf(points []staticmap.Location) (b Bounds, ok bool) {
	if len(points) == 0 {
		return Bounds{}, false
	}
	b = Bounds{
		MinLat: points[0].Latitude, MaxLat: points[0].Latitude,
		MinLon: points[0].Longitude, MaxLon: points[0].Longitude,
	}
	for _, p := range points[1:] {
		b.MinLat = math.Min(b.MinLat, p.Latitude)
		b.MaxLat = math.Max(b.MaxLat, p.Latitude)
		b.MinLon = math.Min(b.MinLon, p.Longitude)
		b.MaxLon = math.Max(b.MaxLon, p.Longitude)
	}
	return b, true
}

// Center returns the midpoint of the box.
func (b Bounds) Center() staticmap.Location {
	return staticmap.Location{
		Latitude:  (b.MinLat + b.MaxLat) / 2,
		Longitude: (b.MinLon + b.MaxLon) / 2,
	}
}

// mercX/mercY: lon/lat in degrees -> normalized mercator [0..1]
func mercX(lon float64) float64 { return (lon + 180.0) / 360.0 }

func mercY(lat float64) float64 {
	lat = math.Min(85.05112878, math.Max(-85.05112878, lat))
	s := math.Sin(lat * math.Pi / 180.0)
	return 0.5 - math.Log((1+s)/(1-s))/(4*math.Pi)
}

func worldSize(zoom int) float64 {
	return float64(tileSize) * math.Exp2(float64(zoom))
}

// pixelSpan returns the width and height of the box in world pixels at zoom.
func pixelSpan(b Bounds, zoom int) (w, h float64) {
	ws := worldSize(zoom)
	w = (mercX(b.MaxLon) - mercX(b.MinLon)) * ws
	// top edge uses MaxLat, mercator y grows southward
	h = (mercY(b.MinLat) - mercY(b.MaxLat)) * ws
	return w, h
}

// FitZoom returns the largest zoom level in [MinZoom, MaxZoom] at which the
// box fits inside a width x height pixel viewport. A degenerate box (single
// point) fits at every level and yields MaxZoom.
func FitZoom(b Bounds, width, height int) int {
	for z := MaxZoom; z > MinZoom; z-- {
		w, h := pixelSpan(b, z)
		if int(math.Ceil(w)) <= width && int(math.Ceil(h)) <= height {
			return z
		}
	}
	return MinZoom
}
