// Package mapview turns the current state of a live, rendered interactive map
// into a static-map URL.
package mapview

import (
	"context"
	"fmt"
	"math"

	"mapsnap/pkg/staticmap"
)

// View is the read surface of a live interactive map. Each accessor is
// asynchronous on the underlying widget, so every read takes a context and can
// fail independently. Behavior when the view is not currently rendered is
// whatever the implementation's accessors do.
type View interface {
	// VisibleMarkers returns the pins currently shown on the map.
	VisibleMarkers(ctx context.Context) ([]staticmap.Marker, error)

	// Center returns the coordinates at the middle of the viewport.
	Center(ctx context.Context) (staticmap.Location, error)

	// ZoomLevel returns the current zoom. Interactive maps zoom continuously,
	// so the value is fractional.
	ZoomLevel(ctx context.Context) (float64, error)
}

// Snapshotter builds static-map URLs from live views.
type Snapshotter struct {
	provider *staticmap.Provider
}

// NewSnapshotter returns a Snapshotter delegating to the given provider.
func NewSnapshotter(p *staticmap.Provider) *Snapshotter {
	return &Snapshotter{provider: p}
}

// URLFromView reads the view's visible markers, center, and zoom, in that
// order, and builds a static-map URL from them. The three reads are sequential
// and not atomic: the view can move between reads, and the returned URL
// reflects whatever each accessor observed. Width, height, and style are taken
// from opts; any markers, center, or zoom already set there are overwritten.
func (s *Snapshotter) URLFromView(ctx context.Context, v View, opts staticmap.Options) (string, error) {
	markers, err := v.VisibleMarkers(ctx)
	if err != nil {
		return "", fmt.Errorf("read visible markers: %w", err)
	}
	center, err := v.Center(ctx)
	if err != nil {
		return "", fmt.Errorf("read center: %w", err)
	}
	zoom, err := v.ZoomLevel(ctx)
	if err != nil {
		return "", fmt.Errorf("read zoom level: %w", err)
	}

	opts.Markers = markers
	opts.Center = &center
	opts.Zoom = staticmap.Int(int(math.Round(zoom)))
	return s.provider.URL(opts), nil
}
