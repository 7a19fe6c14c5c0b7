package models

import (
	"time"

	"github.com/google/uuid"

	"mapsnap/pkg/staticmap"
)

// Snapshot is one static-map request flowing through the pipeline: the
// geographic inputs as received, plus the URL resolved for them once the
// worker has built it.
type Snapshot struct {
	ID        string               `json:"id"`
	Center    *staticmap.Location  `json:"center,omitempty"`
	Zoom      *int                 `json:"zoom,omitempty"`
	Width     *int                 `json:"width,omitempty"`
	Height    *int                 `json:"height,omitempty"`
	Style     string               `json:"style,omitempty"`
	Markers   []staticmap.Marker   `json:"markers,omitempty"`
	Polylines []staticmap.Polyline `json:"polylines,omitempty"`
	URL       string               `json:"url,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
}

// NewSnapshot stamps a request with an ID and creation time.
func NewSnapshot(opts staticmap.Options) Snapshot {
	s := Snapshot{
		ID:        uuid.New().String(),
		Center:    opts.Center,
		Zoom:      opts.Zoom,
		Width:     opts.Width,
		Height:    opts.Height,
		Markers:   opts.Markers,
		Polylines: opts.Polylines,
		CreatedAt: time.Now().UTC(),
	}
	if opts.Style != nil {
		s.Style = string(*opts.Style)
	}
	return s
}

// Options converts the snapshot back into builder options.
func (s Snapshot) Options() staticmap.Options {
	opts := staticmap.Options{
		Center:    s.Center,
		Zoom:      s.Zoom,
		Width:     s.Width,
		Height:    s.Height,
		Markers:   s.Markers,
		Polylines: s.Polylines,
	}
	if s.Style != "" {
		opts.Style = staticmap.Style(staticmap.ParseStyle(s.Style))
	}
	return opts
}
