// Package staticmap builds Google Static Maps API query URLs from geographic
// input: a center point and zoom, a set of pin markers, or a set of polylines.
// It is a pure formatter; nothing here performs network I/O.
package staticmap

import (
	"strconv"
	"strings"
)

// BaseURL is the static-map image endpoint all generated URLs point at.
const BaseURL = "https://maps.googleapis.com/maps/api/staticmap"

// Provider builds static-map URLs for a single API key. The key is included
// verbatim in every generated URL.
type Provider struct {
	apiKey  string
	baseURL string
}

// NewProvider returns a Provider for the given API key.
func NewProvider(apiKey string) *Provider {
	return &Provider{apiKey: apiKey, baseURL: BaseURL}
}

// NewProviderForBase returns a Provider that targets an alternate endpoint,
// such as a test server.
func NewProviderForBase(baseURL, apiKey string) *Provider {
	return &Provider{apiKey: apiKey, baseURL: baseURL}
}

// param is one raw query key/value pair. The query is kept as an ordered list
// rather than a url.Values map for two reasons: repeated keys (one path per
// polyline) must survive encoding, and coordinate commas and pipe delimiters
// must stay literal instead of being percent-escaped.
type param struct {
	key, value string
}

func encodeQuery(params []param) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.key)
		b.WriteByte('=')
		b.WriteString(p.value)
	}
	return b.String()
}

// URL builds the static-map URL for the given options.
//
// Markers win over polylines, which win over a plain center/zoom image. When
// markers or polylines are present, center and zoom are omitted so the image
// service fits the view to the overlay. With no overlay and no center, the
// fallback DefaultCenter is used.
func (p *Provider) URL(opts Options) string {
	var paths []string
	if len(opts.Markers) == 0 {
		for _, pl := range opts.Polylines {
			if len(pl.Points) > 0 {
				paths = append(paths, encodePath(pl))
			}
		}
	}

	params := make([]param, 0, 6+len(paths))
	switch {
	case len(opts.Markers) > 0:
		params = append(params, param{"markers", joinMarkers(opts.Markers)})
	case len(paths) > 0:
		// paths appended below, after the shared parameters
	default:
		params = append(params,
			param{"center", opts.center().String()},
			param{"zoom", strconv.Itoa(opts.zoom())},
		)
	}
	params = append(params,
		param{"size", opts.size()},
		param{"maptype", string(opts.style())},
	)
	for _, path := range paths {
		params = append(params, param{"path", path})
	}
	params = append(params, param{"key", p.apiKey})

	return p.baseURL + "?" + encodeQuery(params)
}

// StaticURL returns a URL centered on loc at the given zoom, with default
// size and style.
func (p *Provider) StaticURL(loc Location, zoom int) string {
	return p.URL(Options{Center: &loc, Zoom: Int(zoom)})
}

// MarkersURL returns a URL showing the given pins at the given image size.
// The image service chooses a viewport that contains all of them.
func (p *Provider) MarkersURL(markers []Marker, width, height int) string {
	return p.URL(Options{Markers: markers, Width: Int(width), Height: Int(height)})
}

// PolylinesURL returns a URL drawing the given polylines at the given image
// size, one path parameter per line.
func (p *Provider) PolylinesURL(lines []Polyline, width, height int) string {
	return p.URL(Options{Polylines: lines, Width: Int(width), Height: Int(height)})
}

func joinMarkers(markers []Marker) string {
	parts := make([]string, len(markers))
	for i, m := range markers {
		parts[i] = m.Location.String()
	}
	return strings.Join(parts, "|")
}

func encodePath(pl Polyline) string {
	parts := make([]string, 0, len(pl.Points)+1)
	if c, ok := hexColor(pl.Color); ok {
		parts = append(parts, "color:"+c)
	}
	for _, pt := range pl.Points {
		parts = append(parts, pt.String())
	}
	return strings.Join(parts, "|")
}
