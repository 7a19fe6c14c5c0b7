package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"mapsnap/internal/history"
	"mapsnap/internal/models"
	"mapsnap/internal/observability"
	"mapsnap/pkg/fetch"
	"mapsnap/pkg/geo"
	"mapsnap/pkg/kafkaclient"
	"mapsnap/pkg/staticmap"
)

type server struct {
	provider  *staticmap.Provider
	fetcher   *fetch.Fetcher
	collector *observability.Collector
	publisher *kafkaclient.Publisher
	history   *history.Store
}

func (s *server) routes() *gin.Engine {
	r := gin.Default()
	r.Use(s.collector.Middleware())

	r.GET("/v1/staticmap/url", s.handleURL)
	r.GET("/v1/staticmap/region", s.handleRegion)
	r.GET("/v1/staticmap/image", s.handleImage)
	r.POST("/v1/snapshots", s.handleEnqueue)
	r.GET("/v1/snapshots", s.handleRecent)
	r.GET("/metrics", gin.WrapH(s.collector.Handler()))

	return r
}

// handleURL builds a static-map URL straight from query parameters.
func (s *server) handleURL(c *gin.Context) {
	opts := parseOptions(c)
	s.collector.URLBuilt(mode(opts))
	c.JSON(http.StatusOK, gin.H{"url": s.provider.URL(opts)})
}

// handleRegion builds a center/zoom URL sized to enclose the supplied points,
// for callers that want a plain map of an area instead of an overlay.
func (s *server) handleRegion(c *gin.Context) {
	opts := parseOptions(c)

	points := make([]staticmap.Location, 0, len(opts.Markers))
	for _, m := range opts.Markers {
		points = append(points, m.Location)
	}
	for _, pl := range opts.Polylines {
		points = append(points, pl.Points...)
	}
	bounds, ok := geo.BoundsOf(points)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one marker or path point is required"})
		return
	}

	width, height := staticmap.DefaultWidth, staticmap.DefaultHeight
	if opts.Width != nil {
		width = *opts.Width
	}
	if opts.Height != nil {
		height = *opts.Height
	}

	center := bounds.Center()
	region := staticmap.Options{
		Center: &center,
		Zoom:   staticmap.Int(geo.FitZoom(bounds, width, height)),
		Width:  opts.Width,
		Height: opts.Height,
		Style:  opts.Style,
	}
	s.collector.URLBuilt("region")
	c.JSON(http.StatusOK, gin.H{"url": s.provider.URL(region)})
}

// handleImage proxies the generated image back to the caller.
func (s *server) handleImage(c *gin.Context) {
	opts := parseOptions(c)
	url := s.provider.URL(opts)
	s.collector.URLBuilt(mode(opts))

	body, contentType, err := s.fetcher.Get(c.Request.Context(), url)
	if err != nil {
		s.collector.ImageFetched("error")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	s.collector.ImageFetched("ok")
	c.Data(http.StatusOK, contentType, body)
}

// handleEnqueue publishes a snapshot request for the worker to archive.
func (s *server) handleEnqueue(c *gin.Context) {
	if s.publisher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "snapshot queue not configured"})
		return
	}

	var incoming models.Snapshot
	if err := c.ShouldBindJSON(&incoming); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap := models.NewSnapshot(incoming.Options())
	payload, err := json.Marshal(snap)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := s.publisher.Publish(c.Request.Context(), snap.ID, payload); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"id": snap.ID})
}

// handleRecent lists recently archived snapshots.
func (s *server) handleRecent(c *gin.Context) {
	if s.history == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "snapshot history not configured"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	entries, err := s.history.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": entries})
}

// parseOptions reads builder options from query parameters. Malformed values
// are dropped rather than rejected, mirroring the builder's tolerance of
// missing input.
func parseOptions(c *gin.Context) staticmap.Options {
	var opts staticmap.Options

	latStr, lngStr := c.Query("lat"), c.Query("lng")
	if latStr != "" && lngStr != "" {
		if loc, err := parseLocation(latStr + "," + lngStr); err == nil {
			opts.Center = &loc
		}
	}
	if zoom, err := strconv.Atoi(c.Query("zoom")); err == nil {
		opts.Zoom = staticmap.Int(zoom)
	}
	if width, err := strconv.Atoi(c.Query("width")); err == nil {
		opts.Width = staticmap.Int(width)
	}
	if height, err := strconv.Atoi(c.Query("height")); err == nil {
		opts.Height = staticmap.Int(height)
	}
	if style := c.Query("maptype"); style != "" {
		opts.Style = staticmap.Style(staticmap.ParseStyle(style))
	}

	for _, raw := range c.QueryArray("marker") {
		if loc, err := parseLocation(raw); err == nil {
			opts.Markers = append(opts.Markers, staticmap.Marker{Location: loc})
		}
	}
	for _, raw := range c.QueryArray("path") {
		if pl, ok := parsePolyline(raw); ok {
			opts.Polylines = append(opts.Polylines, pl)
		}
	}

	return opts
}

// parseLocation parses "lat,lng".
func parseLocation(s string) (staticmap.Location, error) {
	lat, lng, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return staticmap.Location{}, strconv.ErrSyntax
	}
	latF, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return staticmap.Location{}, err
	}
	lngF, err := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err != nil {
		return staticmap.Location{}, err
	}
	return staticmap.Location{Latitude: latF, Longitude: lngF}, nil
}

// parsePolyline parses "lat,lng|lat,lng|..." with an optional leading
// "#RRGGBB" or "#AARRGGBB" color segment.
func parsePolyline(s string) (staticmap.Polyline, bool) {
	var pl staticmap.Polyline
	for i, seg := range strings.Split(s, "|") {
		if i == 0 && strings.HasPrefix(seg, "#") {
			pl.Color = seg
			continue
		}
		if loc, err := parseLocation(seg); err == nil {
			pl.Points = append(pl.Points, loc)
		}
	}
	return pl, len(pl.Points) > 0
}

func mode(opts staticmap.Options) string {
	switch {
	case len(opts.Markers) > 0:
		return "markers"
	case len(opts.Polylines) > 0:
		return "polylines"
	default:
		return "center"
	}
}
