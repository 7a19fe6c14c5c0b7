package staticmap

import "strings"

// MapStyle selects the rendering style of the map image.
type MapStyle string

const (
	StyleRoadmap   MapStyle = "roadmap"
	StyleSatellite MapStyle = "satellite"
	StyleHybrid    MapStyle = "hybrid"
	StyleTerrain   MapStyle = "terrain"
)

// ParseStyle maps a style name to a MapStyle. Unknown names fall back to
// roadmap, matching the builder's default.
func ParseStyle(s string) MapStyle {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "satellite":
		return StyleSatellite
	case "hybrid":
		return StyleHybrid
	case "terrain":
		return StyleTerrain
	default:
		return StyleRoadmap
	}
}
