package geonet

import "strings"

// Display tiers derived from quake and volcano readings.

// QuakeSeverity maps magnitude onto the shared severity tiers.
func QuakeSeverity(magnitude float64) string {
	switch {
	case magnitude >= 5:
		return "high"
	case magnitude >= 4:
		return "medium"
	default:
		return "low"
	}
}

// DepthTier buckets hypocentre depth for marker coloring.
func DepthTier(depthKm float64) string {
	switch {
	case depthKm > 100:
		return "deep"
	case depthKm > 50:
		return "mid"
	default:
		return "shallow"
	}
}

var levelText = map[int]string{
	0: "No volcanic unrest",
	1: "Minor volcanic unrest",
	2: "Moderate to heightened volcanic unrest",
	3: "Minor volcanic eruption",
	4: "Moderate volcanic eruption",
	5: "Major volcanic eruption",
}

// AlertLevelText describes a volcanic alert level (0-5).
func AlertLevelText(level int) string {
	if text, ok := levelText[level]; ok {
		return text
	}
	return "Unknown"
}

// Known volcano locations keyed by lowercased GeoNet volcano ID.
// Volcanoes without an entry get no map marker.
type Location struct {
	Lat float64
	Lng float64
}

var volcanoLocations = map[string]Location{
	"ruapehu":              {-39.28, 175.57},
	"tongariro":            {-39.13, 175.64},
	"ngauruhoe":            {-39.16, 175.63},
	"whiteisland":          {-37.52, 177.18},
	"taranaki":             {-39.30, 174.06},
	"taupo":                {-38.82, 175.90},
	"okataina":             {-38.12, 176.50},
	"aucklandvolcanicfield": {-36.90, 174.87},
}

// VolcanoLocation resolves a GeoNet volcano ID to its marker position.
func VolcanoLocation(volcanoID string) (Location, bool) {
	loc, ok := volcanoLocations[strings.ToLower(volcanoID)]
	return loc, ok
}
