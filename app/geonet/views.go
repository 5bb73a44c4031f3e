package geonet

import (
	"time"
)

// QuakeInfo is a flattened earthquake record ready for presentation:
// coordinates pulled out of the GeoJSON geometry plus derived severity
// and depth tier.
type QuakeInfo struct {
	PublicID  string    `json:"publicId"`
	Time      time.Time `json:"time"`
	Magnitude float64   `json:"magnitude"`
	DepthKm   float64   `json:"depthKm"`
	MMI       int       `json:"mmi"`
	Locality  string    `json:"locality"`
	Quality   string    `json:"quality"`
	Latitude  float64   `json:"lat"`
	Longitude float64   `json:"lng"`
	Severity  string    `json:"severity"`
	DepthTier string    `json:"depthTier"`
}

func NewQuakeInfo(feature QuakeFeature) QuakeInfo {
	occurred, _ := time.Parse(time.RFC3339, feature.Properties.Time)

	return QuakeInfo{
		PublicID:  feature.Properties.PublicID,
		Time:      occurred,
		Magnitude: feature.Properties.Magnitude,
		DepthKm:   feature.Geometry.DepthKm(),
		MMI:       feature.Properties.MMI,
		Locality:  feature.Properties.Locality,
		Quality:   feature.Properties.Quality,
		Latitude:  feature.Geometry.Latitude(),
		Longitude: feature.Geometry.Longitude(),
		Severity:  QuakeSeverity(feature.Properties.Magnitude),
		DepthTier: DepthTier(feature.Geometry.DepthKm()),
	}
}

// VolcanoInfo is a volcanic alert annotated with the human alert level
// text and a map position for the monitored volcanoes we know about.
// HasLocation is false for volcano IDs outside that set.
type VolcanoInfo struct {
	VolcanoID   string  `json:"volcanoId"`
	Title       string  `json:"title"`
	Level       int     `json:"level"`
	LevelText   string  `json:"levelText"`
	Activity    string  `json:"activity"`
	Hazards     string  `json:"hazards"`
	Latitude    float64 `json:"lat"`
	Longitude   float64 `json:"lng"`
	HasLocation bool    `json:"hasLocation"`
}

func NewVolcanoInfo(feature VolcanoFeature) VolcanoInfo {
	info := VolcanoInfo{
		VolcanoID: feature.Properties.VolcanoID,
		Title:     feature.Properties.VolcanoTitle,
		Level:     feature.Properties.Level,
		LevelText: AlertLevelText(feature.Properties.Level),
		Activity:  feature.Properties.Activity,
		Hazards:   feature.Properties.Hazards,
	}

	if loc, ok := VolcanoLocation(feature.Properties.VolcanoID); ok {
		info.Latitude = loc.Lat
		info.Longitude = loc.Lng
		info.HasLocation = true
	}

	return info
}
