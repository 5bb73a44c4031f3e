package geonet

// GeoNet API response shapes (GeoJSON FeatureCollections).

type QuakeResponse struct {
	Features []QuakeFeature `json:"features"`
}

type QuakeFeature struct {
	Properties QuakeProperties `json:"properties"`
	Geometry   Geometry        `json:"geometry"`
}

type QuakeProperties struct {
	PublicID  string  `json:"publicID"`
	Time      string  `json:"time"`
	Magnitude float64 `json:"magnitude"`
	MMI       int     `json:"mmi"`
	Locality  string  `json:"locality"`
	Quality   string  `json:"quality"`
}

// Geometry carries [longitude, latitude, depthKm].
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

func (g Geometry) Longitude() float64 {
	if len(g.Coordinates) > 0 {
		return g.Coordinates[0]
	}
	return 0
}

func (g Geometry) Latitude() float64 {
	if len(g.Coordinates) > 1 {
		return g.Coordinates[1]
	}
	return 0
}

func (g Geometry) DepthKm() float64 {
	if len(g.Coordinates) > 2 {
		return g.Coordinates[2]
	}
	return 0
}

type VolcanoResponse struct {
	Features []VolcanoFeature `json:"features"`
}

type VolcanoFeature struct {
	Properties VolcanoProperties `json:"properties"`
	Geometry   Geometry          `json:"geometry"`
}

type VolcanoProperties struct {
	VolcanoID    string `json:"volcanoID"`
	VolcanoTitle string `json:"volcanoTitle"`
	Level        int    `json:"level"`
	Activity     string `json:"activity"`
	Hazards      string `json:"hazards"`
}
