package feed

import (
	"time"
)

// Topic is a classification bucket applied to normalized feed items.
type Topic string

const (
	TopicIncidents Topic = "incidents"
	TopicCrime     Topic = "crime"
	TopicFire      Topic = "fire"
	TopicWarnings  Topic = "warnings"
)

// Severity tiers for warning-class items.
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Item is a normalized feed item. Title and Description never contain
// raw markup once an item has been through the sanitizer.
type Item struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	PubDate     string `json:"pubDate"`
	Category    string `json:"category,omitempty"`

	// Provenance, set by the aggregators.
	Source     string `json:"source,omitempty"`
	SourceIcon string `json:"sourceIcon,omitempty"`

	// Warning-class fields, set by the CAP parsers.
	Severity   string `json:"severity,omitempty"`
	EventType  string `json:"eventType,omitempty"`
	IsFallback bool   `json:"isFallback,omitempty"`

	// Coarse keyword-derived geolocation, when a region keyword matched.
	Region string   `json:"region,omitempty"`
	Lat    *float64 `json:"lat,omitempty"`
	Lng    *float64 `json:"lng,omitempty"`
}

// PublishedAt parses the item's pubDate, which may be in any
// source-native format. ok is false when the date is missing or
// unparseable; such items sort as oldest.
func (it Item) PublishedAt() (time.Time, bool) {
	return ParseDate(it.PubDate)
}

// SearchText returns the lowercased text the classifiers match against.
func (it Item) SearchText() string {
	return searchText(it.Title, it.Description)
}

// Source is a named upstream feed in the registry.
type Source struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
	Icon string `yaml:"icon"`

	// Direct sources are fetched without the proxy chain.
	Direct bool `yaml:"direct"`
}
