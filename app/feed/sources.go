package feed

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// SourceDirectLink marks static placeholder items that point at an
// authoritative page rather than a fetched feed entry.
const SourceDirectLink = "Direct Link"

// Registry maps topics to their upstream feed sources. The built-in
// registry can be overridden per topic from YAML files in the sources
// directory; it is immutable once loaded.
type Registry struct {
	sources map[Topic][]Source
}

// Built-in source registry. News feeds are cross-origin restricted and go
// through the proxy chain; GeoNet news permits direct access.
var defaultSources = map[Topic][]Source{
	TopicIncidents: {
		{Name: "GeoNet", URL: "https://api.geonet.org.nz/news/geonet", Icon: "🌋", Direct: true},
		{Name: "RNZ", URL: "https://www.rnz.co.nz/rss/national.xml", Icon: "📻"},
		{Name: "Stuff", URL: "https://www.stuff.co.nz/rss", Icon: "📰"},
		{Name: "Scoop", URL: "https://www.scoop.co.nz/rss/top-stories.xml", Icon: "📰"},
	},
	TopicCrime: {
		{Name: "RNZ", URL: "https://www.rnz.co.nz/rss/national.xml", Icon: "📻"},
		{Name: "Stuff", URL: "https://www.stuff.co.nz/rss", Icon: "📰"},
		{Name: "Scoop", URL: "https://www.scoop.co.nz/rss/top-stories.xml", Icon: "📰"},
	},
	TopicFire: {
		{Name: "RNZ", URL: "https://www.rnz.co.nz/rss/national.xml", Icon: "📻"},
		{Name: "Stuff", URL: "https://www.stuff.co.nz/rss", Icon: "📰"},
		{Name: "Scoop", URL: "https://www.scoop.co.nz/rss/top-stories.xml", Icon: "📰"},
	},
	TopicWarnings: {
		{Name: "MetService", URL: "https://alerts.metservice.com/cap/rss", Icon: "⚠️"},
	},
}

func NewRegistry() *Registry {
	sources := make(map[Topic][]Source, len(defaultSources))
	for topic, list := range defaultSources {
		sources[topic] = append([]Source(nil), list...)
	}
	return &Registry{sources: sources}
}

// LoadOverrides replaces a topic's source list with the contents of
// <topic>.yml for every such file in dir. A missing directory is not an
// error; the built-in registry stands.
func (r *Registry) LoadOverrides(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}

	for _, file := range files {
		topic := Topic(strings.TrimSuffix(filepath.Base(file), ".yml"))
		if _, ok := r.sources[topic]; !ok {
			slog.Warn("Ignoring source override for unknown topic", "file", file)
			continue
		}

		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("error reading %s: %w", file, err)
		}

		var sources []Source
		if err := yaml.Unmarshal(data, &sources); err != nil {
			return fmt.Errorf("error parsing %s: %w", file, err)
		}
		for i, source := range sources {
			if source.Name == "" || source.URL == "" {
				return fmt.Errorf("invalid source %d in %s: name and url are required", i, file)
			}
		}

		r.sources[topic] = sources
		slog.Debug("Source registry overridden", "topic", string(topic), "sources", len(sources))
	}

	return nil
}

func (r *Registry) Sources(topic Topic) []Source {
	return r.sources[topic]
}

// DirectLinks returns the static placeholder items for a topic, used when
// live aggregation yields nothing. Each points at an authoritative
// external page.
func DirectLinks(topic Topic) []Item {
	now := time.Now().UTC().Format(time.RFC3339)

	switch topic {
	case TopicCrime:
		return []Item{
			{Title: "NZ Police News", Link: "https://www.police.govt.nz/news",
				Description: "Latest news and crime reports from NZ Police",
				PubDate:     now, Source: SourceDirectLink, SourceIcon: "👮"},
			{Title: "Stuff Crime News", Link: "https://www.stuff.co.nz/national/crime",
				Description: "Crime news from across New Zealand",
				PubDate:     now, Source: SourceDirectLink, SourceIcon: "📰"},
			{Title: "RNZ Crime & Courts", Link: "https://www.rnz.co.nz/news/crime",
				Description: "Crime and court news from RNZ",
				PubDate:     now, Source: SourceDirectLink, SourceIcon: "📻"},
		}
	case TopicFire:
		return []Item{
			{Title: "Fire and Emergency NZ Incidents", Link: "https://www.fireandemergency.nz/incidents-and-news/incident-reports/",
				Description: "Current fire incidents and emergency callouts across New Zealand",
				PubDate:     now, Source: SourceDirectLink, SourceIcon: "🚒"},
			{Title: "FENZ News & Updates", Link: "https://www.fireandemergency.nz/incidents-and-news/",
				Description: "Latest news from Fire and Emergency New Zealand",
				PubDate:     now, Source: SourceDirectLink, SourceIcon: "🔥"},
			{Title: "Stuff Fire News", Link: "https://www.stuff.co.nz/national",
				Description: "Fire news from across New Zealand",
				PubDate:     now, Source: SourceDirectLink, SourceIcon: "📰"},
		}
	default:
		return []Item{
			{Title: "NZ Police News", Link: "https://www.police.govt.nz/news",
				Description: "Latest news and incident reports from NZ Police",
				PubDate:     now, Source: SourceDirectLink, SourceIcon: "👮"},
			{Title: "Fire and Emergency NZ", Link: "https://www.fireandemergency.nz/incidents-and-news/",
				Description: "Current fire incidents and emergency callouts",
				PubDate:     now, Source: SourceDirectLink, SourceIcon: "🚒"},
			{Title: "MetService Warnings", Link: WarningsPageURL,
				Description: "Current weather warnings for New Zealand",
				PubDate:     now, Source: SourceDirectLink, SourceIcon: "⚠️"},
			{Title: "NZTA Traffic Updates", Link: "https://www.journeys.nzta.govt.nz/",
				Description: "Road closures and traffic incidents",
				PubDate:     now, Source: SourceDirectLink, SourceIcon: "🚗"},
			{Title: "GeoNet Recent Quakes", Link: "https://www.geonet.org.nz/earthquake/weak",
				Description: "Latest earthquake activity in New Zealand",
				PubDate:     now, Source: SourceDirectLink, SourceIcon: "🌋"},
		}
	}
}

// WarningsFallback is the one-item placeholder shown when the live CAP
// feed is unreachable.
func WarningsFallback() []Item {
	return []Item{{
		Title:       "View Current Weather Warnings",
		Description: "Click to see all active MetService warnings, watches and advisories for New Zealand",
		Link:        WarningsPageURL,
		PubDate:     time.Now().UTC().Format(time.RFC3339),
		Severity:    SeverityMedium,
		EventType:   "Weather Warnings",
		Source:      "MetService",
		IsFallback:  true,
	}}
}
