package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nzhazard/hazardwatch/app/observability"
)

// Result caps per topic.
const (
	maxIncidentItems = 20
	maxCrimeItems    = 25
	maxFireItems     = 20
)

// Aggregator orchestrates per-topic collection: fetch every configured
// source, classify, tag provenance, merge, sort by recency and cap. A
// failing source never aborts its siblings; a topic that yields nothing
// falls back to its static direct-link placeholders.
type Aggregator struct {
	registry    *Registry
	fetcher     *Fetcher
	parser      *Parser
	classifiers map[Topic]*Classifier
}

func NewAggregator(registry *Registry, fetcher *Fetcher) *Aggregator {
	return &Aggregator{
		registry: registry,
		fetcher:  fetcher,
		parser:   NewParser(),
		classifiers: map[Topic]*Classifier{
			TopicIncidents: NewClassifier(TopicIncidents),
			TopicCrime:     NewClassifier(TopicCrime),
			TopicFire:      NewClassifier(TopicFire),
		},
	}
}

func topicCap(topic Topic) int {
	switch topic {
	case TopicCrime:
		return maxCrimeItems
	case TopicFire:
		return maxFireItems
	default:
		return maxIncidentItems
	}
}

// Collect gathers the current item list for a topic.
func (a *Aggregator) Collect(ctx context.Context, topic Topic) []Item {
	if topic == TopicWarnings {
		return a.collectWarnings(ctx)
	}

	classifier, ok := a.classifiers[topic]
	if !ok {
		return nil
	}

	var all []Item
	for _, source := range a.registry.Sources(topic) {
		items, err := a.fetchSource(ctx, source)
		if err != nil {
			observability.SourceFetches.WithLabelValues(source.Name, "error").Inc()
			slog.Warn("Source fetch failed, continuing with remaining sources",
				"topic", string(topic), "source", source.Name, "error", err)
			continue
		}
		observability.SourceFetches.WithLabelValues(source.Name, "success").Inc()

		matched := classifier.Run(items)
		for _, item := range matched {
			item.Source = source.Name
			item.SourceIcon = source.Icon
			all = append(all, LocateRegion(item))
		}
	}

	if len(all) == 0 {
		slog.Info("No live items collected, returning direct links", "topic", string(topic))
		return DirectLinks(topic)
	}

	all = dedupe(all)
	SortByRecency(all)
	if limit := topicCap(topic); len(all) > limit {
		all = all[:limit]
	}
	return all
}

// dedupe drops syndicated duplicates after merging sources, keyed by
// link, or by lowercased title when a source omits links. First
// occurrence wins.
func dedupe(items []Item) []Item {
	seen := make(map[string]bool, len(items))
	kept := items[:0]
	for _, item := range items {
		key := item.Link
		if key == "" {
			key = strings.ToLower(item.Title)
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, item)
	}
	return kept
}

func (a *Aggregator) fetchSource(ctx context.Context, source Source) ([]Item, error) {
	if source.Direct {
		data, err := a.fetcher.FetchDirect(ctx, source.URL)
		if err != nil {
			return nil, err
		}
		if json.Valid(data) {
			return parseNewsJSON(data)
		}
		return a.parser.Run(data)
	}

	raw, ok := a.fetcher.FetchThroughProxies(ctx, source.URL)
	if !ok {
		return nil, fmt.Errorf("no proxy could reach %s", source.URL)
	}
	return a.parser.Run([]byte(raw))
}

// collectWarnings handles the CAP-specific path: sniff the raw document
// and dispatch to the matching parser; total fetch failure degrades to
// the static placeholder.
func (a *Aggregator) collectWarnings(ctx context.Context) []Item {
	sources := a.registry.Sources(TopicWarnings)
	if len(sources) == 0 {
		return WarningsFallback()
	}
	source := sources[0]

	raw, ok := a.fetcher.FetchThroughProxies(ctx, source.URL)
	if !ok {
		observability.SourceFetches.WithLabelValues(source.Name, "error").Inc()
		return WarningsFallback()
	}
	observability.SourceFetches.WithLabelValues(source.Name, "success").Inc()

	var items []Item
	var err error
	switch SniffFormat(raw) {
	case FormatCAPAlert:
		items, err = ParseCAPAlert(raw)
	default:
		items, err = ParseCAPFeed(a.parser, []byte(raw))
	}
	if err != nil {
		slog.Warn("Failed to parse CAP document", "source", source.Name, "error", err)
	}

	for i := range items {
		items[i] = LocateRegion(items[i])
	}
	SortByRecency(items)
	return items
}

// geonetNews is the GeoNet news endpoint's JSON shape, the one non-XML
// source in the registry.
type geonetNews struct {
	Feed []struct {
		Title     string `json:"title"`
		Link      string `json:"link"`
		Summary   string `json:"summary"`
		Published string `json:"published"`
	} `json:"feed"`
}

func parseNewsJSON(data []byte) ([]Item, error) {
	var news geonetNews
	if err := json.Unmarshal(data, &news); err != nil {
		return nil, fmt.Errorf("failed to parse news JSON: %w", err)
	}

	items := make([]Item, 0, len(news.Feed))
	for _, entry := range news.Feed {
		items = append(items, Item{
			Title:       Sanitize(entry.Title),
			Link:        entry.Link,
			Description: Sanitize(entry.Summary),
			PubDate:     entry.Published,
		})
	}
	return items, nil
}
