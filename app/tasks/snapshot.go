package tasks

import (
	"sync"
	"time"

	"github.com/nzhazard/hazardwatch/app/feed"
	"github.com/nzhazard/hazardwatch/app/geonet"
	"github.com/nzhazard/hazardwatch/app/weather"
)

// TopicState is the last refresh outcome for one feed topic. Err is set
// when the refresh failed outright; the items then are whatever
// fallback the aggregator produced.
type TopicState struct {
	Items     []feed.Item `json:"items"`
	Err       string      `json:"error,omitempty"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// Snapshot holds the latest refreshed state for every panel. Refresh
// tasks write it from worker goroutines while API handlers read it, so
// all access goes through the mutex and getters return copies.
type Snapshot struct {
	mu sync.RWMutex

	topics       map[feed.Topic]TopicState
	quakes       []geonet.QuakeInfo
	quakesErr    string
	quakesAt     time.Time
	volcanoes    []geonet.VolcanoInfo
	volcanoesErr string
	volcanoesAt  time.Time
	weather      []weather.CityWeather
	weatherErr   string
	weatherAt    time.Time
	lastUpdated  time.Time
}

func NewSnapshot() *Snapshot {
	return &Snapshot{
		topics: make(map[feed.Topic]TopicState),
	}
}

func (s *Snapshot) SetTopic(topic feed.Topic, items []feed.Item, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.topics[topic] = TopicState{Items: items, UpdatedAt: now}
	s.lastUpdated = now
}

func (s *Snapshot) SetTopicError(topic feed.Topic, err error, items []feed.Item, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.topics[topic] = TopicState{Items: items, Err: err.Error(), UpdatedAt: now}
	s.lastUpdated = now
}

func (s *Snapshot) Topic(topic feed.Topic) (TopicState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.topics[topic]
	if !ok {
		return TopicState{}, false
	}

	state.Items = append([]feed.Item(nil), state.Items...)
	return state, true
}

func (s *Snapshot) SetQuakes(quakes []geonet.QuakeInfo, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.quakes = quakes
	s.quakesErr = ""
	s.quakesAt = now
	s.lastUpdated = now
}

func (s *Snapshot) SetQuakesError(err error, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.quakes = nil
	s.quakesErr = err.Error()
	s.quakesAt = now
	s.lastUpdated = now
}

func (s *Snapshot) Quakes() ([]geonet.QuakeInfo, string, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]geonet.QuakeInfo(nil), s.quakes...), s.quakesErr, s.quakesAt
}

func (s *Snapshot) SetVolcanoes(volcanoes []geonet.VolcanoInfo, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.volcanoes = volcanoes
	s.volcanoesErr = ""
	s.volcanoesAt = now
	s.lastUpdated = now
}

func (s *Snapshot) SetVolcanoesError(err error, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.volcanoes = nil
	s.volcanoesErr = err.Error()
	s.volcanoesAt = now
	s.lastUpdated = now
}

func (s *Snapshot) Volcanoes() ([]geonet.VolcanoInfo, string, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]geonet.VolcanoInfo(nil), s.volcanoes...), s.volcanoesErr, s.volcanoesAt
}

func (s *Snapshot) SetWeather(cities []weather.CityWeather, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.weather = cities
	s.weatherErr = ""
	s.weatherAt = now
	s.lastUpdated = now
}

func (s *Snapshot) SetWeatherError(err error, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.weather = nil
	s.weatherErr = err.Error()
	s.weatherAt = now
	s.lastUpdated = now
}

func (s *Snapshot) Weather() ([]weather.CityWeather, string, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]weather.CityWeather(nil), s.weather...), s.weatherErr, s.weatherAt
}

func (s *Snapshot) LastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastUpdated
}

// Stats summarizes item counts per panel for the stats endpoint.
func (s *Snapshot) Stats() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := make(map[string]int, len(s.topics)+3)
	for topic, state := range s.topics {
		stats[string(topic)] = len(state.Items)
	}
	stats["quakes"] = len(s.quakes)
	stats["volcanoes"] = len(s.volcanoes)
	stats["weather"] = len(s.weather)

	return stats
}
