package tasks

import (
	"sync"
	"time"

	"github.com/nzhazard/hazardwatch/app/feed"
	"github.com/nzhazard/hazardwatch/app/geonet"
)

type EventType string

const (
	EventTypeWarning    EventType = "warning"
	EventTypeEarthquake EventType = "earthquake"
	EventTypeIncident   EventType = "incident"
	EventTypeCrime      EventType = "crime"
)

// MostRecentEvent is the single freshest event seen across the feed
// topics and the earthquake stream. Exactly one of Item or Quake is set,
// matching Type.
type MostRecentEvent struct {
	Type  EventType         `json:"type"`
	Item  *feed.Item        `json:"item,omitempty"`
	Quake *geonet.QuakeInfo `json:"quake,omitempty"`
	Time  time.Time         `json:"time"`
}

// RecencyTracker keeps the most recent event across refresh tasks that
// run concurrently. Candidates replace the current holder only when
// strictly newer, so on equal timestamps the first reported event wins.
type RecencyTracker struct {
	mu      sync.Mutex
	current *MostRecentEvent
}

func NewRecencyTracker() *RecencyTracker {
	return &RecencyTracker{}
}

// Reset clears the tracker. Called at the start of a full refresh cycle
// so events that dropped out of every source do not linger.
func (t *RecencyTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.current = nil
}

func (t *RecencyTracker) Consider(event MostRecentEvent) {
	if event.Time.IsZero() {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == nil || event.Time.After(t.current.Time) {
		t.current = &event
	}
}

// Current returns a copy of the freshest event, or nil when none has
// been reported since the last reset.
func (t *RecencyTracker) Current() *MostRecentEvent {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == nil {
		return nil
	}

	event := *t.current
	return &event
}
