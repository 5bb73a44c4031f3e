package tasks

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/nzhazard/hazardwatch/app/feed"
	"github.com/nzhazard/hazardwatch/app/observability"
)

type RefreshTopicTask struct {
	Task
	Topic      feed.Topic
	aggregator *feed.Aggregator
	snapshot   *Snapshot
	tracker    *RecencyTracker
	window     time.Duration
	clock      clockwork.Clock
}

func NewRefreshTopicTask(topic feed.Topic, aggregator *feed.Aggregator, snapshot *Snapshot,
	tracker *RecencyTracker, window time.Duration, clock clockwork.Clock) *RefreshTopicTask {
	return &RefreshTopicTask{
		Task:       NewTask(TaskTypeRefreshTopic, string(topic)),
		Topic:      topic,
		aggregator: aggregator,
		snapshot:   snapshot,
		tracker:    tracker,
		window:     window,
		clock:      clock,
	}
}

func (t *RefreshTopicTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	now := t.clock.Now()

	items := t.aggregator.Collect(ctx, t.Topic)
	items = withinWindow(items, now, t.window)

	if len(items) == 0 {
		if t.Topic == feed.TopicWarnings {
			items = feed.WarningsFallback()
		} else {
			items = feed.DirectLinks(t.Topic)
		}
	}

	t.snapshot.SetTopic(t.Topic, items, now)
	observability.TopicItems.WithLabelValues(string(t.Topic)).Set(float64(len(items)))

	t.reportRecency(items)

	return nil
}

// withinWindow drops items older than the recency window. Placeholder
// items and items without a parseable date stay; the sort already pushes
// undated items to the bottom.
func withinWindow(items []feed.Item, now time.Time, window time.Duration) []feed.Item {
	kept := make([]feed.Item, 0, len(items))
	for _, item := range items {
		if item.IsFallback || item.Source == feed.SourceDirectLink {
			kept = append(kept, item)
			continue
		}

		published, ok := item.PublishedAt()
		if ok && now.Sub(published) > window {
			continue
		}

		kept = append(kept, item)
	}
	return kept
}

// reportRecency offers the topic's freshest live item to the tracker.
// Fire items are displayed but do not compete for the most-recent slot,
// and placeholders never do.
func (t *RefreshTopicTask) reportRecency(items []feed.Item) {
	eventType, ok := topicEventTypes[t.Topic]
	if !ok {
		return
	}

	for _, item := range items {
		if item.IsFallback || item.Source == feed.SourceDirectLink {
			continue
		}

		published, parseable := item.PublishedAt()
		if !parseable {
			continue
		}

		candidate := item
		t.tracker.Consider(MostRecentEvent{
			Type: eventType,
			Item: &candidate,
			Time: published,
		})
		return
	}
}

var topicEventTypes = map[feed.Topic]EventType{
	feed.TopicWarnings:  EventTypeWarning,
	feed.TopicIncidents: EventTypeIncident,
	feed.TopicCrime:     EventTypeCrime,
}
