package tasks

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/nzhazard/hazardwatch/app/geonet"
	"github.com/nzhazard/hazardwatch/app/observability"
)

type RefreshQuakesTask struct {
	Task
	client   *geonet.Client
	snapshot *Snapshot
	tracker  *RecencyTracker
	minMMI   int
	window   time.Duration
	clock    clockwork.Clock
}

func NewRefreshQuakesTask(client *geonet.Client, snapshot *Snapshot, tracker *RecencyTracker,
	minMMI int, window time.Duration, clock clockwork.Clock) *RefreshQuakesTask {
	return &RefreshQuakesTask{
		Task:     NewTask(TaskTypeRefreshQuakes, "quakes"),
		client:   client,
		snapshot: snapshot,
		tracker:  tracker,
		minMMI:   minMMI,
		window:   window,
		clock:    clock,
	}
}

func (t *RefreshQuakesTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	now := t.clock.Now()

	features, err := t.client.Quakes(ctx, t.minMMI)
	if err != nil {
		t.snapshot.SetQuakesError(err, now)
		return fmt.Errorf("failed to fetch quakes: %w", err)
	}

	quakes := make([]geonet.QuakeInfo, 0, len(features))
	for _, feature := range features {
		info := geonet.NewQuakeInfo(feature)
		if !info.Time.IsZero() && now.Sub(info.Time) > t.window {
			continue
		}
		quakes = append(quakes, info)
	}

	sort.Slice(quakes, func(i, j int) bool {
		return quakes[i].Time.After(quakes[j].Time)
	})

	t.snapshot.SetQuakes(quakes, now)
	observability.TopicItems.WithLabelValues("quakes").Set(float64(len(quakes)))

	if len(quakes) > 0 && !quakes[0].Time.IsZero() {
		t.tracker.Consider(MostRecentEvent{
			Type:  EventTypeEarthquake,
			Quake: &quakes[0],
			Time:  quakes[0].Time,
		})
	}

	return nil
}
