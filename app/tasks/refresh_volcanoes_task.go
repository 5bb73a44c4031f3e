package tasks

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/nzhazard/hazardwatch/app/geonet"
	"github.com/nzhazard/hazardwatch/app/observability"
)

type RefreshVolcanoesTask struct {
	Task
	client   *geonet.Client
	snapshot *Snapshot
	clock    clockwork.Clock
}

func NewRefreshVolcanoesTask(client *geonet.Client, snapshot *Snapshot, clock clockwork.Clock) *RefreshVolcanoesTask {
	return &RefreshVolcanoesTask{
		Task:     NewTask(TaskTypeRefreshVolcanoes, "volcanoes"),
		client:   client,
		snapshot: snapshot,
		clock:    clock,
	}
}

func (t *RefreshVolcanoesTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	now := t.clock.Now()

	features, err := t.client.VolcanicAlerts(ctx)
	if err != nil {
		t.snapshot.SetVolcanoesError(err, now)
		return fmt.Errorf("failed to fetch volcanic alerts: %w", err)
	}

	volcanoes := make([]geonet.VolcanoInfo, 0, len(features))
	for _, feature := range features {
		volcanoes = append(volcanoes, geonet.NewVolcanoInfo(feature))
	}

	t.snapshot.SetVolcanoes(volcanoes, now)
	observability.TopicItems.WithLabelValues("volcanoes").Set(float64(len(volcanoes)))

	return nil
}
