package tasks

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/nzhazard/hazardwatch/app/observability"
	"github.com/nzhazard/hazardwatch/app/weather"
)

type RefreshWeatherTask struct {
	Task
	client   *weather.Client
	snapshot *Snapshot
	clock    clockwork.Clock
}

func NewRefreshWeatherTask(client *weather.Client, snapshot *Snapshot, clock clockwork.Clock) *RefreshWeatherTask {
	return &RefreshWeatherTask{
		Task:     NewTask(TaskTypeRefreshWeather, "weather"),
		client:   client,
		snapshot: snapshot,
		clock:    clock,
	}
}

func (t *RefreshWeatherTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	now := t.clock.Now()

	cities, err := t.client.AllCities(ctx)
	if err != nil {
		t.snapshot.SetWeatherError(err, now)
		return fmt.Errorf("failed to fetch city weather: %w", err)
	}

	t.snapshot.SetWeather(cities, now)
	observability.TopicItems.WithLabelValues("weather").Set(float64(len(cities)))

	return nil
}
