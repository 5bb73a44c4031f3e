package api

import (
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/nzhazard/hazardwatch/app/tasks"
)

type Handler struct {
	snapshot  *tasks.Snapshot
	tracker   *tasks.RecencyTracker
	scheduler tasks.TaskSchedulerInterface
	relay     *Relay
	clock     clockwork.Clock
	version   string
	startedAt time.Time
}

func NewHandler(snapshot *tasks.Snapshot, tracker *tasks.RecencyTracker,
	scheduler tasks.TaskSchedulerInterface, httpClient *http.Client,
	clock clockwork.Clock, version string) *Handler {
	return &Handler{
		snapshot:  snapshot,
		tracker:   tracker,
		scheduler: scheduler,
		relay:     NewRelay(httpClient, clock),
		clock:     clock,
		version:   version,
		startedAt: clock.Now(),
	}
}
