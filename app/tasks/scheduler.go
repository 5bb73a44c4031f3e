package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/nzhazard/hazardwatch/app/cfg"
	"github.com/nzhazard/hazardwatch/app/feed"
	"github.com/nzhazard/hazardwatch/app/geonet"
	"github.com/nzhazard/hazardwatch/app/observability"
	"github.com/nzhazard/hazardwatch/app/weather"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

// ErrRefreshInProgress is returned by RefreshAll while a previous full
// refresh still has tasks in flight.
var ErrRefreshInProgress = fmt.Errorf("refresh already in progress")

// runner ties a refresh target to its interval and coalescing state.
// nextAt is guarded by the scheduler mutex; inFlight keeps a slow
// refresh from being enqueued a second time while it runs.
type runner struct {
	name     string
	interval time.Duration
	makeTask func() TaskInterface
	inFlight atomic.Bool
	nextAt   time.Time
}

// runnerTask pairs an enqueued task with its runner so the worker can
// clear the in-flight flag when execution finishes.
type runnerTask struct {
	TaskInterface
	runner *runner
}

type Scheduler struct {
	runners     []*runner
	tracker     *RecencyTracker
	clock       clockwork.Clock
	tick        time.Duration
	workerCount int
	mu          sync.Mutex
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	taskQueue   chan TaskInterface
}

func NewScheduler(aggregator *feed.Aggregator, geonetClient *geonet.Client,
	weatherClient *weather.Client, snapshot *Snapshot, tracker *RecencyTracker,
	clock clockwork.Clock) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	window := time.Duration(cfg.RecencyHours) * time.Hour

	topicIntervals := map[feed.Topic]int{
		feed.TopicIncidents: cfg.IncidentsInterval,
		feed.TopicCrime:     cfg.CrimeInterval,
		feed.TopicFire:      cfg.FireInterval,
		feed.TopicWarnings:  cfg.WarningsInterval,
	}

	var runners []*runner
	for _, topic := range []feed.Topic{feed.TopicWarnings, feed.TopicIncidents, feed.TopicCrime, feed.TopicFire} {
		topic := topic
		runners = append(runners, &runner{
			name:     string(topic),
			interval: time.Duration(topicIntervals[topic]) * time.Second,
			makeTask: func() TaskInterface {
				return NewRefreshTopicTask(topic, aggregator, snapshot, tracker, window, clock)
			},
		})
	}

	runners = append(runners,
		&runner{
			name:     "quakes",
			interval: time.Duration(cfg.QuakesInterval) * time.Second,
			makeTask: func() TaskInterface {
				return NewRefreshQuakesTask(geonetClient, snapshot, tracker, cfg.QuakeMMI, window, clock)
			},
		},
		&runner{
			name:     "volcanoes",
			interval: time.Duration(cfg.VolcanoesInterval) * time.Second,
			makeTask: func() TaskInterface {
				return NewRefreshVolcanoesTask(geonetClient, snapshot, clock)
			},
		},
		&runner{
			name:     "weather",
			interval: time.Duration(cfg.WeatherInterval) * time.Second,
			makeTask: func() TaskInterface {
				return NewRefreshWeatherTask(weatherClient, snapshot, clock)
			},
		},
	)

	return &Scheduler{
		runners:     runners,
		tracker:     tracker,
		clock:       clock,
		tick:        time.Duration(cfg.SchedulerTick) * time.Second,
		workerCount: cfg.WorkerCount,
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, 64),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := s.clock.NewTicker(s.tick)
		defer ticker.Stop()

		s.enqueueDue()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.Chan():
				s.enqueueDue()
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

// RefreshAll resets the recency tracker and enqueues every runner,
// starting a full refresh cycle. It refuses to start another while any
// task from the previous cycle is still running.
func (s *Scheduler) RefreshAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.runners {
		if r.inFlight.Load() {
			return ErrRefreshInProgress
		}
	}

	s.tracker.Reset()

	now := s.clock.Now()
	for _, r := range s.runners {
		s.enqueueRunner(r, now)
	}

	return nil
}

func (s *Scheduler) enqueueDue() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	for _, r := range s.runners {
		if r.inFlight.Load() {
			slog.Debug("Refresh still running, skipping", "target", r.name)
			continue
		}
		if r.nextAt.After(now) {
			continue
		}
		s.enqueueRunner(r, now)
	}
}

// enqueueRunner assumes s.mu is held.
func (s *Scheduler) enqueueRunner(r *runner, now time.Time) {
	r.inFlight.Store(true)
	r.nextAt = now.Add(r.interval)

	task := &runnerTask{TaskInterface: r.makeTask(), runner: r}
	if err := s.EnqueueTask(task); err != nil {
		slog.Warn("Failed to enqueue refresh task", "target", r.name, "error", err)
		r.inFlight.Store(false)
		r.nextAt = now
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	if rt, ok := task.(*runnerTask); ok {
		defer rt.runner.inFlight.Store(false)
	}

	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 2*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)
	duration := task.GetDuration()
	observability.RefreshDuration.WithLabelValues(task.GetTopic()).Observe(duration.Seconds())

	if err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID,
			"type", task.GetType(), "id", task.GetID(), "error", err)
		return
	}

	slog.Debug("Worker task completed", "worker_id", workerID,
		"type", task.GetType(), "id", task.GetID(), "duration", duration.String())
}
