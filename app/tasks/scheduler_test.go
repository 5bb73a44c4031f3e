package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

type countingTask struct {
	Task
	executions *int
	fail       bool
}

func (t *countingTask) Execute(ctx context.Context) error {
	*t.executions++
	if t.fail {
		return errors.New("boom")
	}
	return nil
}

func testScheduler(clock clockwork.Clock, runners ...*runner) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		runners:     runners,
		tracker:     NewRecencyTracker(),
		clock:       clock,
		tick:        30 * time.Second,
		workerCount: 1,
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, 8),
	}
}

func drainOne(t *testing.T, s *Scheduler) TaskInterface {
	t.Helper()
	select {
	case task := <-s.taskQueue:
		return task
	default:
		t.Fatal("Expected a queued task")
		return nil
	}
}

func TestScheduler_EnqueueDueCoalesces(t *testing.T) {
	clock := clockwork.NewFakeClockAt(testNow)

	executions := 0
	r := &runner{
		name:     "topic",
		interval: 5 * time.Minute,
		makeTask: func() TaskInterface {
			return &countingTask{Task: NewTask(TaskTypeRefreshTopic, "topic"), executions: &executions}
		},
	}

	s := testScheduler(clock, r)
	defer s.cancel()

	s.enqueueDue()
	if len(s.taskQueue) != 1 {
		t.Fatalf("Expected 1 queued task, got %d", len(s.taskQueue))
	}
	if !r.inFlight.Load() {
		t.Error("Runner should be marked in flight once queued")
	}

	// A second tick before the task ran must not enqueue again.
	s.enqueueDue()
	if len(s.taskQueue) != 1 {
		t.Errorf("In-flight runner was enqueued twice: %d queued", len(s.taskQueue))
	}

	s.executeTask(0, drainOne(t, s))
	if executions != 1 {
		t.Errorf("Expected 1 execution, got %d", executions)
	}
	if r.inFlight.Load() {
		t.Error("Execution should clear the in-flight flag")
	}

	// Not due yet: nothing queued.
	s.enqueueDue()
	if len(s.taskQueue) != 0 {
		t.Errorf("Runner before its interval should not be re-enqueued, got %d queued", len(s.taskQueue))
	}

	// Past the interval: due again.
	clock.Advance(5 * time.Minute)
	s.enqueueDue()
	if len(s.taskQueue) != 1 {
		t.Errorf("Runner past its interval should be re-enqueued, got %d queued", len(s.taskQueue))
	}
}

func TestScheduler_ExecuteTaskClearsInFlightOnError(t *testing.T) {
	clock := clockwork.NewFakeClockAt(testNow)

	executions := 0
	r := &runner{
		name:     "failing",
		interval: time.Minute,
		makeTask: func() TaskInterface {
			return &countingTask{Task: NewTask(TaskTypeRefreshTopic, "failing"), executions: &executions, fail: true}
		},
	}

	s := testScheduler(clock, r)
	defer s.cancel()

	s.enqueueDue()
	s.executeTask(0, drainOne(t, s))

	if executions != 1 {
		t.Errorf("Expected 1 execution, got %d", executions)
	}
	if r.inFlight.Load() {
		t.Error("A failing task must still clear the in-flight flag")
	}
}

func TestScheduler_RefreshAll(t *testing.T) {
	clock := clockwork.NewFakeClockAt(testNow)

	executions := 0
	makeRunner := func(name string) *runner {
		return &runner{
			name:     name,
			interval: 5 * time.Minute,
			makeTask: func() TaskInterface {
				return &countingTask{Task: NewTask(TaskTypeRefreshTopic, name), executions: &executions}
			},
		}
	}

	s := testScheduler(clock, makeRunner("a"), makeRunner("b"))
	defer s.cancel()

	s.tracker.Consider(MostRecentEvent{Type: EventTypeIncident, Time: testNow})

	if err := s.RefreshAll(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(s.taskQueue) != 2 {
		t.Errorf("RefreshAll should enqueue every runner, got %d queued", len(s.taskQueue))
	}
	if s.tracker.Current() != nil {
		t.Error("RefreshAll should reset the recency tracker")
	}

	// A second full refresh while tasks are in flight is refused.
	if err := s.RefreshAll(); !errors.Is(err, ErrRefreshInProgress) {
		t.Errorf("Expected ErrRefreshInProgress, got %v", err)
	}

	s.executeTask(0, drainOne(t, s))
	s.executeTask(0, drainOne(t, s))
	if executions != 2 {
		t.Errorf("Expected 2 executions, got %d", executions)
	}

	// With the cycle drained a new one may start.
	if err := s.RefreshAll(); err != nil {
		t.Errorf("Unexpected error after the cycle drained: %v", err)
	}
}
