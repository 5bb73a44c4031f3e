package tasks

// TaskSchedulerInterface defines the interface for background refresh
// scheduling. Used by the main application and the API server to manage
// the worker pool and trigger full refresh cycles.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
	RefreshAll() error
}
