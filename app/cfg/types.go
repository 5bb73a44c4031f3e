package cfg

type Cfg struct {
	// HTTP server configuration
	Port         string
	APIAccessKey string

	// Scheduler configuration
	SchedulerTick int
	WorkerCount   int

	// Per-topic refresh intervals (seconds)
	WarningsInterval  int
	QuakesInterval    int
	VolcanoesInterval int
	WeatherInterval   int
	IncidentsInterval int
	CrimeInterval     int
	FireInterval      int

	// Ingestion configuration
	SourcesDir   string
	ProxyTimeout int
	QuakeMMI     int
	RecencyHours int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
