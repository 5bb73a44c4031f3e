package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// HTTP server configuration
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for the manual refresh endpoint (optional)"`

	// Scheduler configuration
	SchedulerTick int `long:"scheduler-tick" env:"SCHEDULER_TICK" default:"30" description:"Scheduler tick in seconds"`
	WorkerCount   int `long:"worker-count" env:"WORKER_COUNT" default:"4" description:"Number of background workers for refresh tasks"`

	// Per-topic refresh intervals (seconds)
	WarningsInterval  int `long:"warnings-interval" env:"WARNINGS_INTERVAL" default:"300" description:"Weather warnings refresh interval in seconds"`
	QuakesInterval    int `long:"quakes-interval" env:"QUAKES_INTERVAL" default:"300" description:"Earthquake refresh interval in seconds"`
	VolcanoesInterval int `long:"volcanoes-interval" env:"VOLCANOES_INTERVAL" default:"300" description:"Volcanic alert refresh interval in seconds"`
	WeatherInterval   int `long:"weather-interval" env:"WEATHER_INTERVAL" default:"300" description:"City weather refresh interval in seconds"`
	IncidentsInterval int `long:"incidents-interval" env:"INCIDENTS_INTERVAL" default:"300" description:"Incident news refresh interval in seconds"`
	CrimeInterval     int `long:"crime-interval" env:"CRIME_INTERVAL" default:"300" description:"Crime news refresh interval in seconds"`
	FireInterval      int `long:"fire-interval" env:"FIRE_INTERVAL" default:"300" description:"Fire news refresh interval in seconds"`

	// Ingestion configuration
	SourcesDir   string `long:"sources-dir" env:"SOURCES_DIR" default:"./sources" description:"Directory containing source registry override files"`
	ProxyTimeout int    `long:"proxy-timeout" env:"PROXY_TIMEOUT" default:"8" description:"Per-attempt proxy timeout in seconds"`
	QuakeMMI     int    `long:"quake-mmi" env:"QUAKE_MMI" default:"2" description:"Minimum Modified Mercalli Intensity for earthquake queries"`
	RecencyHours int    `long:"recency-hours" env:"RECENCY_HOURS" default:"24" description:"Only surface items newer than this many hours"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Hazard Watch/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"Pacific/Auckland" description:"Timezone for timestamps"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Port:              raw.Port,
		APIAccessKey:      raw.APIAccessKey,
		SchedulerTick:     raw.SchedulerTick,
		WorkerCount:       raw.WorkerCount,
		WarningsInterval:  raw.WarningsInterval,
		QuakesInterval:    raw.QuakesInterval,
		VolcanoesInterval: raw.VolcanoesInterval,
		WeatherInterval:   raw.WeatherInterval,
		IncidentsInterval: raw.IncidentsInterval,
		CrimeInterval:     raw.CrimeInterval,
		FireInterval:      raw.FireInterval,
		SourcesDir:        raw.SourcesDir,
		ProxyTimeout:      raw.ProxyTimeout,
		QuakeMMI:          raw.QuakeMMI,
		RecencyHours:      raw.RecencyHours,
		UserAgent:         raw.UserAgent,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
