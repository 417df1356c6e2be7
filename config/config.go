// Package config reads engine settings from the environment. A .env file in
// the working directory is honoured when present.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/lightsnake/engine/lighthouse"
	"github.com/lightsnake/engine/rules"
	"github.com/lightsnake/engine/worker"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Config holds everything needed to run the engine.
type Config struct {
	TickInterval  time.Duration
	InitialLength int
	InitialSnakes int

	LighthouseURL   string
	LighthouseUser  string
	LighthouseToken string
	// PutRate and PutBurst bound requests to the Lighthouse server.
	PutRate  rate.Limit
	PutBurst int

	StatusListen     string
	PrometheusListen string
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		TickInterval:     worker.DefaultTickInterval,
		InitialLength:    rules.DefaultInitialLength,
		InitialSnakes:    1,
		LighthouseURL:    lighthouse.DefaultURL,
		PutRate:          20,
		PutBurst:         5,
		StatusListen:     ":3005",
		PrometheusListen: ":9000",
	}
}

// FromEnv returns Default overridden by environment variables. Values that
// fail to parse keep their default.
func FromEnv() Config {
	cfg := Default()

	cfg.TickInterval = getEnvDuration("SNAKE_TICK_INTERVAL", cfg.TickInterval)
	cfg.InitialLength = getEnvInt("SNAKE_INITIAL_LENGTH", cfg.InitialLength)
	cfg.InitialSnakes = getEnvInt("SNAKE_INITIAL_SNAKES", cfg.InitialSnakes)

	cfg.LighthouseURL = getEnvString("LIGHTHOUSE_URL", cfg.LighthouseURL)
	cfg.LighthouseUser = getEnvString("LIGHTHOUSE_USER", cfg.LighthouseUser)
	cfg.LighthouseToken = getEnvString("LIGHTHOUSE_TOKEN", cfg.LighthouseToken)
	cfg.PutRate = rate.Limit(getEnvInt("LIGHTHOUSE_PUT_RPS", int(cfg.PutRate)))
	cfg.PutBurst = getEnvInt("LIGHTHOUSE_PUT_BURST", cfg.PutBurst)

	cfg.StatusListen = getEnvString("ENGINE_STATUS_LISTEN", cfg.StatusListen)
	cfg.PrometheusListen = getEnvString("ENGINE_PROMETHEUS_LISTEN", cfg.PrometheusListen)

	return cfg
}

// Load reads the given .env files, or .env when none are named, and then
// returns FromEnv. Missing files are not an error; variables already set in
// the environment win.
func Load(files ...string) Config {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			log.WithField("file", f).Debug("no env file loaded")
			continue
		}
		log.WithField("file", f).Info("loaded environment")
	}
	return FromEnv()
}

// Rules converts the arena part of the configuration.
func (c Config) Rules() rules.Config {
	cfg := rules.DefaultConfig()
	cfg.InitialLength = c.InitialLength
	cfg.InitialSnakes = c.InitialSnakes
	return cfg
}

// LighthouseOptions converts the transport part of the configuration.
func (c Config) LighthouseOptions() lighthouse.Options {
	return lighthouse.Options{
		Rate:  c.PutRate,
		Burst: c.PutBurst,
	}
}

func getEnvString(varName string, defaults string) string {
	if val := os.Getenv(varName); val != "" {
		return val
	}
	return defaults
}

func getEnvInt(varName string, defaults int) int {
	val := os.Getenv(varName)
	if val == "" {
		return defaults
	}
	intVal, err := strconv.ParseInt(val, 10, 32)
	if err != nil {
		return defaults
	}
	return int(intVal)
}

// getEnvDuration accepts Go durations ("150ms") and bare milliseconds ("150").
func getEnvDuration(varName string, defaults time.Duration) time.Duration {
	val := os.Getenv(varName)
	if val == "" {
		return defaults
	}
	if ms, err := strconv.ParseInt(val, 10, 64); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaults
	}
	return d
}
