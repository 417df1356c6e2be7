package worker

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	tickDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "engine",
			Subsystem: "worker",
			Name:      "tick_seconds",
			Help:      "Time spent ticking and rendering the arena.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		},
	)
	deaths = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "engine",
			Subsystem: "worker",
			Name:      "deaths_total",
			Help:      "Snakes respawned, by cause.",
		},
		[]string{"cause"},
	)
	fruitEaten = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "engine",
			Subsystem: "worker",
			Name:      "fruit_eaten_total",
			Help:      "Fruit eaten by any snake.",
		},
	)
	wins = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "engine",
			Subsystem: "worker",
			Name:      "wins_total",
			Help:      "Times the board filled up and the arena was reset.",
		},
	)
	rosterSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "engine",
			Subsystem: "worker",
			Name:      "roster_size",
			Help:      "Snakes in the arena.",
		},
	)
)

func init() {
	prometheus.MustRegister(tickDuration, deaths, fruitEaten, wins, rosterSize)
}

func instrument() func() {
	t := prometheus.NewTimer(tickDuration)
	return func() { t.ObserveDuration() }
}
