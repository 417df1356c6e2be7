package controller

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	inputEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "engine",
			Subsystem: "controller",
			Name:      "events_total",
			Help:      "Input events received, by intent.",
		},
		[]string{"intent"},
	)
	players = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "engine",
			Subsystem: "controller",
			Name:      "players",
			Help:      "Distinct input sources seen.",
		},
	)
)

func init() {
	prometheus.MustRegister(inputEvents, players)
}

func observeEvent(i Intent) {
	inputEvents.WithLabelValues(i.String()).Inc()
}

func setPlayers(n int) {
	players.Set(float64(n))
}
