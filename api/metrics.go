package api

import (
	"github.com/prometheus/client_golang/prometheus"
)

var viewers = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Namespace: "engine",
		Subsystem: "api",
		Name:      "viewers",
		Help:      "Websocket viewers watching the arena.",
	},
)

func init() {
	prometheus.MustRegister(viewers)
}

func setViewers(n int) {
	viewers.Set(float64(n))
}
