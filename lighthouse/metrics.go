package lighthouse

import (
	"github.com/prometheus/client_golang/prometheus"
)

var requestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "engine",
		Subsystem: "lighthouse",
		Name:      "request_seconds",
		Help:      "Round trip time of Lighthouse requests, by verb.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"verb"},
)

func init() {
	prometheus.MustRegister(requestDuration)
}

func instrument(verb string) func() {
	t := prometheus.NewTimer(requestDuration.WithLabelValues(verb))
	return func() { t.ObserveDuration() }
}
