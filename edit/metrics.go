package edit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	batchSavesInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "soundboard_client",
		Name:      "batch_saves_in_flight",
		Help:      "Batch save operations currently running.",
	})

	saveFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "soundboard_client",
		Name:      "entry_save_failures_total",
		Help:      "Individual entry saves that returned an error.",
	})
)
