package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var retriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "soundboard_client",
		Name:      "read_retries_total",
		Help:      "Retried attempts of idempotent read operations.",
	},
	[]string{"op"},
)
