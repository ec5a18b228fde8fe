// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SyncItems counts reconciled items by entity and outcome ("ok" | "error")
	SyncItems = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "catalog",
			Subsystem: "sync",
			Name:      "items_total",
			Help:      "Items reconciled by sync runs.",
		},
		[]string{"entity", "outcome"},
	)

	// SyncRuns counts sync runs by entity and result ("success" | "partial" | "fatal")
	SyncRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "catalog",
			Subsystem: "sync",
			Name:      "runs_total",
			Help:      "Sync runs by result.",
		},
		[]string{"entity", "result"},
	)

	// PageFetchesInFlight tracks concurrent remote page fetches
	PageFetchesInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "catalog",
		Subsystem: "sync",
		Name:      "page_fetches_in_flight",
		Help:      "Remote page fetches currently in flight.",
	})

	// RemoteRequestDuration tracks calls to BigCommerce and the enrichment services
	RemoteRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "catalog",
			Subsystem: "remote",
			Name:      "request_duration_seconds",
			Help:      "Duration of outbound requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
)

func init() {
	prometheus.MustRegister(SyncItems, SyncRuns, PageFetchesInFlight, RemoteRequestDuration)
}

// Handler serves the Prometheus scrape endpoint
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
