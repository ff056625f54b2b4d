package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	SearchesPerformed prometheus.Counter
	OffersReturned    prometheus.Counter
	PriceRefreshes    prometheus.Counter
	AlertsSent        *prometheus.CounterVec
	RefreshDuration   prometheus.Histogram
	ErrorsCount       *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics on the given registerer
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		SearchesPerformed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_performed_total",
			Help:      "The total number of flight searches performed",
		}),
		OffersReturned: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "offers_returned_total",
			Help:      "The total number of flight offers returned by searches",
		}),
		PriceRefreshes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "price_refreshes_total",
			Help:      "The total number of watchlist price refreshes",
		}),
		AlertsSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_sent_total",
			Help:      "The total number of price alerts sent to the notifier",
		}, []string{"type"}),
		RefreshDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "refresh_duration_seconds",
			Help:      "Time taken to refresh all watchlist prices",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
