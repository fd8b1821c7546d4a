package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/platform/logger"
)

// MetricsManager holds the service's Prometheus collectors.
type MetricsManager struct {
	Registry *prometheus.Registry

	ListingsCreatedTotal prometheus.Counter
	ListingUpdatesTotal  prometheus.Counter
	ListingDeletesTotal  prometheus.Counter
	BulkRowsTotal        *prometheus.CounterVec // result: created|failed
	GeocodeTotal         *prometheus.CounterVec // result: ok|failed|skipped
	DraftSaveErrorsTotal prometheus.Counter
	CallbacksTotal       *prometheus.CounterVec // type: callback|visit

	APIErrorsTotal *prometheus.CounterVec
	APILatency     *prometheus.HistogramVec
}

// NewMetricsManager registers the collectors on a private registry.
func NewMetricsManager(namespace string) *MetricsManager {
	registry := prometheus.NewRegistry()

	m := &MetricsManager{
		Registry: registry,
		ListingsCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listings_created_total",
			Help:      "Total number of PG listings created.",
		}),
		ListingUpdatesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listing_updates_total",
			Help:      "Total number of PG listing updates.",
		}),
		ListingDeletesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listing_deletes_total",
			Help:      "Total number of PG listings deleted.",
		}),
		BulkRowsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bulk_import_rows_total",
			Help:      "Bulk import rows committed, by result.",
		}, []string{"result"}),
		GeocodeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_requests_total",
			Help:      "Geocoding attempts at submission time, by result.",
		}, []string{"result"}),
		DraftSaveErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "draft_save_errors_total",
			Help:      "Draft saves that failed and were swallowed.",
		}),
		CallbacksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "callback_requests_total",
			Help:      "Callback and visit requests received.",
		}, []string{"type"}),
		APIErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_errors_total",
			Help:      "HTTP API responses with status >= 500, by route.",
		}, []string{"route", "status"}),
		APILatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_latency_seconds",
			Help:      "HTTP API latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	registry.MustRegister(
		m.ListingsCreatedTotal,
		m.ListingUpdatesTotal,
		m.ListingDeletesTotal,
		m.BulkRowsTotal,
		m.GeocodeTotal,
		m.DraftSaveErrorsTotal,
		m.CallbacksTotal,
		m.APIErrorsTotal,
		m.APILatency,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *MetricsManager) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// NewMetricsServer builds the /metrics HTTP server for port. It returns nil
// when no port is configured.
func NewMetricsServer(port string, appLogger *logger.Logger, m *MetricsManager) *http.Server {
	if port == "" {
		appLogger.Info("Prometheus metrics server port not configured, server will not start")
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	appLogger.Info("Prometheus metrics server configured", zap.String("port", port), zap.String("path", "/metrics"))
	return &http.Server{Addr: ":" + port, Handler: mux}
}
