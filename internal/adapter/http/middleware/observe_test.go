package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/platform/logger"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/platform/metrics"
)

func TestObserveCountsServerErrorsByRoute(t *testing.T) {
	m := metrics.NewMetricsManager("observe_test")
	r := chi.NewRouter()
	r.Use(Tracing)
	r.Use(Observe(logger.NewNop(), m))
	r.Get("/api/listings/{id}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "id") == "boom" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	for _, id := range []string{"a", "b", "boom"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/listings/"+id, nil))
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(m.APIErrorsTotal.WithLabelValues("/api/listings/{id}", "500")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.APILatency))
}

func TestObserveNilMetrics(t *testing.T) {
	h := Observe(logger.NewNop(), nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
