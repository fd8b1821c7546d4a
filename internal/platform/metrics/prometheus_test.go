package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/platform/logger"
)

func TestMetricsManager_CountersAndHandler(t *testing.T) {
	m := NewMetricsManager("shelterly")
	m.ListingsCreatedTotal.Inc()
	m.BulkRowsTotal.WithLabelValues("created").Add(2)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.ListingsCreatedTotal))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.BulkRowsTotal.WithLabelValues("created")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "shelterly_listings_created_total 1"))
}

func TestNewMetricsServer_NoPort(t *testing.T) {
	assert.Nil(t, NewMetricsServer("", logger.NewNop(), NewMetricsManager("x")))
	srv := NewMetricsServer("9100", logger.NewNop(), NewMetricsManager("y"))
	require.NotNil(t, srv)
	assert.Equal(t, ":9100", srv.Addr)
}
