package geocoding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/config"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/domain"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/platform/logger"
)

func newTestClient(url string) *Client {
	c := NewClient(config.GeocoderConfig{
		BaseURL:   url,
		UserAgent: "shelterly-test",
		Timeout:   2 * time.Second,
		Region:    "in",
	}, logger.NewNop())
	c.http.SetRetryCount(0)
	return c
}

func TestClient_Geocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Koramangala, Bengaluru", r.URL.Query().Get("q"))
		assert.Equal(t, "in", r.URL.Query().Get("countrycodes"))
		assert.Equal(t, "shelterly-test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"12.9352","lon":"77.6245","display_name":"Koramangala"}]`))
	}))
	defer srv.Close()

	coords, err := newTestClient(srv.URL).Geocode(context.Background(), "Koramangala, Bengaluru")
	require.NoError(t, err)
	assert.Equal(t, &domain.Coordinates{Lat: 12.9352, Lng: 77.6245}, coords)
}

func TestClient_GeocodeNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	for i := 0; i < 5; i++ {
		_, err := c.Geocode(context.Background(), "Atlantis")
		assert.ErrorIs(t, err, domain.ErrGeocodeNotFound)
	}
	assert.Equal(t, gobreaker.StateClosed, c.cb.State(), "misses must not trip the breaker")
}

func TestClient_BreakerOpensOnServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	for i := 0; i < 3; i++ {
		_, err := c.Geocode(context.Background(), "Indiranagar")
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, c.cb.State())

	_, err := c.Geocode(context.Background(), "Indiranagar")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(3), calls.Load())
}
