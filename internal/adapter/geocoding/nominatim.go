// Package geocoding resolves PG locations to coordinates through a
// Nominatim-compatible search API.
package geocoding

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/config"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/domain"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/platform/logger"
)

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Client implements domain.Geocoder. Calls go through a circuit breaker so
// an unreachable geocoder fails fast instead of stalling submissions.
type Client struct {
	http   *resty.Client
	cb     *gobreaker.CircuitBreaker
	region string
	logger *logger.Logger
}

func NewClient(cfg config.GeocoderConfig, log *logger.Logger) *Client {
	log = log.Named("Geocoder")
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		}).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", cfg.UserAgent)

	return &Client{
		http:   httpClient,
		cb:     newBreaker("geocoder", log),
		region: cfg.Region,
		logger: log,
	}
}

func newBreaker(name string, log *logger.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 2
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, domain.ErrGeocodeNotFound)
		},
	})
}

// Geocode returns the best match for location or domain.ErrGeocodeNotFound.
func (c *Client) Geocode(ctx context.Context, location string) (*domain.Coordinates, error) {
	out, err := c.cb.Execute(func() (interface{}, error) {
		return c.search(ctx, location)
	})
	if err != nil {
		return nil, err
	}
	return out.(*domain.Coordinates), nil
}

func (c *Client) search(ctx context.Context, location string) (*domain.Coordinates, error) {
	var results []searchResult
	req := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":      location,
			"format": "json",
			"limit":  "1",
		}).
		SetResult(&results)
	if c.region != "" {
		req.SetQueryParam("countrycodes", c.region)
	}

	resp, err := req.Get("/search")
	if err != nil {
		return nil, fmt.Errorf("geocoder request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("geocoder returned status %d", resp.StatusCode())
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: %q", domain.ErrGeocodeNotFound, location)
	}

	lat, errLat := strconv.ParseFloat(results[0].Lat, 64)
	lng, errLng := strconv.ParseFloat(results[0].Lon, 64)
	if errLat != nil || errLng != nil {
		return nil, fmt.Errorf("geocoder returned malformed coordinates %q,%q", results[0].Lat, results[0].Lon)
	}
	c.logger.Debug("Location geocoded", zap.String("location", location), zap.String("match", results[0].DisplayName))
	return &domain.Coordinates{Lat: lat, Lng: lng}, nil
}
