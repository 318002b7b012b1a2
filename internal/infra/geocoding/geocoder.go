// Package geocoding resolves free-text addresses to coordinates through an
// external HTTP endpoint.
package geocoding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"

	"lifeline/config"
	"lifeline/internal/domain/service"
)

const defaultTimeout = 10 * time.Second

// httpGeocoder implements service.Geocoder against a provider whose response
// shape follows the common geocoding API convention: a list of candidates
// with geometry, ordered by relevance.
type httpGeocoder struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// geocodeResponse mirrors the provider payload. Only the fields we read are
// declared.
type geocodeResponse struct {
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
	Status string `json:"status"`
}

// NewGeocoder builds the HTTP geocoder from configuration. Returns nil when
// geocoding is not configured so bank creation skips address resolution.
func NewGeocoder(cfg *config.Config) service.Geocoder {
	if cfg.Geocoding == nil {
		return nil
	}

	timeout := cfg.Geocoding.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &httpGeocoder{
		endpoint: cfg.Geocoding.Endpoint,
		apiKey:   cfg.Geocoding.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Geocode resolves an address to coordinates. Only the first candidate is
// used; an empty result set yields ErrNoGeocodingResult.
func (g *httpGeocoder) Geocode(ctx context.Context, address string) (*service.Coordinates, error) {
	query := url.Values{}
	query.Set("address", address)
	query.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "build geocoding request")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "geocoding request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("geocoding endpoint returned status %d", resp.StatusCode)
	}

	var payload geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrap(err, "decode geocoding response")
	}

	if len(payload.Results) == 0 {
		return nil, service.ErrNoGeocodingResult
	}

	location := payload.Results[0].Geometry.Location

	return &service.Coordinates{
		Latitude:  location.Lat,
		Longitude: location.Lng,
	}, nil
}
