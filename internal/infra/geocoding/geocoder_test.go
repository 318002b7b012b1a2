package geocoding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifeline/config"
	"lifeline/internal/domain/service"
	"lifeline/internal/errors"
)

func newTestGeocoder(t *testing.T, handler http.HandlerFunc) service.Geocoder {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		Geocoding: &config.GeocodingConfig{
			Endpoint: server.URL,
			APIKey:   "test-key",
		},
	}

	return NewGeocoder(cfg)
}

func TestGeocode(t *testing.T) {
	geocoder := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1 Main St, Springfield", r.URL.Query().Get("address"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"results": [
				{"geometry": {"location": {"lat": 40.7128, "lng": -74.006}}},
				{"geometry": {"location": {"lat": 0, "lng": 0}}}
			]
		}`))
	})

	coords, err := geocoder.Geocode(context.Background(), "1 Main St, Springfield")
	require.NoError(t, err)

	// Only the first candidate is used.
	assert.InDelta(t, 40.7128, coords.Latitude, 1e-9)
	assert.InDelta(t, -74.006, coords.Longitude, 1e-9)
}

func TestGeocode_NoResults(t *testing.T) {
	geocoder := newTestGeocoder(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	})

	_, err := geocoder.Geocode(context.Background(), "nowhere at all")
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrNoGeocodingResult))
}

func TestGeocode_ServerError(t *testing.T) {
	geocoder := newTestGeocoder(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := geocoder.Geocode(context.Background(), "1 Main St")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestNewGeocoder_Unconfigured(t *testing.T) {
	assert.Nil(t, NewGeocoder(&config.Config{}))
}
