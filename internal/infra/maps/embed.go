// Package maps builds embed URLs for the external map widget.
package maps

import (
	"fmt"
	"net/url"

	"lifeline/config"
	"lifeline/internal/domain/service"
)

const defaultEmbedBaseURL = "https://www.google.com/maps/embed/v1"

type embedService struct {
	baseURL string
	apiKey  string
}

// NewMapService builds the embed URL constructor. Returns nil when no maps
// key is configured; responses then omit embed URLs.
func NewMapService(cfg *config.Config) service.MapService {
	if cfg.Maps == nil || cfg.Maps.APIKey == "" {
		return nil
	}

	baseURL := cfg.Maps.EmbedBaseURL
	if baseURL == "" {
		baseURL = defaultEmbedBaseURL
	}

	return &embedService{
		baseURL: baseURL,
		apiKey:  cfg.Maps.APIKey,
	}
}

// EmbedURLForPlace returns an embed URL centered on a free-text query.
func (s *embedService) EmbedURLForPlace(query string) string {
	params := url.Values{}
	params.Set("key", s.apiKey)
	params.Set("q", query)

	return s.baseURL + "/place?" + params.Encode()
}

// EmbedURLForCoordinates returns an embed URL with a marker at the point.
func (s *embedService) EmbedURLForCoordinates(lat, lng float64) string {
	params := url.Values{}
	params.Set("key", s.apiKey)
	params.Set("q", fmt.Sprintf("%f,%f", lat, lng))

	return s.baseURL + "/place?" + params.Encode()
}
