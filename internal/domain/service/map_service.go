package service

// MapService builds embed URLs for the external map widget. The widget
// itself is a black box; this service only constructs the URL clients load.
type MapService interface {
	// EmbedURLForPlace returns an embed URL centered on a free-text query.
	EmbedURLForPlace(query string) string
	// EmbedURLForCoordinates returns an embed URL with a marker at the point.
	EmbedURLForCoordinates(lat, lng float64) string
}
