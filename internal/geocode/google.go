package geocode

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

// GoogleResolver resolves coordinates through the Google Maps geocoding API.
// Alternative to NominatimResolver, selected by configuration.
type GoogleResolver struct {
	client *maps.Client
}

func NewGoogleResolver(apiKey string) (*GoogleResolver, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleResolver{client: client}, nil
}

// Resolve returns the formatted address of the first reverse-geocode result.
func (r *GoogleResolver) Resolve(ctx context.Context, lat, lng float64) (string, error) {
	results, err := r.client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: lat, Lng: lng},
	})
	if err != nil {
		return "", fmt.Errorf("reverse geocode failed: %w", err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("reverse geocode returned no results")
	}
	return results[0].FormattedAddress, nil
}
