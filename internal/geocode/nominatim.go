package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// nominatimAddress is the subset of the reverse-geocode response we compose
// a display name from. City and Town are alternatives; the rest are optional.
type nominatimAddress struct {
	Road    string `json:"road"`
	City    string `json:"city"`
	Town    string `json:"town"`
	State   string `json:"state"`
	Country string `json:"country"`
}

type nominatimResponse struct {
	Address *nominatimAddress `json:"address"`
}

// display joins the known address parts into a single label. An entirely
// empty address yields "".
func (a *nominatimAddress) display() string {
	city := a.City
	if city == "" {
		city = a.Town
	}

	parts := make([]string, 0, 4)
	for _, p := range []string{a.Road, city, a.State, a.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// NominatimResolver resolves coordinates to a place name through a
// Nominatim-compatible reverse geocoding endpoint. Any transport, status or
// decoding failure is returned as an error; the caller decides the fallback.
type NominatimResolver struct {
	baseURL    string
	httpClient *http.Client
}

func NewNominatimResolver(baseURL string, timeout time.Duration) *NominatimResolver {
	return &NominatimResolver{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Resolve performs the reverse lookup and composes a display name from the
// road, city (or town), state and country parts.
func (r *NominatimResolver) Resolve(ctx context.Context, lat, lng float64) (string, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create reverse geocode request: %w", err)
	}
	// Nominatim's usage policy requires an identifying agent.
	req.Header.Set("User-Agent", "emergency-reporting-system")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("reverse geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reverse geocode returned status %d", resp.StatusCode)
	}

	var payload nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode reverse geocode response: %w", err)
	}

	if payload.Address == nil {
		return "", fmt.Errorf("reverse geocode response has no address")
	}
	name := payload.Address.display()
	if name == "" {
		return "", fmt.Errorf("reverse geocode response has an empty address")
	}
	return name, nil
}
