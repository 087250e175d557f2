package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Common errors
var (
	ErrPositionUnavailable = errors.New("position unavailable")
	ErrPermissionDenied    = errors.New("location permission denied")
)

// Locator resolves the user's current position. One call, one answer.
type Locator interface {
	CurrentPosition(ctx context.Context) (Coordinate, error)
}

// FixedLocator always answers with a configured coordinate
type FixedLocator struct {
	position *Coordinate
}

// NewFixedLocator creates a locator pinned to the given coordinate.
// A nil position behaves like a device with no location fix.
func NewFixedLocator(position *Coordinate) *FixedLocator {
	return &FixedLocator{position: position}
}

func (f *FixedLocator) CurrentPosition(ctx context.Context) (Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return Coordinate{}, err
	}
	if f.position == nil {
		return Coordinate{}, ErrPositionUnavailable
	}
	return *f.position, nil
}

// DeniedLocator models a user who refused the location prompt
type DeniedLocator struct{}

func (DeniedLocator) CurrentPosition(ctx context.Context) (Coordinate, error) {
	return Coordinate{}, ErrPermissionDenied
}

// ipLookupResponse mirrors the ip-api.com JSON payload
type ipLookupResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// IPLocator approximates the position from the caller's public IP address
type IPLocator struct {
	baseURL    string
	httpClient *http.Client
}

// NewIPLocator creates an IP geolocation client
func NewIPLocator(baseURL string) *IPLocator {
	return &IPLocator{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (l *IPLocator) CurrentPosition(ctx context.Context) (Coordinate, error) {
	url := fmt.Sprintf("%s/json?fields=status,message,lat,lon", l.baseURL)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return Coordinate{}, err
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: %v", ErrPositionUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Coordinate{}, fmt.Errorf("%w: ip lookup returned status %d", ErrPositionUnavailable, resp.StatusCode)
	}

	var lookup ipLookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&lookup); err != nil {
		return Coordinate{}, fmt.Errorf("%w: %v", ErrPositionUnavailable, err)
	}

	if lookup.Status != "success" {
		return Coordinate{}, fmt.Errorf("%w: %s", ErrPositionUnavailable, lookup.Message)
	}

	return Coordinate{Lat: lookup.Lat, Lng: lookup.Lon}, nil
}
