package places

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"googlemaps.github.io/maps"
)

var errMissingGoogleKey = errors.New("google maps API key not configured")

// nearbySearcher is the subset of the Google Maps client that we rely on
type nearbySearcher interface {
	NearbySearch(ctx context.Context, r *maps.NearbySearchRequest) (maps.PlacesSearchResponse, error)
}

// GoogleProvider answers keyword searches from the Google Places nearby search
type GoogleProvider struct {
	client   nearbySearcher
	language string
}

// NewGoogleProvider creates a provider backed by the Google Maps client.
// Without a key every search fails, the same way a rejected upstream call would.
func NewGoogleProvider(apiKey, language string, opts ...maps.ClientOption) *GoogleProvider {
	provider := &GoogleProvider{language: language}
	if apiKey == "" {
		slog.Warn("Google Maps API key not set, searches will fail")
		return provider
	}

	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		slog.Error("Failed to create Google Maps client", "error", err)
		return provider
	}

	provider.client = client
	return provider
}

// SearchKeyword runs one nearby search with the keyword
func (g *GoogleProvider) SearchKeyword(ctx context.Context, req KeywordRequest) ([]Place, error) {
	if g.client == nil {
		return nil, errMissingGoogleKey
	}

	resp, err := g.client.NearbySearch(ctx, &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: req.Center.Lat, Lng: req.Center.Lng},
		Radius:   uint(req.Radius),
		Keyword:  req.Keyword,
		Language: g.language,
	})
	if err != nil {
		return nil, fmt.Errorf("google nearby search failed: %w", err)
	}

	results := make([]Place, 0, len(resp.Results))
	for _, r := range resp.Results {
		results = append(results, fromGoogleResult(r))
	}

	return results, nil
}

func fromGoogleResult(r maps.PlacesSearchResult) Place {
	address := r.Vicinity
	if address == "" {
		address = r.FormattedAddress
	}

	return Place{
		ID:          r.PlaceID,
		Name:        r.Name,
		Category:    strings.Join(r.Types, " > "),
		RoadAddress: address,
		X:           strconv.FormatFloat(r.Geometry.Location.Lng, 'f', -1, 64),
		Y:           strconv.FormatFloat(r.Geometry.Location.Lat, 'f', -1, 64),
		URL:         "https://www.google.com/maps/place/?q=place_id:" + r.PlaceID,
	}
}
