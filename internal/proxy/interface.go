package proxy

import (
	"context"

	"lunch-roulette/internal/geo"
	"lunch-roulette/internal/places"
)

// SearchClient defines the interface for search proxy operations
type SearchClient interface {
	Search(ctx context.Context, center geo.Coordinate, query string, radius int) ([]places.Place, error)
}
