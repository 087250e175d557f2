package places

import (
	"context"

	"lunch-roulette/internal/geo"
)

// KeywordRequest is a single keyword search around a centre point
type KeywordRequest struct {
	Keyword string
	Center  geo.Coordinate
	Radius  int // meters
}

// Provider defines the upstream keyword search used by the proxy
type Provider interface {
	SearchKeyword(ctx context.Context, req KeywordRequest) ([]Place, error)
}
