package places

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"lunch-roulette/internal/geo"
	"lunch-roulette/internal/kinesis"
)

// Common errors
var (
	ErrUpstream = errors.New("places upstream failure")
)

// SearchRequest is one proxy request: several categories around one point
type SearchRequest struct {
	RequestID  string
	Center     geo.Coordinate
	Categories []string
	Radius     int
}

// SearchService fans a category list out to the provider and merges the results
type SearchService struct {
	provider Provider
	streamer *kinesis.Streamer
}

// NewSearchService creates a new search service instance
func NewSearchService(provider Provider) *SearchService {
	return &SearchService{
		provider: provider,
	}
}

// SetKinesisStreamer sets the Kinesis streamer for search events
func (s *SearchService) SetKinesisStreamer(streamer *kinesis.Streamer) {
	s.streamer = streamer
}

// Search issues one keyword search per category, in order, and returns the
// union deduplicated by place ID. Any failed call fails the whole search.
func (s *SearchService) Search(ctx context.Context, req SearchRequest) ([]Place, error) {
	categories := req.Categories
	if len(categories) == 0 {
		categories = []string{DefaultCategory}
	}
	radius := req.Radius
	if radius <= 0 {
		radius = DefaultRadius
	}

	var all []Place
	for _, category := range categories {
		results, err := s.provider.SearchKeyword(ctx, KeywordRequest{
			Keyword: category,
			Center:  req.Center,
			Radius:  radius,
		})
		if err != nil {
			slog.Error("Places search failed",
				"request_id", req.RequestID,
				"category", category,
				"lat", req.Center.Lat,
				"lng", req.Center.Lng,
				"radius", radius,
				"error", err)
			s.streamEvent(ctx, req, categories, radius, "upstream_error", 0)
			return nil, fmt.Errorf("%w: category %q: %w", ErrUpstream, category, err)
		}
		all = append(all, results...)
	}

	unique := Dedupe(all)

	slog.Info("Places search completed",
		"request_id", req.RequestID,
		"categories", len(categories),
		"raw_results", len(all),
		"unique_results", len(unique))

	s.streamEvent(ctx, req, categories, radius, "ok", len(unique))
	return unique, nil
}

func (s *SearchService) streamEvent(ctx context.Context, req SearchRequest, categories []string, radius int, outcome string, count int) {
	if s.streamer == nil {
		return
	}

	s.streamer.StreamSearchEvent(ctx, kinesis.SearchEvent{
		RequestID:   req.RequestID,
		Outcome:     outcome,
		Categories:  categories,
		Radius:      radius,
		Lat:         req.Center.Lat,
		Lng:         req.Center.Lng,
		ResultCount: count,
	})
}
