package places

import (
	"strings"

	"lunch-roulette/internal/geo"
)

const (
	// DefaultCategory is searched when the caller names no category
	DefaultCategory = "음식점"
	// DefaultRadius is the search radius in meters when none is given
	DefaultRadius = 800
)

// Place represents a point of interest returned by the places API.
// X is the longitude and Y the latitude, both kept as the upstream's numeric strings.
type Place struct {
	ID          string `json:"id"`
	Name        string `json:"place_name"`
	Category    string `json:"category_name"`
	RoadAddress string `json:"road_address_name"`
	X           string `json:"x"`
	Y           string `json:"y"`
	URL         string `json:"place_url"`
}

// Coordinate parses the place position
func (p Place) Coordinate() (geo.Coordinate, error) {
	return geo.ParseCoordinate(p.Y, p.X)
}

// ParseCategories splits a comma-separated category list. Blank entries are
// dropped; an empty list yields the default category.
func ParseCategories(query string) []string {
	var categories []string
	for _, part := range strings.Split(query, ",") {
		if category := strings.TrimSpace(part); category != "" {
			categories = append(categories, category)
		}
	}

	if len(categories) == 0 {
		return []string{DefaultCategory}
	}
	return categories
}

// Dedupe removes places sharing an ID, keeping the first occurrence in order
func Dedupe(results []Place) []Place {
	seen := make(map[string]struct{}, len(results))
	unique := make([]Place, 0, len(results))

	for _, place := range results {
		if _, exists := seen[place.ID]; exists {
			continue
		}
		seen[place.ID] = struct{}{}
		unique = append(unique, place)
	}

	return unique
}
