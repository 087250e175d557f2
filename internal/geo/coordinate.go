package geo

import (
	"fmt"
	"math"
	"strconv"
)

// Coordinate is a WGS84 latitude/longitude pair
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ParseCoordinate builds a coordinate from the string pair used by the places API
func ParseCoordinate(lat, lng string) (Coordinate, error) {
	latValue, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("invalid latitude %q: %w", lat, err)
	}

	lngValue, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("invalid longitude %q: %w", lng, err)
	}

	return Coordinate{Lat: latValue, Lng: lngValue}, nil
}

// String formats the coordinate as "lat,lng"
func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lng)
}

// DistanceKm calculates the distance between two points using Haversine formula
func DistanceKm(a, b Coordinate) float64 {
	const earthRadius = 6371 // Earth's radius in kilometers

	lat1Rad := a.Lat * math.Pi / 180
	lat2Rad := b.Lat * math.Pi / 180

	dlat := (b.Lat - a.Lat) * math.Pi / 180
	dlng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dlat/2)*math.Sin(dlat/2) + math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dlng/2)*math.Sin(dlng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadius * c
}
