package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"lunch-roulette/internal/geo"
)

// Mode selects how the route line is drawn
type Mode string

const (
	ModeStraight Mode = "straight"
	ModeOSRM     Mode = "osrm"
)

// DefaultOSRMBaseURL is the public OSRM demo server
const DefaultOSRMBaseURL = "http://router.project-osrm.org"

// walkingSpeed in meters per second, about 80 m a minute
const walkingSpeed = 1.33

// Route is the line from the user to the recommended place
type Route struct {
	Points   []geo.Coordinate `json:"points"`
	Distance float64          `json:"distance"` // in meters
	Duration float64          `json:"duration"` // in seconds
}

// OSRMResponse represents the response from OSRM API
type OSRMResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

// RoutingService handles route calculations
type RoutingService struct {
	mode    Mode
	baseURL string
	client  *http.Client
}

// NewRoutingService creates a new routing service
func NewRoutingService(mode Mode, baseURL string) *RoutingService {
	if mode != ModeOSRM {
		mode = ModeStraight
	}
	return &RoutingService{
		mode:    mode,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetRoute returns the route line between two points. In OSRM mode any
// routing failure degrades to the straight line.
func (r *RoutingService) GetRoute(ctx context.Context, from, to geo.Coordinate) *Route {
	if r.mode == ModeStraight {
		return createStraightLineRoute(from, to)
	}

	url := fmt.Sprintf("%s/route/v1/foot/%f,%f;%f,%f?overview=full&geometries=geojson",
		r.baseURL, from.Lng, from.Lat, to.Lng, to.Lat)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		slog.Error("OSRM request build failed, using straight-line fallback", "error", err)
		return createStraightLineRoute(from, to)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		slog.Error("OSRM routing API failed, using straight-line fallback",
			"error", err,
			"start_lat", from.Lat,
			"start_lng", from.Lng,
			"end_lat", to.Lat,
			"end_lng", to.Lng)
		return createStraightLineRoute(from, to)
	}
	defer resp.Body.Close()

	var osrmResp OSRMResponse
	if err := json.NewDecoder(resp.Body).Decode(&osrmResp); err != nil {
		slog.Error("OSRM response parsing failed, using straight-line fallback",
			"error", err,
			"status_code", resp.StatusCode)
		return createStraightLineRoute(from, to)
	}

	if len(osrmResp.Routes) == 0 || len(osrmResp.Routes[0].Geometry.Coordinates) < 2 {
		slog.Error("OSRM returned no routes, using straight-line fallback",
			"osrm_code", osrmResp.Code,
			"start_lat", from.Lat,
			"start_lng", from.Lng,
			"end_lat", to.Lat,
			"end_lng", to.Lng)
		return createStraightLineRoute(from, to)
	}

	route := osrmResp.Routes[0]
	points := make([]geo.Coordinate, 0, len(route.Geometry.Coordinates))
	for _, coord := range route.Geometry.Coordinates {
		if len(coord) < 2 {
			continue
		}
		points = append(points, geo.Coordinate{
			Lat: coord[1], // OSRM returns [lng, lat]
			Lng: coord[0],
		})
	}

	slog.Info("OSRM routing successful",
		"distance_m", route.Distance,
		"duration_s", route.Duration,
		"waypoints", len(points))

	return &Route{
		Points:   points,
		Distance: route.Distance,
		Duration: route.Duration,
	}
}

// Path returns just the route points
func (r *RoutingService) Path(ctx context.Context, from, to geo.Coordinate) []geo.Coordinate {
	return r.GetRoute(ctx, from, to).Points
}

// createStraightLineRoute joins the two points directly
func createStraightLineRoute(from, to geo.Coordinate) *Route {
	distance := geo.DistanceKm(from, to) * 1000 // convert to meters

	return &Route{
		Points:   []geo.Coordinate{from, to},
		Distance: distance,
		Duration: distance / walkingSpeed,
	}
}
