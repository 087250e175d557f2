package view

import (
	"context"

	"lunch-roulette/internal/geo"
	"lunch-roulette/internal/panorama"
)

// LineStyle describes how a route line is stroked
type LineStyle struct {
	Weight  int
	Color   string
	Opacity float64
}

// RouteStyle is the style of the user-to-place line
var RouteStyle = LineStyle{Weight: 5, Color: "#007BFF", Opacity: 0.8}

// Overlay is something attached to the map that can be taken off again
type Overlay interface {
	Detach()
}

// Map is the subset of a map widget the view drives
type Map interface {
	SetCenter(center geo.Coordinate)
	AddMarker(position geo.Coordinate, title string) Overlay
	AddPolyline(path []geo.Coordinate, style LineStyle) Overlay
	ShowPanorama(pano panorama.Panorama)
	HidePanorama()
}

// RouteFinder builds the path drawn from the user to a place
type RouteFinder interface {
	Path(ctx context.Context, from, to geo.Coordinate) []geo.Coordinate
}

// PanoramaFinder looks up the nearest street-level panorama
type PanoramaFinder interface {
	Nearest(ctx context.Context, position geo.Coordinate, radius int) (*panorama.Panorama, error)
}

// Notifier shows notices to the user
type Notifier interface {
	Notify(notice Notice)
}

// Wheel animates a spin that lands on target; it returns once the wheel stops
type Wheel interface {
	Spin(ctx context.Context, labels []string, target int) error
}

// Random picks an index in [0, n)
type Random interface {
	Intn(n int) int
}
