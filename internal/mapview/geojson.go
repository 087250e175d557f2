package mapview

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"lunch-roulette/internal/geo"
	"lunch-roulette/internal/panorama"
	"lunch-roulette/internal/view"

	geojson "github.com/paulmach/go.geojson"
)

// GeoJSONMap is a map surface that renders to a GeoJSON feature collection.
// Styling follows the simplestyle property names so the file can be dropped
// into geojson.io or any viewer that understands them.
type GeoJSONMap struct {
	mu       sync.Mutex
	center   geo.Coordinate
	zoom     int
	nextID   int
	overlays map[int]*geojson.Feature
	order    []int
	pano     *panorama.Panorama
}

// NewGeoJSONMap creates an empty map at the given zoom level
func NewGeoJSONMap(zoom int) *GeoJSONMap {
	return &GeoJSONMap{
		zoom:     zoom,
		overlays: make(map[int]*geojson.Feature),
	}
}

type featureOverlay struct {
	m  *GeoJSONMap
	id int
}

func (o *featureOverlay) Detach() {
	o.m.remove(o.id)
}

func (m *GeoJSONMap) SetCenter(center geo.Coordinate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.center = center
}

func (m *GeoJSONMap) AddMarker(position geo.Coordinate, title string) view.Overlay {
	f := geojson.NewPointFeature(lngLat(position))
	f.SetProperty("role", "recommendation")
	f.SetProperty("title", title)
	f.SetProperty("marker-color", "#FF5A5F")
	return m.add(f)
}

func (m *GeoJSONMap) AddPolyline(path []geo.Coordinate, style view.LineStyle) view.Overlay {
	coords := make([][]float64, len(path))
	for i, p := range path {
		coords[i] = lngLat(p)
	}

	f := geojson.NewLineStringFeature(coords)
	f.SetProperty("role", "route")
	f.SetProperty("stroke", style.Color)
	f.SetProperty("stroke-width", style.Weight)
	f.SetProperty("stroke-opacity", style.Opacity)
	return m.add(f)
}

func (m *GeoJSONMap) ShowPanorama(pano panorama.Panorama) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pano = &pano
}

func (m *GeoJSONMap) HidePanorama() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pano = nil
}

// Overlays returns the number of attached markers and lines
func (m *GeoJSONMap) Overlays() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.order)
}

// Render builds the feature collection for the current map state
func (m *GeoJSONMap) Render() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fc := geojson.NewFeatureCollection()

	center := geojson.NewPointFeature(lngLat(m.center))
	center.SetProperty("role", "center")
	center.SetProperty("zoom", m.zoom)
	fc.AddFeature(center)

	for _, id := range m.order {
		fc.AddFeature(m.overlays[id])
	}

	if m.pano != nil {
		f := geojson.NewPointFeature(lngLat(m.pano.Position))
		f.SetProperty("role", "panorama")
		f.SetProperty("pano_id", m.pano.ID)
		f.SetProperty("image_url", m.pano.ImageURL)
		fc.AddFeature(f)
	}

	return fc.MarshalJSON()
}

// WriteFile renders the map to path
func (m *GeoJSONMap) WriteFile(path string) error {
	data, err := m.Render()
	if err != nil {
		return fmt.Errorf("failed to render map: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write map: %w", err)
	}

	slog.Info("Map written", "path", path, "overlays", m.Overlays())
	return nil
}

func (m *GeoJSONMap) add(f *geojson.Feature) view.Overlay {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	id := m.nextID
	f.ID = id
	m.overlays[id] = f
	m.order = append(m.order, id)
	return &featureOverlay{m: m, id: id}
}

func (m *GeoJSONMap) remove(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.overlays[id]; !ok {
		return
	}
	delete(m.overlays, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// GeoJSON positions are longitude first
func lngLat(c geo.Coordinate) []float64 {
	return []float64{c.Lng, c.Lat}
}
