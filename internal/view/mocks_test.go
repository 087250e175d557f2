package view

import (
	"context"
	"fmt"
	"sync"

	"lunch-roulette/internal/geo"
	"lunch-roulette/internal/panorama"
	"lunch-roulette/internal/places"

	"github.com/stretchr/testify/mock"
)

// MockSearchClient is a mock implementation of proxy.SearchClient
type MockSearchClient struct {
	mock.Mock
}

func (m *MockSearchClient) Search(ctx context.Context, center geo.Coordinate, query string, radius int) ([]places.Place, error) {
	args := m.Called(ctx, center, query, radius)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]places.Place), args.Error(1)
}

// MockPanoramaFinder is a mock implementation of PanoramaFinder
type MockPanoramaFinder struct {
	mock.Mock
}

func (m *MockPanoramaFinder) Nearest(ctx context.Context, position geo.Coordinate, radius int) (*panorama.Panorama, error) {
	args := m.Called(ctx, position, radius)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*panorama.Panorama), args.Error(1)
}

// recordingMap logs every call so tests can check ordering
type recordingMap struct {
	mu       sync.Mutex
	events   []string
	attached map[string]bool
	next     int
	panorama *panorama.Panorama
}

func newRecordingMap() *recordingMap {
	return &recordingMap{attached: make(map[string]bool)}
}

type recordedOverlay struct {
	m  *recordingMap
	id string
}

func (o *recordedOverlay) Detach() {
	o.m.mu.Lock()
	defer o.m.mu.Unlock()
	delete(o.m.attached, o.id)
	o.m.events = append(o.m.events, "detach "+o.id)
}

func (m *recordingMap) add(kind string) Overlay {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	id := fmt.Sprintf("%s%d", kind, m.next)
	m.attached[id] = true
	m.events = append(m.events, "attach "+id)
	return &recordedOverlay{m: m, id: id}
}

func (m *recordingMap) SetCenter(center geo.Coordinate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, "center "+center.String())
}

func (m *recordingMap) AddMarker(position geo.Coordinate, title string) Overlay {
	return m.add("marker")
}

func (m *recordingMap) AddPolyline(path []geo.Coordinate, style LineStyle) Overlay {
	return m.add("route")
}

func (m *recordingMap) ShowPanorama(pano panorama.Panorama) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panorama = &pano
}

func (m *recordingMap) HidePanorama() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panorama = nil
}

func (m *recordingMap) attachedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.attached)
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices []Notice
}

func (n *recordingNotifier) Notify(notice Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
}

func (n *recordingNotifier) kinds() []NoticeKind {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []NoticeKind
	for _, notice := range n.notices {
		out = append(out, notice.Kind)
	}
	return out
}

// gatedWheel blocks each spin until release is closed
type gatedWheel struct {
	started chan struct{}
	release chan struct{}
	labels  []string
	target  int
}

func newGatedWheel() *gatedWheel {
	return &gatedWheel{started: make(chan struct{}, 1), release: make(chan struct{})}
}

func (w *gatedWheel) Spin(ctx context.Context, labels []string, target int) error {
	w.labels = labels
	w.target = target
	w.started <- struct{}{}
	select {
	case <-w.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type instantWheel struct{}

func (instantWheel) Spin(ctx context.Context, labels []string, target int) error { return nil }

// fixedRandom always returns the same index
type fixedRandom int

func (f fixedRandom) Intn(n int) int { return int(f) % n }

type straightRouter struct{}

func (straightRouter) Path(ctx context.Context, from, to geo.Coordinate) []geo.Coordinate {
	return []geo.Coordinate{from, to}
}

func samplePlaces(n int) []places.Place {
	out := make([]places.Place, n)
	for i := range out {
		out[i] = places.Place{
			ID:   fmt.Sprintf("p%d", i),
			Name: fmt.Sprintf("식당 %d", i),
			X:    fmt.Sprintf("127.38%d", i),
			Y:    fmt.Sprintf("36.35%d", i),
		}
	}
	return out
}
