package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"lunch-roulette/internal/geo"
	"lunch-roulette/internal/panorama"
	"lunch-roulette/internal/places"
	"lunch-roulette/internal/proxy"
)

// Common errors
var (
	ErrBusy                = errors.New("a recommendation is already loading")
	ErrMapNotReady         = errors.New("map is not ready")
	ErrLocationUnavailable = errors.New("current location unavailable")
	ErrFetchFailed         = errors.New("failed to fetch places")
	ErrNoWheel             = errors.New("no roulette wheel is open")
	ErrSpinInProgress      = errors.New("wheel is already spinning")
	ErrNoRecommendation    = errors.New("no recommendation to show")
	ErrPanoramaUnavailable = errors.New("panorama lookup is not configured")
	ErrStale               = errors.New("result belongs to a superseded request")
)

// DefaultCenter is where the map starts before a location is known
var DefaultCenter = geo.Coordinate{Lat: 36.3504, Lng: 127.3845}

// DefaultZoomLevel is the initial map zoom
const DefaultZoomLevel = 3

// PanoramaRadius is how far from a place to look for a panorama, in meters
const PanoramaRadius = 50

// Dependencies are the collaborators a View drives. Panorama and Random are
// optional.
type Dependencies struct {
	Locator  geo.Locator
	Search   proxy.SearchClient
	Router   RouteFinder
	Panorama PanoramaFinder
	Notifier Notifier
	Wheel    Wheel
	Random   Random
}

// View runs the recommend flow: locate the user, fetch nearby places, pick
// one directly or through a roulette wheel, then show it on the map.
type View struct {
	locator  geo.Locator
	search   proxy.SearchClient
	router   RouteFinder
	panorama PanoramaFinder
	notifier Notifier
	wheel    Wheel
	random   Random

	mu         sync.Mutex
	mapView    Map
	filters    *Filters
	session    Session
	generation uint64
	marker     overlaySlot
	route      overlaySlot
}

// New creates a View with no map attached
func New(deps Dependencies) *View {
	random := deps.Random
	if random == nil {
		random = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &View{
		locator:  deps.Locator,
		search:   deps.Search,
		router:   deps.Router,
		panorama: deps.Panorama,
		notifier: deps.Notifier,
		wheel:    deps.Wheel,
		random:   random,
		filters:  NewFilters(),
	}
}

// AttachMap marks the map ready and centres it on the default location
func (v *View) AttachMap(m Map) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.mapView = m
	m.SetCenter(DefaultCenter)
}

// Session returns a copy of the current state
func (v *View) Session() Session {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.session.clone()
}

// ToggleCategory flips one category in the filter selection
func (v *View) ToggleCategory(category string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filters.ToggleCategory(category)
}

// SelectAllCategories selects or clears every category
func (v *View) SelectAllCategories(checked bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filters.SelectAll(checked)
}

// SetRadius picks the search radius
func (v *View) SetRadius(radius int) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filters.SetRadius(radius)
}

// Query returns the category query and radius the next request will use
func (v *View) Query() (string, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filters.Query(), v.filters.Radius()
}

// Recommend runs one recommend flow. Failures are reported to the notifier
// as well as returned. Loading is always cleared on return.
func (v *View) Recommend(ctx context.Context, mode Mode) error {
	gen, query, radius, err := v.begin()
	if err != nil {
		return err
	}
	defer v.finish(gen)

	logger := slog.With("mode", string(mode), "query", query, "radius", radius)

	position, err := v.locator.CurrentPosition(ctx)
	if err != nil {
		logger.Warn("Failed to get current location", "error", err)
		v.fail(NoticeLocationFailed)
		return fmt.Errorf("%w: %w", ErrLocationUnavailable, err)
	}

	v.mu.Lock()
	v.session.UserLocation = &position
	v.session.State = StateFetching
	if v.mapView != nil {
		v.mapView.SetCenter(position)
	}
	v.mu.Unlock()

	results, err := v.search.Search(ctx, position, query, radius)
	if err != nil {
		logger.Error("Failed to fetch places", "error", err)
		v.fail(NoticeFetchFailed)
		return fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	logger.Info("Fetched places", "count", len(results))

	if mode == ModeRoulette {
		return v.openWheel(results)
	}
	return v.pickSingle(ctx, gen, position, results)
}

// Spin spins the open wheel and shows the place it lands on. Only one spin
// may run at a time.
func (v *View) Spin(ctx context.Context) error {
	v.mu.Lock()
	if !v.session.WheelOpen || len(v.session.Candidates) == 0 {
		v.mu.Unlock()
		return ErrNoWheel
	}
	if v.session.Spinning {
		v.mu.Unlock()
		return ErrSpinInProgress
	}

	gen := v.generation
	candidates := v.session.Candidates
	target := v.random.Intn(len(candidates))
	v.session.Spinning = true
	v.mu.Unlock()

	labels := make([]string, len(candidates))
	for i, c := range candidates {
		labels[i] = c.Name
	}

	if err := v.wheel.Spin(ctx, labels, target); err != nil {
		v.mu.Lock()
		if gen == v.generation {
			v.session.Spinning = false
		}
		v.mu.Unlock()
		return fmt.Errorf("spin: %w", err)
	}

	v.mu.Lock()
	if gen != v.generation {
		v.mu.Unlock()
		slog.Debug("Discarding stale spin result", "generation", gen)
		return ErrStale
	}
	winner := candidates[target]
	from := v.session.UserLocation
	v.session.Spinning = false
	v.session.WheelOpen = false
	v.mu.Unlock()

	slog.Info("Wheel stopped", "place_id", winner.ID, "place_name", winner.Name, "index", target)

	if from == nil {
		return v.present(ctx, gen, winner, nil)
	}
	origin := *from
	return v.present(ctx, gen, winner, &origin)
}

// CloseWheel dismisses the wheel without picking
func (v *View) CloseWheel() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.session.Spinning {
		return ErrSpinInProgress
	}
	v.session.WheelOpen = false
	v.session.Candidates = nil
	if v.session.State == StatePickingRoulette {
		v.session.State = StateIdle
	}
	return nil
}

// SetPanorama shows or hides the street-level panorama for the current
// recommendation. A place with no panorama nearby produces a notice.
func (v *View) SetPanorama(ctx context.Context, visible bool) error {
	v.mu.Lock()
	if !visible {
		v.session.PanoramaVisible = false
		if v.mapView != nil {
			v.mapView.HidePanorama()
		}
		v.mu.Unlock()
		return nil
	}

	rec := v.session.Recommendation
	gen := v.generation
	v.mu.Unlock()

	if rec == nil {
		return ErrNoRecommendation
	}
	if v.panorama == nil {
		return ErrPanoramaUnavailable
	}

	position, err := rec.Coordinate()
	if err != nil {
		return fmt.Errorf("recommendation position: %w", err)
	}

	pano, err := v.panorama.Nearest(ctx, position, PanoramaRadius)
	if errors.Is(err, panorama.ErrNoPanorama) {
		v.notify(newNotice(NoticeNoPanorama))
		return nil
	}
	if err != nil {
		slog.Error("Failed to look up panorama", "place_id", rec.ID, "error", err)
		return fmt.Errorf("panorama lookup: %w", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.generation {
		return ErrStale
	}
	v.session.PanoramaVisible = true
	if v.mapView != nil {
		v.mapView.ShowPanorama(*pano)
	}
	return nil
}

// begin claims the loading gate and resets the previous result
func (v *View) begin() (uint64, string, int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.session.Loading {
		return 0, "", 0, ErrBusy
	}
	if v.mapView == nil {
		return 0, "", 0, ErrMapNotReady
	}

	v.generation++
	v.marker.Clear()
	v.route.Clear()
	if v.session.PanoramaVisible {
		v.mapView.HidePanorama()
	}

	v.session = Session{
		State:        StateLocating,
		Loading:      true,
		UserLocation: v.session.UserLocation,
	}
	return v.generation, v.filters.Query(), v.filters.Radius(), nil
}

func (v *View) finish(gen uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if gen == v.generation {
		v.session.Loading = false
	}
}

func (v *View) fail(kind NoticeKind) {
	v.mu.Lock()
	v.session.State = StateIdle
	v.mu.Unlock()
	v.notify(newNotice(kind))
}

func (v *View) notify(notice Notice) {
	if v.notifier != nil {
		v.notifier.Notify(notice)
	}
}

func (v *View) pickSingle(ctx context.Context, gen uint64, from geo.Coordinate, results []places.Place) error {
	v.mu.Lock()
	v.session.State = StatePickingSingle
	if len(results) == 0 {
		v.session.State = StateIdle
		v.mu.Unlock()
		v.notify(newNotice(NoticeNotFound))
		return nil
	}
	pick := results[v.random.Intn(len(results))]
	v.mu.Unlock()

	slog.Info("Picked place", "place_id", pick.ID, "place_name", pick.Name, "candidates", len(results))
	return v.present(ctx, gen, pick, &from)
}

func (v *View) openWheel(results []places.Place) error {
	v.mu.Lock()
	if len(results) < WheelSize {
		v.session.State = StateIdle
		v.mu.Unlock()
		v.notify(newNotice(NoticeInsufficient))
		return nil
	}

	v.session.State = StatePickingRoulette
	v.session.Candidates = append([]places.Place(nil), results[:WheelSize]...)
	v.session.WheelOpen = true
	v.session.Spinning = false
	v.mu.Unlock()
	return nil
}

// present records the place and draws its marker and route
func (v *View) present(ctx context.Context, gen uint64, place places.Place, from *geo.Coordinate) error {
	var path []geo.Coordinate
	position, err := place.Coordinate()
	if err != nil {
		slog.Warn("Place has unusable coordinates", "place_id", place.ID, "error", err)
	} else if from != nil && v.router != nil {
		path = v.router.Path(ctx, *from, position)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.generation {
		return ErrStale
	}

	v.session.Recommendation = &place
	v.session.State = StateDisplaying

	v.marker.Clear()
	v.route.Clear()
	if v.mapView == nil || err != nil {
		return nil
	}

	v.marker.Set(v.mapView.AddMarker(position, place.Name))
	if len(path) >= 2 {
		v.route.Set(v.mapView.AddPolyline(path, RouteStyle))
	}
	return nil
}
