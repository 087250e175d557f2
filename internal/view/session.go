package view

import (
	"slices"

	"lunch-roulette/internal/geo"
	"lunch-roulette/internal/places"
)

// State is where the view is in the recommend flow
type State int

const (
	StateIdle State = iota
	StateLocating
	StateFetching
	StatePickingSingle
	StatePickingRoulette
	StateDisplaying
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLocating:
		return "locating"
	case StateFetching:
		return "fetching"
	case StatePickingSingle:
		return "picking_single"
	case StatePickingRoulette:
		return "picking_roulette"
	case StateDisplaying:
		return "displaying"
	default:
		return "unknown"
	}
}

// Mode selects how a recommendation is picked
type Mode string

const (
	ModeSingle   Mode = "single"
	ModeRoulette Mode = "roulette"
)

// WheelSize is how many candidates a roulette wheel holds
const WheelSize = 5

// Session is a point-in-time copy of the view's state
type Session struct {
	State           State
	Loading         bool
	UserLocation    *geo.Coordinate
	Recommendation  *places.Place
	Candidates      []places.Place
	WheelOpen       bool
	Spinning        bool
	PanoramaVisible bool
}

func (s Session) clone() Session {
	out := s
	out.Candidates = slices.Clone(s.Candidates)
	if s.UserLocation != nil {
		loc := *s.UserLocation
		out.UserLocation = &loc
	}
	if s.Recommendation != nil {
		rec := *s.Recommendation
		out.Recommendation = &rec
	}
	return out
}
