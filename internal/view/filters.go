package view

import (
	"errors"
	"slices"
	"strings"

	"lunch-roulette/internal/places"
)

// Common errors
var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownRadius   = errors.New("radius is not one of the offered distances")
)

// Categories are the food types a user can filter on, in display order
var Categories = []string{
	"한식", "중식", "일식", "양식", "아시아음식", "분식",
	"패스트푸드", "치킨", "피자", "뷔페", "카페", "술집",
}

// Distance is one selectable search radius
type Distance struct {
	Value    int    // meters
	Label    string
	WalkTime string
}

// Distances are the offered radii; 800 m is the default
var Distances = []Distance{
	{Value: 500, Label: "가까워요", WalkTime: "약 5분"},
	{Value: 800, Label: "적당해요", WalkTime: "약 10분"},
	{Value: 2000, Label: "조금 멀어요", WalkTime: "약 25분"},
}

// Filters holds the category and radius selection. The zero value is not
// usable; call NewFilters.
type Filters struct {
	selected []string
	radius   int
}

// NewFilters returns an empty category selection with the default radius
func NewFilters() *Filters {
	return &Filters{radius: places.DefaultRadius}
}

// ToggleCategory adds the category if absent, removes it otherwise
func (f *Filters) ToggleCategory(category string) error {
	if !slices.Contains(Categories, category) {
		return ErrUnknownCategory
	}

	if i := slices.Index(f.selected, category); i >= 0 {
		f.selected = slices.Delete(f.selected, i, i+1)
		return nil
	}
	f.selected = append(f.selected, category)
	return nil
}

// SelectAll selects every category, or clears the selection
func (f *Filters) SelectAll(checked bool) {
	if checked {
		f.selected = slices.Clone(Categories)
		return
	}
	f.selected = nil
}

// AllSelected reports whether every category is selected
func (f *Filters) AllSelected() bool {
	return len(f.selected) == len(Categories)
}

// Selected returns the selected categories in selection order
func (f *Filters) Selected() []string {
	return slices.Clone(f.selected)
}

// SetRadius picks one of the offered distances
func (f *Filters) SetRadius(radius int) error {
	for _, d := range Distances {
		if d.Value == radius {
			f.radius = radius
			return nil
		}
	}
	return ErrUnknownRadius
}

// Radius returns the selected radius in meters
func (f *Filters) Radius() int {
	return f.radius
}

// Query is the category string sent to the search proxy
func (f *Filters) Query() string {
	if len(f.selected) == 0 {
		return places.DefaultCategory
	}
	return strings.Join(f.selected, ",")
}
