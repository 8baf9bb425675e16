package view

import (
	"sort"
	"strings"

	"github.com/tastemap/api-go/types"
)

// FilterState is the client-side filter set. The zero Category means "all".
type FilterState struct {
	Search      string
	OpenNowOnly bool
	MinPrice    int
	MaxPrice    int
	Category    string
}

func DefaultFilters() FilterState {
	return FilterState{MinPrice: 0, MaxPrice: 4}
}

// ViewData is the derived state fed to the plot: the filtered records and the
// sorted distinct category labels for the select control.
type ViewData struct {
	Filtered   []types.Place
	Categories []string
}

// ComputeView recomputes the derived state from scratch. Pure: no I/O, no
// stored state, safe to call on every input change.
func ComputeView(records []types.Place, filters FilterState) ViewData {
	filtered := make([]types.Place, 0, len(records))
	for _, p := range records {
		if Matches(p, filters) {
			filtered = append(filtered, p)
		}
	}
	return ViewData{
		Filtered:   filtered,
		Categories: CategoryOptions(records),
	}
}

// Matches reports whether a place passes every active filter.
func Matches(p types.Place, f FilterState) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
		return false
	}
	if f.OpenNowOnly {
		switch p.OpenNow {
		case types.OpenStatusClosed:
			return false
		case types.OpenStatusOpen, types.OpenStatusUnknown:
			// explicitly closed is the only exclusion; unknown stays
		}
	}
	if p.PriceLevel < f.MinPrice || p.PriceLevel > f.MaxPrice {
		return false
	}
	if f.Category != "" && !hasCategory(p, f.Category) {
		return false
	}
	return true
}

func hasCategory(p types.Place, category string) bool {
	for _, c := range p.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// CategoryOptions returns the distinct category labels across all records,
// sorted ascending.
func CategoryOptions(records []types.Place) []string {
	seen := make(map[string]struct{})
	options := []string{}
	for _, p := range records {
		for _, c := range p.Categories {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			options = append(options, c)
		}
	}
	sort.Strings(options)
	return options
}

// ScatterPoint is one chart point: review count on x, rating on y.
type ScatterPoint struct {
	X     int     `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
}

// ScatterPoints projects places into plain points for the chart sink.
func ScatterPoints(records []types.Place) []ScatterPoint {
	points := make([]ScatterPoint, len(records))
	for i, p := range records {
		points[i] = ScatterPoint{X: p.ReviewCount, Y: p.Rating, Label: p.Name}
	}
	return points
}
