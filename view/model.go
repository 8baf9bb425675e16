package view

import (
	"context"
	"log"

	"github.com/tastemap/api-go/types"
)

// FetchFunc loads the source records, typically from the places endpoint.
type FetchFunc func(ctx context.Context) ([]types.Place, error)

// PlotModel holds the plot's source list and filter state. Data is fetched at
// most once; a failed fetch leaves the list empty and is only logged, so the
// view degrades to an empty plot instead of an error screen.
//
// The model is single-threaded like the UI that owns it; callers must not
// share one instance across goroutines.
type PlotModel struct {
	fetch      FetchFunc
	records    []types.Place
	categories []string
	filters    FilterState
	loading    bool
	fetched    bool
	err        error
}

// NewPlotModel builds a model around fetch. When initial records are
// supplied the fetch is skipped entirely.
func NewPlotModel(fetch FetchFunc, initial []types.Place) *PlotModel {
	m := &PlotModel{
		fetch:   fetch,
		filters: DefaultFilters(),
	}
	if initial != nil {
		m.setRecords(initial)
	}
	return m
}

// EnsureData runs the one-time fetch. Subsequent calls are no-ops regardless
// of the first outcome; filter changes never re-trigger it.
func (m *PlotModel) EnsureData(ctx context.Context) {
	if m.fetched {
		return
	}
	m.fetched = true
	m.loading = true
	records, err := m.fetch(ctx)
	m.loading = false
	if err != nil {
		log.Printf("plot data fetch failed: %v", err)
		m.err = err
		m.setRecords([]types.Place{})
		return
	}
	m.setRecords(records)
}

func (m *PlotModel) setRecords(records []types.Place) {
	m.records = records
	m.categories = CategoryOptions(records)
	m.fetched = true
}

func (m *PlotModel) Loading() bool { return m.loading }

// Err returns the recorded fetch failure, if any.
func (m *PlotModel) Err() error { return m.err }

func (m *PlotModel) Filters() FilterState { return m.filters }

func (m *PlotModel) SetFilters(f FilterState) { m.filters = f }

func (m *PlotModel) SetSearch(search string) { m.filters.Search = search }

func (m *PlotModel) SetOpenNowOnly(only bool) { m.filters.OpenNowOnly = only }

func (m *PlotModel) SetPriceRange(min, max int) {
	m.filters.MinPrice = min
	m.filters.MaxPrice = max
}

// SetCategory selects one category label; the empty string selects all.
func (m *PlotModel) SetCategory(category string) { m.filters.Category = category }

// Categories returns the select options, derived once per source-list change.
func (m *PlotModel) Categories() []string { return m.categories }

// View recomputes the filtered list against the current filters.
func (m *PlotModel) View() ViewData {
	return ComputeView(m.records, m.filters)
}

// Points returns the scatter points for the currently filtered records.
func (m *PlotModel) Points() []ScatterPoint {
	return ScatterPoints(m.View().Filtered)
}
