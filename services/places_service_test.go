package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tastemap/api-go/cache"
	"github.com/tastemap/api-go/config"
	"github.com/tastemap/api-go/types"
)

func boolPtr(b bool) *bool        { return &b }
func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }

func testConfig(searchURL string) *config.Config {
	return &config.Config{
		SearchURL:      searchURL,
		CacheTTL:       12 * time.Hour,
		RequestTimeout: 5 * time.Second,
		LanguageCode:   "en",
		RegionCode:     "US",
	}
}

func newTestService(t *testing.T, handler http.Handler, now func() time.Time) (*PlacesService, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	placeCache := cache.New(12*time.Hour, cache.WithClock(now))
	return NewPlacesService(placeCache, testConfig(server.URL)), server
}

func searchResponse(places ...types.RawPlace) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(types.SearchTextResponse{Places: places})
	}
}

func TestFetchPlacesSendsSearchRequest(t *testing.T) {
	var gotReq types.SearchTextRequest
	var gotAPIKey, gotFieldMask string

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("X-Goog-Api-Key")
		gotFieldMask = r.Header.Get("X-Goog-FieldMask")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode upstream request: %v", err)
		}
		searchResponse()(w, r)
	})

	svc, _ := newTestService(t, handler, time.Now)

	t.Setenv("PLACES_API_KEY", "test-key")

	_, err := svc.FetchPlaces(context.Background(), types.SearchFilters{
		Query: "sushi", MinPrice: 0, MaxPrice: 4,
	})
	if err != nil {
		t.Fatalf("FetchPlaces: %v", err)
	}

	if gotReq.TextQuery != "sushi" {
		t.Errorf("textQuery = %q, want %q", gotReq.TextQuery, "sushi")
	}
	if gotReq.MaxResultCount != 50 {
		t.Errorf("maxResultCount = %d, want 50", gotReq.MaxResultCount)
	}
	if gotReq.IncludedType != "restaurant" {
		t.Errorf("includedType = %q, want default %q", gotReq.IncludedType, "restaurant")
	}
	if gotAPIKey != "test-key" {
		t.Errorf("api key header = %q, want %q", gotAPIKey, "test-key")
	}
	if gotFieldMask == "" {
		t.Error("field mask header not sent")
	}
}

func TestNormalizeDefaults(t *testing.T) {
	raw := types.RawPlace{
		ID:             "p1",
		Name:           "places/p1",
		DisplayName:    &types.LocalizedText{Text: "Bare Bones BBQ"},
		PriceLevel:     intPtr(7), // out of range
		BusinessStatus: "OPERATIONAL",
	}

	places := normalize([]types.RawPlace{raw})
	if len(places) != 1 {
		t.Fatalf("got %d places, want 1", len(places))
	}

	p := places[0]
	if p.Rating != 0 {
		t.Errorf("rating = %v, want 0", p.Rating)
	}
	if p.ReviewCount != 0 {
		t.Errorf("reviewCount = %d, want 0", p.ReviewCount)
	}
	if p.PriceLevel != 0 {
		t.Errorf("priceLevel = %d, want 0 for out-of-range input", p.PriceLevel)
	}
	if p.Categories == nil || len(p.Categories) != 0 {
		t.Errorf("categories = %v, want empty set", p.Categories)
	}
	if p.OpenNow != types.OpenStatusUnknown {
		t.Errorf("openNow = %v, want unknown", p.OpenNow)
	}
	if p.ExternalID != "places/p1" {
		t.Errorf("externalId = %q, want resource name", p.ExternalID)
	}
}

func TestNormalizeDropsNonOperating(t *testing.T) {
	places := normalize([]types.RawPlace{
		{ID: "a", BusinessStatus: "OPERATIONAL"},
		{ID: "b", BusinessStatus: "CLOSED_PERMANENTLY"},
		{ID: "c", BusinessStatus: "CLOSED_TEMPORARILY"},
		{ID: "d"},
	})
	if len(places) != 1 || places[0].ID != "a" {
		t.Errorf("got %+v, want only the operational record", places)
	}
}

func TestApplyFilters(t *testing.T) {
	list := []types.Place{
		{ID: "cheap", PriceLevel: 0},
		{ID: "low", PriceLevel: 1},
		{ID: "high", PriceLevel: 3},
		{ID: "top", PriceLevel: 4},
		{ID: "closed", PriceLevel: 2, OpenNow: types.OpenStatusClosed},
		{ID: "open", PriceLevel: 2, OpenNow: types.OpenStatusOpen},
		{ID: "unknown", PriceLevel: 2},
	}

	tests := []struct {
		name    string
		filters types.SearchFilters
		wantIDs []string
	}{
		{
			"price range inclusive",
			types.SearchFilters{MinPrice: 1, MaxPrice: 3},
			[]string{"low", "high", "closed", "open", "unknown"},
		},
		{
			"open now keeps unknown",
			types.SearchFilters{OpenNowOnly: true, MinPrice: 0, MaxPrice: 4},
			[]string{"cheap", "low", "high", "top", "open", "unknown"},
		},
		{
			"defaults keep everything",
			types.SearchFilters{MinPrice: 0, MaxPrice: 4},
			[]string{"cheap", "low", "high", "top", "closed", "open", "unknown"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := applyFilters(list, tc.filters)
			if len(got) != len(tc.wantIDs) {
				t.Fatalf("got %d places, want %d", len(got), len(tc.wantIDs))
			}
			for i, id := range tc.wantIDs {
				if got[i].ID != id {
					t.Errorf("place %d = %q, want %q", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestFetchPlacesCachesWithinTTL(t *testing.T) {
	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		searchResponse(types.RawPlace{ID: "a", BusinessStatus: "OPERATIONAL"})(w, r)
	})

	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, handler, func() time.Time { return now })

	filters := types.SearchFilters{Query: "tacos", MinPrice: 0, MaxPrice: 4}
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := svc.FetchPlaces(ctx, filters); err != nil {
			t.Fatalf("FetchPlaces: %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("upstream called %d times within TTL, want 1", calls)
	}

	// A different key misses independently.
	other := filters
	other.MaxPrice = 3
	if _, err := svc.FetchPlaces(ctx, other); err != nil {
		t.Fatalf("FetchPlaces: %v", err)
	}
	if calls != 2 {
		t.Errorf("upstream called %d times after new key, want 2", calls)
	}

	now = now.Add(13 * time.Hour)
	if _, err := svc.FetchPlaces(ctx, filters); err != nil {
		t.Fatalf("FetchPlaces: %v", err)
	}
	if calls != 3 {
		t.Errorf("upstream called %d times after TTL elapsed, want 3", calls)
	}
}

func TestFetchPlacesUpstreamFailure(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": "API key not valid"}`))
	})
	svc, _ := newTestService(t, handler, time.Now)

	_, err := svc.FetchPlaces(context.Background(), types.SearchFilters{MaxPrice: 4})
	if err == nil {
		t.Fatal("expected error for upstream failure")
	}

	ue, ok := err.(*UpstreamError)
	if !ok {
		t.Fatalf("error type = %T, want *UpstreamError", err)
	}
	if ue.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403", ue.StatusCode)
	}
	if ue.Body != `{"error": "API key not valid"}` {
		t.Errorf("body = %q, want raw upstream body", ue.Body)
	}
}

func TestFetchPlacesFailureNotCached(t *testing.T) {
	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		searchResponse(types.RawPlace{ID: "a", BusinessStatus: "OPERATIONAL"})(w, r)
	})
	svc, _ := newTestService(t, handler, time.Now)

	ctx := context.Background()
	filters := types.SearchFilters{MaxPrice: 4}

	if _, err := svc.FetchPlaces(ctx, filters); err == nil {
		t.Fatal("expected first call to fail")
	}
	places, err := svc.FetchPlaces(ctx, filters)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if len(places) != 1 {
		t.Errorf("got %d places, want 1", len(places))
	}
	if calls != 2 {
		t.Errorf("upstream called %d times, want 2 (failures must not cache)", calls)
	}
}

func TestFetchPlacesEndToEnd(t *testing.T) {
	handler := searchResponse(
		types.RawPlace{
			ID:                  "sushi-1",
			DisplayName:         &types.LocalizedText{Text: "Sakura Sushi"},
			Rating:              floatPtr(4.5),
			UserRatingCount:     intPtr(120),
			PriceLevel:          intPtr(2),
			Types:               []string{"restaurant", "japanese"},
			CurrentOpeningHours: &types.OpeningHours{OpenNow: boolPtr(true)},
			BusinessStatus:      "OPERATIONAL",
		},
		types.RawPlace{
			ID:             "sushi-2",
			DisplayName:    &types.LocalizedText{Text: "Ocean Roll"},
			PriceLevel:     intPtr(1),
			BusinessStatus: "OPERATIONAL",
		},
		types.RawPlace{
			ID:                  "sushi-3",
			DisplayName:         &types.LocalizedText{Text: "Midnight Maki"},
			PriceLevel:          intPtr(2),
			CurrentOpeningHours: &types.OpeningHours{OpenNow: boolPtr(false)},
			BusinessStatus:      "OPERATIONAL",
		},
		types.RawPlace{
			ID:             "sushi-4",
			DisplayName:    &types.LocalizedText{Text: "Gone Fishing"},
			PriceLevel:     intPtr(2),
			BusinessStatus: "CLOSED_PERMANENTLY",
		},
	)

	svc, _ := newTestService(t, handler, time.Now)

	places, err := svc.FetchPlaces(context.Background(), types.SearchFilters{
		Query:       "sushi",
		OpenNowOnly: true,
		MinPrice:    1,
		MaxPrice:    3,
		Category:    "restaurant",
	})
	if err != nil {
		t.Fatalf("FetchPlaces: %v", err)
	}

	// sushi-3 is explicitly closed, sushi-4 is not operating; sushi-2 has an
	// unknown open flag and stays.
	wantIDs := []string{"sushi-1", "sushi-2"}
	if len(places) != len(wantIDs) {
		t.Fatalf("got %d places %+v, want %d", len(places), places, len(wantIDs))
	}
	for i, id := range wantIDs {
		if places[i].ID != id {
			t.Errorf("place %d = %q, want %q", i, places[i].ID, id)
		}
	}
}

func TestCacheKeyStable(t *testing.T) {
	f := types.SearchFilters{Query: "pizza", OpenNowOnly: true, MinPrice: 1, MaxPrice: 3, Category: "restaurant"}
	if cacheKey(f) != cacheKey(f) {
		t.Error("cache key not stable for identical filters")
	}
	g := f
	g.OpenNowOnly = false
	if cacheKey(f) == cacheKey(g) {
		t.Error("cache key ignores openNowOnly")
	}
}
