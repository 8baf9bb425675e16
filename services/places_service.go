package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/tastemap/api-go/cache"
	"github.com/tastemap/api-go/config"
	"github.com/tastemap/api-go/types"
)

const (
	maxResultCount = 50

	apiKeyEnv = "PLACES_API_KEY"

	fieldMask = "places.id,places.name,places.displayName,places.rating," +
		"places.userRatingCount,places.priceLevel,places.types," +
		"places.currentOpeningHours.openNow,places.businessStatus"

	statusOperational = "OPERATIONAL"
)

// UpstreamError is a non-success response from the places API. The raw body
// is kept as diagnostic detail for the caller.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("places search returned %d: %s", e.StatusCode, e.Body)
}

// PlacesService answers place searches from its cache, falling back to one
// upstream call per miss. No retries: a failed call is the caller's failure.
type PlacesService struct {
	Cache     *cache.PlaceCache
	Client    *http.Client
	SearchURL string
	Language  string
	Region    string
}

func NewPlacesService(placeCache *cache.PlaceCache, cfg *config.Config) *PlacesService {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 0
	rc.Logger = nil
	rc.HTTPClient.Timeout = cfg.RequestTimeout

	return &PlacesService{
		Cache:     placeCache,
		Client:    rc.StandardClient(),
		SearchURL: cfg.SearchURL,
		Language:  cfg.LanguageCode,
		Region:    cfg.RegionCode,
	}
}

// FetchPlaces returns the normalized, filtered place list for the given
// filters, served from cache when a fresh entry exists.
func (s *PlacesService) FetchPlaces(ctx context.Context, f types.SearchFilters) ([]types.Place, error) {
	key := cacheKey(f)
	if places, ok := s.Cache.Get(key); ok {
		return places, nil
	}

	raw, err := s.search(ctx, f)
	if err != nil {
		return nil, err
	}

	places := applyFilters(normalize(raw), f)
	s.Cache.Set(key, places)
	return places, nil
}

// cacheKey serializes the five filter parameters in a stable order.
func cacheKey(f types.SearchFilters) string {
	return strings.Join([]string{
		f.Query,
		strconv.FormatBool(f.OpenNowOnly),
		strconv.Itoa(f.MinPrice),
		strconv.Itoa(f.MaxPrice),
		f.Category,
	}, "|")
}

func (s *PlacesService) search(ctx context.Context, f types.SearchFilters) ([]types.RawPlace, error) {
	reqBody := types.SearchTextRequest{
		TextQuery:      f.Query,
		MaxResultCount: maxResultCount,
		IncludedType:   categoryHint(f.Category),
		LanguageCode:   s.Language,
		RegionCode:     s.Region,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("encode search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.SearchURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// Read at request time so a missing key comes back as an authorization
	// failure from the API rather than a startup check.
	req.Header.Set("X-Goog-Api-Key", os.Getenv(apiKeyEnv))
	req.Header.Set("X-Goog-FieldMask", fieldMask)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places search request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var parsed types.SearchTextResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return parsed.Places, nil
}

// categoryHint maps the request's type parameter to the upstream included
// type, defaulting to restaurants.
func categoryHint(category string) string {
	if category == "" {
		return "restaurant"
	}
	return category
}

// normalize converts raw records to canonical Places. Records that are not
// operational are dropped; missing optional fields get defaults, except the
// open-now flag which stays tri-state.
func normalize(raw []types.RawPlace) []types.Place {
	places := make([]types.Place, 0, len(raw))
	for _, r := range raw {
		if r.BusinessStatus != statusOperational {
			continue
		}

		p := types.Place{
			ID:         r.ID,
			ExternalID: r.Name,
			Categories: []string{},
		}
		if r.DisplayName != nil {
			p.Name = r.DisplayName.Text
		}
		if r.Rating != nil {
			p.Rating = *r.Rating
		}
		if r.UserRatingCount != nil {
			p.ReviewCount = *r.UserRatingCount
		}
		if r.PriceLevel != nil && *r.PriceLevel >= 0 && *r.PriceLevel <= 4 {
			p.PriceLevel = *r.PriceLevel
		}
		if len(r.Types) > 0 {
			p.Categories = r.Types
		}
		var openNow *bool
		if r.CurrentOpeningHours != nil {
			openNow = r.CurrentOpeningHours.OpenNow
		}
		p.OpenNow = types.OpenStatusFromFlag(openNow)

		places = append(places, p)
	}
	return places
}

// applyFilters runs the server-side filter pass: inclusive price range, and
// when openNowOnly is set, only places known to be closed are excluded.
func applyFilters(places []types.Place, f types.SearchFilters) []types.Place {
	filtered := make([]types.Place, 0, len(places))
	for _, p := range places {
		if p.PriceLevel < f.MinPrice || p.PriceLevel > f.MaxPrice {
			continue
		}
		if f.OpenNowOnly && p.OpenNow == types.OpenStatusClosed {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}
