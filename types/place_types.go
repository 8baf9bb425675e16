package types

import (
	"bytes"
	"fmt"
)

// OpenStatus is the tri-state open-now flag. The upstream API omits the flag
// for places it has no hours data for; absence must never be read as closed.
type OpenStatus int

const (
	OpenStatusUnknown OpenStatus = iota
	OpenStatusOpen
	OpenStatusClosed
)

// OpenStatusFromFlag converts the upstream optional boolean into an OpenStatus.
func OpenStatusFromFlag(openNow *bool) OpenStatus {
	switch {
	case openNow == nil:
		return OpenStatusUnknown
	case *openNow:
		return OpenStatusOpen
	default:
		return OpenStatusClosed
	}
}

// MarshalJSON keeps the wire form tri-state: true, false, or null.
func (s OpenStatus) MarshalJSON() ([]byte, error) {
	switch s {
	case OpenStatusOpen:
		return []byte("true"), nil
	case OpenStatusClosed:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

func (s *OpenStatus) UnmarshalJSON(data []byte) error {
	switch {
	case bytes.Equal(data, []byte("true")):
		*s = OpenStatusOpen
	case bytes.Equal(data, []byte("false")):
		*s = OpenStatusClosed
	case bytes.Equal(data, []byte("null")):
		*s = OpenStatusUnknown
	default:
		return fmt.Errorf("invalid open status %q", data)
	}
	return nil
}

// Place is the canonical record served to clients.
type Place struct {
	ID          string     `json:"id"`
	ExternalID  string     `json:"externalId,omitempty"`
	Name        string     `json:"name"`
	Rating      float64    `json:"rating"`
	ReviewCount int        `json:"reviewCount"`
	PriceLevel  int        `json:"priceLevel"`
	Categories  []string   `json:"categories"`
	OpenNow     OpenStatus `json:"openNow"`
}

// SearchFilters carries the five request parameters that both key the cache
// and drive the server-side filtering pass.
type SearchFilters struct {
	Query       string
	OpenNowOnly bool
	MinPrice    int
	MaxPrice    int
	Category    string
}

type PlacesQuery struct {
	Query    string `form:"q"`
	OpenNow  bool   `form:"openNow,default=false"`
	MinPrice int    `form:"minPrice,default=0"`
	MaxPrice int    `form:"maxPrice,default=4"`
	Type     string `form:"type"`
}

type PlacesResponse struct {
	Places []Place `json:"places"`
}
