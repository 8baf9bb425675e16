package types

// Request and response schema for the places text-search API. Optional fields
// are pointers so that absent values stay distinguishable from zero values;
// normalization decides the defaults, not the decoder.

type SearchTextRequest struct {
	TextQuery      string `json:"textQuery"`
	MaxResultCount int    `json:"maxResultCount"`
	IncludedType   string `json:"includedType,omitempty"`
	LanguageCode   string `json:"languageCode,omitempty"`
	RegionCode     string `json:"regionCode,omitempty"`
}

type SearchTextResponse struct {
	Places []RawPlace `json:"places"`
}

type RawPlace struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name,omitempty"` // resource name, "places/<id>"
	DisplayName         *LocalizedText `json:"displayName,omitempty"`
	Rating              *float64       `json:"rating,omitempty"`
	UserRatingCount     *int           `json:"userRatingCount,omitempty"`
	PriceLevel          *int           `json:"priceLevel,omitempty"`
	Types               []string       `json:"types,omitempty"`
	CurrentOpeningHours *OpeningHours  `json:"currentOpeningHours,omitempty"`
	BusinessStatus      string         `json:"businessStatus,omitempty"`
}

type LocalizedText struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode,omitempty"`
}

type OpeningHours struct {
	OpenNow *bool `json:"openNow,omitempty"`
}
