// Package game defines the catalog value types shared across the service.
package game

// Candidate is a single catalog entry matching a query's filters. Immutable
// once fetched; owned solely by the caller that constructed it.
type Candidate struct {
	AppID       int64  `json:"appid"`
	Name        string `json:"name"`
	Description string `json:"shortDescription"`
	ImageURL    string `json:"headerImage"`
	StoreURL    string `json:"steamStore"`
}

// Query describes the filters for one candidate lookup. Every listed tag
// must be present on a matching game.
type Query struct {
	Tags          []string
	MinReviews    int
	LocalizedOnly bool  // require Korean localization
	FreeOnly      *bool // nil means no preference
}
