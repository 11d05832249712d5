// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/.
package ports

import (
	"context"
	"time"

	"github.com/minsu-kang/steamrec/domain/cooccur"
	"github.com/minsu-kang/steamrec/domain/game"
)

// -----------------------------------------------------------------------------
// Infrastructure Ports
// -----------------------------------------------------------------------------

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// Rand abstracts randomness for testability. Implementations must be safe
// for concurrent use.
type Rand interface {
	// IntN returns a uniform int in [0, n).
	IntN(n int) int
	// Shuffle randomizes the order of n elements via swap.
	Shuffle(n int, swap func(i, j int))
}

// -----------------------------------------------------------------------------
// Shared Key-Value Ports
// -----------------------------------------------------------------------------

// ExpiryStore is a shared key-value store with native per-key expiry.
// It backs the recently-recommended ledger and the extraction cache; entries
// are visible across all concurrent request handlers. Expired keys behave as
// absent. Operations on independent keys need no coordination.
type ExpiryStore interface {
	// Get retrieves a value. ok is false for absent or expired keys.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// SetWithTTL stores a value that expires after ttl.
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Has reports whether a live (non-expired) entry exists.
	Has(ctx context.Context, key string) (bool, error)
}

// -----------------------------------------------------------------------------
// Catalog Ports
// -----------------------------------------------------------------------------

// GameFinder looks up one random catalog entry matching a query.
// The finder performs the filtering and random selection; duplicate
// avoidance is the caller's concern.
type GameFinder interface {
	// Random returns a uniformly-chosen matching candidate, or ok=false if
	// nothing in the catalog satisfies the query.
	Random(ctx context.Context, q game.Query) (c game.Candidate, ok bool, err error)
}

// CooccurrenceStore exposes precomputed tag pair co-occurrence counts.
// Read-only from the service's perspective.
type CooccurrenceStore interface {
	// Count returns the co-occurrence count for a pair. ok is false when no
	// record exists for the pair.
	Count(ctx context.Context, pair cooccur.PairKey) (n int64, ok bool, err error)
}

// TagCatalog resolves tags recorded against catalog entries.
type TagCatalog interface {
	// TagNamesForApps returns one entry per tag per app - duplicates are
	// expected and carry the frequency signal.
	TagNamesForApps(ctx context.Context, appIDs []int64) ([]string, error)

	// AllTagNames returns every tag name in the catalog.
	AllTagNames(ctx context.Context) ([]string, error)
}

// -----------------------------------------------------------------------------
// External Service Ports
// -----------------------------------------------------------------------------

// TagExtractor turns free text into a short tag list via an external model.
// A malformed upstream response yields an empty list, not an error; errors
// are reserved for transport failures.
type TagExtractor interface {
	ExtractTags(ctx context.Context, freeText string) ([]string, error)
}

// PlayerLibrary exposes a player's game history from the external store API.
type PlayerLibrary interface {
	// OwnedAppIDs returns the app ids of every game the profile owns.
	OwnedAppIDs(ctx context.Context, profileID string) ([]int64, error)

	// RecentlyPlayedAppIDs returns the app ids played in the recent window.
	RecentlyPlayedAppIDs(ctx context.Context, profileID string) ([]int64, error)
}

// -----------------------------------------------------------------------------
// Observability Ports
// -----------------------------------------------------------------------------

// Metrics records operational counters. A no-op implementation is used when
// metrics are disabled.
type Metrics interface {
	// RequestServed records one handled HTTP request.
	RequestServed(method, route string, status int, duration time.Duration)

	// RateLimitDenied records a request rejected by the limiter.
	RateLimitDenied(pattern string)

	// SamplerAttempts records how many lookup attempts one sampling took.
	SamplerAttempts(n int)

	// ExtractionCache records an extraction cache hit or miss.
	ExtractionCache(hit bool)
}
