// Package app provides application services that orchestrate domain logic.
package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/minsu-kang/steamrec/domain/game"
	"github.com/minsu-kang/steamrec/domain/tag"
	"github.com/minsu-kang/steamrec/ports"
)

const (
	// defaultMinReviews filters out games too obscure to recommend from
	// derived tags.
	defaultMinReviews = 1000

	// coThreshold is the minimum co-occurrence count for a tag pair to be
	// considered correlated.
	coThreshold = 5

	// extractionTTL is how long extracted tag lists stay cached.
	extractionTTL = 6 * time.Hour

	minInputRunes = 3

	cacheKeyPrefix = "tags:"

	profileTopN = 8
	recentTopN  = 6
)

// fallbackTags is used when the extractor returns nothing usable.
var fallbackTags = []string{"싱글 플레이어", "멀티플레이어"}

// Recommendation pairs the tags a recommendation was derived from with the
// chosen game.
type Recommendation struct {
	UsedTags []string       `json:"usedTags"`
	Game     game.Candidate `json:"recommendedGame"`
}

// Recommender composes the sampler, extraction cache, tag aggregation, and
// pair resolution into the service's recommendation modes.
type Recommender struct {
	sampler   *Sampler
	pairs     *PairResolver
	extractor ports.TagExtractor
	library   ports.PlayerLibrary
	catalog   ports.TagCatalog
	cache     ports.ExpiryStore
	rand      ports.Rand
	metrics   ports.Metrics
	logger    zerolog.Logger
}

// RecommenderDeps contains dependencies for Recommender.
type RecommenderDeps struct {
	Sampler   *Sampler
	Pairs     *PairResolver
	Extractor ports.TagExtractor
	Library   ports.PlayerLibrary
	Catalog   ports.TagCatalog
	Cache     ports.ExpiryStore
	Rand      ports.Rand
	Metrics   ports.Metrics
	Logger    zerolog.Logger
}

// NewRecommender creates a new recommendation service.
func NewRecommender(deps RecommenderDeps) *Recommender {
	return &Recommender{
		sampler:   deps.Sampler,
		pairs:     deps.Pairs,
		extractor: deps.Extractor,
		library:   deps.Library,
		catalog:   deps.Catalog,
		cache:     deps.Cache,
		rand:      deps.Rand,
		metrics:   deps.Metrics,
		logger:    deps.Logger.With().Str("component", "recommender").Logger(),
	}
}

// Direct recommends a game for caller-supplied filters.
func (r *Recommender) Direct(ctx context.Context, q game.Query) (game.Candidate, error) {
	return r.sampler.Pick(ctx, q)
}

// ByText derives tags from free-text input and recommends on them.
// Extraction results are cached by content hash; a malformed or empty
// extraction falls back to a fixed default pair and is still cached, so the
// expensive call is not repeated for the same input.
func (r *Recommender) ByText(ctx context.Context, input string) (Recommendation, error) {
	input = strings.TrimSpace(input)
	if utf8.RuneCountInString(input) < minInputRunes {
		return Recommendation{}, ErrInputTooShort
	}

	key := cacheKey(input)
	if tags, ok := r.cachedTags(ctx, key); ok {
		r.metrics.ExtractionCache(true)
		return r.sampleTagged(ctx, tags)
	}
	r.metrics.ExtractionCache(false)

	tags, err := r.extractor.ExtractTags(ctx, input)
	if err != nil {
		return Recommendation{}, &UpstreamError{Service: "tag extractor", Err: err}
	}
	if len(tags) == 0 {
		r.logger.Warn().Msg("tag extraction returned nothing, using fallback tags")
		tags = fallbackTags
	}
	if len(tags) > tag.MaxExtracted {
		tags = tags[:tag.MaxExtracted]
	}

	if data, err := json.Marshal(tags); err == nil {
		if err := r.cache.SetWithTTL(ctx, key, data, extractionTTL); err != nil {
			r.logger.Warn().Err(err).Msg("caching extracted tags failed")
		}
	}

	return r.sampleTagged(ctx, tags)
}

// ByProfile recommends from the tags of a player's owned games. The ranked
// tag pool is reduced to a randomized shortlist, then narrowed to the
// strongest co-occurring pair when one exists; otherwise each shortlisted
// tag is tried on its own.
func (r *Recommender) ByProfile(ctx context.Context, profileID string) (Recommendation, error) {
	appIDs, err := r.library.OwnedAppIDs(ctx, profileID)
	if err != nil {
		return Recommendation{}, &UpstreamError{Service: "player library", Err: err}
	}

	top, err := r.rankedTags(ctx, appIDs, profileTopN)
	if err != nil {
		return Recommendation{}, err
	}

	shortlist := tag.ShuffleSubset(r.rand, top, 3, 5)

	pair, found, err := r.pairs.Strongest(ctx, shortlist, coThreshold)
	if err != nil {
		return Recommendation{}, err
	}
	if found {
		chosen, err := r.sampler.Pick(ctx, taggedQuery(pair.First, pair.Second))
		if err != nil {
			return Recommendation{}, err
		}
		return Recommendation{UsedTags: shortlist, Game: chosen}, nil
	}

	// No correlated pair: fall back to single-tag sampling across the
	// shortlist, failing only if every tag comes up empty.
	for _, t := range shortlist {
		chosen, err := r.sampler.Pick(ctx, taggedQuery(t))
		if err == nil {
			return Recommendation{UsedTags: shortlist, Game: chosen}, nil
		}
		if errors.Is(err, ErrNoMatch) || errors.Is(err, ErrAllRecentlyRecommended) {
			continue
		}
		return Recommendation{}, err
	}
	return Recommendation{}, ErrNoMatch
}

// ByRecentPlay recommends from the tags of recently-played games. Unlike
// ByProfile it samples on the shortlist directly, without the co-occurrence
// step.
func (r *Recommender) ByRecentPlay(ctx context.Context, profileID string) (Recommendation, error) {
	appIDs, err := r.library.RecentlyPlayedAppIDs(ctx, profileID)
	if err != nil {
		return Recommendation{}, &UpstreamError{Service: "player library", Err: err}
	}

	top, err := r.rankedTags(ctx, appIDs, recentTopN)
	if err != nil {
		return Recommendation{}, err
	}

	shortlist := tag.ShuffleSubset(r.rand, top, 3, 4)

	chosen, err := r.sampler.Pick(ctx, taggedQuery(shortlist...))
	if err != nil {
		return Recommendation{}, err
	}
	return Recommendation{UsedTags: shortlist, Game: chosen}, nil
}

// Tags returns the catalog's public tag listing.
func (r *Recommender) Tags(ctx context.Context) ([]string, error) {
	names, err := r.catalog.AllTagNames(ctx)
	if err != nil {
		return nil, &UpstreamError{Service: "catalog", Err: err}
	}
	return tag.FilterDisplayNames(names), nil
}

func (r *Recommender) rankedTags(ctx context.Context, appIDs []int64, topN int) ([]string, error) {
	if len(appIDs) == 0 {
		return nil, ErrNoMatch
	}
	all, err := r.catalog.TagNamesForApps(ctx, appIDs)
	if err != nil {
		return nil, &UpstreamError{Service: "catalog", Err: err}
	}
	top := tag.Rank(all, topN)
	if len(top) == 0 {
		return nil, ErrNoMatch
	}
	return top, nil
}

func (r *Recommender) sampleTagged(ctx context.Context, tags []string) (Recommendation, error) {
	chosen, err := r.sampler.Pick(ctx, taggedQuery(tags...))
	if err != nil {
		return Recommendation{}, err
	}
	return Recommendation{UsedTags: tags, Game: chosen}, nil
}

func (r *Recommender) cachedTags(ctx context.Context, key string) ([]string, bool) {
	data, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		r.logger.Warn().Err(err).Msg("extraction cache read failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil || len(tags) == 0 {
		return nil, false
	}
	return tags, true
}

func taggedQuery(tags ...string) game.Query {
	return game.Query{
		Tags:          tags,
		MinReviews:    defaultMinReviews,
		LocalizedOnly: true,
	}
}

func cacheKey(input string) string {
	sum := sha256.Sum256([]byte(input))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
