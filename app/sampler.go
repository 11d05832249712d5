package app

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/minsu-kang/steamrec/domain/game"
	"github.com/minsu-kang/steamrec/ports"
)

const (
	// maxAttempts bounds the worst-case number of catalog lookups per
	// sampling. Each lookup is an independent random draw, so five tries
	// make a non-duplicate very likely without unbounded backend load.
	maxAttempts = 5

	// recommendedTTL is how long an accepted candidate stays in the
	// dedup ledger.
	recommendedTTL = 30 * time.Minute

	ledgerKeyPrefix = "rec:"
)

// Sampler draws candidates from the catalog and rejects ones recommended
// within the dedup window. The ledger is shared across all concurrent
// requests; exactly one candidate is committed per successful call.
type Sampler struct {
	finder  ports.GameFinder
	ledger  ports.ExpiryStore
	metrics ports.Metrics
	logger  zerolog.Logger
}

// NewSampler creates a sampler over the given finder and ledger.
func NewSampler(finder ports.GameFinder, ledger ports.ExpiryStore, metrics ports.Metrics, logger zerolog.Logger) *Sampler {
	return &Sampler{
		finder:  finder,
		ledger:  ledger,
		metrics: metrics,
		logger:  logger.With().Str("component", "sampler").Logger(),
	}
}

// Pick returns one matching candidate not recommended within the last
// recommendedTTL, marking it in the ledger before returning.
//
// An empty catalog result surfaces ErrNoMatch immediately - a structural
// absence, not a duplicate, so further attempts cannot help. Exhausting all
// attempts on duplicates surfaces ErrAllRecentlyRecommended instead.
// Attempts are sequential; cancellation aborts without committing a mark.
func (s *Sampler) Pick(ctx context.Context, q game.Query) (game.Candidate, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return game.Candidate{}, err
		}

		cand, ok, err := s.finder.Random(ctx, q)
		if err != nil {
			return game.Candidate{}, &UpstreamError{Service: "catalog", Err: err}
		}
		if !ok {
			return game.Candidate{}, ErrNoMatch
		}

		key := ledgerKey(cand.AppID)
		seen, err := s.ledger.Has(ctx, key)
		if err != nil {
			return game.Candidate{}, &UpstreamError{Service: "ledger", Err: err}
		}
		if seen {
			s.logger.Debug().
				Int64("appid", cand.AppID).
				Int("attempt", attempt).
				Msg("candidate recently recommended, redrawing")
			continue
		}

		if err := s.ledger.SetWithTTL(ctx, key, []byte{1}, recommendedTTL); err != nil {
			return game.Candidate{}, &UpstreamError{Service: "ledger", Err: err}
		}
		s.metrics.SamplerAttempts(attempt)
		return cand, nil
	}

	s.metrics.SamplerAttempts(maxAttempts)
	return game.Candidate{}, ErrAllRecentlyRecommended
}

func ledgerKey(appID int64) string {
	return ledgerKeyPrefix + strconv.FormatInt(appID, 10)
}
