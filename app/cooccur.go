package app

import (
	"context"

	"github.com/minsu-kang/steamrec/domain/cooccur"
	"github.com/minsu-kang/steamrec/ports"
)

// PairResolver picks the strongest correlated tag pair from a noisy tag set.
type PairResolver struct {
	store ports.CooccurrenceStore
}

// NewPairResolver creates a resolver over the given co-occurrence store.
func NewPairResolver(store ports.CooccurrenceStore) *PairResolver {
	return &PairResolver{store: store}
}

// Strongest returns the first enumerated pair whose co-occurrence count
// meets the threshold, or ok=false if none qualifies. Ties are deliberately
// broken by enumeration order rather than highest count: callers control
// priority by the order they pass tags in.
func (r *PairResolver) Strongest(ctx context.Context, tags []string, threshold int64) (cooccur.PairKey, bool, error) {
	for _, pair := range cooccur.Pairs(tags) {
		n, ok, err := r.store.Count(ctx, pair)
		if err != nil {
			return cooccur.PairKey{}, false, &UpstreamError{Service: "cooccurrence store", Err: err}
		}
		if ok && n >= threshold {
			return pair, true, nil
		}
	}
	return cooccur.PairKey{}, false, nil
}
