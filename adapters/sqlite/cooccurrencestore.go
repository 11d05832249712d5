package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/minsu-kang/steamrec/domain/cooccur"
	"github.com/minsu-kang/steamrec/ports"
)

// CooccurrenceStore is a SQLite implementation of ports.CooccurrenceStore.
// Rows are keyed by the canonical (lexicographic) tag order, matching
// cooccur.NewPairKey.
type CooccurrenceStore struct {
	db *DB
}

// NewCooccurrenceStore creates a store over the catalog database.
func NewCooccurrenceStore(db *DB) *CooccurrenceStore {
	return &CooccurrenceStore{db: db}
}

// Count returns the co-occurrence count for a pair.
func (s *CooccurrenceStore) Count(ctx context.Context, pair cooccur.PairKey) (int64, bool, error) {
	var n int64
	err := s.db.QueryRowContext(ctx,
		"SELECT count FROM tag_cooccurrence WHERE tag1 = ? AND tag2 = ?",
		pair.First, pair.Second,
	).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("cooccurrence count: %w", err)
	}
	return n, true, nil
}

// Ensure interface compliance.
var _ ports.CooccurrenceStore = (*CooccurrenceStore)(nil)
