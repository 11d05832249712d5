// Package badger provides a BadgerDB-backed ExpiryStore. Badger handles
// per-key TTL natively, which is exactly what the recommendation ledger and
// the extraction cache need: entries expire on their own and are visible to
// every request handler in the process.
package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/minsu-kang/steamrec/ports"
)

// Store is a BadgerDB implementation of ports.ExpiryStore.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) a Badger database at dir. An empty dir opens an
// in-memory database, useful for development runs without persistence.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStore wraps an already-open Badger database.
func NewStore(db *badger.DB) *Store {
	return &Store{db: db}
}

// Get retrieves a value. Expired keys behave as absent.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

// SetWithTTL stores a value that Badger expires after ttl.
func (s *Store) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(key), value).WithTTL(ttl))
	})
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Has reports whether a live entry exists.
func (s *Store) Has(ctx context.Context, key string) (bool, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(key))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("has %q: %w", key, err)
	}
	return true, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ensure interface compliance.
var _ ports.ExpiryStore = (*Store)(nil)
