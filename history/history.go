// Package history persists finished transcriptions in a local Badger
// database so recent results survive restarts.
package history

import (
	"encoding/json"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// DefaultTTL is how long transcriptions are kept before Badger expires
// them.
const DefaultTTL = 30 * 24 * time.Hour

var keyPrefix = []byte("t:")

// Entry is one stored transcription.
type Entry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Copied    bool   `json:"copied"`
	CreatedAt int64  `json:"created_at"` // unix milliseconds
}

// Store is a Badger-backed transcription history.
type Store struct {
	db *badger.DB
}

// New opens (or creates) the history database at path.
func New(path string) (*Store, error) {
	// Badger's default logger writes straight to stderr.
	opts := badger.DefaultOptions(path).WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	return &Store{db: db}, nil
}

// Add stores one transcription with the given TTL. A missing ID or
// timestamp is filled in.
func (s *Store) Add(entry Entry, ttl time.Duration) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().UnixMilli()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	key := makeKey(entry.CreatedAt, entry.ID)
	return s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(key, data)
		if ttl > 0 {
			e = e.WithTTL(ttl)
		}
		return txn.SetEntry(e)
	})
}

// Recent returns up to limit transcriptions, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	var entries []Entry
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		// Keys sort by timestamp, so reverse iteration from just past
		// the prefix range walks newest first.
		seek := append(append([]byte{}, keyPrefix...), 0xff)
		for it.Seek(seek); it.ValidForPrefix(keyPrefix) && len(entries) < limit; it.Next() {
			var entry Entry
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			})
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return entries, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func makeKey(createdAt int64, id string) []byte {
	return []byte(fmt.Sprintf("%s%020d:%s", keyPrefix, createdAt, id))
}
