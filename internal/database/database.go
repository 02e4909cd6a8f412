// Package database provides persistence for The Movie DB responses
// using BoltDB. Only API response caches live here; conversation state
// never touches disk.
package database

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

const dbFileMode = 0600

var (
	genreBucket  = []byte("genres")
	detailBucket = []byte("details")
)

// CachedPayload wraps a stored API payload with its storage time so
// callers can decide whether it is still fresh.
type CachedPayload struct {
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// Database defines the persistence operations used by the API client.
type Database interface {
	// GetGenres retrieves the cached genre listing for a kind.
	GetGenres(kind string) (*CachedPayload, error)
	// StoreGenres stores a genre listing payload for a kind.
	StoreGenres(kind string, payload []byte) error
	// GetDetails retrieves a cached details payload by kind and id.
	GetDetails(kind string, id int) (*CachedPayload, error)
	// StoreDetails stores a details payload by kind and id.
	StoreDetails(kind string, id int, payload []byte) error
	// Close closes the database.
	Close() error
}

// BoltDB implements Database on top of a single bbolt file.
type BoltDB struct {
	db *bolt.DB
}

// NewBolt opens (or creates) the database at path.
func NewBolt(path string) (*BoltDB, error) {
	db, err := bolt.Open(path, dbFileMode, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{genreBucket, detailBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create buckets: %w", err)
	}

	return &BoltDB{db: db}, nil
}

func (b *BoltDB) GetGenres(kind string) (*CachedPayload, error) {
	return b.get(genreBucket, []byte(kind))
}

func (b *BoltDB) StoreGenres(kind string, payload []byte) error {
	return b.put(genreBucket, []byte(kind), payload)
}

func (b *BoltDB) GetDetails(kind string, id int) (*CachedPayload, error) {
	return b.get(detailBucket, detailKey(kind, id))
}

func (b *BoltDB) StoreDetails(kind string, id int, payload []byte) error {
	return b.put(detailBucket, detailKey(kind, id), payload)
}

func (b *BoltDB) Close() error {
	return b.db.Close()
}

func detailKey(kind string, id int) []byte {
	return []byte(fmt.Sprintf("%s:%d", kind, id))
}

func (b *BoltDB) get(bucket, key []byte) (*CachedPayload, error) {
	var cached *CachedPayload
	err := b.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucket).Get(key)
		if raw == nil {
			return nil
		}
		var entry CachedPayload
		if err := json.Unmarshal(raw, &entry); err != nil {
			return fmt.Errorf("failed to decode cached payload: %w", err)
		}
		cached = &entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cached, nil
}

func (b *BoltDB) put(bucket, key, payload []byte) error {
	entry, err := json.Marshal(CachedPayload{
		Payload:   payload,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode cached payload: %w", err)
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put(key, entry)
	})
}
