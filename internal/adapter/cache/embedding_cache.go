// Package cache persists chunk embeddings across index rebuilds so unchanged
// text never triggers a second provider call.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"
)

var bucketEmbeddings = []byte("embeddings")

// EmbeddingCache is a BoltDB-backed map from (model, text) to vector.
// Entries are keyed by content hash, so a changed chunk naturally misses.
type EmbeddingCache struct {
	db *bbolt.DB
}

func Open(path string) (*EmbeddingCache, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedding cache: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketEmbeddings)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create embeddings bucket: %w", err)
	}
	return &EmbeddingCache{db: db}, nil
}

func key(model, text string) []byte {
	hash := sha256.Sum256([]byte(model + "\x00" + text))
	return []byte(hex.EncodeToString(hash[:]))
}

// Get returns the cached vector for (model, text), or ok=false on a miss.
func (c *EmbeddingCache) Get(model, text string) ([]float32, bool) {
	var vector []float32
	found := false

	c.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketEmbeddings)
		if b == nil {
			return nil
		}
		data := b.Get(key(model, text))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &vector); err != nil {
			return nil // corrupted entry behaves like a miss
		}
		found = true
		return nil
	})
	return vector, found
}

// Put stores a vector for (model, text).
func (c *EmbeddingCache) Put(model, text string, vector []float32) error {
	data, err := json.Marshal(vector)
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketEmbeddings)
		if b == nil {
			return fmt.Errorf("embeddings bucket not found")
		}
		return b.Put(key(model, text), data)
	})
}

func (c *EmbeddingCache) Close() error {
	return c.db.Close()
}
