// Package store reads and writes the persisted index file. The index is
// built offline, written atomically, and loaded read-only at serve time; a
// rebuild produces a whole new file, never a partial update.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"docrag/internal/domain"
)

type indexFile struct {
	Model  string      `json:"model"`
	Chunks []chunkFile `json:"chunks"`
}

type chunkFile struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Meta      chunkMeta `json:"meta"`
	Embedding []float32 `json:"embedding"`
}

type chunkMeta struct {
	Source  string `json:"source"`
	Heading string `json:"heading"`
	Part    int    `json:"part"`
}

// Save writes the index to path atomically: a temp file in the same
// directory is renamed over the target, so readers never observe a torn
// index.
func Save(index *domain.Index, path string) error {
	out := indexFile{
		Model:  index.Model,
		Chunks: make([]chunkFile, len(index.Chunks)),
	}
	for i, c := range index.Chunks {
		out.Chunks[i] = chunkFile{
			ID:   c.ID,
			Text: c.Text,
			Meta: chunkMeta{
				Source:  c.Source,
				Heading: c.Heading,
				Part:    c.Part,
			},
			Embedding: c.Embedding,
		}
	}

	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".index-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp index file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close index file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace index file: %w", err)
	}
	return nil
}

// Load reads and validates an index file. Validation failures are setup
// errors: the process should not serve from a malformed index.
func Load(path string) (*domain.Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read index file: %w", err)
	}

	var in indexFile
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to parse index file: %w", err)
	}

	index := &domain.Index{
		Model:  in.Model,
		Chunks: make([]domain.Chunk, len(in.Chunks)),
	}
	for i, c := range in.Chunks {
		index.Chunks[i] = domain.Chunk{
			ID:        c.ID,
			Text:      c.Text,
			Source:    c.Meta.Source,
			Heading:   c.Meta.Heading,
			Part:      c.Meta.Part,
			Embedding: c.Embedding,
		}
	}

	if err := Validate(index); err != nil {
		return nil, err
	}
	return index, nil
}

// Validate enforces the index invariants: a recorded model, non-empty chunk
// ids and text, and one uniform vector length across all chunks. A mixed
// index must never reach similarity scoring.
func Validate(index *domain.Index) error {
	if index.Model == "" {
		return fmt.Errorf("index has no embedding model recorded")
	}

	dimension := -1
	seen := make(map[string]bool, len(index.Chunks))
	for i, c := range index.Chunks {
		if c.ID == "" {
			return fmt.Errorf("chunk %d has empty id", i)
		}
		if seen[c.ID] {
			return fmt.Errorf("duplicate chunk id %s", c.ID)
		}
		seen[c.ID] = true
		if c.Text == "" {
			return fmt.Errorf("chunk %s has empty text", c.ID)
		}
		if len(c.Embedding) == 0 {
			return fmt.Errorf("chunk %s has no embedding", c.ID)
		}
		if dimension == -1 {
			dimension = len(c.Embedding)
		} else if len(c.Embedding) != dimension {
			return fmt.Errorf("chunk %s embedding length %d differs from index dimension %d",
				c.ID, len(c.Embedding), dimension)
		}
	}
	return nil
}
