package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"docrag/internal/adapter/cache"
	"docrag/internal/adapter/chunker"
	"docrag/internal/adapter/embedding"
	"docrag/internal/adapter/fs"
	"docrag/internal/adapter/store"
)

func writeCorpus(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	docs := map[string]string{
		"api-spec.md": "# Auth\n\nTokens expire hourly.\n\n# Retries\n\nBack off exponentially.\n",
		"faq.md":      "# Common Questions\n\nWhy was my order rejected?\n",
	}
	for name, content := range docs {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestBuildIndex(t *testing.T) {
	dir := writeCorpus(t)

	ch, err := chunker.NewHeadingChunker(500, 50)
	if err != nil {
		t.Fatal(err)
	}
	uc := NewIndexUseCase(
		fs.NewWalker(nil, nil),
		ch,
		embedding.NewMockEmbedder(8),
		nil,
		zerolog.Nop(),
	)

	index, result, err := uc.Build(context.Background(), dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if index.Model != "mock" {
		t.Errorf("model = %q", index.Model)
	}
	if result.Documents != 2 {
		t.Errorf("documents = %d", result.Documents)
	}
	if len(index.Chunks) != 3 {
		t.Fatalf("chunks = %d, want 3", len(index.Chunks))
	}
	if err := store.Validate(index); err != nil {
		t.Errorf("built index fails validation: %v", err)
	}
	for _, c := range index.Chunks {
		if len(c.Embedding) != 8 {
			t.Errorf("chunk %s embedding length %d", c.ID, len(c.Embedding))
		}
	}
}

func TestBuildUsesEmbeddingCache(t *testing.T) {
	dir := writeCorpus(t)

	embCache, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer embCache.Close()

	ch, _ := chunker.NewHeadingChunker(500, 50)
	uc := NewIndexUseCase(fs.NewWalker(nil, nil), ch, embedding.NewMockEmbedder(4), embCache, zerolog.Nop())

	_, first, err := uc.Build(context.Background(), dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheHits != 0 {
		t.Errorf("first build had %d cache hits", first.CacheHits)
	}

	_, second, err := uc.Build(context.Background(), dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if second.CacheHits != second.Chunks {
		t.Errorf("rebuild hit %d of %d chunks", second.CacheHits, second.Chunks)
	}
	if second.EmbedCalls != 0 {
		t.Errorf("rebuild made %d provider calls", second.EmbedCalls)
	}
}

func TestBuildEmptyCorpus(t *testing.T) {
	ch, _ := chunker.NewHeadingChunker(500, 50)
	uc := NewIndexUseCase(fs.NewWalker(nil, nil), ch, embedding.NewMockEmbedder(4), nil, zerolog.Nop())

	if _, _, err := uc.Build(context.Background(), t.TempDir(), nil); err == nil {
		t.Fatal("expected error for empty corpus")
	}
}
