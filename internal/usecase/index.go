package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"docrag/internal/adapter/cache"
	"docrag/internal/adapter/fs"
	"docrag/internal/domain"
	"docrag/internal/port"
)

// IndexUseCase builds the persisted index: walk the corpus, chunk every
// document, embed the chunks in bounded batches, and assemble the immutable
// index. The embedding cache is consulted first so rebuilds only pay for
// changed text.
type IndexUseCase struct {
	walker   *fs.Walker
	chunker  port.Chunker
	embedder port.Embedder
	cache    *cache.EmbeddingCache
	log      zerolog.Logger
}

// NewIndexUseCase creates the build pipeline. The cache may be nil.
func NewIndexUseCase(walker *fs.Walker, chunker port.Chunker, embedder port.Embedder, embCache *cache.EmbeddingCache, log zerolog.Logger) *IndexUseCase {
	return &IndexUseCase{
		walker:   walker,
		chunker:  chunker,
		embedder: embedder,
		cache:    embCache,
		log:      log,
	}
}

// BuildResult reports what an index build did.
type BuildResult struct {
	Documents   int
	Chunks      int
	CacheHits   int
	EmbedCalls  int
	EmbedInputs int
}

// Build produces a complete index for the corpus under root. Progress is
// reported through onChunk after each chunk's embedding is resolved.
func (u *IndexUseCase) Build(ctx context.Context, root string, onChunk func(done, total int)) (*domain.Index, *BuildResult, error) {
	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to walk corpus: %w", err)
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("no documents found under %s", root)
	}

	result := &BuildResult{Documents: len(files)}
	model := u.embedder.ModelName()

	var chunks []domain.Chunk
	for _, file := range files {
		content, err := fs.ReadFile(file.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read %s: %w", file.Path, err)
		}
		chunks = append(chunks, u.chunker.Chunk(file.Source, content)...)
	}
	result.Chunks = len(chunks)
	if len(chunks) == 0 {
		return nil, nil, fmt.Errorf("corpus produced no chunks")
	}

	// Resolve cached embeddings first; only misses go to the provider.
	missing := make([]int, 0, len(chunks))
	done := 0
	for i := range chunks {
		if u.cache != nil {
			if vector, ok := u.cache.Get(model, chunks[i].Text); ok {
				chunks[i].Embedding = vector
				result.CacheHits++
				done++
				if onChunk != nil {
					onChunk(done, len(chunks))
				}
				continue
			}
		}
		missing = append(missing, i)
	}

	if len(missing) > 0 {
		texts := make([]string, len(missing))
		for j, i := range missing {
			texts[j] = chunks[i].Text
		}

		vectors, err := u.embedder.Embed(ctx, texts)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to embed chunks: %w", err)
		}
		if len(vectors) != len(texts) {
			return nil, nil, fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(texts))
		}
		result.EmbedCalls++
		result.EmbedInputs = len(texts)

		// Vectors are positionally aligned with the request, so vector j
		// re-pairs with the chunk that produced texts[j].
		for j, i := range missing {
			chunks[i].Embedding = vectors[j]
			if u.cache != nil {
				if err := u.cache.Put(model, chunks[i].Text, vectors[j]); err != nil {
					u.log.Warn().Err(err).Str("chunk", chunks[i].ID).Msg("failed to cache embedding")
				}
			}
			done++
			if onChunk != nil {
				onChunk(done, len(chunks))
			}
		}
	}

	u.log.Info().
		Int("documents", result.Documents).
		Int("chunks", result.Chunks).
		Int("cache_hits", result.CacheHits).
		Msg("index built")

	return &domain.Index{Model: model, Chunks: chunks}, result, nil
}
