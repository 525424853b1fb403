package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"docrag/internal/domain"
	"docrag/internal/normalize"
	"docrag/internal/port"
)

// NotFoundTitle marks the structured miss response of a fetch.
const NotFoundTitle = "NOT_FOUND"

// RetrieveUseCase is the retrieval façade. It owns the loaded index for the
// process lifetime; the index is immutable, so concurrent Search and Fetch
// calls share it without locking. Each search issues exactly one embedding
// call for the query text.
type RetrieveUseCase struct {
	index    *domain.Index
	embedder port.Embedder
	ranker   port.Ranker
	baseURL  string
	log      zerolog.Logger
}

// NewRetrieveUseCase wires the façade and verifies at startup that the
// embedder matches the model the index was built with. Mixing vectors from
// different models is a setup error, caught here rather than per request.
func NewRetrieveUseCase(index *domain.Index, embedder port.Embedder, ranker port.Ranker, baseURL string, log zerolog.Logger) (*RetrieveUseCase, error) {
	if index == nil {
		return nil, fmt.Errorf("retrieve: index is nil")
	}
	if embedder.ModelName() != index.Model {
		return nil, fmt.Errorf("retrieve: embedder model %q does not match index model %q",
			embedder.ModelName(), index.Model)
	}
	return &RetrieveUseCase{
		index:    index,
		embedder: embedder,
		ranker:   ranker,
		baseURL:  baseURL,
		log:      log,
	}, nil
}

// Search normalizes the raw payload, embeds the query, ranks the index, and
// maps each ranked chunk to a display record. Embedding failures surface as
// search_failed with the underlying message, never as an empty result list.
func (u *RetrieveUseCase) Search(ctx context.Context, rawPayload any) (*domain.SearchResponse, error) {
	call, err := normalize.Search(rawPayload)
	if err != nil {
		return nil, err
	}

	vectors, err := u.embedder.Embed(ctx, []string{call.Query})
	if err != nil {
		return nil, domain.Tagged(domain.CodeSearchFailed, fmt.Errorf("failed to embed query: %w", err))
	}
	if len(vectors) != 1 {
		return nil, domain.Taggedf(domain.CodeSearchFailed, "embedding returned %d vectors for one query", len(vectors))
	}

	ranked, err := u.ranker.Rank(vectors[0], u.index.Chunks, call.Query, call.TopK)
	if err != nil {
		return nil, domain.Tagged(domain.CodeSearchFailed, err)
	}

	resp := &domain.SearchResponse{Results: make([]domain.SearchResultItem, 0, len(ranked))}
	for _, r := range ranked {
		resp.Results = append(resp.Results, domain.SearchResultItem{
			ID:    r.Chunk.ID,
			Title: title(r.Chunk),
			URL:   u.url(r.Chunk),
		})
	}

	u.log.Debug().
		Str("query", call.Query).
		Int("top_k", call.TopK).
		Int("results", len(resp.Results)).
		Msg("search complete")
	return resp, nil
}

// Fetch looks up a chunk by id. An unknown id is a normal, structured
// not-found response, distinct from a processing error.
func (u *RetrieveUseCase) Fetch(_ context.Context, rawPayload any) (*domain.FetchResponse, error) {
	call, err := normalize.Fetch(rawPayload)
	if err != nil {
		return nil, err
	}

	for i := range u.index.Chunks {
		c := &u.index.Chunks[i]
		if c.ID != call.ID {
			continue
		}
		return &domain.FetchResponse{
			ID:    c.ID,
			Title: title(c),
			Text:  c.Text,
			URL:   u.url(c),
			Metadata: map[string]string{
				"source":  c.Source,
				"heading": c.Heading,
				"part":    fmt.Sprintf("%d", c.Part),
			},
		}, nil
	}

	u.log.Debug().Str("id", call.ID).Msg("fetch miss")
	return &domain.FetchResponse{
		ID:       call.ID,
		Title:    NotFoundTitle,
		Text:     "",
		URL:      "",
		Metadata: map[string]string{"error": "not_found"},
	}, nil
}

func title(c *domain.Chunk) string {
	return fmt.Sprintf("%s (%s)", c.Heading, c.Source)
}

func (u *RetrieveUseCase) url(c *domain.Chunk) string {
	return fmt.Sprintf("%s%s#%s", withSlash(u.baseURL), c.Source, c.ID)
}

func withSlash(base string) string {
	if base == "" || strings.HasSuffix(base, "/") {
		return base
	}
	return base + "/"
}
