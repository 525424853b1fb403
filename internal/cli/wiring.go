package cli

import (
	"fmt"
	"os"

	"docrag/config"
	"docrag/internal/adapter/embedding"
	"docrag/internal/adapter/retriever"
	"docrag/internal/adapter/store"
	"docrag/internal/port"
	"docrag/internal/usecase"
)

func newEmbedder(cfg *config.Config) (port.Embedder, error) {
	switch cfg.Embedding.Provider {
	case "mock":
		return embedding.NewMockEmbedder(cfg.Embedding.Dimension), nil
	case "", "openai":
		return embedding.NewOpenAIEmbedder(
			cfg.Embedding.APIKeyEnv,
			cfg.Embedding.Model,
			cfg.Embedding.BaseURL,
			cfg.Embedding.BatchSize,
		)
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Embedding.Provider)
	}
}

// newService loads the persisted index and wires the retrieval façade.
func newService(cfg *config.Config) (*usecase.RetrieveUseCase, error) {
	indexPath := resolve(cfg.Index.IndexPath)
	if _, err := os.Stat(indexPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("no index found at %s, run 'docrag index' first", indexPath)
	}

	index, err := store.Load(indexPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load index: %w", err)
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return nil, err
	}

	ranker := retriever.NewWeightedRanker(cfg.Retrieve.SourceWeights, cfg.Retrieve.HeadingRules)
	return usecase.NewRetrieveUseCase(index, embedder, ranker, cfg.Retrieve.BaseURL, logger)
}
