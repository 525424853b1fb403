package port

import "docrag/internal/domain"

// Ranker orders chunks against a query vector and returns at most topK
// results, best first. Implementations must be deterministic: identical
// inputs yield identical output order.
type Ranker interface {
	Rank(queryVec []float32, chunks []domain.Chunk, query string, topK int) ([]domain.RankedResult, error)
}
