package retriever

import (
	"sort"

	"docrag/internal/domain"
)

// WeightedRanker scores every chunk against the query vector and orders the
// collection by similarity multiplied by source-authority and heading-intent
// weights. Weights amplify the similarity in either direction of its sign;
// the product is an ordering key, not a bounded confidence value.
type WeightedRanker struct {
	sources  SourceWeights
	headings HeadingRules
}

func NewWeightedRanker(sources SourceWeights, headings HeadingRules) *WeightedRanker {
	return &WeightedRanker{sources: sources, headings: headings}
}

// Rank returns at most topK results sorted by weighted score descending.
// Ties keep original index order (stable sort), so repeated calls with
// identical inputs return identical order.
func (r *WeightedRanker) Rank(queryVec []float32, chunks []domain.Chunk, query string, topK int) ([]domain.RankedResult, error) {
	if topK <= 0 || len(chunks) == 0 {
		return nil, nil
	}

	results := make([]domain.RankedResult, 0, len(chunks))
	for i := range chunks {
		raw, err := Cosine(queryVec, chunks[i].Embedding)
		if err != nil {
			return nil, err
		}
		weighted := raw *
			r.sources.Weight(chunks[i].Source) *
			r.headings.Weight(chunks[i].Heading, query)
		results = append(results, domain.RankedResult{
			Chunk:         &chunks[i],
			RawScore:      raw,
			WeightedScore: weighted,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].WeightedScore > results[j].WeightedScore
	})

	if topK < len(results) {
		results = results[:topK]
	}
	return results, nil
}
