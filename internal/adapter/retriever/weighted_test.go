package retriever

import (
	"testing"

	"docrag/internal/domain"
)

func testChunks() []domain.Chunk {
	return []domain.Chunk{
		{ID: "c1", Source: "api-spec.md", Heading: "Retry Policy", Embedding: []float32{1, 0}},
		{ID: "c2", Source: "faq.md", Heading: "Retry Policy", Embedding: []float32{1, 0}},
		{ID: "c3", Source: "guide.md", Heading: "Webhooks", Embedding: []float32{0, 1}},
	}
}

func TestRankSourceWeightBreaksEqualSimilarity(t *testing.T) {
	ranker := NewWeightedRanker(
		SourceWeights{"api-spec.md": 1.15, "faq.md": 0.95},
		nil,
	)

	// c1 and c2 have identical raw similarity to the query; the 1.15
	// source must rank first.
	results, err := ranker.Rank([]float32{1, 0}, testChunks(), "anything", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Chunk.ID != "c1" {
		t.Errorf("expected c1 first, got %s", results[0].Chunk.ID)
	}
	if results[1].Chunk.ID != "c2" {
		t.Errorf("expected c2 second, got %s", results[1].Chunk.ID)
	}
	if results[0].RawScore != results[1].RawScore {
		t.Errorf("raw scores should be equal: %v vs %v", results[0].RawScore, results[1].RawScore)
	}
	if results[0].WeightedScore <= results[1].WeightedScore {
		t.Error("weighted score did not separate equal raw scores")
	}
}

func TestRankHeadingBoost(t *testing.T) {
	ranker := NewWeightedRanker(nil, HeadingRules{
		{Name: "events", QueryKeywords: []string{"webhook"}, HeadingKeywords: []string{"webhook"}, Boost: 3.0},
	})

	// Query vector leans toward c1/c2, but the heading boost on c3 is
	// large enough to reorder.
	results, err := ranker.Rank([]float32{1, 0.5}, testChunks(), "webhook delivery", 10)
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Chunk.ID != "c3" {
		t.Errorf("expected boosted c3 first, got %s", results[0].Chunk.ID)
	}
}

func TestRankTopKBound(t *testing.T) {
	ranker := NewWeightedRanker(nil, nil)

	results, err := ranker.Rank([]float32{1, 0}, testChunks(), "q", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) > 2 {
		t.Errorf("rank returned %d results, topK was 2", len(results))
	}
	for i := 0; i < len(results)-1; i++ {
		if results[i].WeightedScore < results[i+1].WeightedScore {
			t.Error("results are not sorted by weighted score descending")
		}
	}
}

func TestRankDeterminism(t *testing.T) {
	ranker := NewWeightedRanker(SourceWeights{"faq.md": 0.95}, nil)
	chunks := testChunks()

	first, err := ranker.Rank([]float32{0.7, 0.7}, chunks, "q", 10)
	if err != nil {
		t.Fatal(err)
	}
	second, err := ranker.Rank([]float32{0.7, 0.7}, chunks, "q", 10)
	if err != nil {
		t.Fatal(err)
	}
	for i := range first {
		if first[i].Chunk.ID != second[i].Chunk.ID {
			t.Fatalf("order differs at %d: %s vs %s", i, first[i].Chunk.ID, second[i].Chunk.ID)
		}
	}
}

func TestRankNegativeSimilarityAmplified(t *testing.T) {
	ranker := NewWeightedRanker(SourceWeights{"neg.md": 2.0}, nil)
	chunks := []domain.Chunk{
		{ID: "n1", Source: "neg.md", Embedding: []float32{-1, 0}},
		{ID: "n2", Source: "other.md", Embedding: []float32{-1, 0}},
	}

	// A multiplier > 1 makes a negative score more negative, so the
	// weighted chunk sorts below the neutral one.
	results, err := ranker.Rank([]float32{1, 0}, chunks, "q", 10)
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Chunk.ID != "n2" {
		t.Errorf("expected n2 first, got %s", results[0].Chunk.ID)
	}
}

func TestRankDimensionMismatch(t *testing.T) {
	ranker := NewWeightedRanker(nil, nil)
	if _, err := ranker.Rank([]float32{1, 0, 0}, testChunks(), "q", 5); err == nil {
		t.Fatal("expected error for query vector dimension mismatch")
	}
}
