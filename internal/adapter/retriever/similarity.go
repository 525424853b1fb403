package retriever

import (
	"fmt"
	"math"
)

// Cosine computes the cosine similarity between two equal-length vectors,
// in [-1, 1]. A zero vector carries no direction, so either norm being zero
// yields 0 rather than NaN. Unequal lengths are a caller error.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("cosine: vector length mismatch: %d vs %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
