package compare

import (
	"math"

	"github.com/jonwraymond/fuzzmatch/token"
)

// similarityComparator scores cosine similarity over aggregated token
// vectors. "Dissimilar" and "incomparable" are the same outcome: a
// sequence without a usable vector scores 0, never an error.
type similarityComparator struct{}

// Similarity returns the vector-similarity comparator.
func Similarity() Comparator {
	return similarityComparator{}
}

func (similarityComparator) Compare(query, reference *token.Sequence, _ Options) int {
	qv := query.Vector()
	rv := reference.Vector()
	if qv == nil || rv == nil {
		return 0
	}
	return clamp(round(cosineSimilarity(qv, rv) * 100))
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Returns 0 for mismatched dimensions or zero-norm vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
