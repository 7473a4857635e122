package search

import "github.com/hyperjump/kotae/pkg/utils"

// Scorer ranks a chunk vector against a query vector. Higher is more
// relevant. Implementations must be safe for concurrent use; an
// embedding-based scorer can replace the default without touching routing or
// assembly.
type Scorer interface {
	Score(query, chunk []float64) float64
}

// CosineScorer scores by dot product. The vectorizer L2-normalizes both
// sides, so the dot product equals cosine similarity and lies in [0, 1].
type CosineScorer struct{}

// Score returns the cosine similarity of two normalized vectors.
func (CosineScorer) Score(query, chunk []float64) float64 {
	return utils.Dot(query, chunk)
}
