// Package index builds, persists, and loads the term-weighted retrieval index.
package index

import (
	"github.com/hyperjump/kotae/internal/models"
)

// Index bundles the frozen vocabulary, the per-chunk weight matrix, and the
// ordered chunk list. An Index is immutable once built or loaded and may be
// read concurrently without locking; a rebuild produces a new Index that
// replaces the old one wholesale.
type Index struct {
	vectorizer *Vectorizer
	vectors    [][]float64 // row i is the weight vector for chunks[i]
	chunks     []models.Chunk
}

// Build constructs an index over chunks with the vocabulary capped to
// maxFeatures terms. Returns ErrCorpusEmpty when chunks is empty.
func Build(chunks []models.Chunk, maxFeatures int) (*Index, error) {
	if len(chunks) == 0 {
		return nil, ErrCorpusEmpty
	}
	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
	}
	vectorizer := Fit(texts, maxFeatures)
	vectors := make([][]float64, len(chunks))
	for i, text := range texts {
		vectors[i] = vectorizer.Transform(text)
	}
	return &Index{
		vectorizer: vectorizer,
		vectors:    vectors,
		chunks:     chunks,
	}, nil
}

// Transform vectorizes text against the frozen vocabulary.
func (ix *Index) Transform(text string) []float64 {
	return ix.vectorizer.Transform(text)
}

// Len returns the number of indexed chunks.
func (ix *Index) Len() int {
	return len(ix.chunks)
}

// VocabSize returns the number of vocabulary terms.
func (ix *Index) VocabSize() int {
	return ix.vectorizer.Dim()
}

// Chunk returns the chunk at position i in insertion order.
func (ix *Index) Chunk(i int) *models.Chunk {
	return &ix.chunks[i]
}

// Vector returns the weight vector for the chunk at position i.
// Callers must not modify the returned slice.
func (ix *Index) Vector(i int) []float64 {
	return ix.vectors[i]
}
