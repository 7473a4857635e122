// Package storage defines the persistence interface for chunk metadata.
package storage

import (
	"context"

	"github.com/hyperjump/kotae/internal/models"
)

// ChunkStore persists the ordered chunk metadata list of an index.
// The list is written once per build and read back wholesale at load time.
type ChunkStore interface {
	// SaveChunks replaces the stored list with chunks, preserving order.
	SaveChunks(ctx context.Context, chunks []models.Chunk) error
	// ListChunks returns all chunks in insertion order.
	ListChunks(ctx context.Context) ([]models.Chunk, error)
	// CountChunks returns the number of stored chunks.
	CountChunks(ctx context.Context) (int64, error)

	Close() error
}
