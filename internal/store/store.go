// Package store provides the memory storage interface and SQLite implementation.
package store

import (
	"context"
	"time"

	"github.com/rcliao/mem/internal/model"
)

// ListParams holds parameters for listing memories.
type ListParams struct {
	Since time.Time // zero means no lower bound
	Limit int       // <=0 means no limit
}

// ScoredMemory pairs a memory with its BM25 relevance score.
// Lower (more negative) scores are more relevant.
type ScoredMemory struct {
	model.Memory
	Score float64 `json:"score"`
}

// Store defines the memory storage interface.
type Store interface {
	// Save upserts a memory. A zero ID inserts and assigns ID and
	// CreatedAt; otherwise the existing row is updated in place.
	// UpdatedAt is refreshed on every save.
	Save(ctx context.Context, m *model.Memory) error

	// Get retrieves a memory by id.
	Get(ctx context.Context, id int64) (*model.Memory, error)

	// Delete permanently removes a memory and its search index entry.
	Delete(ctx context.Context, id int64) error

	// All returns every memory in primary-key order.
	All(ctx context.Context) ([]model.Memory, error)

	// List returns memories matching the given filters in primary-key order.
	List(ctx context.Context, p ListParams) ([]model.Memory, error)

	// Search runs a full-text query over content and context, most
	// relevant first.
	Search(ctx context.Context, query string, limit int) ([]model.Memory, error)

	// SearchRanked is Search with BM25 scores attached.
	SearchRanked(ctx context.Context, query string, limit int) ([]ScoredMemory, error)

	// Close closes the store.
	Close() error
}
