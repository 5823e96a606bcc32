package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that a store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	// Migrate creates the schema if it does not exist.
	Migrate(ctx context.Context) error

	// AITool catalog methods.
	CreateAITool(ctx context.Context, create *AITool) (*AITool, error)
	ListAITools(ctx context.Context, find *FindAITool) ([]*AITool, error)
	GetAIToolByName(ctx context.Context, name string) (*AITool, error)
	DeleteAITool(ctx context.Context, id int32) error

	// UpdateAIToolEmbedding updates the embedding vector for a tool.
	UpdateAIToolEmbedding(ctx context.Context, id int32, embedding []float32) error

	// FindAIToolsWithoutEmbedding lists tools whose embedding is missing.
	FindAIToolsWithoutEmbedding(ctx context.Context) ([]*AITool, error)

	// SearchAIToolsByVector performs semantic search using vector similarity.
	// Drivers without vector support return an explicit error.
	SearchAIToolsByVector(ctx context.Context, embedding []float32, limit int) ([]*AIToolWithScore, error)
}
