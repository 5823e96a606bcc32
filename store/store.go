// Package store provides access to the AI tool catalog behind an LRU cache.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/moaworks/moa-router/internal/profile"
	"github.com/moaworks/moa-router/store/cache"
)

const (
	toolCacheCapacity = 1000
	toolCacheTTL      = 10 * time.Minute
)

// Store provides database access to the tool catalog.
type Store struct {
	profile *profile.Profile
	driver  Driver

	// toolCache holds hot catalog listings and by-name lookups. Every write
	// invalidates the whole tool keyspace; the catalog is small and changes
	// rarely, so coarse invalidation beats tracking which listings a write
	// touches.
	toolCache *cache.LRUCache
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:    driver,
		profile:   profile,
		toolCache: cache.NewLRUCache(toolCacheCapacity, toolCacheTTL),
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	s.toolCache.Clear()
	return s.driver.Close()
}

// Migrate creates the schema if needed.
func (s *Store) Migrate(ctx context.Context) error {
	return s.driver.Migrate(ctx)
}

// CreateAITool inserts a catalog entry and invalidates cached listings.
func (s *Store) CreateAITool(ctx context.Context, create *AITool) (*AITool, error) {
	tool, err := s.driver.CreateAITool(ctx, create)
	if err != nil {
		return nil, err
	}
	s.toolCache.Invalidate("tool:*")
	return tool, nil
}

// ListAITools lists catalog entries matching the filter, serving repeated
// queries from cache.
func (s *Store) ListAITools(ctx context.Context, find *FindAITool) ([]*AITool, error) {
	key := listCacheKey(find)
	if cached, ok := s.toolCache.Get(key); ok {
		return cached.([]*AITool), nil
	}

	tools, err := s.driver.ListAITools(ctx, find)
	if err != nil {
		return nil, err
	}
	s.toolCache.Set(key, tools, 0)
	return tools, nil
}

// GetAIToolByName returns the catalog entry with the given canonical name,
// or nil when absent.
func (s *Store) GetAIToolByName(ctx context.Context, name string) (*AITool, error) {
	key := "tool:name:" + strings.ToLower(name)
	if cached, ok := s.toolCache.Get(key); ok {
		return cached.(*AITool), nil
	}

	tool, err := s.driver.GetAIToolByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if tool != nil {
		s.toolCache.Set(key, tool, 0)
	}
	return tool, nil
}

// FetchByAlias satisfies the alias-enrichment fetcher contract: aliases are
// detected as canonical names, so this is a by-name lookup.
func (s *Store) FetchByAlias(ctx context.Context, canonical string) (*AITool, error) {
	return s.GetAIToolByName(ctx, canonical)
}

// DeleteAITool removes a catalog entry and invalidates cached listings.
func (s *Store) DeleteAITool(ctx context.Context, id int32) error {
	if err := s.driver.DeleteAITool(ctx, id); err != nil {
		return err
	}
	s.toolCache.Invalidate("tool:*")
	return nil
}

// UpdateAIToolEmbedding stores a new embedding and invalidates cached
// listings so missing-embedding bookkeeping stays fresh.
func (s *Store) UpdateAIToolEmbedding(ctx context.Context, id int32, embedding []float32) error {
	if err := s.driver.UpdateAIToolEmbedding(ctx, id, embedding); err != nil {
		return err
	}
	s.toolCache.Invalidate("tool:*")
	return nil
}

// SearchAIToolsByVector performs semantic catalog search. Never cached:
// every query embedding is distinct.
func (s *Store) SearchAIToolsByVector(ctx context.Context, embedding []float32, limit int) ([]*AIToolWithScore, error) {
	return s.driver.SearchAIToolsByVector(ctx, embedding, limit)
}

func listCacheKey(find *FindAITool) string {
	if find == nil {
		return "tool:list:all"
	}
	var b strings.Builder
	b.WriteString("tool:list:")
	if find.ID != nil {
		fmt.Fprintf(&b, "id=%d;", *find.ID)
	}
	if find.Category != nil {
		fmt.Fprintf(&b, "cat=%s;", *find.Category)
	}
	if find.Price != nil {
		fmt.Fprintf(&b, "price=%s;", *find.Price)
	}
	for _, f := range find.Features {
		fmt.Fprintf(&b, "feat=%s;", f)
	}
	if find.Query != nil {
		fmt.Fprintf(&b, "q=%s;", strings.ToLower(*find.Query))
	}
	if find.Limit != nil {
		fmt.Fprintf(&b, "limit=%d;", *find.Limit)
	}
	return b.String()
}
