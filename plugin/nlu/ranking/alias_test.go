package ranking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moaworks/moa-router/store"
)

type fakeFetcher struct {
	tools map[string]*store.AITool
	err   error
	calls []string
}

func (f *fakeFetcher) FetchByAlias(_ context.Context, canonical string) (*store.AITool, error) {
	f.calls = append(f.calls, canonical)
	if f.err != nil {
		return nil, f.err
	}
	return f.tools[canonical], nil
}

func TestEnrichWithAliases(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches missing aliases and prepends them", func(t *testing.T) {
		fetcher := &fakeFetcher{tools: map[string]*store.AITool{
			"Midjourney": {Name: "Midjourney"},
			"DALL-E":     {Name: "DALL-E"},
		}}
		existing := []*store.AITool{{Name: "PixelGen"}}

		got := EnrichWithAliases(ctx, fetcher, existing, []string{"Midjourney", "DALL-E"})
		require.Len(t, got, 3)
		assert.Equal(t, "Midjourney", got[0].Name)
		assert.Equal(t, "DALL-E", got[1].Name)
		assert.Equal(t, "PixelGen", got[2].Name)
	})

	t.Run("skips aliases already in the candidate set", func(t *testing.T) {
		fetcher := &fakeFetcher{tools: map[string]*store.AITool{}}
		existing := []*store.AITool{{Name: "midjourney"}}

		got := EnrichWithAliases(ctx, fetcher, existing, []string{"Midjourney"})
		assert.Len(t, got, 1)
		assert.Empty(t, fetcher.calls, "present tools must not be re-fetched")
	})

	t.Run("fetch failure is skipped, not fatal", func(t *testing.T) {
		fetcher := &fakeFetcher{err: errors.New("db down")}
		existing := []*store.AITool{{Name: "PixelGen"}}

		got := EnrichWithAliases(ctx, fetcher, existing, []string{"Midjourney"})
		assert.Equal(t, existing, got)
	})

	t.Run("unknown alias yields no entry", func(t *testing.T) {
		fetcher := &fakeFetcher{tools: map[string]*store.AITool{}}

		got := EnrichWithAliases(ctx, fetcher, nil, []string{"NoSuchTool"})
		assert.Empty(t, got)
	})

	t.Run("nil fetcher is a no-op", func(t *testing.T) {
		existing := []*store.AITool{{Name: "PixelGen"}}
		assert.Equal(t, existing, EnrichWithAliases(ctx, nil, existing, []string{"Midjourney"}))
	})
}
