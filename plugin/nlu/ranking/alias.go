package ranking

import (
	"context"
	"log/slog"

	"github.com/moaworks/moa-router/store"
)

// AliasFetcher looks up one catalog entry by its canonical tool name.
type AliasFetcher interface {
	FetchByAlias(ctx context.Context, canonical string) (*store.AITool, error)
}

// EnrichWithAliases guarantees that every tool the user named by alias is
// present in the candidate set, fetching missing ones through the fetcher.
// Fetches run sequentially in detection order; a failed or empty fetch is
// logged and skipped, never fatal. Fetched tools are prepended so alias
// mentions survive any downstream truncation.
func EnrichWithAliases(ctx context.Context, fetcher AliasFetcher, tools []*store.AITool, aliases []string) []*store.AITool {
	if fetcher == nil || len(aliases) == 0 {
		return tools
	}

	present := make(map[string]bool, len(tools))
	for _, tool := range tools {
		present[NormalizeName(tool.Name)] = true
	}

	var fetched []*store.AITool
	for _, alias := range aliases {
		key := NormalizeName(alias)
		if present[key] {
			continue
		}
		tool, err := fetcher.FetchByAlias(ctx, alias)
		if err != nil {
			slog.Warn("alias enrichment fetch failed", "alias", alias, "error", err)
			continue
		}
		if tool == nil {
			continue
		}
		present[key] = true
		fetched = append(fetched, tool)
	}

	if len(fetched) == 0 {
		return tools
	}
	return append(fetched, tools...)
}
