// Package toolsearch orchestrates one tool-search request: intent analysis,
// catalog filtering, semantic fallback, alias enrichment and ranking.
package toolsearch

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/moaworks/moa-router/plugin/nlu/intent"
	"github.com/moaworks/moa-router/plugin/nlu/ranking"
	"github.com/moaworks/moa-router/plugin/nlu/router"
	"github.com/moaworks/moa-router/plugin/nlu/timeout"
	"github.com/moaworks/moa-router/store"
)

const defaultLimit = 10

// Service answers tool-search queries against the catalog.
type Service struct {
	store    *store.Store
	analyzer *intent.Analyzer

	// embed enables the semantic fallback when keyword filtering finds
	// nothing. Optional; nil disables the fallback.
	embed router.EmbeddingClient
}

// NewService creates a tool-search service.
func NewService(st *store.Store, analyzer *intent.Analyzer, embed router.EmbeddingClient) *Service {
	if analyzer == nil {
		analyzer = intent.NewAnalyzer(nil)
	}
	return &Service{store: st, analyzer: analyzer, embed: embed}
}

// Result is the full answer to one search query.
type Result struct {
	Intent  intent.Intent        `json:"intent"`
	Aliases []string             `json:"aliases"`
	Tools   []ranking.ScoredTool `json:"tools"`
}

// Search analyzes the query, pulls matching candidates from the catalog and
// returns them ranked. Tools the user named by alias are guaranteed present
// even when the keyword filter missed them.
func (s *Service) Search(ctx context.Context, query string, limit int) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout.SearchTimeout)
	defer cancel()

	if limit <= 0 {
		limit = defaultLimit
	}

	in := s.analyzer.Analyze(query)
	aliases := s.analyzer.DetectAliases(query)

	candidates, err := s.store.ListAITools(ctx, findFromIntent(in))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list catalog candidates")
	}

	// Keyword filtering found nothing: retry semantically when we can.
	if len(candidates) == 0 && s.embed != nil {
		if semantic, err := s.Semantic(ctx, query, limit); err == nil {
			for _, hit := range semantic {
				candidates = append(candidates, hit.Tool)
			}
		} else {
			slog.Debug("semantic fallback unavailable", "error", err)
		}
	}

	candidates = ranking.EnrichWithAliases(ctx, s.store, candidates, aliases)

	ranked := ranking.Rank(query, in, aliases, candidates)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return &Result{
		Intent:  in,
		Aliases: aliases,
		Tools:   ranked,
	}, nil
}

// Semantic performs embedding-based catalog search. It fails on drivers
// without vector support and when no embedding client is configured.
func (s *Service) Semantic(ctx context.Context, query string, limit int) ([]*store.AIToolWithScore, error) {
	if s.embed == nil {
		return nil, errors.New("semantic search requires an embedding client")
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	vector, err := s.embed.Embed(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to embed query")
	}
	return s.store.SearchAIToolsByVector(ctx, vector, limit)
}

// findFromIntent translates the analyzed intent into a catalog filter.
// Unscoped fields stay nil so the driver leaves them unconstrained.
func findFromIntent(in intent.Intent) *store.FindAITool {
	find := &store.FindAITool{}
	if in.Category != intent.CategoryUnscoped {
		category := string(in.Category)
		find.Category = &category
	}
	if in.Price != intent.PriceAny {
		price := string(in.Price)
		find.Price = &price
	}
	return find
}
