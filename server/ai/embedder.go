package ai

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/moaworks/moa-router/plugin/nlu/timeout"
	"github.com/moaworks/moa-router/store"
)

// Embedder handles embedding generation and storage for catalog tools.
type Embedder struct {
	provider *Provider
	store    *store.Store
}

// NewEmbedder creates a new embedder.
func NewEmbedder(provider *Provider, store *store.Store) *Embedder {
	return &Embedder{
		provider: provider,
		store:    store,
	}
}

// EmbedTool generates and stores the embedding for a single tool. The
// embedded text is the name, category and description joined, so vector
// search sees the same signal the keyword ranker does.
func (e *Embedder) EmbedTool(ctx context.Context, tool *store.AITool) error {
	if tool == nil {
		return fmt.Errorf("tool is nil")
	}

	text := embeddingText(tool)
	if text == "" {
		return fmt.Errorf("tool %q has no embeddable text", tool.Name)
	}

	emb, err := e.provider.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to embed tool %q: %w", tool.Name, err)
	}

	driver := e.store.GetDriver()
	if err := driver.UpdateAIToolEmbedding(ctx, tool.ID, emb); err != nil {
		return fmt.Errorf("failed to update tool embedding: %w", err)
	}

	slog.Debug("Tool embedded successfully",
		"tool_id", tool.ID,
		"tool_name", tool.Name,
		"embedding_dim", len(emb))

	return nil
}

// EmbedMissing embeds every catalog entry that does not have an embedding
// yet, with bounded concurrency. It returns the number of tools embedded and
// the first error encountered, if any.
func (e *Embedder) EmbedMissing(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout.EmbedBatchTimeout)
	defer cancel()

	tools, err := e.store.GetDriver().FindAIToolsWithoutEmbedding(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list tools without embedding: %w", err)
	}
	if len(tools) == 0 {
		return 0, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(timeout.EmbedConcurrency)
	for _, tool := range tools {
		tool := tool
		g.Go(func() error {
			return e.EmbedTool(ctx, tool)
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	slog.Info("Catalog embedding run finished", "embedded", len(tools))
	return len(tools), nil
}

func embeddingText(tool *store.AITool) string {
	switch {
	case tool.Description == "":
		return tool.Name
	case tool.Name == "":
		return tool.Description
	default:
		return tool.Name + " (" + tool.Category + "): " + tool.Description
	}
}
