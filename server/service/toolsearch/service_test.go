package toolsearch

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moaworks/moa-router/store"
)

// fakeDriver is an in-memory store.Driver for service tests.
type fakeDriver struct {
	tools     []*store.AITool
	vectorHit []*store.AIToolWithScore
	vectorErr error
}

func (f *fakeDriver) GetDB() *sql.DB                            { return nil }
func (f *fakeDriver) Close() error                              { return nil }
func (f *fakeDriver) Migrate(context.Context) error             { return nil }
func (f *fakeDriver) DeleteAITool(context.Context, int32) error { return nil }

func (f *fakeDriver) CreateAITool(_ context.Context, create *store.AITool) (*store.AITool, error) {
	f.tools = append(f.tools, create)
	return create, nil
}

func (f *fakeDriver) ListAITools(_ context.Context, find *store.FindAITool) ([]*store.AITool, error) {
	list := []*store.AITool{}
	for _, tool := range f.tools {
		if find != nil {
			if find.Category != nil && tool.Category != *find.Category {
				continue
			}
			if find.Price != nil && tool.Price != *find.Price {
				continue
			}
		}
		list = append(list, tool)
	}
	return list, nil
}

func (f *fakeDriver) GetAIToolByName(_ context.Context, name string) (*store.AITool, error) {
	for _, tool := range f.tools {
		if strings.EqualFold(tool.Name, name) {
			return tool, nil
		}
	}
	return nil, nil
}

func (f *fakeDriver) UpdateAIToolEmbedding(context.Context, int32, []float32) error { return nil }

func (f *fakeDriver) FindAIToolsWithoutEmbedding(context.Context) ([]*store.AITool, error) {
	return nil, nil
}

func (f *fakeDriver) SearchAIToolsByVector(context.Context, []float32, int) ([]*store.AIToolWithScore, error) {
	if f.vectorErr != nil {
		return nil, f.vectorErr
	}
	return f.vectorHit, nil
}

type fakeEmbed struct{ err error }

func (f *fakeEmbed) Embed(context.Context, string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

func catalog() []*store.AITool {
	return []*store.AITool{
		{ID: 1, Name: "Midjourney", Category: "image", Price: "paid", Rating: 4.8},
		{ID: 2, Name: "Stable Diffusion", Category: "image", Price: "free", Features: []string{"free", "api"}, Rating: 4.4},
		{ID: 3, Name: "Notion AI", Category: "productivity", Price: "paid", Rating: 4.4},
	}
}

func TestSearchFiltersByIntent(t *testing.T) {
	st := store.New(&fakeDriver{tools: catalog()}, nil)
	svc := NewService(st, nil, nil)

	result, err := svc.Search(context.Background(), "무료 이미지 생성 도구 추천해줘", 0)
	require.NoError(t, err)

	assert.Equal(t, "image", string(result.Intent.Category))
	assert.Equal(t, "free", string(result.Intent.Price))
	require.Len(t, result.Tools, 1, "paid tools are filtered out")
	assert.Equal(t, "Stable Diffusion", result.Tools[0].Tool.Name)
}

func TestSearchAliasSurvivesFilter(t *testing.T) {
	st := store.New(&fakeDriver{tools: catalog()}, nil)
	svc := NewService(st, nil, nil)

	// Midjourney is paid and would be excluded by the free filter, but the
	// user named it, so enrichment pulls it back in and ranking pins it
	// first.
	result, err := svc.Search(context.Background(), "미드저니 말고 무료 이미지 도구 추천해줘", 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"Midjourney"}, result.Aliases)
	require.NotEmpty(t, result.Tools)
	assert.Equal(t, "Midjourney", result.Tools[0].Tool.Name)
}

func TestSearchSemanticFallback(t *testing.T) {
	driver := &fakeDriver{
		vectorHit: []*store.AIToolWithScore{
			{Tool: &store.AITool{ID: 9, Name: "DreamScape", Category: "image"}, Score: 0.82},
		},
	}
	st := store.New(driver, nil)
	svc := NewService(st, nil, &fakeEmbed{})

	// Empty catalog listing plus an embedding client triggers the semantic
	// fallback.
	result, err := svc.Search(context.Background(), "몽환적인 그림 그려주는 거", 0)
	require.NoError(t, err)
	require.Len(t, result.Tools, 1)
	assert.Equal(t, "DreamScape", result.Tools[0].Tool.Name)
}

func TestSearchSemanticFallbackFailureIsNotFatal(t *testing.T) {
	driver := &fakeDriver{vectorErr: errors.New("vector search is not supported by the sqlite driver")}
	st := store.New(driver, nil)
	svc := NewService(st, nil, &fakeEmbed{})

	result, err := svc.Search(context.Background(), "몽환적인 그림 그려주는 거", 0)
	require.NoError(t, err)
	assert.Empty(t, result.Tools)
}

func TestSearchLimit(t *testing.T) {
	driver := &fakeDriver{}
	for i := 0; i < 20; i++ {
		driver.tools = append(driver.tools, &store.AITool{ID: int32(i), Name: "Tool" + strings.Repeat("x", i), Category: "image"})
	}
	st := store.New(driver, nil)
	svc := NewService(st, nil, nil)

	result, err := svc.Search(context.Background(), "이미지 도구 추천", 5)
	require.NoError(t, err)
	assert.Len(t, result.Tools, 5)
}

func TestSemanticWithoutEmbedClient(t *testing.T) {
	st := store.New(&fakeDriver{}, nil)
	svc := NewService(st, nil, nil)

	_, err := svc.Semantic(context.Background(), "아무거나", 0)
	assert.Error(t, err)
}
