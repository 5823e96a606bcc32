package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moaworks/moa-router/plugin/nlu/intent"
	"github.com/moaworks/moa-router/store"
)

func tool(name, category string, features ...string) *store.AITool {
	return &store.AITool{Name: name, Category: category, Features: features}
}

func TestRankCategoryDominates(t *testing.T) {
	in := intent.Intent{Category: intent.CategoryImage, Features: []string{"free", "api"}}
	tools := []*store.AITool{
		tool("WriterBot", "writing", "free", "api"),
		tool("PixelGen", "image"),
	}

	got := Rank("이미지 도구", in, nil, tools)
	require.Len(t, got, 2)
	// One category match (+100) outweighs two feature matches (+60).
	assert.Equal(t, "PixelGen", got[0].Tool.Name)
	assert.Greater(t, got[0].Score, got[1].Score)
}

func TestRankFeatureAndQualitySignals(t *testing.T) {
	in := intent.Intent{Category: intent.CategoryImage, Features: []string{"free"}}

	base := &store.AITool{Name: "PlainGen", Category: "image"}
	featured := &store.AITool{Name: "FreeGen", Category: "image", Features: []string{"free"}}
	withAPI := &store.AITool{Name: "APIGen", Category: "image", HasAPI: true}
	rated := &store.AITool{Name: "StarGen", Category: "image", Rating: 4.5}
	overRated := &store.AITool{Name: "HypeGen", Category: "image", Rating: 99}

	got := Rank("이미지", in, nil, []*store.AITool{base, featured, withAPI, rated, overRated})
	scores := map[string]float64{}
	for _, s := range got {
		scores[s.Tool.Name] = s.Score
	}

	assert.InDelta(t, weightFeature, scores["FreeGen"]-scores["PlainGen"], 1e-9)
	assert.InDelta(t, weightHasAPI, scores["APIGen"]-scores["PlainGen"], 1e-9)
	assert.InDelta(t, 4.5, scores["StarGen"]-scores["PlainGen"], 1e-9)
	// Rating boost is clamped.
	assert.InDelta(t, maxRatingBoost, scores["HypeGen"]-scores["PlainGen"], 1e-9)
}

func TestRankQueryTokens(t *testing.T) {
	in := intent.Intent{Category: intent.CategoryUnscoped}
	named := &store.AITool{Name: "Gamma", Description: "발표자료 생성"}
	described := &store.AITool{Name: "DeckBot", Description: "gamma 스타일 슬라이드"}
	unrelated := &store.AITool{Name: "SoundMix", Description: "오디오 편집"}

	got := Rank("gamma 알려줘", in, nil, []*store.AITool{unrelated, described, named})
	require.Len(t, got, 3)
	assert.Equal(t, "Gamma", got[0].Tool.Name)
	assert.Equal(t, "DeckBot", got[1].Tool.Name)
	assert.Equal(t, "SoundMix", got[2].Tool.Name)
}

func TestRankAliasPinnedFront(t *testing.T) {
	in := intent.Intent{Category: intent.CategoryImage}
	tools := []*store.AITool{
		tool("PixelGen", "image"),     // category match, high score
		tool("Midjourney", "image"),   // alias hit
		tool("DALL-E", "video"),       // alias hit, no category match
		tool("BrushAI", "image"),
	}
	aliases := []string{"DALL-E", "Midjourney"}

	got := Rank("달리랑 미드저니", in, aliases, tools)
	require.Len(t, got, 4)
	// Alias hits come first, in detection order, even when their raw score
	// is lower than a non-alias candidate's.
	assert.Equal(t, "DALL-E", got[0].Tool.Name)
	assert.Equal(t, "Midjourney", got[1].Tool.Name)
	assert.Greater(t, got[1].Score, got[0].Score)
}

func TestRankOrderIndependentOfInput(t *testing.T) {
	in := intent.Intent{Category: intent.CategoryImage, Features: []string{"free"}}
	a := &store.AITool{Name: "A", Category: "image", Features: []string{"free"}, Rating: 4}
	b := &store.AITool{Name: "B", Category: "image", Rating: 3}
	c := &store.AITool{Name: "C", Category: "writing", Rating: 2}

	forward := Rank("이미지", in, nil, []*store.AITool{a, b, c})
	backward := Rank("이미지", in, nil, []*store.AITool{c, b, a})

	require.Len(t, forward, 3)
	for i := range forward {
		assert.Equal(t, forward[i].Tool.Name, backward[i].Tool.Name)
	}
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, NormalizeName("DALL-E"), NormalizeName("dall e"))
	assert.Equal(t, NormalizeName("Notion AI"), NormalizeName("notionai"))
	assert.NotEqual(t, NormalizeName("Claude"), NormalizeName("ClaudeX"))
}
