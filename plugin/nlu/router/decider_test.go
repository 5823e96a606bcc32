package router

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmbed struct {
	byText map[string][]float32
	err    error
	calls  int
}

func (f *fakeEmbed) Embed(_ context.Context, text string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if v, ok := f.byText[text]; ok {
		return v, nil
	}
	return []float32{0, 0, 0, 0}, nil
}

type fakeChat struct {
	response string
	err      error
	calls    int
}

func (f *fakeChat) CompleteJSON(_ context.Context, _, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

// protoVectors maps each prototype text to a distinct unit vector so the
// tests control exactly which prototype an input lands on.
func protoVectors() map[string][]float32 {
	vectors := map[string][]float32{}
	for i, proto := range prototypes {
		v := make([]float32, len(prototypes))
		v[i] = 1
		vectors[proto.text] = v
	}
	return vectors
}

func TestDecideRuleOnlyWithoutCollaborators(t *testing.T) {
	d := NewDecider(nil, Config{})

	got := d.Decide(context.Background(), "그냥 심심해", nil)
	require.NotNil(t, got)
	assert.Equal(t, RouteStream, got.Route)
	assert.False(t, got.Web)
	assert.Equal(t, []string{ReasonDefault}, got.Reasons)
	assert.InDelta(t, ambiguityDefault, got.Ambiguity, 1e-9)
	assert.InDelta(t, 1-ambiguityDefault, got.Scores.Rule, 1e-9)
	assert.Nil(t, got.Scores.Embed)
	assert.Nil(t, got.Scores.LLM)
}

func TestDecideDegradesOnCollaboratorFailure(t *testing.T) {
	embed := &fakeEmbed{err: errors.New("embedding service down")}
	chat := &fakeChat{err: errors.New("llm unavailable")}
	d := NewDecider(nil, Config{Embeddings: embed, Chat: chat})

	got := d.Decide(context.Background(), "그냥 심심해", nil)
	rule := d.DecideByRules("그냥 심심해", nil)

	assert.Equal(t, rule.Route, got.Route)
	assert.Equal(t, rule.Web, got.Web)
	assert.Equal(t, rule.Reasons, got.Reasons)
	assert.InDelta(t, rule.Ambiguity, got.Ambiguity, 1e-9)
	assert.Nil(t, got.Scores.Embed)
	assert.Nil(t, got.Scores.LLM)
}

func TestDecideStrongRuleShortCircuits(t *testing.T) {
	embed := &fakeEmbed{byText: protoVectors()}
	chat := &fakeChat{response: `{"task":"chat","needs_web":false,"confidence":0.9}`}
	d := NewDecider(nil, Config{Embeddings: embed, Chat: chat})

	got := d.Decide(context.Background(), "오늘 날씨 어때", nil)

	assert.Equal(t, RouteStream, got.Route)
	assert.True(t, got.Web)
	assert.Equal(t, []string{ReasonRealtime}, got.Reasons)
	assert.InDelta(t, ambiguityRealtime/2, got.Ambiguity, 1e-9)
	assert.Zero(t, embed.calls, "embedding stage must be skipped")
	assert.Zero(t, chat.calls, "llm stage must be skipped")
	assert.Nil(t, got.Scores.Embed)
	assert.Nil(t, got.Scores.LLM)
}

func TestDecideEmbedOverride(t *testing.T) {
	vectors := protoVectors()
	input := "그냥 아무 말이나 해볼게"
	// Identical to the document prototype vector: cosine similarity 1.0.
	vectors[input] = []float32{0, 1, 0, 0}

	d := NewDecider(nil, Config{Embeddings: &fakeEmbed{byText: vectors}})
	got := d.Decide(context.Background(), input, nil)

	assert.Equal(t, RouteNonStream, got.Route)
	assert.False(t, got.Web)
	assert.Equal(t, []string{ReasonDefault, ReasonEmbedOverride + ":doc"}, got.Reasons)
	require.NotNil(t, got.Scores.Embed)
	assert.InDelta(t, 1.0, *got.Scores.Embed, 1e-6)
	// Ambiguity drops to 1 - mean(rule score, similarity).
	assert.InDelta(t, 0.2, got.Ambiguity, 1e-6)
}

func TestDecideEmbedBelowMarginOnlyRecordsScore(t *testing.T) {
	vectors := protoVectors()
	input := "그냥 아무 말이나 해볼게"
	// Equidistant and far from every prototype: best similarity -0.5,
	// well under the override margin.
	vectors[input] = []float32{-1, -1, -1, -1}

	d := NewDecider(nil, Config{Embeddings: &fakeEmbed{byText: vectors}})
	got := d.Decide(context.Background(), input, nil)

	assert.Equal(t, RouteStream, got.Route)
	assert.False(t, got.Web)
	assert.Equal(t, []string{ReasonDefault}, got.Reasons)
	require.NotNil(t, got.Scores.Embed)
	assert.InDelta(t, -0.5, *got.Scores.Embed, 1e-6)
	// A weak signal must never raise ambiguity above the rule value.
	assert.InDelta(t, ambiguityDefault, got.Ambiguity, 1e-9)
}

func TestDecideLLMOverride(t *testing.T) {
	chat := &fakeChat{response: `{"task":"document","needs_web":false,"confidence":0.9}`}
	d := NewDecider(nil, Config{Chat: chat})

	got := d.Decide(context.Background(), "그냥 심심해", nil)

	assert.Equal(t, RouteNonStream, got.Route)
	assert.False(t, got.Web)
	assert.Equal(t, []string{ReasonDefault, ReasonLLMOverride + ":document"}, got.Reasons)
	require.NotNil(t, got.Scores.LLM)
	assert.InDelta(t, 0.9, *got.Scores.LLM, 1e-9)
	assert.InDelta(t, 0.25, got.Ambiguity, 1e-6)
}

func TestDecideLLMAgreementAddsNoReason(t *testing.T) {
	chat := &fakeChat{response: `{"task":"chat","needs_web":false,"confidence":0.8}`}
	d := NewDecider(nil, Config{Chat: chat})

	got := d.Decide(context.Background(), "그냥 심심해", nil)

	assert.Equal(t, RouteStream, got.Route)
	assert.Equal(t, []string{ReasonDefault}, got.Reasons)
	require.NotNil(t, got.Scores.LLM)
	// Agreement still lowers ambiguity.
	assert.Less(t, got.Ambiguity, ambiguityDefault)
}

func TestDecideAmbiguityNeverIncreases(t *testing.T) {
	chat := &fakeChat{response: `{"task":"fact","needs_web":true,"confidence":0.1}`}
	d := NewDecider(nil, Config{Chat: chat})

	text := "광합성이 뭐야"
	rule := d.DecideByRules(text, nil)
	got := d.Decide(context.Background(), text, nil)

	assert.LessOrEqual(t, got.Ambiguity, rule.Ambiguity)
}

func TestDecideIsIdempotent(t *testing.T) {
	chat := &fakeChat{response: `{"task":"recommendation","needs_web":false,"confidence":0.8}`}
	embed := &fakeEmbed{byText: protoVectors()}
	d := NewDecider(nil, Config{Embeddings: embed, Chat: chat})

	text := "강남 맛집 추천해줘"
	first := d.Decide(context.Background(), text, nil)
	second := d.Decide(context.Background(), text, nil)

	assert.Equal(t, first.Route, second.Route)
	assert.Equal(t, first.Web, second.Web)
	assert.Equal(t, first.Reasons, second.Reasons)
	assert.InDelta(t, first.Ambiguity, second.Ambiguity, 1e-9)
}

func TestMockRouterService(t *testing.T) {
	m := NewMockRouterService()
	m.Overrides["특별한 입력"] = &RouteDecision{Route: RouteNonStream, Reasons: []string{ReasonDocument}, Ambiguity: 0.1}

	assert.Equal(t, RouteNonStream, m.DecideByRules("특별한 입력", nil).Route)
	assert.Equal(t, RouteStream, m.DecideByRules("아무 입력", nil).Route)

	weighted := m.Decide(context.Background(), "오늘 날씨", nil)
	assert.True(t, weighted.Web)
	assert.Nil(t, weighted.Scores.Embed)
}
