package router

import (
	"context"
	"math"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Prototype utterances for the embedding signal. The input embedding is
// compared against each; the argmax prototype may override the rule decision
// when its similarity clears the margin.
type prototype struct {
	name  string
	text  string
	route Route
	web   bool
}

var prototypes = []prototype{
	{"news", "오늘 뉴스나 날씨 같은 실시간 정보를 알려줘", RouteStream, true},
	{"doc", "이 문서를 읽고 전체 내용을 요약 정리해줘", RouteNonStream, false},
	{"fact", "이 용어가 무엇인지 사실 위주로 설명해줘", RouteStream, true},
	{"rec", "쓸만한 AI 도구나 서비스를 추천해줘", RouteStream, false},
}

// embedMargin is the minimum cosine similarity the best prototype must reach
// before it may override the rule decision. Sub-threshold similarity is
// treated as noise. Hand-tuned; preserved verbatim.
const embedMargin = 0.35

// prototypeIndex embeds the fixed prototypes once and answers
// nearest-prototype queries. Warmup is deduplicated across concurrent
// callers with singleflight.
type prototypeIndex struct {
	client EmbeddingClient

	group   singleflight.Group
	mu      sync.RWMutex
	vectors [][]float32
}

func newPrototypeIndex(client EmbeddingClient) *prototypeIndex {
	return &prototypeIndex{client: client}
}

// best returns the argmax prototype for the input text and its cosine
// similarity. ok is false when embeddings could not be computed.
func (p *prototypeIndex) best(ctx context.Context, text string) (prototype, float64, bool) {
	vectors, err := p.warm(ctx)
	if err != nil {
		return prototype{}, 0, false
	}

	input, err := p.client.Embed(ctx, text)
	if err != nil || len(input) == 0 {
		return prototype{}, 0, false
	}

	bestIdx, bestSim := -1, math.Inf(-1)
	for i, vec := range vectors {
		sim := cosineSimilarity(input, vec)
		if sim > bestSim {
			bestIdx, bestSim = i, sim
		}
	}
	if bestIdx < 0 {
		return prototype{}, 0, false
	}
	return prototypes[bestIdx], bestSim, true
}

// warm embeds the prototype strings once per index instance.
func (p *prototypeIndex) warm(ctx context.Context) ([][]float32, error) {
	p.mu.RLock()
	cached := p.vectors
	p.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	result, err, _ := p.group.Do("prototypes", func() (any, error) {
		vectors := make([][]float32, len(prototypes))
		for i, proto := range prototypes {
			vec, err := p.client.Embed(ctx, proto.text)
			if err != nil {
				return nil, err
			}
			vectors[i] = vec
		}
		p.mu.Lock()
		p.vectors = vectors
		p.mu.Unlock()
		return vectors, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([][]float32), nil
}

// cosineSimilarity computes the cosine similarity of two vectors.
// Mismatched or zero-length vectors yield 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
