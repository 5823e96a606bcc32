// Package router decides, per user utterance, whether the downstream answer
// should be streamed or batched and whether live web augmentation is needed.
// It layers rule-based heuristics, optional embedding similarity, and an
// optional LLM classifier; later layers only override earlier ones when
// their signal is clear.
package router

import "context"

// Route says how the downstream handler should deliver its answer.
type Route string

const (
	// RouteStream delivers the answer token by token.
	RouteStream Route = "stream"
	// RouteNonStream delivers the answer as a single batched payload.
	RouteNonStream Route = "nonstream"
)

// Meta carries optional request metadata alongside the utterance.
type Meta struct {
	HasAttachment bool
	Length        int
}

// RouteDecision is the routing outcome for one utterance.
// Reasons accumulates every rule or signal that fired, in evaluation order,
// for explainability. Ambiguity is a heuristic confidence inverse in [0,1],
// not a calibrated probability.
type RouteDecision struct {
	Route     Route    `json:"route"`
	Web       bool     `json:"web"`
	Reasons   []string `json:"reasons"`
	Ambiguity float64  `json:"ambiguity"`
}

// Scores records the per-stage confidence signals that produced a
// WeightedDecision. Embed and LLM are nil when the stage did not run or its
// signal was folded away.
type Scores struct {
	Rule  float64  `json:"rule"`
	Embed *float64 `json:"embed,omitempty"`
	LLM   *float64 `json:"llm,omitempty"`
}

// WeightedDecision is a RouteDecision enriched with stage scores.
type WeightedDecision struct {
	RouteDecision
	Scores Scores `json:"scores"`
}

// RouterService is the routing contract consumed by the chat/search API.
type RouterService interface {
	// DecideByRules returns the synchronous rule-only decision.
	// It is pure, total and idempotent.
	DecideByRules(text string, meta *Meta) *RouteDecision

	// Decide blends the rule decision with optional embedding and LLM
	// signals. It never returns an error condition to the caller: every
	// collaborator failure degrades to the best decision already in hand.
	Decide(ctx context.Context, text string, meta *Meta) *WeightedDecision
}

// EmbeddingClient computes an embedding vector for one text.
type EmbeddingClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// ChatClient asks an LLM for a structured classification answer.
// The returned string is expected to be JSON but may be anything; callers
// parse defensively.
type ChatClient interface {
	CompleteJSON(ctx context.Context, system, user string) (string, error)
}

// Reason tags appended to RouteDecision.Reasons, in rule priority order.
const (
	ReasonGreeting   = "greeting"
	ReasonSmalltalk  = "smalltalk"
	ReasonRealtime   = "realtime"
	ReasonToolDetail = "tool-detail"
	ReasonToolSearch = "tool-search"
	ReasonDocument   = "document"
	ReasonAIConcept  = "ai-concept"
	ReasonFactoid    = "factoid"
	ReasonRecommend  = "recommend"
	ReasonDefault    = "default"

	// ReasonEmbedOverride marks an embedding-similarity override.
	ReasonEmbedOverride = "embed-override"
	// ReasonLLMOverride marks an LLM classification override.
	ReasonLLMOverride = "llm-override"
	// ReasonLLMIgnoredStrongRule records that an LLM answer was discarded
	// because a strong rule had already fired.
	ReasonLLMIgnoredStrongRule = "llm-ignored-strong-rule"
)
