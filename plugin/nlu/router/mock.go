package router

import (
	"context"
	"strings"
)

// MockRouterService is a deterministic RouterService for consumers' tests.
type MockRouterService struct {
	// Overrides forces a decision for an exact input string.
	Overrides map[string]*RouteDecision
}

// NewMockRouterService creates a new MockRouterService.
func NewMockRouterService() *MockRouterService {
	return &MockRouterService{Overrides: make(map[string]*RouteDecision)}
}

// DecideByRules returns the override for the input if present, otherwise a
// crude keyword decision.
func (m *MockRouterService) DecideByRules(text string, _ *Meta) *RouteDecision {
	if d, ok := m.Overrides[text]; ok {
		return d
	}

	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "날씨") || strings.Contains(lower, "뉴스"):
		return &RouteDecision{Route: RouteStream, Web: true, Reasons: []string{ReasonRealtime}, Ambiguity: ambiguityRealtime}
	case strings.Contains(lower, "요약") || strings.Contains(lower, "보고서"):
		return &RouteDecision{Route: RouteNonStream, Web: false, Reasons: []string{ReasonDocument}, Ambiguity: ambiguityDocument}
	case strings.Contains(lower, "추천"):
		return &RouteDecision{Route: RouteStream, Web: false, Reasons: []string{ReasonRecommend}, Ambiguity: ambiguityRecommend}
	default:
		return &RouteDecision{Route: RouteStream, Web: false, Reasons: []string{ReasonDefault}, Ambiguity: ambiguityDefault}
	}
}

// Decide wraps DecideByRules without running any network stages.
func (m *MockRouterService) Decide(_ context.Context, text string, meta *Meta) *WeightedDecision {
	rule := m.DecideByRules(text, meta)
	return &WeightedDecision{
		RouteDecision: *rule,
		Scores:        Scores{Rule: 1 - rule.Ambiguity},
	}
}

// Ensure MockRouterService implements RouterService.
var _ RouterService = (*MockRouterService)(nil)
