package router

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesDecide(t *testing.T) {
	r := NewRules(nil)

	tests := []struct {
		name          string
		text          string
		meta          *Meta
		wantRoute     Route
		wantWeb       bool
		wantReason    string
		wantAmbiguity float64
	}{
		{"greeting", "안녕하세요", nil, RouteStream, false, ReasonGreeting, ambiguityGreeting},
		{"greeting with punctuation", "안녕하세요!", nil, RouteStream, false, ReasonGreeting, ambiguityGreeting},
		{"english greeting", "Hello", nil, RouteStream, false, ReasonGreeting, ambiguityGreeting},
		{"smalltalk", "너는 누구야", nil, RouteStream, false, ReasonSmalltalk, ambiguitySmalltalk},
		{"realtime weather", "오늘 날씨 어때", nil, RouteStream, true, ReasonRealtime, ambiguityRealtime},
		{"realtime news", "방금 나온 속보 알려줘", nil, RouteStream, true, ReasonRealtime, ambiguityRealtime},
		{"tool detail", "미드저니 사용법 알려줘", nil, RouteStream, false, ReasonToolDetail, ambiguityToolDetail},
		{"tool search", "무료 이미지 생성 도구 추천해줘", nil, RouteStream, false, ReasonToolSearch, ambiguityToolSearch},
		{"document keyword", "이 보고서 요약해줘", &Meta{Length: 50}, RouteNonStream, false, ReasonDocument, ambiguityDocument},
		{"document attachment", "이것 좀 봐줘", &Meta{HasAttachment: true}, RouteNonStream, false, ReasonDocument, ambiguityDocument},
		{"document long message", strings.Repeat("가", longMessageThreshold+1), &Meta{Length: longMessageThreshold + 1}, RouteNonStream, false, ReasonDocument, ambiguityDocument},
		{"ai concept", "인공지능 개념 좀 설명해봐", nil, RouteStream, false, ReasonAIConcept, ambiguityAIConcept},
		{"factoid", "광합성이 뭐야", nil, RouteStream, true, ReasonFactoid, ambiguityFactoid},
		{"recommend non-tool", "강남 맛집 추천해줘", nil, RouteStream, false, ReasonRecommend, ambiguityRecommend},
		{"default", "그냥 심심해", nil, RouteStream, false, ReasonDefault, ambiguityDefault},
		{"empty default", "", nil, RouteStream, false, ReasonDefault, ambiguityDefault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Decide(tt.text, tt.meta)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantRoute, got.Route)
			assert.Equal(t, tt.wantWeb, got.Web)
			assert.Equal(t, []string{tt.wantReason}, got.Reasons)
			assert.InDelta(t, tt.wantAmbiguity, got.Ambiguity, 1e-9)
		})
	}
}

func TestRulesPriorityOrder(t *testing.T) {
	r := NewRules(nil)

	// Realtime keywords outrank the document rule even with an attachment.
	got := r.Decide("오늘 뉴스 정리해줘", &Meta{HasAttachment: true})
	assert.Equal(t, []string{ReasonRealtime}, got.Reasons)

	// Tool detail wins over tool search when both would match.
	got = r.Decide("미드저니 어때? 다른 것도 찾아줘", nil)
	assert.Equal(t, []string{ReasonToolDetail}, got.Reasons)
}

func TestIsStrong(t *testing.T) {
	assert.True(t, IsStrong(&RouteDecision{Reasons: []string{ReasonRealtime}}))
	assert.True(t, IsStrong(&RouteDecision{Reasons: []string{ReasonDocument}}))
	assert.False(t, IsStrong(&RouteDecision{Reasons: []string{ReasonFactoid}}))
	assert.False(t, IsStrong(&RouteDecision{Reasons: []string{ReasonDefault, ReasonEmbedOverride + ":doc"}}))
}

func BenchmarkRulesDecide(b *testing.B) {
	r := NewRules(nil)
	inputs := []string{
		"안녕하세요",
		"오늘 날씨 어때",
		"무료 이미지 생성 도구 추천해줘",
		"이 보고서 요약해줘",
		"그냥 심심해",
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Decide(inputs[i%len(inputs)], nil)
	}
}
