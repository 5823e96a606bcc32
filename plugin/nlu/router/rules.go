package router

import (
	"regexp"
	"strings"

	"github.com/moaworks/moa-router/plugin/nlu/intent"
)

// Per-branch ambiguity constants. Hand-tuned; preserved verbatim for
// behavioral compatibility and kept named so they can be calibrated against
// real traffic later.
const (
	ambiguityGreeting   = 0.05
	ambiguitySmalltalk  = 0.05
	ambiguityRealtime   = 0.15
	ambiguityToolDetail = 0.10
	ambiguityToolSearch = 0.15
	ambiguityDocument   = 0.15
	ambiguityAIConcept  = 0.20
	ambiguityFactoid    = 0.25
	ambiguityRecommend  = 0.20
	ambiguityDefault    = 0.40
)

// longMessageThreshold is the utterance length beyond which the input is
// treated as a document regardless of keywords.
const longMessageThreshold = 800

// routeRule is one (predicate, decision) pair. Rules are evaluated in list
// order and the first match wins, so tie-breaks are auditable from the list
// alone.
type routeRule struct {
	reason    string
	route     Route
	web       bool
	ambiguity float64
	match     func(text, lower string, meta *Meta) bool
}

// strongReasons are rule classifications reliable enough to short-circuit
// the costlier embedding/LLM stages.
var strongReasons = map[string]bool{
	ReasonRealtime: true,
	ReasonDocument: true,
}

var (
	greetings = map[string]bool{
		"안녕": true, "안녕하세요": true, "하이": true, "ㅎㅇ": true,
		"hi": true, "hello": true, "hey": true, "좋은 아침": true,
	}
	smalltalkPattern = regexp.MustCompile(`누구야|누구니|너는 누구|정체가 뭐|who are you`)
	realtimePattern  = regexp.MustCompile(`오늘|지금|현재|방금|날씨|뉴스|주가|환율|실시간|속보`)
	documentPattern  = regexp.MustCompile(`문서|보고서|요약|정리해|첨부|파일`)
	aiConceptPattern = regexp.MustCompile(`(인공지능|머신러닝|딥러닝|생성형 ?ai|llm|프롬프트).*(뭐|무엇|개념|원리|설명)|설명해.*(인공지능|머신러닝|딥러닝)`)
	factoidPattern   = regexp.MustCompile(`뭐야|무엇|소개|이란|what is`)
	recommendPattern = regexp.MustCompile(`추천|알려줘|리스트|목록|뭐가 좋|어떤 게 좋|best`)
)

// Rules is the rule-only route decider.
type Rules struct {
	analyzer *intent.Analyzer
	ordered  []routeRule
}

// NewRules creates the ordered rule list. The analyzer supplies the
// tool-search/tool-detail detection used by rule 4.
func NewRules(analyzer *intent.Analyzer) *Rules {
	if analyzer == nil {
		analyzer = intent.NewAnalyzer(nil)
	}
	r := &Rules{analyzer: analyzer}
	r.ordered = []routeRule{
		{ReasonGreeting, RouteStream, false, ambiguityGreeting, func(_, lower string, _ *Meta) bool {
			return greetings[trimPunct(lower)]
		}},
		{ReasonSmalltalk, RouteStream, false, ambiguitySmalltalk, func(_, lower string, _ *Meta) bool {
			return smalltalkPattern.MatchString(lower)
		}},
		{ReasonRealtime, RouteStream, true, ambiguityRealtime, func(_, lower string, _ *Meta) bool {
			return realtimePattern.MatchString(lower)
		}},
		{ReasonToolDetail, RouteStream, false, ambiguityToolDetail, func(text, _ string, _ *Meta) bool {
			return analyzer.IsToolDetailQuery(text)
		}},
		{ReasonToolSearch, RouteStream, false, ambiguityToolSearch, func(text, _ string, _ *Meta) bool {
			return analyzer.IsToolSearchQuery(text)
		}},
		{ReasonDocument, RouteNonStream, false, ambiguityDocument, func(_, lower string, meta *Meta) bool {
			if documentPattern.MatchString(lower) {
				return true
			}
			return meta != nil && (meta.HasAttachment || meta.Length > longMessageThreshold)
		}},
		{ReasonAIConcept, RouteStream, false, ambiguityAIConcept, func(_, lower string, _ *Meta) bool {
			return aiConceptPattern.MatchString(lower)
		}},
		{ReasonFactoid, RouteStream, true, ambiguityFactoid, func(_, lower string, _ *Meta) bool {
			return factoidPattern.MatchString(lower)
		}},
		{ReasonRecommend, RouteStream, false, ambiguityRecommend, func(_, lower string, _ *Meta) bool {
			return recommendPattern.MatchString(lower)
		}},
	}
	return r
}

// Decide evaluates the ordered rule list, first match wins. Unmatched input
// falls through to the default branch (stream, no web, high ambiguity).
func (r *Rules) Decide(text string, meta *Meta) *RouteDecision {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, rule := range r.ordered {
		if rule.match(text, lower, meta) {
			return &RouteDecision{
				Route:     rule.route,
				Web:       rule.web,
				Reasons:   []string{rule.reason},
				Ambiguity: rule.ambiguity,
			}
		}
	}
	return &RouteDecision{
		Route:     RouteStream,
		Web:       false,
		Reasons:   []string{ReasonDefault},
		Ambiguity: ambiguityDefault,
	}
}

// IsStrong reports whether the decision came from a strong rule.
func IsStrong(d *RouteDecision) bool {
	for _, reason := range d.Reasons {
		if strongReasons[reason] {
			return true
		}
	}
	return false
}

// trimPunct strips trailing punctuation so "안녕하세요!" still matches the
// greeting set exactly.
func trimPunct(s string) string {
	return strings.TrimRight(s, "!?.~！？。 ")
}
