// Package ranking orders tool-catalog candidates against an analyzed query.
// The score is an additive blend of intent matches, query-token matches and
// catalog quality signals; tools the user named by alias are pinned to the
// front regardless of score.
package ranking

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/moaworks/moa-router/plugin/nlu/intent"
	"github.com/moaworks/moa-router/store"
)

// Additive scoring weights. A category match dominates everything except an
// explicit alias mention; feature matches stack.
const (
	weightAlias     = 200
	weightCategory  = 100
	weightFeature   = 30
	weightNameToken = 20
	weightDescToken = 6
	weightHasAPI    = 2
	maxRatingBoost  = 10
)

// ScoredTool is one ranked catalog entry with its computed score.
type ScoredTool struct {
	Tool  *store.AITool `json:"tool"`
	Score float64       `json:"score"`
}

// Rank scores every candidate and returns them best-first. Tools whose name
// matches one of the detected aliases are placed ahead of all others, in
// alias detection order; the rest are sorted by score, descending and stable.
func Rank(query string, in intent.Intent, aliases []string, tools []*store.AITool) []ScoredTool {
	tokens := queryTokens(query)

	aliasOrder := make(map[string]int, len(aliases))
	for i, alias := range aliases {
		aliasOrder[NormalizeName(alias)] = i
	}

	scored := make([]ScoredTool, 0, len(tools))
	for _, tool := range tools {
		scored = append(scored, ScoredTool{Tool: tool, Score: score(tool, tokens, in, aliasOrder)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		ai, aOK := aliasOrder[NormalizeName(scored[i].Tool.Name)]
		aj, bOK := aliasOrder[NormalizeName(scored[j].Tool.Name)]
		if aOK != bOK {
			return aOK
		}
		if aOK && bOK && ai != aj {
			return ai < aj
		}
		return scored[i].Score > scored[j].Score
	})
	return scored
}

func score(tool *store.AITool, tokens []string, in intent.Intent, aliasOrder map[string]int) float64 {
	var s float64

	if _, ok := aliasOrder[NormalizeName(tool.Name)]; ok {
		s += weightAlias
	}
	if in.Category != intent.CategoryUnscoped && tool.Category == string(in.Category) {
		s += weightCategory
	}

	toolFeatures := make(map[string]bool, len(tool.Features))
	for _, f := range tool.Features {
		toolFeatures[strings.ToLower(f)] = true
	}
	for _, f := range in.Features {
		if toolFeatures[strings.ToLower(f)] {
			s += weightFeature
		}
	}

	name := strings.ToLower(tool.Name)
	desc := strings.ToLower(tool.Description)
	for _, token := range tokens {
		switch {
		case strings.Contains(name, token):
			s += weightNameToken
		case strings.Contains(desc, token):
			s += weightDescToken
		}
	}

	if tool.HasAPI {
		s += weightHasAPI
	}
	if tool.Rating > 0 {
		boost := tool.Rating
		if boost > maxRatingBoost {
			boost = maxRatingBoost
		}
		s += boost
	}
	return s
}

// queryTokens splits the query into lowercase tokens, dropping single-rune
// fragments (Korean particles, stray latin letters).
func queryTokens(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// NormalizeName canonicalizes a tool name for identity comparison:
// lowercase, spaces and hyphens removed. "DALL-E" and "dall e" collide.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "")
	name = strings.ReplaceAll(name, "-", "")
	return name
}
