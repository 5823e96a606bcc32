package intent

import (
	"strings"
)

// Intent is the result of analyzing one utterance.
type Intent struct {
	Category Category        `json:"category"`
	Features []string        `json:"features"`
	Price    PricePreference `json:"price"`
}

// Analyzer matches utterances against a Dictionary.
// Analyze is pure and total: no input, including the empty string, fails.
type Analyzer struct {
	dict *Dictionary
}

// NewAnalyzer creates an analyzer over the given dictionary.
// A nil dictionary falls back to DefaultDictionary.
func NewAnalyzer(dict *Dictionary) *Analyzer {
	if dict == nil {
		dict = DefaultDictionary()
	}
	return &Analyzer{dict: dict}
}

// Analyze derives the category, feature tags and price preference from text.
// At most one category is assigned: the first category definition whose
// synonym or verb set matches wins. Features are multi-label in table order.
func (a *Analyzer) Analyze(text string) Intent {
	lower := strings.ToLower(text)

	result := Intent{
		Category: CategoryUnscoped,
		Features: []string{},
		Price:    PriceAny,
	}

	for _, def := range a.dict.Categories {
		if containsAny(lower, def.Synonyms) || containsAny(lower, def.Verbs) {
			result.Category = def.Category
			break
		}
	}

	for _, def := range a.dict.Features {
		if containsAny(lower, def.Synonyms) {
			result.Features = append(result.Features, def.Feature)
		}
	}

	result.Price = a.pricePreference(lower)
	return result
}

// pricePreference checks freemium phrases before plain free words because
// the freemium phrasing contains them.
func (a *Analyzer) pricePreference(lower string) PricePreference {
	if containsAny(lower, a.dict.FreemiumWords) {
		return PriceFreemium
	}
	if containsAny(lower, a.dict.FreeWords) {
		return PriceFree
	}
	if containsAny(lower, a.dict.PaidWords) {
		return PricePaid
	}
	return PriceAny
}

// DetectAliases returns the canonical tool names referenced in text, in
// detection order, deduplicated by canonical name.
func (a *Analyzer) DetectAliases(text string) []string {
	lower := strings.ToLower(text)

	var hits []string
	seen := map[string]bool{}
	for _, key := range a.dict.AliasKeys {
		if !strings.Contains(lower, key) {
			continue
		}
		canonical := a.dict.Aliases[key]
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		hits = append(hits, canonical)
	}
	return hits
}

// IsToolSearchQuery reports whether the utterance asks to discover tools:
// either an explicit tool noun plus a search verb, or a category hit plus a
// search verb.
func (a *Analyzer) IsToolSearchQuery(text string) bool {
	lower := strings.ToLower(text)
	if !containsAny(lower, a.dict.SearchVerbs) {
		return false
	}
	if containsAny(lower, a.dict.ToolNouns) {
		return true
	}
	return a.Analyze(text).Category != CategoryUnscoped
}

// IsToolDetailQuery reports whether the utterance asks about one specific,
// known tool (an alias hit plus a detail cue).
func (a *Analyzer) IsToolDetailQuery(text string) bool {
	if len(a.DetectAliases(text)) == 0 {
		return false
	}
	return containsAny(strings.ToLower(text), a.dict.DetailCues)
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if p != "" && strings.Contains(s, p) {
			return true
		}
	}
	return false
}
