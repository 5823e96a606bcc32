// Package dialogact classifies user utterances into coarse dialog acts.
package dialogact

import (
	"regexp"
	"strings"
)

// DialogAct represents the coarse speech act of a user utterance.
type DialogAct string

const (
	ActQuestion         DialogAct = "question"
	ActCommand          DialogAct = "command"
	ActExploration      DialogAct = "exploration"
	ActCritique         DialogAct = "critique"
	ActAssistantRequest DialogAct = "assistant_request"
)

// actRule pairs a predicate with the act it yields. Rules are evaluated in
// order; the first match wins.
type actRule struct {
	act     DialogAct
	pattern *regexp.Regexp
}

// Classifier classifies free text into exactly one DialogAct.
// It is pure and total: any string, including the empty string, yields a
// value and classification never fails.
type Classifier struct {
	rules []actRule
}

// NewClassifier creates a classifier with the default Korean/English rules.
func NewClassifier() *Classifier {
	return &Classifier{
		rules: []actRule{
			// Imperative "do it for me" phrasing.
			{ActCommand, regexp.MustCompile(`해\s?줘|해주세요|만들어\s?줘|작성해|생성해|써\s?줘|번역해|정리해|요약해|그려\s?줘|make me|create a|write me|generate`)},
			// Comparison / alternative seeking.
			{ActExploration, regexp.MustCompile(`비교|장단점|차이|대안|vs\b|versus|어떤게 나|뭐가 더|compare|difference`)},
			// Complaints and critique.
			{ActCritique, regexp.MustCompile(`문제|버그|비판|오류|틀렸|별로|불만|안\s?돼|안\s?됨|bug|broken|wrong|issue`)},
			// Personal assistant chores.
			{ActAssistantRequest, regexp.MustCompile(`일정|예약|알림|리마인더|메일 보내|스케줄|schedule|remind me|book a`)},
			// Interrogatives.
			{ActQuestion, regexp.MustCompile(`\?$|？$|어떻게|추천|알려|뭐야|무엇|어때|궁금|how|what|which|why`)},
		},
	}
}

// Classify returns the dialog act for the input. The first matching rule in
// priority order wins; unmatched input defaults to ActQuestion.
func (c *Classifier) Classify(text string) DialogAct {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, rule := range c.rules {
		if rule.pattern.MatchString(lower) {
			return rule.act
		}
	}
	return ActQuestion
}
