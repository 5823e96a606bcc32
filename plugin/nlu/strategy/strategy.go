// Package strategy maps a dialog act and a route decision onto a concrete
// response strategy: delivery mode, UI affordances and answer style.
package strategy

import (
	"github.com/moaworks/moa-router/plugin/nlu/dialogact"
	"github.com/moaworks/moa-router/plugin/nlu/router"
)

// Style names the answer framing the system prompt should enforce.
type Style string

const (
	StyleGeneral Style = "general"
	StyleCompare Style = "compare"
	StyleHowTo   Style = "howto"
	StyleSummary Style = "summary"
)

// Strategy is the full response plan handed to the chat frontend.
type Strategy struct {
	Stream        bool   `json:"stream"`
	ToolCards     bool   `json:"tool_cards"`
	FollowupChips bool   `json:"followup_chips"`
	Style         Style  `json:"style"`
	SystemPrompt  string `json:"system_prompt"`
}

// byAct is the dialog-act strategy table. Acts not listed use the question
// strategy.
var byAct = map[dialogact.DialogAct]Strategy{
	dialogact.ActQuestion:         {Stream: true, ToolCards: false, FollowupChips: true, Style: StyleGeneral},
	dialogact.ActExploration:      {Stream: true, ToolCards: false, FollowupChips: true, Style: StyleCompare},
	dialogact.ActCommand:          {Stream: true, ToolCards: true, FollowupChips: true, Style: StyleHowTo},
	dialogact.ActAssistantRequest: {Stream: true, ToolCards: false, FollowupChips: true, Style: StyleHowTo},
	dialogact.ActCritique:         {Stream: true, ToolCards: false, FollowupChips: false, Style: StyleSummary},
}

// toolSearch is the strategy forced whenever the router classified the
// utterance as a tool search, regardless of dialog act: batched answer so the
// card list renders at once.
var toolSearch = Strategy{Stream: false, ToolCards: true, FollowupChips: true, Style: StyleGeneral}

// Select resolves the response strategy. A tool-search route decision
// overrides the act table; otherwise the act picks the row and the route
// decision's delivery mode wins over the row's default.
func Select(act dialogact.DialogAct, decision *router.RouteDecision) Strategy {
	if decision != nil && hasReason(decision, router.ReasonToolSearch) {
		s := toolSearch
		s.SystemPrompt = SystemPrompt(s.Style)
		return s
	}

	s, ok := byAct[act]
	if !ok {
		s = byAct[dialogact.ActQuestion]
	}
	if decision != nil {
		s.Stream = decision.Route == router.RouteStream
	}
	s.SystemPrompt = SystemPrompt(s.Style)
	return s
}

func hasReason(decision *router.RouteDecision, reason string) bool {
	for _, r := range decision.Reasons {
		if r == reason {
			return true
		}
	}
	return false
}
