package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/moaworks/moa-router/plugin/nlu/dialogact"
	"github.com/moaworks/moa-router/plugin/nlu/router"
)

func TestSelectByDialogAct(t *testing.T) {
	streamDecision := &router.RouteDecision{Route: router.RouteStream, Reasons: []string{router.ReasonDefault}}

	tests := []struct {
		name          string
		act           dialogact.DialogAct
		wantStream    bool
		wantToolCards bool
		wantChips     bool
		wantStyle     Style
	}{
		{"question", dialogact.ActQuestion, true, false, true, StyleGeneral},
		{"exploration", dialogact.ActExploration, true, false, true, StyleCompare},
		{"command", dialogact.ActCommand, true, true, true, StyleHowTo},
		{"assistant request", dialogact.ActAssistantRequest, true, false, true, StyleHowTo},
		{"critique", dialogact.ActCritique, true, false, false, StyleSummary},
		{"unknown act falls back to question", dialogact.DialogAct("unknown"), true, false, true, StyleGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(tt.act, streamDecision)
			assert.Equal(t, tt.wantStream, got.Stream)
			assert.Equal(t, tt.wantToolCards, got.ToolCards)
			assert.Equal(t, tt.wantChips, got.FollowupChips)
			assert.Equal(t, tt.wantStyle, got.Style)
			assert.NotEmpty(t, got.SystemPrompt)
		})
	}
}

func TestSelectToolSearchOverridesAct(t *testing.T) {
	decision := &router.RouteDecision{Route: router.RouteStream, Reasons: []string{router.ReasonToolSearch}}

	for _, act := range []dialogact.DialogAct{
		dialogact.ActQuestion,
		dialogact.ActCommand,
		dialogact.ActCritique,
	} {
		got := Select(act, decision)
		assert.False(t, got.Stream, "tool search renders a card list at once")
		assert.True(t, got.ToolCards)
		assert.True(t, got.FollowupChips)
		assert.Equal(t, StyleGeneral, got.Style)
	}
}

func TestSelectRouteDecisionDrivesDelivery(t *testing.T) {
	nonstream := &router.RouteDecision{Route: router.RouteNonStream, Reasons: []string{router.ReasonDocument}}

	got := Select(dialogact.ActQuestion, nonstream)
	assert.False(t, got.Stream, "document route batches the answer")

	got = Select(dialogact.ActQuestion, nil)
	assert.True(t, got.Stream, "nil decision keeps the act default")
}

func TestSystemPromptPerStyle(t *testing.T) {
	styles := []Style{StyleGeneral, StyleCompare, StyleHowTo, StyleSummary}
	seen := map[string]bool{}
	for _, style := range styles {
		prompt := SystemPrompt(style)
		assert.NotEmpty(t, prompt)
		assert.False(t, seen[prompt], "each style needs a distinct prompt")
		seen[prompt] = true
	}
	assert.Equal(t, SystemPrompt(StyleGeneral), SystemPrompt(Style("unknown")))
}
