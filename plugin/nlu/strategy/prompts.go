package strategy

// Per-style system prompts. Korean-first because the product's user base is;
// the model answers in the user's language regardless.
const (
	promptGeneral = `당신은 AI 도구 전문 어시스턴트 MOA입니다. 사용자의 질문에 정확하고 친절하게 답하세요.
모르는 내용은 추측하지 말고 모른다고 말하세요. 답변은 간결하게, 필요할 때만 목록을 사용하세요.`

	promptCompare = `당신은 AI 도구 전문 어시스턴트 MOA입니다. 사용자가 선택지를 비교하고 있습니다.
각 선택지의 장단점을 표나 항목으로 대비해 보여주고, 마지막에 상황별 추천을 한 줄로 정리하세요.`

	promptHowTo = `당신은 AI 도구 전문 어시스턴트 MOA입니다. 사용자가 작업 수행 방법을 원합니다.
단계별로 번호를 붙여 설명하고, 각 단계에서 쓸 수 있는 도구가 있으면 함께 언급하세요.`

	promptSummary = `당신은 AI 도구 전문 어시스턴트 MOA입니다. 사용자가 문제를 제기했습니다.
핵심 쟁점을 먼저 한두 문장으로 요약한 뒤, 확인된 사실과 가능한 해결책을 구분해 제시하세요.`
)

// SystemPrompt returns the system prompt for a style. Unknown styles fall
// back to the general prompt.
func SystemPrompt(style Style) string {
	switch style {
	case StyleCompare:
		return promptCompare
	case StyleHowTo:
		return promptHowTo
	case StyleSummary:
		return promptSummary
	default:
		return promptGeneral
	}
}
