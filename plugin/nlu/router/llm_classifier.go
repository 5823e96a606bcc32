package router

import (
	"context"
	"encoding/json"
	"strings"
)

// classificationSystemPrompt asks for a minimal JSON task classification.
const classificationSystemPrompt = `라우팅 분류기. 사용자 입력의 작업 유형을 판단해 JSON으로만 답하라.

task: realtime(실시간 정보) / document(문서 처리·요약) / fact(사실 질문) / recommendation(도구·서비스 추천) / chat(그 외 대화)
needs_web: 웹 검색이 필요하면 true
confidence: 0~1 사이 확신도

출력 예: {"task":"fact","needs_web":true,"confidence":0.8}`

// defaultLLMConfidence is assumed when the model omits the confidence field.
const defaultLLMConfidence = 0.7

// llmClassification is the expected JSON shape of the LLM answer.
type llmClassification struct {
	Task       string  `json:"task"`
	NeedsWeb   bool    `json:"needs_web"`
	Confidence float64 `json:"confidence"`
}

// taskRoutes is the fixed task → route mapping.
// Tasks not listed leave the current decision untouched.
var taskRoutes = map[string]Route{
	"realtime":       RouteStream,
	"document":       RouteNonStream,
	"fact":           RouteStream,
	"recommendation": RouteStream,
	"chat":           RouteStream,
}

// llmClassifier wraps the optional LLM re-classification stage.
type llmClassifier struct {
	client ChatClient
}

// classify asks the LLM and parses its answer. ok is false when the call
// failed or the answer did not parse; the caller treats that as "this signal
// did not fire".
func (c *llmClassifier) classify(ctx context.Context, text string) (llmClassification, bool) {
	raw, err := c.client.CompleteJSON(ctx, classificationSystemPrompt, text)
	if err != nil {
		return llmClassification{}, false
	}

	var parsed llmClassification
	if err := json.Unmarshal([]byte(stripMarkdownFence(raw)), &parsed); err != nil {
		return llmClassification{}, false
	}
	if _, known := taskRoutes[parsed.Task]; !known {
		return llmClassification{}, false
	}
	if parsed.Confidence <= 0 || parsed.Confidence > 1 {
		parsed.Confidence = defaultLLMConfidence
	}
	return parsed, true
}

// stripMarkdownFence extracts the JSON body when the model wraps its answer
// in a ``` fence.
func stripMarkdownFence(response string) string {
	response = strings.TrimSpace(response)
	if !strings.HasPrefix(response, "```") {
		return response
	}

	var body []string
	inFence := false
	for _, line := range strings.Split(response, "\n") {
		if strings.HasPrefix(line, "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			body = append(body, line)
		}
	}
	return strings.Join(body, "\n")
}
