package main

import (
	"context"
	"log/slog"

	"github.com/moaworks/moa-router/store"
)

// demoTools is a small catalog slice so demo mode answers searches out of
// the box.
var demoTools = []*store.AITool{
	{Name: "Midjourney", Category: "image", Price: "paid", Features: []string{"ai"}, Description: "프롬프트 기반 고품질 이미지 생성", Rating: 4.8, ServiceID: "midjourney"},
	{Name: "DALL-E", Category: "image", Price: "freemium", HasAPI: true, Features: []string{"ai", "api"}, Description: "OpenAI의 텍스트-이미지 생성 모델", Rating: 4.5, ServiceID: "dalle"},
	{Name: "Stable Diffusion", Category: "image", Price: "free", HasAPI: true, Features: []string{"ai", "free", "api"}, Description: "오픈소스 이미지 생성 모델", Rating: 4.4, ServiceID: "stable-diffusion"},
	{Name: "ChatGPT", Category: "chatbot", Price: "freemium", HasAPI: true, Features: []string{"ai", "korean", "api"}, Description: "범용 대화형 AI 어시스턴트", Rating: 4.7, ServiceID: "chatgpt"},
	{Name: "Claude", Category: "chatbot", Price: "freemium", HasAPI: true, Features: []string{"ai", "korean", "api"}, Description: "긴 문서 이해에 강한 대화형 AI", Rating: 4.6, ServiceID: "claude"},
	{Name: "GitHub Copilot", Category: "code", Price: "paid", HasAPI: true, Features: []string{"ai", "api"}, Description: "에디터 안에서 동작하는 AI 코딩 어시스턴트", Rating: 4.6, ServiceID: "copilot"},
	{Name: "Cursor", Category: "code", Price: "freemium", Features: []string{"ai"}, Description: "AI 내장 코드 에디터", Rating: 4.5, ServiceID: "cursor"},
	{Name: "Gamma", Category: "ppt", Price: "freemium", Features: []string{"ai", "template"}, Description: "프롬프트로 발표자료를 만들어주는 도구", Rating: 4.3, ServiceID: "gamma"},
	{Name: "Runway", Category: "video", Price: "freemium", Features: []string{"ai"}, Description: "AI 영상 생성·편집 플랫폼", Rating: 4.2, ServiceID: "runway"},
	{Name: "Notion AI", Category: "productivity", Price: "paid", Features: []string{"ai", "collaboration", "template"}, Description: "노션에 내장된 글쓰기·요약 AI", Rating: 4.4, ServiceID: "notion-ai"},
}

// seedDemoCatalog inserts the demo tools when the catalog is empty.
func seedDemoCatalog(ctx context.Context, st *store.Store) error {
	existing, err := st.ListAITools(ctx, nil)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, tool := range demoTools {
		if _, err := st.CreateAITool(ctx, tool); err != nil {
			return err
		}
	}
	slog.Info("seeded demo catalog", "tools", len(demoTools))
	return nil
}
