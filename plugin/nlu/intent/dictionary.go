// Package intent maps free text onto the closed MOA tool taxonomy:
// a single category, a set of feature tags, and a price preference.
package intent

import "sort"

// Category is a tool category from the closed MOA taxonomy.
// The zero value CategoryUnscoped means the utterance named no category,
// which downstream treats as "search everything", not as an error.
type Category string

const (
	CategoryUnscoped     Category = ""
	CategoryImage        Category = "image"
	CategoryVideo        Category = "video"
	CategoryPPT          Category = "ppt"
	CategoryCode         Category = "code"
	CategoryMarketing    Category = "marketing"
	CategoryWriting      Category = "writing"
	CategoryAudio        Category = "audio"
	CategoryChatbot      Category = "chatbot"
	CategoryProductivity Category = "productivity"
	CategoryDesign       Category = "design"
)

// PricePreference is the user's stated pricing constraint.
type PricePreference string

const (
	PriceAny      PricePreference = "any"
	PriceFree     PricePreference = "free"
	PriceFreemium PricePreference = "freemium"
	PricePaid     PricePreference = "paid"
)

// CategoryDef binds a category to its Korean/English synonyms and the action
// verbs that commonly accompany it.
type CategoryDef struct {
	Category Category
	Synonyms []string
	Verbs    []string
}

// FeatureDef binds a feature tag to its synonyms.
type FeatureDef struct {
	Feature  string
	Synonyms []string
}

// Dictionary holds the keyword tables the analyzer matches against.
// It is passed in at construction time so tests can substitute fixtures.
// Category order matters: the first category whose synonym set matches wins.
type Dictionary struct {
	Categories []CategoryDef
	Features   []FeatureDef

	// Price keywords. Freemium must be checked before free: "부분 무료"
	// contains "무료".
	FreemiumWords []string
	FreeWords     []string
	PaidWords     []string

	// Aliases maps colloquial/short tool names to canonical tool names.
	// Iterated via AliasKeys to keep detection order deterministic.
	Aliases   map[string]string
	AliasKeys []string

	// Tool-query cues used by IsToolSearchQuery / IsToolDetailQuery.
	ToolNouns   []string
	SearchVerbs []string
	DetailCues  []string
}

// DefaultDictionary returns the production Korean/English keyword tables.
func DefaultDictionary() *Dictionary {
	d := &Dictionary{
		Categories: []CategoryDef{
			{CategoryImage, []string{"이미지", "그림", "사진", "일러스트", "로고", "image", "picture", "photo", "illustration"}, []string{"그려", "그리"}},
			{CategoryVideo, []string{"영상", "비디오", "동영상", "쇼츠", "video", "shorts"}, []string{"편집해"}},
			{CategoryPPT, []string{"피피티", "발표자료", "프레젠테이션", "슬라이드", "ppt", "presentation", "slide"}, []string{"발표"}},
			{CategoryCode, []string{"코딩", "코드", "개발", "프로그래밍", "code", "coding", "programming"}, []string{"짜줘", "디버깅"}},
			{CategoryMarketing, []string{"마케팅", "광고", "홍보", "카피", "sns", "인스타", "marketing", "ads"}, nil},
			{CategoryWriting, []string{"글쓰기", "블로그", "작문", "자소서", "자기소개서", "writing", "blog", "copywriting"}, nil},
			{CategoryAudio, []string{"음악", "오디오", "음성", "더빙", "music", "audio", "voice"}, nil},
			{CategoryChatbot, []string{"챗봇", "대화형", "chatbot"}, nil},
			{CategoryProductivity, []string{"업무", "생산성", "노션", "productivity", "workflow"}, nil},
			{CategoryDesign, []string{"디자인", "ui 시안", "design", "figma"}, nil},
		},
		Features: []FeatureDef{
			{"ai", []string{"ai", "인공지능", "생성형"}},
			{"free", []string{"무료", "공짜", "free"}},
			{"korean", []string{"한국어", "한글", "korean"}},
			{"api", []string{"api", "연동"}},
			{"realtime", []string{"실시간", "realtime", "real-time"}},
			{"collaboration", []string{"협업", "공동작업", "collaboration"}},
			{"mobile", []string{"모바일", "휴대폰", "mobile"}},
			{"cloud", []string{"클라우드", "cloud"}},
			{"template", []string{"템플릿", "서식", "template"}},
			{"automation", []string{"자동화", "automation"}},
		},
		FreemiumWords: []string{"부분 무료", "부분무료", "freemium", "무료 체험"},
		FreeWords:     []string{"무료", "공짜", "free"},
		PaidWords:     []string{"유료", "구독", "paid"},
		Aliases: map[string]string{
			"미드저니":            "Midjourney",
			"midjourney":       "Midjourney",
			"챗gpt":             "ChatGPT",
			"챗지피티":            "ChatGPT",
			"chatgpt":          "ChatGPT",
			"지피티":             "ChatGPT",
			"노션ai":             "Notion AI",
			"notion ai":        "Notion AI",
			"클로드":             "Claude",
			"claude":           "Claude",
			"달리":              "DALL-E",
			"dall-e":           "DALL-E",
			"스테이블디퓨전":         "Stable Diffusion",
			"stable diffusion": "Stable Diffusion",
			"런웨이":             "Runway",
			"runway":           "Runway",
			"감마":              "Gamma",
			"gamma":            "Gamma",
			"커서":              "Cursor",
			"cursor":           "Cursor",
			"코파일럿":            "GitHub Copilot",
			"copilot":          "GitHub Copilot",
		},
		ToolNouns:   []string{"도구", "툴", "tool", "사이트", "서비스", "프로그램", "앱"},
		SearchVerbs: []string{"추천", "찾아", "알려", "뭐가 좋", "뭐 있", "어떤", "검색"},
		DetailCues:  []string{"알려줘", "설명해", "뭐야", "어때", "소개", "사용법", "어떻게 써"},
	}

	// Deterministic alias detection order: longer keys first so "notion ai"
	// wins over any shorter overlapping key, then lexicographic.
	d.AliasKeys = sortedAliasKeys(d.Aliases)
	return d
}

func sortedAliasKeys(aliases map[string]string) []string {
	keys := make([]string, 0, len(aliases))
	for k := range aliases {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}
