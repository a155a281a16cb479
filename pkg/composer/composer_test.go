package composer

import (
	"context"
	"fmt"
	"io"
	"log"
	"testing"
	"time"

	"insightsmith-be/internal/constant"
	"insightsmith-be/pkg/llm"
	"insightsmith-be/pkg/search"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// stubSearch returns canned hits for every query.
type stubSearch struct {
	results []search.Result
}

func (s *stubSearch) Search(ctx context.Context, query string, maxResults int) search.Response {
	return search.Response{Query: query, Results: s.results, Timestamp: time.Now()}
}

// failingLLM always errors, forcing the template fallback.
type failingLLM struct{}

func (f *failingLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return "", fmt.Errorf("provider unavailable")
}

func (f *failingLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return "", fmt.Errorf("provider unavailable")
}

func TestAnalyzeInput(t *testing.T) {
	tests := []struct {
		name            string
		message         string
		wantIntent      string
		wantEmotion     string
		wantConstraints []string
	}{
		{
			name:            "advice seeking with worry",
			message:         "新規事業について相談したいのですが、予算が少なくて悩んでいます",
			wantIntent:      "アドバイス・相談を求めている",
			wantEmotion:     "困惑・不安を感じている",
			wantConstraints: []string{"予算的制約がある"},
		},
		{
			name:            "neutral message hits defaults",
			message:         "こんにちは",
			wantIntent:      "情報提供・サポートを求めている",
			wantEmotion:     "冷静・客観的な姿勢を保っている",
			wantConstraints: []string{},
		},
		{
			name:            "multiple constraints all collected",
			message:         "期限が迫っていて、人手も足りない課題があります",
			wantIntent:      "問題解決・課題解決を求めている",
			wantEmotion:     "冷静・客観的な姿勢を保っている",
			wantConstraints: []string{"時間的制約がある", "リソース面での制約がある"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeInput(tt.message)
			assert.Equal(t, tt.wantIntent, got.Intent)
			assert.Equal(t, tt.wantEmotion, got.Emotion)
			assert.Equal(t, tt.wantConstraints, got.Constraints)
		})
	}
}

func TestComposeRuleBased(t *testing.T) {
	c := NewComposer(nil, nil, constant.SearchTriggers, 5, testLogger())

	resp := c.Compose(context.Background(), "事業計画の立て方を教えて", constant.ModeGuide, uuid.New(), nil)

	assert.Equal(t, constant.ModeGuide, resp.Mode)
	assert.NotEmpty(t, resp.KnowledgeSteps.StepA)
	assert.Empty(t, resp.KnowledgeSteps.StepB)
	assert.Contains(t, resp.KnowledgeSteps.StepC, "【最終提案】")
	assert.Equal(t, constant.FeedbackRequests[constant.ModeGuide], resp.FeedbackRequest)
}

func TestComposeStepBOnlyOnRecencyTrigger(t *testing.T) {
	stub := &stubSearch{results: []search.Result{{Title: "記事", Snippet: "要約"}}}
	c := NewComposer(nil, stub, constant.SearchTriggers, 5, testLogger())

	plain := c.Compose(context.Background(), "資金調達の基本を教えて", constant.ModeGuide, uuid.New(), nil)
	assert.Empty(t, plain.KnowledgeSteps.StepB)

	recent := c.Compose(context.Background(), "最新の資金調達トレンドを教えて", constant.ModeGuide, uuid.New(), nil)
	assert.NotEmpty(t, recent.KnowledgeSteps.StepB)
	assert.Contains(t, recent.KnowledgeSteps.StepC, recent.KnowledgeSteps.StepB)
}

func TestComposeSearchEmptyYieldsFixedSummary(t *testing.T) {
	stub := &stubSearch{results: nil}
	c := NewComposer(nil, stub, constant.SearchTriggers, 5, testLogger())

	resp := c.Compose(context.Background(), "最新動向は？", constant.ModeGuide, uuid.New(), nil)
	assert.Equal(t, constant.NoSearchResultSummary, resp.KnowledgeSteps.StepB)
}

func TestComposeFallsBackWhenModelFails(t *testing.T) {
	c := NewComposer(&failingLLM{}, nil, constant.SearchTriggers, 5, testLogger())

	resp := c.Compose(context.Background(), "辛口で評価して", constant.ModeHard, uuid.New(), nil)

	// Model path failed, but the response is still fully formed from templates.
	assert.Equal(t, constant.ModeHard, resp.Mode)
	assert.Contains(t, resp.KnowledgeSteps.StepA, "厳しい質問")
	assert.Contains(t, resp.KnowledgeSteps.StepC, "【現実直視】")
}

func TestNextActionsPrependModeAction(t *testing.T) {
	tests := []struct {
		mode      string
		wantFirst string
	}{
		{constant.ModeGuide, constant.ActionPracticalSteps},
		{constant.ModeSocrates, constant.ActionMoreQuestions},
		{constant.ModeHard, constant.ActionRealityCheck},
	}

	for _, tt := range tests {
		actions := NextActions(tt.mode)
		assert.Len(t, actions, 4)
		assert.Equal(t, tt.wantFirst, actions[0].Id)
		assert.Equal(t, constant.ActionDeepDive, actions[1].Id)
	}
}

func TestFallbackResponseIsWellFormed(t *testing.T) {
	c := NewComposer(nil, nil, nil, 0, testLogger())

	resp := c.FallbackResponse(constant.ModeSocrates)

	assert.Equal(t, constant.ModeSocrates, resp.Mode)
	assert.NotEmpty(t, resp.KnowledgeSteps.StepA)
	assert.NotEmpty(t, resp.KnowledgeSteps.StepC)
	assert.Len(t, resp.NextActions, 2)
	assert.Equal(t, constant.ActionRetry, resp.NextActions[0].Id)
	assert.Equal(t, constant.ActionNewQuestion, resp.NextActions[1].Id)
}
