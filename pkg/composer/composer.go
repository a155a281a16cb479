package composer

import (
	"context"
	"fmt"
	"log"
	"time"

	"insightsmith-be/internal/constant"
	"insightsmith-be/internal/dto"
	"insightsmith-be/pkg/llm"
	"insightsmith-be/pkg/search"

	"github.com/google/uuid"
)

// Composer builds the structured multi-part reply for one utterance. The
// LLM provider is optional: with a nil provider every section comes from the
// rule-based templates, which are also the fallback whenever the model path
// fails. Compose never returns an error; total failure degrades to an
// apologetic, well-formed response.
type Composer struct {
	llmProvider      llm.LLMProvider
	searchProvider   search.Provider
	searchTriggers   []string
	maxSearchResults int
	logger           *log.Logger
}

func NewComposer(
	llmProvider llm.LLMProvider,
	searchProvider search.Provider,
	searchTriggers []string,
	maxSearchResults int,
	logger *log.Logger,
) *Composer {
	return &Composer{
		llmProvider:      llmProvider,
		searchProvider:   searchProvider,
		searchTriggers:   searchTriggers,
		maxSearchResults: maxSearchResults,
		logger:           logger,
	}
}

// Compose assembles active listening, the three knowledge steps, the
// feedback prompt and the next-action menu for the message under the given
// mode. History is context for the model path only.
func (c *Composer) Compose(ctx context.Context, message, mode string, sessionId uuid.UUID, history []llm.Message) (response *dto.AIResponse) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Printf("[COMPOSER] panic recovered for session %s: %v", sessionId, r)
			response = c.FallbackResponse(mode)
		}
	}()

	c.logger.Printf("[COMPOSER] Composing %s-mode response for session %s", mode, sessionId)

	activeListening := AnalyzeInput(message)
	steps := c.composeKnowledgeSteps(ctx, message, mode, history)

	return &dto.AIResponse{
		Id:              uuid.New(),
		ActiveListening: activeListening,
		KnowledgeSteps:  steps,
		FeedbackRequest: feedbackRequest(mode),
		NextActions:     NextActions(mode),
		Mode:            mode,
		Timestamp:       time.Now(),
	}
}

func (c *Composer) composeKnowledgeSteps(ctx context.Context, message, mode string, history []llm.Message) dto.KnowledgeSteps {
	stepA := c.composeStepA(ctx, message, mode, history)

	var stepB string
	if c.searchProvider != nil && search.ShouldSearch(message, c.searchTriggers) {
		resp := c.searchProvider.Search(ctx, message, c.maxSearchResults)
		stepB = search.SummarizeResults(resp, constant.NoSearchResultSummary)
		c.logger.Printf("[COMPOSER] Step-B web correction added (%d results)", len(resp.Results))
	}

	return dto.KnowledgeSteps{
		StepA: stepA,
		StepB: stepB,
		StepC: composeStepC(mode, stepA, stepB),
	}
}

// composeStepA prefers the configured model and falls back to the mode
// template on any failure.
func (c *Composer) composeStepA(ctx context.Context, message, mode string, history []llm.Message) string {
	if c.llmProvider != nil {
		generated, err := c.generateWithModel(ctx, message, mode, history)
		if err == nil && generated != "" {
			return generated
		}
		if err != nil {
			c.logger.Printf("[COMPOSER] model path failed, using templates: %v", err)
		}
	}
	return templatedStepA(message, mode)
}

func (c *Composer) generateWithModel(ctx context.Context, message, mode string, history []llm.Message) (string, error) {
	persona, ok := constant.SystemPrompts[mode]
	if !ok {
		return "", fmt.Errorf("no persona for mode %q", mode)
	}

	messages := []llm.Message{{Role: constant.ChatMessageRoleSystem, Content: persona}}
	// Last few exchanges only, the personas carry the rest.
	start := len(history) - 5
	if start < 0 {
		start = 0
	}
	messages = append(messages, history[start:]...)
	messages = append(messages, llm.Message{Role: constant.ChatMessageRoleUser, Content: message})

	return c.llmProvider.Chat(ctx, messages)
}

func templatedStepA(message, mode string) string {
	template, ok := constant.StepATemplates[mode]
	if !ok {
		template = constant.StepATemplates[constant.ModeGuide]
	}
	return fmt.Sprintf(template, message)
}

func composeStepC(mode, stepA, stepB string) string {
	final := stepA
	if stepB != "" {
		final += "\n\n最新情報を踏まえた補正：\n" + stepB
	}
	if closing, ok := constant.StepCClosings[mode]; ok {
		final += "\n\n" + closing
	}
	return final
}

func feedbackRequest(mode string) string {
	if req, ok := constant.FeedbackRequests[mode]; ok {
		return req
	}
	return constant.DefaultFeedbackRequest
}

// NextActions returns the quick-reply menu: the mode-specific action
// prepended to the common base set.
func NextActions(mode string) []dto.NextAction {
	base := []dto.NextAction{
		{Id: constant.ActionDeepDive, Label: "深掘り", Description: "この方向性をさらに詳しく探る"},
		{Id: constant.ActionModeChange, Label: "モード変更", Description: "他のモードで再検討する"},
		{Id: constant.ActionNewTopic, Label: "新しいトピック", Description: "別の話題について相談する"},
	}

	switch mode {
	case constant.ModeGuide:
		return append([]dto.NextAction{
			{Id: constant.ActionPracticalSteps, Label: "具体的ステップ", Description: "より具体的な実行計画を作成する"},
		}, base...)
	case constant.ModeSocrates:
		return append([]dto.NextAction{
			{Id: constant.ActionMoreQuestions, Label: "さらに質問", Description: "より深い質問で思考を促進する"},
		}, base...)
	case constant.ModeHard:
		return append([]dto.NextAction{
			{Id: constant.ActionRealityCheck, Label: "現実チェック", Description: "さらに厳しい現実分析を行う"},
		}, base...)
	}
	return base
}

// FallbackResponse is the deterministic apology used when composition or an
// upstream provider fails entirely.
func (c *Composer) FallbackResponse(mode string) *dto.AIResponse {
	return &dto.AIResponse{
		Id: uuid.New(),
		ActiveListening: dto.ActiveListening{
			Intent:      "技術的な問題が発生しました",
			Emotion:     "システムエラー",
			Constraints: []string{"一時的なサービス障害"},
		},
		KnowledgeSteps: dto.KnowledgeSteps{
			StepA: "申し訳ありません。一時的な技術的問題が発生しました。",
			StepC: "しばらく時間をおいて再度お試しいただくか、別の表現で質問し直してください。",
		},
		FeedbackRequest: "再度お試しいただけますでしょうか？",
		NextActions: []dto.NextAction{
			{Id: constant.ActionRetry, Label: "再試行", Description: "同じ質問を再度送信する"},
			{Id: constant.ActionNewQuestion, Label: "別の質問", Description: "異なる表現で質問し直す"},
		},
		Mode:      mode,
		Timestamp: time.Now(),
	}
}
