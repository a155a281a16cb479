package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"
)

// Conversation modes. Order matters: ActionModeChange cycles through
// ModeCycle in this order.
const (
	ModeGuide    = "guide"
	ModeSocrates = "socrates"
	ModeHard     = "hard"
)

var ModeCycle = []string{ModeGuide, ModeSocrates, ModeHard}

// Quick action ids offered in the next-action menu.
const (
	ActionDeepDive       = "deep_dive"
	ActionModeChange     = "mode_change"
	ActionNewTopic       = "new_topic"
	ActionPracticalSteps = "practical_steps"
	ActionMoreQuestions  = "more_questions"
	ActionRealityCheck   = "reality_check"
	ActionRetry          = "retry"
	ActionNewQuestion    = "new_question"
)

// Canned utterances a quick action expands to before composition. These are
// composition triggers only and are never persisted as user messages.
var ActionPrompts = map[string]string{
	ActionDeepDive:       "この話題についてさらに詳しく教えてください",
	ActionModeChange:     "違うアプローチで同じ話題を見直してください",
	ActionNewTopic:       "新しいトピックについて相談したいと思います",
	ActionPracticalSteps: "具体的なステップと実行計画を提示してください",
	ActionMoreQuestions:  "さらに深く考えるための質問をしてください",
	ActionRealityCheck:   "より厳しい現実的な観点から分析してください",
}

// ModeDetectionPhrases maps a mode to its trigger phrases. Slice order is
// significant: the first phrase reaching the maximum confidence wins a tie.
// Matching is case-insensitive substring containment.
var ModeDetectionPhrases = map[string][]string{
	ModeGuide: {
		"教えて",
		"やり方",
		"どうすれば",
		"アドバイスください",
		"ガイドして",
		"サポートして",
		"手伝って",
	},
	ModeSocrates: {
		"一緒に考えて",
		"問いかけて",
		"質問して",
		"気づきが欲しい",
		"自分で考えたい",
		"ソクラテス",
	},
	ModeHard: {
		"厳しく",
		"辛口",
		"ダメ出し",
		"批判して",
		"現実を見せて",
		"ハードモード",
	},
	// Iteration over this map must be deterministic; the detector walks
	// ModeCycle, not the map keys.
}

// HelpPhrases force guide mode regardless of any other detection signal.
var HelpPhrases = []string{
	"助けて",
	"help",
	"ヘルプ",
	"サポート",
	"困っている",
	"わからない",
}

// ModeSwitchPhrases mark an utterance as a request to change modes.
var ModeSwitchPhrases = []string{
	"モード変更",
	"モードを変更",
	"モードを切り替え",
	"モード切替",
	"切り替えて",
	"変更して",
}

// SearchTriggers: any of these appearing in the message turns on the
// web-augmented knowledge step (Step-B).
var SearchTriggers = []string{
	"最新",
	"現在",
	"今",
	"トレンド",
	"2024",
	"2025",
	"最近",
	"新しい",
	"アップデート",
	"変化",
	"動向",
}

// NoSearchResultSummary is returned by the summarizer when the search
// capability yields nothing. Never an error.
const NoSearchResultSummary = "最新の情報を取得できませんでした。"
