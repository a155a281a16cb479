package composer

import (
	"strings"

	"insightsmith-be/internal/dto"
)

// Active-listening classifiers. Each is an independent first-match keyword
// scan over a disjoint vocabulary, with a neutral default category.

type keywordRule struct {
	keywords []string
	category string
}

var intentRules = []keywordRule{
	{keywords: []string{"相談", "アドバイス"}, category: "アドバイス・相談を求めている"},
	{keywords: []string{"アイデア", "企画"}, category: "アイデア創出・企画立案を希望している"},
	{keywords: []string{"問題", "課題"}, category: "問題解決・課題解決を求めている"},
	{keywords: []string{"学習", "勉強"}, category: "学習・知識獲得を目的としている"},
}

const defaultIntent = "情報提供・サポートを求めている"

var emotionRules = []keywordRule{
	{keywords: []string{"困", "悩", "わからない"}, category: "困惑・不安を感じている"},
	{keywords: []string{"楽しい", "わくわく", "期待"}, category: "前向き・期待感を持っている"},
	{keywords: []string{"急", "早く", "すぐ"}, category: "焦り・緊急性を感じている"},
}

const defaultEmotion = "冷静・客観的な姿勢を保っている"

var constraintRules = []keywordRule{
	{keywords: []string{"時間", "期限"}, category: "時間的制約がある"},
	{keywords: []string{"予算", "コスト", "お金"}, category: "予算的制約がある"},
	{keywords: []string{"経験", "初心者"}, category: "経験・スキル面での制約がある"},
	{keywords: []string{"リソース", "人手"}, category: "リソース面での制約がある"},
}

// AnalyzeInput derives the active-listening summary from the raw message.
func AnalyzeInput(message string) dto.ActiveListening {
	lower := strings.ToLower(message)
	return dto.ActiveListening{
		Intent:      classify(lower, intentRules, defaultIntent),
		Emotion:     classify(lower, emotionRules, defaultEmotion),
		Constraints: collectConstraints(lower),
	}
}

func classify(lower string, rules []keywordRule, fallback string) string {
	for _, rule := range rules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.category
			}
		}
	}
	return fallback
}

// collectConstraints differs from the single-category classifiers: every
// matching rule contributes.
func collectConstraints(lower string) []string {
	constraints := []string{}
	for _, rule := range constraintRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				constraints = append(constraints, rule.category)
				break
			}
		}
	}
	return constraints
}
