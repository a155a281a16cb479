package detector

import (
	"testing"

	"insightsmith-be/internal/constant"
)

func newTestDetector() *Detector {
	return New(
		constant.ModeCycle,
		constant.ModeDetectionPhrases,
		constant.HelpPhrases,
		constant.ModeSwitchPhrases,
		constant.ModeGuide,
	)
}

func TestDetectMode(t *testing.T) {
	d := newTestDetector()

	tests := []struct {
		name           string
		text           string
		wantMode       string
		wantConfidence float64
		wantTrigger    string
	}{
		{
			name:           "no phrase matches falls back to guide at full confidence",
			text:           "今日はいい天気ですね",
			wantMode:       constant.ModeGuide,
			wantConfidence: 1.0,
			wantTrigger:    "",
		},
		{
			name:           "guide phrase at start",
			text:           "教えてください、資金調達の進め方を",
			wantMode:       constant.ModeGuide,
			wantConfidence: 1.0, // 0.8 + 0.2, phrase is 3 chars so no length bonus... capped path
			wantTrigger:    "教えて",
		},
		{
			name:           "hard phrase mid-sentence",
			text:           "この事業計画を厳しくレビューしてほしい",
			wantMode:       constant.ModeHard,
			wantConfidence: 0.9,
			wantTrigger:    "厳しく",
		},
		{
			name:           "socrates long phrase at start",
			text:           "一緒に考えてほしいことがあります",
			wantMode:       constant.ModeSocrates,
			wantConfidence: 1.0,
			wantTrigger:    "一緒に考えて",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.DetectMode(tt.text)
			if got.DetectedMode != tt.wantMode {
				t.Errorf("DetectedMode = %q, want %q", got.DetectedMode, tt.wantMode)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("Confidence = %v, want %v", got.Confidence, tt.wantConfidence)
			}
			if got.TriggerPhrase != tt.wantTrigger {
				t.Errorf("TriggerPhrase = %q, want %q", got.TriggerPhrase, tt.wantTrigger)
			}
		})
	}
}

func TestDetectModeConfidenceBounds(t *testing.T) {
	d := newTestDetector()

	inputs := []string{
		"",
		"教えて",
		"とにかく長い文章の後ろの方に厳しくという言葉が埋まっているパターンです、かなり後ろです",
		"ソクラテスのように問いかけてください",
		"hello world",
	}

	for _, text := range inputs {
		got := d.DetectMode(text)
		if got.Confidence < 0 || got.Confidence > 1.0 {
			t.Errorf("DetectMode(%q).Confidence = %v, want within [0,1]", text, got.Confidence)
		}
	}
}

func TestDetectModeFirstMatchWinsTie(t *testing.T) {
	d := New(
		[]string{"guide", "hard"},
		map[string][]string{
			"guide": {"プランを"},
			"hard":  {"プランを"},
		},
		nil,
		nil,
		"guide",
	)

	got := d.DetectMode("プランを見てほしい")
	if got.DetectedMode != "guide" {
		t.Errorf("tie broke to %q, want first-encountered %q", got.DetectedMode, "guide")
	}
}

func TestIsHelpRequest(t *testing.T) {
	d := newTestDetector()

	tests := []struct {
		text string
		want bool
	}{
		{"助けて", true},
		{"今日の天気", false},
		{"HELP me please", true},
		{"進め方がわからない", true},
		{"順調です", false},
	}

	for _, tt := range tests {
		if got := d.IsHelpRequest(tt.text); got != tt.want {
			t.Errorf("IsHelpRequest(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestIsModeSwitchRequest(t *testing.T) {
	d := newTestDetector()

	if !d.IsModeSwitchRequest("モード変更をお願いします") {
		t.Error("expected switch request to be detected")
	}
	if d.IsModeSwitchRequest("このままでいいです") {
		t.Error("did not expect a switch request")
	}
}
