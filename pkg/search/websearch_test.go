package search

import (
	"context"
	"testing"
	"time"

	"insightsmith-be/internal/constant"
)

func TestShouldSearch(t *testing.T) {
	tests := []struct {
		message string
		want    bool
	}{
		{"最新のAI動向を教えて", true},
		{"2025年のトレンドは？", true},
		{"資金調達の基本を知りたい", false},
		{"事業計画を見てほしい", false},
		{"最近の市場はどうですか", true},
	}

	for _, tt := range tests {
		if got := ShouldSearch(tt.message, constant.SearchTriggers); got != tt.want {
			t.Errorf("ShouldSearch(%q) = %v, want %v", tt.message, got, tt.want)
		}
	}
}

func TestSummarizeResultsEmpty(t *testing.T) {
	resp := Response{Query: "q", Results: []Result{}, Timestamp: time.Now()}
	got := SummarizeResults(resp, constant.NoSearchResultSummary)
	if got != constant.NoSearchResultSummary {
		t.Errorf("empty summary = %q, want fixed fallback", got)
	}
}

func TestSummarizeResultsNumbersHits(t *testing.T) {
	resp := Response{
		Query: "q",
		Results: []Result{
			{Title: "タイトルA", Snippet: "要約A"},
			{Title: "タイトルB", Snippet: "要約B"},
		},
		Timestamp: time.Date(2025, 8, 14, 0, 0, 0, 0, time.UTC),
	}

	got := SummarizeResults(resp, constant.NoSearchResultSummary)
	want := "最新情報（2025/08/14時点）:\n1. タイトルA: 要約A\n2. タイトルB: 要約B"
	if got != want {
		t.Errorf("summary = %q, want %q", got, want)
	}
}

func TestSearchWithoutEndpointReturnsEmpty(t *testing.T) {
	c := NewWebSearchClient("", "")
	resp := c.Search(context.Background(), "最新動向", 5)
	if len(resp.Results) != 0 {
		t.Errorf("expected empty results, got %d", len(resp.Results))
	}
	if resp.Query != "最新動向" {
		t.Errorf("query = %q", resp.Query)
	}
}
