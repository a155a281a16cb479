package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// WebSearchClient queries an HTTP JSON search endpoint (Tavily-style POST
// contract). Any failure returns an empty Response, never an error: the
// composer treats "no results" and "search broke" identically.
type WebSearchClient struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

var _ Provider = &WebSearchClient{}

func NewWebSearchClient(baseURL, apiKey string) *WebSearchClient {
	return &WebSearchClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type searchRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results,omitempty"`
}

type searchResponse struct {
	Results []struct {
		Title         string `json:"title"`
		URL           string `json:"url"`
		Content       string `json:"content"`
		PublishedDate string `json:"published_date"`
	} `json:"results"`
}

func (c *WebSearchClient) Search(ctx context.Context, query string, maxResults int) Response {
	empty := Response{Query: query, Results: []Result{}, Timestamp: time.Now()}
	if c == nil || c.BaseURL == "" {
		return empty
	}

	payload, err := json.Marshal(searchRequest{Query: query, MaxResults: maxResults})
	if err != nil {
		return empty
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/search", bytes.NewBuffer(payload))
	if err != nil {
		return empty
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return empty
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil || resp.StatusCode != http.StatusOK {
		return empty
	}

	var parsed searchResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return empty
	}

	results := make([]Result, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		results = append(results, Result{
			Title:         r.Title,
			URL:           r.URL,
			Snippet:       r.Content,
			PublishedDate: r.PublishedDate,
		})
		if maxResults > 0 && len(results) >= maxResults {
			break
		}
	}

	return Response{Query: query, Results: results, Timestamp: time.Now()}
}

// ShouldSearch reports whether the message contains a recency trigger that
// warrants a web-augmented correction step.
func ShouldSearch(message string, triggers []string) bool {
	lower := strings.ToLower(message)
	for _, trigger := range triggers {
		if strings.Contains(lower, strings.ToLower(trigger)) {
			return true
		}
	}
	return false
}

// SummarizeResults renders hits into the Step-B correction text. An empty
// result set yields the provided fallback string rather than an error.
func SummarizeResults(resp Response, emptySummary string) string {
	if len(resp.Results) == 0 {
		return emptySummary
	}

	var b strings.Builder
	fmt.Fprintf(&b, "最新情報（%s時点）:\n", resp.Timestamp.Format("2006/01/02"))
	for i, r := range resp.Results {
		fmt.Fprintf(&b, "%d. %s: %s", i+1, r.Title, r.Snippet)
		if i < len(resp.Results)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
