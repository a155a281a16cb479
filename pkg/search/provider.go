package search

import (
	"context"
	"time"
)

// Result is one web search hit.
type Result struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Snippet       string `json:"snippet"`
	PublishedDate string `json:"published_date,omitempty"`
}

// Response bundles the hits for one query.
type Response struct {
	Query     string    `json:"query"`
	Results   []Result  `json:"results"`
	Timestamp time.Time `json:"timestamp"`
}

// Provider is the outbound web-search capability. Implementations must not
// fail the conversation: transport errors degrade to an empty result set.
type Provider interface {
	Search(ctx context.Context, query string, maxResults int) Response
}
