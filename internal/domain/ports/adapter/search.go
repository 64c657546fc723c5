package adapter

import "context"

// SearchResult is one organic hit from the web-search provider.
type SearchResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// SearchAdapter is the port for live web search used to ground planner
// stages (news, lodging, dining) in fresh sources. Implementations must be
// safe for concurrent use.
type SearchAdapter interface {
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)
}
