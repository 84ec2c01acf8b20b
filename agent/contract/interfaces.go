package contract

import "context"

// Poster is the single outbound call primitive towards the recommendation engine.
type Poster interface {
	Post(ctx context.Context, path string, payload any) (any, error)
}

type WebSearcher interface {
	Search(ctx context.Context, query SearchQuery) ([]SearchResult, error)
}

// MemoryStore is the long-term memory provider. Results are the provider's JSON values.
type MemoryStore interface {
	Add(ctx context.Context, userID string, content string) (any, error)
	Search(ctx context.Context, userID string, query string, limit int) (any, error)
	List(ctx context.Context, userID string) (any, error)
}
