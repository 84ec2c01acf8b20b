package tool

import (
	"context"
	"strings"

	contractx "github.com/colomboai/cairo/agent/contract"
)

const (
	ToolMemoryAdd    = "memory_add"
	ToolMemorySearch = "memory_search"
	ToolMemoryList   = "memory_list"
)

type memoryAddArgs struct {
	Content string `json:"content"`
	UserID  string `json:"user_id"`
}

type memorySearchArgs struct {
	Query  string `json:"query"`
	UserID string `json:"user_id"`
	Limit  int    `json:"limit"`
}

type memoryListArgs struct {
	UserID string `json:"user_id"`
}

// MemoryTools exposes long-term memory. An omitted user_id falls back to defaultUserID.
func MemoryTools(store contractx.MemoryStore, defaultUserID string) ([]*Descriptor, error) {
	user := func(id string) string {
		if strings.TrimSpace(id) == "" {
			return defaultUserID
		}
		return id
	}
	userParam := Param{Name: "user_id", Type: String, Desc: "Whose memory to use; defaults to the current user"}

	add, err := New(
		ToolMemoryAdd,
		"Store a durable fact or preference about the user in long-term memory",
		[]Param{
			{Name: "content", Type: String, Desc: "The fact to remember, in one sentence", Required: true},
			userParam,
		},
		bind(func(ctx context.Context, a memoryAddArgs) (any, error) {
			return store.Add(ctx, user(a.UserID), a.Content)
		}),
	)
	if err != nil {
		return nil, err
	}

	search, err := New(
		ToolMemorySearch,
		"Search long-term memory for facts relevant to a query",
		[]Param{
			{Name: "query", Type: String, Desc: "What to look for", Required: true},
			userParam,
			{Name: "limit", Type: Integer, Desc: "Maximum number of memories to return", Minimum: Float(1), Default: 5},
		},
		bind(func(ctx context.Context, a memorySearchArgs) (any, error) {
			limit := a.Limit
			if limit == 0 {
				limit = 5
			}
			return store.Search(ctx, user(a.UserID), a.Query, limit)
		}),
	)
	if err != nil {
		return nil, err
	}

	list, err := New(
		ToolMemoryList,
		"List everything stored in long-term memory for a user",
		[]Param{userParam},
		bind(func(ctx context.Context, a memoryListArgs) (any, error) {
			return store.List(ctx, user(a.UserID))
		}),
	)
	if err != nil {
		return nil, err
	}

	return []*Descriptor{add, search, list}, nil
}
