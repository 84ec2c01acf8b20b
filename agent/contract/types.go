package contract

type SearchQuery struct {
	Text       string   `json:"query"`
	MaxResults int      `json:"max_results"`
	Categories []string `json:"categories,omitempty"`
}

type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content,omitempty"`
	Engine  string `json:"engine,omitempty"`
}

// ToolResult is what the agent runtime sees after a tool call.
type ToolResult struct {
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
	Kind   string `json:"kind,omitempty"`
}
