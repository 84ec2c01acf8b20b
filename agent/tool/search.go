package tool

import (
	"context"

	contractx "github.com/colomboai/cairo/agent/contract"
	searxngx "github.com/colomboai/cairo/agent/searxng"
)

const ToolInternetSearch = "internet_search"

func SearchTools(searcher contractx.WebSearcher) ([]*Descriptor, error) {
	d, err := New(
		ToolInternetSearch,
		"Search the web and return titles, links and snippets to cite as sources",
		[]Param{
			{Name: "query", Type: String, Desc: "What to search for", Required: true},
			{
				Name:    "max_results",
				Type:    Integer,
				Desc:    "Maximum number of results to return",
				Minimum: Float(1),
				Maximum: Float(25),
				Default: searxngx.DefaultMaxResults,
			},
			{Name: "categories", Type: Array, Items: String, Desc: "Optional SearxNG categories, e.g. news, it, science"},
		},
		bind(func(ctx context.Context, q contractx.SearchQuery) (any, error) {
			return searcher.Search(ctx, q)
		}),
	)
	if err != nil {
		return nil, err
	}
	return []*Descriptor{d}, nil
}
