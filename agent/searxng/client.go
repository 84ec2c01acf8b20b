package searxng

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/mitchellh/mapstructure"

	contractx "github.com/colomboai/cairo/agent/contract"
	restx "github.com/colomboai/cairo/agent/rest"
)

const (
	DefaultMaxResults = 5
	maxResultsCap     = 25
)

type Config struct {
	URL    string `envconfig:"URL" default:"http://localhost:8080"`
	APIKey string `envconfig:"API_KEY"`
}

var _ contractx.WebSearcher = (*Client)(nil)

// Client queries a SearxNG instance through its JSON output format.
type Client struct {
	rest *restx.Client
}

type searchResponse struct {
	Results []contractx.SearchResult `json:"results"`
}

func NewClient(cfg Config, opts ...restx.Option) (*Client, error) {
	rest, err := restx.NewClient(restx.Config{BaseURL: cfg.URL, APIKey: cfg.APIKey}, opts...)
	if err != nil {
		return nil, fmt.Errorf("searxng: %w", err)
	}
	return &Client{rest: rest}, nil
}

func (c *Client) Search(ctx context.Context, query contractx.SearchQuery) ([]contractx.SearchResult, error) {
	text := strings.TrimSpace(query.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: query is required", contractx.ErrValidation)
	}
	limit := query.MaxResults
	switch {
	case limit < 0:
		return nil, fmt.Errorf("%w: max_results must be >= 1, got %d", contractx.ErrValidation, limit)
	case limit == 0:
		limit = DefaultMaxResults
	case limit > maxResultsCap:
		limit = maxResultsCap
	}

	params := url.Values{
		"q":      {text},
		"format": {"json"},
	}
	if len(query.Categories) > 0 {
		params.Set("categories", strings.Join(query.Categories, ","))
	}

	raw, err := c.rest.Do(ctx, http.MethodGet, "/search", params, nil)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &resp,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: build decoder: %v", contractx.ErrDecode, err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: searxng response: %v", contractx.ErrDecode, err)
	}

	if len(resp.Results) > limit {
		resp.Results = resp.Results[:limit]
	}
	return resp.Results, nil
}
