package mem0

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	contractx "github.com/colomboai/cairo/agent/contract"
	restx "github.com/colomboai/cairo/agent/rest"
)

const authScheme = "Token"

type Config struct {
	URL           string `envconfig:"URL" default:"http://localhost:8888"`
	APIKey        string `envconfig:"API_KEY"`
	DefaultUserID string `envconfig:"DEFAULT_USER_ID" default:"cairo"`
}

var _ contractx.MemoryStore = (*Client)(nil)

// Client talks to a Mem0 REST server.
type Client struct {
	rest *restx.Client
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type addRequest struct {
	Messages []message `json:"messages"`
	UserID   string    `json:"user_id"`
}

type searchRequest struct {
	Query  string `json:"query"`
	UserID string `json:"user_id"`
	Limit  int    `json:"limit,omitempty"`
}

func NewClient(cfg Config, opts ...restx.Option) (*Client, error) {
	rest, err := restx.NewClient(restx.Config{
		BaseURL:    cfg.URL,
		APIKey:     cfg.APIKey,
		AuthScheme: authScheme,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("mem0: %w", err)
	}
	return &Client{rest: rest}, nil
}

func (c *Client) Add(ctx context.Context, userID string, content string) (any, error) {
	userID, err := requireField("user_id", userID)
	if err != nil {
		return nil, err
	}
	content, err = requireField("content", content)
	if err != nil {
		return nil, err
	}
	return c.rest.Do(ctx, http.MethodPost, "/memories", nil, addRequest{
		Messages: []message{{Role: "user", Content: content}},
		UserID:   userID,
	})
}

func (c *Client) Search(ctx context.Context, userID string, query string, limit int) (any, error) {
	userID, err := requireField("user_id", userID)
	if err != nil {
		return nil, err
	}
	query, err = requireField("query", query)
	if err != nil {
		return nil, err
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must be >= 1, got %d", contractx.ErrValidation, limit)
	}
	return c.rest.Do(ctx, http.MethodPost, "/search", nil, searchRequest{
		Query:  query,
		UserID: userID,
		Limit:  limit,
	})
}

func (c *Client) List(ctx context.Context, userID string) (any, error) {
	userID, err := requireField("user_id", userID)
	if err != nil {
		return nil, err
	}
	return c.rest.Do(ctx, http.MethodGet, "/memories", url.Values{"user_id": {userID}}, nil)
}

func requireField(field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%w: %s is required", contractx.ErrValidation, field)
	}
	return trimmed, nil
}
