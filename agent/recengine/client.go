package recengine

import (
	"context"
	"net/http"
	"time"

	contractx "github.com/colomboai/cairo/agent/contract"
	restx "github.com/colomboai/cairo/agent/rest"
)

// DefaultTimeout bounds every call to the recommendation engine.
const DefaultTimeout = 30 * time.Second

type Config struct {
	URL    string `envconfig:"ENGINE_URL" required:"true"`
	APIKey string `envconfig:"API_KEY"`
}

var _ contractx.Poster = (*Client)(nil)

// Client is the HTTP adapter for the recommendation engine.
type Client struct {
	rest *restx.Client
}

func NewClient(cfg Config, opts ...restx.Option) (*Client, error) {
	rest, err := restx.NewClient(restx.Config{
		BaseURL:    cfg.URL,
		APIKey:     cfg.APIKey,
		AuthScheme: restx.AuthSchemeBearer,
		Timeout:    DefaultTimeout,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{rest: rest}, nil
}

func MustNew(cfg Config, opts ...restx.Option) *Client {
	client, err := NewClient(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return client
}

// Post sends payload as JSON to base URL + path and returns the decoded response.
func (c *Client) Post(ctx context.Context, path string, payload any) (any, error) {
	return c.rest.Do(ctx, http.MethodPost, path, nil, payload)
}
