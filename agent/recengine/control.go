package recengine

import (
	"context"
	"fmt"

	contractx "github.com/colomboai/cairo/agent/contract"
)

const (
	PathSetWeights       = "/api/control/set_weights"
	PathBoostCreator     = "/api/control/boost_creator"
	PathDemoteCreator    = "/api/control/demote_creator"
	PathBlockTag         = "/api/control/block_tag"
	PathUnblockTag       = "/api/control/unblock_tag"
	PathSearchContent    = "/api/search/content"
	PathTrendingContent  = "/api/content/trending"
	PathPersonalizedFeed = "/api/content/personalized_feed"
)

// Controller exposes one method per recommendation engine capability.
// Requests are normalized before anything is sent; an invalid request never
// reaches the Poster.
type Controller struct {
	poster contractx.Poster
}

func NewController(poster contractx.Poster) *Controller {
	return &Controller{poster: poster}
}

func (c *Controller) SetWeights(ctx context.Context, req SetWeightsRequest) (any, error) {
	req, err := req.Normalize()
	if err != nil {
		return nil, err
	}
	return c.post(ctx, PathSetWeights, req)
}

func (c *Controller) BoostCreator(ctx context.Context, req BoostCreatorRequest) (any, error) {
	req, err := req.Normalize()
	if err != nil {
		return nil, err
	}
	return c.post(ctx, PathBoostCreator, req)
}

func (c *Controller) DemoteCreator(ctx context.Context, req DemoteCreatorRequest) (any, error) {
	req, err := req.Normalize()
	if err != nil {
		return nil, err
	}
	return c.post(ctx, PathDemoteCreator, req)
}

func (c *Controller) BlockTag(ctx context.Context, req BlockTagRequest) (any, error) {
	req, err := req.Normalize()
	if err != nil {
		return nil, err
	}
	return c.post(ctx, PathBlockTag, req)
}

func (c *Controller) UnblockTag(ctx context.Context, req UnblockTagRequest) (any, error) {
	req, err := req.Normalize()
	if err != nil {
		return nil, err
	}
	return c.post(ctx, PathUnblockTag, req)
}

func (c *Controller) SearchContent(ctx context.Context, req SearchContentRequest) (any, error) {
	req, err := req.Normalize()
	if err != nil {
		return nil, err
	}
	return c.post(ctx, PathSearchContent, req)
}

func (c *Controller) TrendingContent(ctx context.Context, req TrendingContentRequest) (any, error) {
	req, err := req.Normalize()
	if err != nil {
		return nil, err
	}
	return c.post(ctx, PathTrendingContent, req)
}

func (c *Controller) PersonalizedFeed(ctx context.Context, req PersonalizedFeedRequest) (any, error) {
	req, err := req.Normalize()
	if err != nil {
		return nil, err
	}
	return c.post(ctx, PathPersonalizedFeed, req)
}

func (c *Controller) post(ctx context.Context, path string, payload any) (any, error) {
	if c == nil || c.poster == nil {
		return nil, fmt.Errorf("%w: recommendation engine client is not configured", contractx.ErrConfiguration)
	}
	return c.poster.Post(ctx, path, payload)
}
