package tool

import (
	recenginex "github.com/colomboai/cairo/agent/recengine"
)

const (
	ToolSetRecommendationWeights = "set_recommendation_weights"
	ToolBoostCreator             = "boost_creator"
	ToolDemoteCreator            = "demote_creator"
	ToolBlockTag                 = "block_tag"
	ToolUnblockTag               = "unblock_tag"
	ToolSearchContent            = "search_content"
	ToolTrendingContent          = "trending_content"
	ToolPersonalizedFeed         = "personalized_feed"
)

func limitParam(desc string) Param {
	return Param{
		Name:    "limit",
		Type:    Integer,
		Desc:    desc,
		Minimum: Float(1),
		Default: recenginex.DefaultLimit,
	}
}

func creatorParams(verb string) []Param {
	return []Param{
		{Name: "creator_id", Type: String, Desc: "Creator/user ID to " + verb, Required: true},
		{
			Name:     "factor",
			Type:     Number,
			Desc:     "Factor between 0 and 10: 0 disables, 1 no change, >1 " + verb + "s",
			Required: true,
			Minimum:  Float(recenginex.MinFactor),
			Maximum:  Float(recenginex.MaxFactor),
		},
	}
}

// RecommendationTools exposes the eight recommendation engine capabilities.
func RecommendationTools(ctrl *recenginex.Controller) ([]*Descriptor, error) {
	specs := []struct {
		name   string
		desc   string
		params []Param
		run    Handler
	}{
		{
			name: ToolSetRecommendationWeights,
			desc: "Control the recommendation engine feature weights",
			params: []Param{{
				Name:     "weights",
				Type:     Object,
				Values:   Number,
				Desc:     `Feature weights, e.g. {"freshness":0.4,"similarity":0.3,"novelty":0.3}`,
				Required: true,
			}},
			run: bind(ctrl.SetWeights),
		},
		{
			name:   ToolBoostCreator,
			desc:   "Temporarily boost a creator's content in recommendations",
			params: creatorParams("boost"),
			run:    bind(ctrl.BoostCreator),
		},
		{
			name:   ToolDemoteCreator,
			desc:   "Temporarily demote a creator's content in recommendations",
			params: creatorParams("demote"),
			run:    bind(ctrl.DemoteCreator),
		},
		{
			name:   ToolBlockTag,
			desc:   "Block a content tag/category from recommendations",
			params: []Param{{Name: "tag", Type: String, Desc: "Content tag/category to block", Required: true}},
			run:    bind(ctrl.BlockTag),
		},
		{
			name:   ToolUnblockTag,
			desc:   "Unblock a content tag/category in recommendations",
			params: []Param{{Name: "tag", Type: String, Desc: "Content tag/category to unblock", Required: true}},
			run:    bind(ctrl.UnblockTag),
		},
		{
			name: ToolSearchContent,
			desc: "Search content by keywords or hashtags",
			params: []Param{
				{Name: "query", Type: String, Desc: "Search query string (keywords, hashtags, etc.)", Required: true},
				limitParam("Maximum number of results to return"),
			},
			run: bind(ctrl.SearchContent),
		},
		{
			name: ToolTrendingContent,
			desc: "Fetch top trending posts for a category",
			params: []Param{
				{Name: "category", Type: String, Desc: "Category to fetch trending content from", Default: recenginex.DefaultCategory},
				limitParam("Maximum number of trending posts to return"),
			},
			run: bind(ctrl.TrendingContent),
		},
		{
			name: ToolPersonalizedFeed,
			desc: "Generate a personalized feed for a specific user based on engagement history",
			params: []Param{
				{Name: "user_id", Type: String, Desc: "User ID for whom to generate the feed", Required: true},
				limitParam("Maximum number of posts to return"),
			},
			run: bind(ctrl.PersonalizedFeed),
		},
	}

	out := make([]*Descriptor, 0, len(specs))
	for _, s := range specs {
		d, err := New(s.name, s.desc, s.params, s.run)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
