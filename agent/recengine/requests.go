package recengine

import (
	"fmt"
	"math"
	"strings"

	contractx "github.com/colomboai/cairo/agent/contract"
)

const (
	DefaultLimit    = 10
	DefaultCategory = "all"
	MinFactor       = 0.0
	MaxFactor       = 10.0
)

// Every request type has a value-receiver Normalize that applies defaults and
// validates. Normalizing an already normalized value returns an equal value.

type SetWeightsRequest struct {
	Weights map[string]float64 `json:"weights"`
}

func (r SetWeightsRequest) Normalize() (SetWeightsRequest, error) {
	weights := make(map[string]float64, len(r.Weights))
	for name, w := range r.Weights {
		if strings.TrimSpace(name) == "" {
			return SetWeightsRequest{}, invalid("weights", "feature name must not be empty")
		}
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return SetWeightsRequest{}, invalid("weights", "weight for %q must be a finite number", name)
		}
		weights[name] = w
	}
	return SetWeightsRequest{Weights: weights}, nil
}

type BoostCreatorRequest struct {
	CreatorID string  `json:"creator_id"`
	Factor    float64 `json:"factor"`
}

func (r BoostCreatorRequest) Normalize() (BoostCreatorRequest, error) {
	id, err := normalizeCreator(r.CreatorID, r.Factor)
	if err != nil {
		return BoostCreatorRequest{}, err
	}
	return BoostCreatorRequest{CreatorID: id, Factor: r.Factor}, nil
}

// DemoteCreatorRequest has the same contract as BoostCreatorRequest; factor > 1 demotes.
type DemoteCreatorRequest struct {
	CreatorID string  `json:"creator_id"`
	Factor    float64 `json:"factor"`
}

func (r DemoteCreatorRequest) Normalize() (DemoteCreatorRequest, error) {
	id, err := normalizeCreator(r.CreatorID, r.Factor)
	if err != nil {
		return DemoteCreatorRequest{}, err
	}
	return DemoteCreatorRequest{CreatorID: id, Factor: r.Factor}, nil
}

type BlockTagRequest struct {
	Tag string `json:"tag"`
}

func (r BlockTagRequest) Normalize() (BlockTagRequest, error) {
	tag, err := required("tag", r.Tag)
	if err != nil {
		return BlockTagRequest{}, err
	}
	return BlockTagRequest{Tag: tag}, nil
}

type UnblockTagRequest struct {
	Tag string `json:"tag"`
}

func (r UnblockTagRequest) Normalize() (UnblockTagRequest, error) {
	tag, err := required("tag", r.Tag)
	if err != nil {
		return UnblockTagRequest{}, err
	}
	return UnblockTagRequest{Tag: tag}, nil
}

type SearchContentRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

func (r SearchContentRequest) Normalize() (SearchContentRequest, error) {
	query, err := required("query", r.Query)
	if err != nil {
		return SearchContentRequest{}, err
	}
	limit, err := normalizeLimit(r.Limit)
	if err != nil {
		return SearchContentRequest{}, err
	}
	return SearchContentRequest{Query: query, Limit: limit}, nil
}

type TrendingContentRequest struct {
	Category string `json:"category"`
	Limit    int    `json:"limit"`
}

func (r TrendingContentRequest) Normalize() (TrendingContentRequest, error) {
	category := r.Category
	if strings.TrimSpace(category) == "" {
		category = DefaultCategory
	}
	limit, err := normalizeLimit(r.Limit)
	if err != nil {
		return TrendingContentRequest{}, err
	}
	return TrendingContentRequest{Category: category, Limit: limit}, nil
}

type PersonalizedFeedRequest struct {
	UserID string `json:"user_id"`
	Limit  int    `json:"limit"`
}

func (r PersonalizedFeedRequest) Normalize() (PersonalizedFeedRequest, error) {
	userID, err := required("user_id", r.UserID)
	if err != nil {
		return PersonalizedFeedRequest{}, err
	}
	limit, err := normalizeLimit(r.Limit)
	if err != nil {
		return PersonalizedFeedRequest{}, err
	}
	return PersonalizedFeedRequest{UserID: userID, Limit: limit}, nil
}

func normalizeCreator(creatorID string, factor float64) (string, error) {
	id, err := required("creator_id", creatorID)
	if err != nil {
		return "", err
	}
	if math.IsNaN(factor) || factor < MinFactor || factor > MaxFactor {
		return "", invalid("factor", "must be within [%g, %g], got %g", MinFactor, MaxFactor, factor)
	}
	return id, nil
}

// A zero limit means the caller omitted it.
func normalizeLimit(limit int) (int, error) {
	switch {
	case limit == 0:
		return DefaultLimit, nil
	case limit < 0:
		return 0, invalid("limit", "must be >= 1, got %d", limit)
	default:
		return limit, nil
	}
}

// required rejects blank values and returns value unchanged; identifiers are
// sent to the engine exactly as the caller gave them.
func required(field, value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", invalid(field, "is required")
	}
	return value, nil
}

func invalid(field, format string, args ...any) error {
	return fmt.Errorf("%w: %s %s", contractx.ErrValidation, field, fmt.Sprintf(format, args...))
}
