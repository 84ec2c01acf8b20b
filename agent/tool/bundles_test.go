package tool

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	contractx "github.com/colomboai/cairo/agent/contract"
	recenginex "github.com/colomboai/cairo/agent/recengine"
)

type recordingPoster struct {
	path    string
	payload map[string]any
	calls   int
}

func (p *recordingPoster) Post(_ context.Context, path string, payload any) (any, error) {
	p.calls++
	p.path = path
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	p.payload = map[string]any{}
	if err := json.Unmarshal(raw, &p.payload); err != nil {
		return nil, err
	}
	return map[string]any{"status": "ok"}, nil
}

func lookup(t *testing.T, tools []*Descriptor, name string) *Descriptor {
	t.Helper()
	for _, d := range tools {
		if d.Name() == name {
			return d
		}
	}
	t.Fatalf("tool %s not found", name)
	return nil
}

func TestRecommendationToolsExposeAllCapabilities(t *testing.T) {
	t.Parallel()

	tools, err := RecommendationTools(recenginex.NewController(&recordingPoster{}))
	if err != nil {
		t.Fatalf("RecommendationTools() error = %v", err)
	}

	var names []string
	for _, d := range tools {
		names = append(names, d.Name())
	}
	want := []string{
		ToolSetRecommendationWeights,
		ToolBoostCreator,
		ToolDemoteCreator,
		ToolBlockTag,
		ToolUnblockTag,
		ToolSearchContent,
		ToolTrendingContent,
		ToolPersonalizedFeed,
	}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
}

func TestRecommendationToolsApplyDefaults(t *testing.T) {
	t.Parallel()

	poster := &recordingPoster{}
	tools, err := RecommendationTools(recenginex.NewController(poster))
	if err != nil {
		t.Fatalf("RecommendationTools() error = %v", err)
	}

	if _, err := lookup(t, tools, ToolTrendingContent).Invoke(context.Background(), nil); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if poster.path != recenginex.PathTrendingContent {
		t.Fatalf("path = %s", poster.path)
	}
	if poster.payload["category"] != "all" || poster.payload["limit"] != float64(10) {
		t.Fatalf("payload = %v", poster.payload)
	}
}

func TestRecommendationToolsRejectOutOfRangeFactor(t *testing.T) {
	t.Parallel()

	poster := &recordingPoster{}
	tools, err := RecommendationTools(recenginex.NewController(poster))
	if err != nil {
		t.Fatalf("RecommendationTools() error = %v", err)
	}

	_, err = lookup(t, tools, ToolBoostCreator).Invoke(context.Background(), map[string]any{"creator_id": "c1", "factor": 12})
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("Invoke() error = %v, want ErrValidation", err)
	}
	if poster.calls != 0 {
		t.Fatalf("poster called %d times, want 0", poster.calls)
	}
}

func TestSetWeightsToolSendsWeights(t *testing.T) {
	t.Parallel()

	poster := &recordingPoster{}
	tools, err := RecommendationTools(recenginex.NewController(poster))
	if err != nil {
		t.Fatalf("RecommendationTools() error = %v", err)
	}

	args := map[string]any{"weights": map[string]any{"freshness": 0.4, "novelty": 0.6}}
	if _, err := lookup(t, tools, ToolSetRecommendationWeights).Invoke(context.Background(), args); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	weights, ok := poster.payload["weights"].(map[string]any)
	if !ok || weights["freshness"] != 0.4 || weights["novelty"] != 0.6 {
		t.Fatalf("payload = %v", poster.payload)
	}
}

type fakeSearcher struct {
	got contractx.SearchQuery
}

func (f *fakeSearcher) Search(_ context.Context, q contractx.SearchQuery) ([]contractx.SearchResult, error) {
	f.got = q
	return []contractx.SearchResult{{Title: "Go", URL: "https://go.dev"}}, nil
}

func TestSearchToolDecodesQuery(t *testing.T) {
	t.Parallel()

	searcher := &fakeSearcher{}
	tools, err := SearchTools(searcher)
	if err != nil {
		t.Fatalf("SearchTools() error = %v", err)
	}

	out, err := tools[0].Invoke(context.Background(), map[string]any{
		"query":       "golang generics",
		"max_results": 3,
		"categories":  []string{"it"},
	})
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	want := contractx.SearchQuery{Text: "golang generics", MaxResults: 3, Categories: []string{"it"}}
	if !reflect.DeepEqual(searcher.got, want) {
		t.Fatalf("query = %+v, want %+v", searcher.got, want)
	}
	if results, ok := out.([]contractx.SearchResult); !ok || len(results) != 1 {
		t.Fatalf("out = %#v", out)
	}

	if _, err := tools[0].Invoke(context.Background(), map[string]any{"query": "x", "max_results": 50}); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("Invoke(max_results=50) error = %v, want ErrValidation", err)
	}
}

type fakeMemory struct {
	user  string
	query string
	limit int
}

func (f *fakeMemory) Add(_ context.Context, userID, content string) (any, error) {
	f.user = userID
	return map[string]any{"content": content}, nil
}

func (f *fakeMemory) Search(_ context.Context, userID, query string, limit int) (any, error) {
	f.user, f.query, f.limit = userID, query, limit
	return []any{}, nil
}

func (f *fakeMemory) List(_ context.Context, userID string) (any, error) {
	f.user = userID
	return []any{}, nil
}

func TestMemoryToolsFallBackToDefaultUser(t *testing.T) {
	t.Parallel()

	store := &fakeMemory{}
	tools, err := MemoryTools(store, "cairo")
	if err != nil {
		t.Fatalf("MemoryTools() error = %v", err)
	}

	ctx := context.Background()
	if _, err := lookup(t, tools, ToolMemoryAdd).Invoke(ctx, map[string]any{"content": "prefers sci-fi"}); err != nil {
		t.Fatalf("memory_add error = %v", err)
	}
	if store.user != "cairo" {
		t.Fatalf("user = %q, want cairo", store.user)
	}

	if _, err := lookup(t, tools, ToolMemorySearch).Invoke(ctx, map[string]any{"query": "genres", "user_id": "u7"}); err != nil {
		t.Fatalf("memory_search error = %v", err)
	}
	if store.user != "u7" || store.query != "genres" || store.limit != 5 {
		t.Fatalf("search call = %+v", store)
	}

	if _, err := lookup(t, tools, ToolMemoryList).Invoke(ctx, nil); err != nil {
		t.Fatalf("memory_list error = %v", err)
	}
	if store.user != "cairo" {
		t.Fatalf("user = %q, want cairo", store.user)
	}
}
