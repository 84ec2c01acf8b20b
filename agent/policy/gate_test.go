package policy

import (
	"context"
	"errors"
	"reflect"
	"testing"

	contractx "github.com/colomboai/cairo/agent/contract"
	toolx "github.com/colomboai/cairo/agent/tool"
)

func tool(name string) *toolx.Descriptor {
	return describedTool(name, "")
}

func describedTool(name, description string) *toolx.Descriptor {
	return toolx.MustNew(name, description, nil, func(context.Context, map[string]any) (any, error) {
		return nil, nil
	})
}

func names(tools []*toolx.Descriptor) []string {
	out := make([]string, 0, len(tools))
	for _, d := range tools {
		out = append(out, d.Name())
	}
	return out
}

func TestGuardDropsDisallowedAndKeepsOrder(t *testing.T) {
	t.Parallel()

	input := []*toolx.Descriptor{tool("like_post"), tool("boost_creator"), tool("auto_comment")}
	before := append([]*toolx.Descriptor(nil), input...)

	got, err := Guard(input)
	if err != nil {
		t.Fatalf("Guard() error = %v", err)
	}
	if !reflect.DeepEqual(names(got), []string{"boost_creator"}) {
		t.Fatalf("Guard() = %v, want [boost_creator]", names(got))
	}
	if got[0] != input[1] {
		t.Fatal("Guard() must return the original descriptor")
	}
	if !reflect.DeepEqual(input, before) {
		t.Fatal("Guard() mutated its input")
	}
}

func TestGuardEmptyResultIsConfigurationError(t *testing.T) {
	t.Parallel()

	_, err := Guard([]*toolx.Descriptor{tool("like_post")})
	if !errors.Is(err, contractx.ErrConfiguration) {
		t.Fatalf("Guard() error = %v, want ErrConfiguration", err)
	}

	got, err := NewGate(WithRequireNonEmpty(false)).Guard([]*toolx.Descriptor{tool("like_post")})
	if err != nil || len(got) != 0 {
		t.Fatalf("Guard() = %v, %v; want empty result without error", names(got), err)
	}
}

func TestNameMatching(t *testing.T) {
	t.Parallel()

	blocked := []string{
		"like_post",
		"LikePost",
		"AutoComment",
		"auto-like",
		"post.comment",
		"bulk comments",
		"unlike_post",
		"COMMENT",
	}
	allowed := []string{
		"boost_creator",
		"set_recommendation_weights",
		"personalized_feed",
		"search_content",
		"block_tag",
	}

	gate := NewGate(WithRequireNonEmpty(false))
	for _, name := range blocked {
		if got, _ := gate.Guard([]*toolx.Descriptor{tool(name)}); len(got) != 0 {
			t.Errorf("%q should be blocked", name)
		}
	}
	for _, name := range allowed {
		if got, _ := gate.Guard([]*toolx.Descriptor{tool(name)}); len(got) != 1 {
			t.Errorf("%q should be allowed", name)
		}
	}
}

func TestDescriptionScan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc    string
		blocked bool
	}{
		{desc: "Automatically likes posts for the user", blocked: true},
		{desc: "Leave a comment on a post", blocked: true},
		{desc: "Posts replies, commenting on threads", blocked: true},
		{desc: "Tracks how often content was liked", blocked: true},
		{desc: "Send an auto-like to followers", blocked: true},
		{desc: "Liking content on behalf of the user", blocked: true},
		{desc: "Enables autolike on new posts", blocked: true},
		{desc: "Turns on autocomment for followers", blocked: true},
		{desc: "AutoLiking for every new follower", blocked: true},
		{desc: "Autocommented replies are queued", blocked: true},
		{desc: "Returns posts the user is likely to enjoy", blocked: false},
		{desc: "Autolikely ranking is unlikely to change", blocked: false},
		{desc: "Estimate the likelihood of engagement", blocked: false},
		{desc: "Search content by keywords or hashtags", blocked: false},
	}

	scanning := NewGate(WithRequireNonEmpty(false))
	nameOnly := NewGate(WithRequireNonEmpty(false), WithDescriptionScan(false))

	for _, tt := range tests {
		d := describedTool("neutral_tool", tt.desc)

		got, _ := scanning.Guard([]*toolx.Descriptor{d})
		if blocked := len(got) == 0; blocked != tt.blocked {
			t.Errorf("scan on: %q blocked = %v, want %v", tt.desc, blocked, tt.blocked)
		}

		got, _ = nameOnly.Guard([]*toolx.Descriptor{d})
		if len(got) != 1 {
			t.Errorf("scan off: %q should be allowed", tt.desc)
		}
	}
}

func TestExtraTermsExtendDefaults(t *testing.T) {
	t.Parallel()

	gate := FromConfig(Config{ExtraTerms: []string{" Share "}, ScanDescriptions: true}, WithRequireNonEmpty(false))

	got, err := gate.Guard([]*toolx.Descriptor{tool("share_post"), tool("like_post"), tool("block_tag")})
	if err != nil {
		t.Fatalf("Guard() error = %v", err)
	}
	if !reflect.DeepEqual(names(got), []string{"block_tag"}) {
		t.Fatalf("Guard() = %v, want [block_tag]", names(got))
	}

	want := append(DefaultDisallowedActions(), "share")
	if !reflect.DeepEqual(gate.Terms(), want) {
		t.Fatalf("Terms() = %v, want %v", gate.Terms(), want)
	}
}

func TestDefaultDisallowedActionsIsACopy(t *testing.T) {
	t.Parallel()

	terms := DefaultDisallowedActions()
	terms[0] = "nothing"

	if DefaultDisallowedActions()[0] != "like" {
		t.Fatal("DefaultDisallowedActions() must not share its backing array")
	}
}

func TestExtraTermsIgnoreSeparatorOnlyTerms(t *testing.T) {
	t.Parallel()

	gate := NewGate(WithExtraTerms("-", "_", " . ", "  "))

	if !reflect.DeepEqual(gate.Terms(), DefaultDisallowedActions()) {
		t.Fatalf("Terms() = %v, want defaults only", gate.Terms())
	}
	got, err := gate.Guard([]*toolx.Descriptor{tool("block_tag"), tool("search_content")})
	if err != nil {
		t.Fatalf("Guard() error = %v", err)
	}
	if !reflect.DeepEqual(names(got), []string{"block_tag", "search_content"}) {
		t.Fatalf("Guard() = %v", names(got))
	}
}
