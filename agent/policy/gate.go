package policy

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"

	contractx "github.com/colomboai/cairo/agent/contract"
	toolx "github.com/colomboai/cairo/agent/tool"
)

const (
	fieldName        = "name"
	fieldDescription = "description"
)

// DefaultDisallowedActions returns the actions no tool may perform or suggest.
func DefaultDisallowedActions() []string {
	return []string{"like", "comment", "auto_like", "auto_comment"}
}

// Word endings under which a description word still counts as the disallowed term.
var inflections = []string{"s", "d", "r", "rs", "ed", "er", "ers", "ing"}

type Config struct {
	ExtraTerms       []string `split_words:"true"`
	ScanDescriptions bool     `split_words:"true" default:"true"`
}

type Option func(*Gate)

// WithExtraTerms appends terms to the disallowed set. Terms are never removed.
func WithExtraTerms(terms ...string) Option {
	return func(g *Gate) {
		for _, term := range terms {
			t := strings.ToLower(strings.TrimSpace(term))
			// a term of separators only would compact to "" and match every tool
			if compactName(t) == "" {
				continue
			}
			g.terms = append(g.terms, t)
		}
	}
}

func WithDescriptionScan(enabled bool) Option {
	return func(g *Gate) {
		g.scanDescriptions = enabled
	}
}

// WithRequireNonEmpty controls whether filtering everything out is an error.
func WithRequireNonEmpty(required bool) Option {
	return func(g *Gate) {
		g.requireNonEmpty = required
	}
}

// Gate drops tools whose name or description names a disallowed action.
type Gate struct {
	terms            []string
	scanDescriptions bool
	requireNonEmpty  bool
}

func NewGate(opts ...Option) *Gate {
	g := &Gate{
		terms:            DefaultDisallowedActions(),
		scanDescriptions: true,
		requireNonEmpty:  true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

func FromConfig(cfg Config, opts ...Option) *Gate {
	base := []Option{
		WithExtraTerms(cfg.ExtraTerms...),
		WithDescriptionScan(cfg.ScanDescriptions),
	}
	return NewGate(append(base, opts...)...)
}

func (g *Gate) Terms() []string {
	return append([]string(nil), g.terms...)
}

var defaultGate = NewGate()

// Guard filters tools with the default gate.
func Guard(tools []*toolx.Descriptor) ([]*toolx.Descriptor, error) {
	return defaultGate.Guard(tools)
}

// Guard returns a new slice holding the allowed tools in input order.
func (g *Gate) Guard(tools []*toolx.Descriptor) ([]*toolx.Descriptor, error) {
	allowed := make([]*toolx.Descriptor, 0, len(tools))
	for _, d := range tools {
		if d == nil {
			continue
		}
		if term, field, ok := g.match(d); ok {
			log.Warn().
				Str("tool", d.Name()).
				Str("term", term).
				Str("field", field).
				Msg("tool dropped by action policy")
			continue
		}
		allowed = append(allowed, d)
	}

	if len(allowed) == 0 && g.requireNonEmpty {
		return nil, fmt.Errorf("%w: no tools left after applying action policy to %d tool(s)", contractx.ErrConfiguration, len(tools))
	}
	return allowed, nil
}

func (g *Gate) match(d *toolx.Descriptor) (term string, field string, ok bool) {
	name := compactName(d.Name())
	for _, t := range g.terms {
		if strings.Contains(name, compactName(t)) {
			return t, fieldName, true
		}
	}

	if !g.scanDescriptions {
		return "", "", false
	}
	words := splitWords(d.Description())
	for _, t := range g.terms {
		if containsPhrase(words, splitWords(t)) || containsCompound(words, t) {
			return t, fieldDescription, true
		}
	}
	return "", "", false
}

// containsCompound matches multi-word terms written as one word, so "autolike"
// and "autocommenting" hit auto_like and auto_comment.
func containsCompound(words []string, term string) bool {
	if len(splitWords(term)) < 2 {
		return false
	}
	compact := compactName(term)
	for _, w := range words {
		if inflectionOf(w, compact) {
			return true
		}
	}
	return false
}

// compactName lower-cases an identifier and drops every separator, so that
// like_post, LikePost, like-post and like.post all read "likepost".
func compactName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '_' || r == '-' || r == '.' || unicode.IsSpace(r):
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

func splitWords(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

func containsPhrase(words []string, phrase []string) bool {
	if len(phrase) == 0 || len(phrase) > len(words) {
		return false
	}
	for i := 0; i+len(phrase) <= len(words); i++ {
		matched := true
		for j, p := range phrase {
			if !inflectionOf(words[i+j], p) {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

func inflectionOf(word, term string) bool {
	if word == term {
		return true
	}
	if rest, ok := strings.CutPrefix(word, term); ok {
		for _, suffix := range inflections {
			if rest == suffix {
				return true
			}
		}
	}
	if stem, ok := strings.CutSuffix(term, "e"); ok && word == stem+"ing" {
		return true
	}
	return false
}
