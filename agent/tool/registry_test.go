package tool

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"sync"
	"testing"

	auditx "github.com/colomboai/cairo/agent/audit"
	contractx "github.com/colomboai/cairo/agent/contract"
)

type memRecorder struct {
	mu      sync.Mutex
	entries []auditx.Entry
	err     error
}

func (m *memRecorder) Record(_ context.Context, e auditx.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return m.err
}

func TestRegistryKeepsOrderAndRejectsDuplicates(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	if err := r.Register(MustNew("b", "", nil, echo), MustNew("a", "", nil, echo)); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := r.Register(MustNew("B", "", nil, echo)); !errors.Is(err, contractx.ErrConfiguration) {
		t.Fatalf("Register(duplicate) error = %v, want ErrConfiguration", err)
	}
	if err := r.Register(nil); !errors.Is(err, contractx.ErrConfiguration) {
		t.Fatalf("Register(nil) error = %v, want ErrConfiguration", err)
	}

	if got := r.Names(); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Fatalf("Names() = %v", got)
	}
	if _, ok := r.Lookup(" A "); !ok {
		t.Fatal("Lookup should be case-insensitive")
	}
}

func TestRegistryRecordsInvocations(t *testing.T) {
	t.Parallel()

	rec := &memRecorder{err: errors.New("journal down")}
	r := NewRegistry(WithRecorder(rec))

	fail := MustNew("fail", "", nil, func(context.Context, map[string]any) (any, error) {
		return nil, contractx.ErrTransport
	})
	if err := r.Register(MustNew("ok", "", []Param{{Name: "q", Type: String}}, echo), fail); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	ok, _ := r.Lookup("ok")
	if _, err := ok.Invoke(context.Background(), map[string]any{"q": "x"}); err != nil {
		t.Fatalf("Invoke(ok) error = %v", err)
	}
	bad, _ := r.Lookup("fail")
	if _, err := bad.Invoke(context.Background(), nil); !errors.Is(err, contractx.ErrTransport) {
		t.Fatalf("Invoke(fail) error = %v, want ErrTransport", err)
	}

	if _, err := ok.Invoke(context.Background(), map[string]any{"q": 1}); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("Invoke(bad args) error = %v, want ErrValidation", err)
	}

	if len(rec.entries) != 3 {
		t.Fatalf("recorded %d entries, want 3", len(rec.entries))
	}
	if rejected := rec.entries[2]; rejected.Tool != "ok" || rejected.ErrorKind != "validation" {
		t.Fatalf("third entry = %+v", rejected)
	}
	first, second := rec.entries[0], rec.entries[1]
	if first.Tool != "ok" || first.Outcome != auditx.OutcomeOK {
		t.Fatalf("first entry = %+v", first)
	}
	var args map[string]any
	if err := json.Unmarshal(first.Arguments, &args); err != nil || args["q"] != "x" {
		t.Fatalf("first entry arguments = %s", first.Arguments)
	}
	if second.Tool != "fail" || second.Outcome != auditx.OutcomeError || second.ErrorKind != "transport" {
		t.Fatalf("second entry = %+v", second)
	}
}
