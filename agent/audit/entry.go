package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	contractx "github.com/colomboai/cairo/agent/contract"
)

type Outcome string

const (
	OutcomeOK    Outcome = "ok"
	OutcomeError Outcome = "error"
)

// Entry is one journaled tool invocation.
type Entry struct {
	ID        uuid.UUID       `json:"id"`
	Tool      string          `json:"tool"`
	Arguments json.RawMessage `json:"arguments"`
	Outcome   Outcome         `json:"outcome"`
	ErrorKind string          `json:"error_kind,omitempty"`
	Error     string          `json:"error,omitempty"`
	Duration  time.Duration   `json:"duration"`
	CreatedAt time.Time       `json:"created_at"`
}

type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

func NewEntry(tool string, args map[string]any, started time.Time, err error) Entry {
	raw, marshalErr := json.Marshal(args)
	if marshalErr != nil || args == nil {
		raw = json.RawMessage(`{}`)
	}

	entry := Entry{
		ID:        uuid.New(),
		Tool:      tool,
		Arguments: raw,
		Outcome:   OutcomeOK,
		Duration:  time.Since(started),
		CreatedAt: started.UTC(),
	}
	if err != nil {
		entry.Outcome = OutcomeError
		entry.ErrorKind = contractx.Kind(err)
		entry.Error = err.Error()
	}
	return entry
}
