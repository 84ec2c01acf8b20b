package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	einotool "github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	contractx "github.com/colomboai/cairo/agent/contract"
)

var _ einotool.InvokableTool = (*einoTool)(nil)

type einoTool struct {
	d *Descriptor
}

// Einoize exposes a descriptor to the eino runtime. Tool failures are returned to
// the model as a ToolResult carrying the error kind; only cancellation of ctx aborts the run.
func Einoize(d *Descriptor) einotool.InvokableTool {
	return &einoTool{d: d}
}

func EinoizeAll(descriptors []*Descriptor) []einotool.BaseTool {
	out := make([]einotool.BaseTool, 0, len(descriptors))
	for _, d := range descriptors {
		out = append(out, Einoize(d))
	}
	return out
}

func (t *einoTool) Info(_ context.Context) (*schema.ToolInfo, error) {
	return t.d.Info(), nil
}

func (t *einoTool) InvokableRun(ctx context.Context, argumentsInJSON string, _ ...einotool.Option) (string, error) {
	result := contractx.ToolResult{Tool: t.d.Name()}

	args := map[string]any{}
	if raw := strings.TrimSpace(argumentsInJSON); raw != "" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			err = fmt.Errorf("%w: tool=%s arguments are not a json object: %v", contractx.ErrValidation, t.d.Name(), err)
			return render(failed(result, err))
		}
	}

	out, err := t.d.Invoke(ctx, args)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			return "", fmt.Errorf("tool=%s: %w", t.d.Name(), err)
		}
		log.Warn().
			Err(err).
			Str("tool", t.d.Name()).
			Str("kind", contractx.Kind(err)).
			Msg("tool invocation failed")
		return render(failed(result, err))
	}

	result.Result = out
	return render(result)
}

func failed(result contractx.ToolResult, err error) contractx.ToolResult {
	result.Error = err.Error()
	result.Kind = contractx.Kind(err)
	return result
}

func render(result contractx.ToolResult) (string, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("encode tool result: %w", err)
	}
	return string(raw), nil
}
