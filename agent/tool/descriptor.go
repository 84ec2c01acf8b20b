package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"
	"github.com/santhosh-tekuri/jsonschema/v6"

	auditx "github.com/colomboai/cairo/agent/audit"
	contractx "github.com/colomboai/cairo/agent/contract"
)

// Handler receives arguments that already passed schema validation.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// Descriptor is a named, described, invocable tool. It is immutable once built.
type Descriptor struct {
	name        string
	description string
	params      []Param
	schemaDoc   []byte
	schema      *jsonschema.Schema
	handler     Handler
	recorder    auditx.Recorder
}

func New(name string, description string, params []Param, handler Handler) (*Descriptor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: tool name is empty", contractx.ErrConfiguration)
	}
	if handler == nil {
		return nil, fmt.Errorf("%w: tool=%s has no handler", contractx.ErrConfiguration, name)
	}
	seen := make(map[string]struct{}, len(params))
	for _, p := range params {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("%w: tool=%s has an unnamed parameter", contractx.ErrConfiguration, name)
		}
		if _, dup := seen[p.Name]; dup {
			return nil, fmt.Errorf("%w: tool=%s declares parameter %s twice", contractx.ErrConfiguration, name, p.Name)
		}
		seen[p.Name] = struct{}{}
	}

	doc, err := json.Marshal(objectSchema(params))
	if err != nil {
		return nil, fmt.Errorf("%w: encode schema for tool=%s: %v", contractx.ErrConfiguration, name, err)
	}
	compiled, err := compileSchema(name, doc)
	if err != nil {
		return nil, err
	}

	return &Descriptor{
		name:        name,
		description: strings.TrimSpace(description),
		params:      append([]Param(nil), params...),
		schemaDoc:   doc,
		schema:      compiled,
		handler:     handler,
	}, nil
}

func MustNew(name string, description string, params []Param, handler Handler) *Descriptor {
	d, err := New(name, description, params, handler)
	if err != nil {
		panic(err)
	}
	return d
}

func (d *Descriptor) Name() string {
	return d.name
}

func (d *Descriptor) Description() string {
	return d.description
}

// InputSchema returns a fresh copy of the JSON Schema document.
func (d *Descriptor) InputSchema() map[string]any {
	var out map[string]any
	if err := json.Unmarshal(d.schemaDoc, &out); err != nil {
		return nil
	}
	return out
}

func (d *Descriptor) Info() *schema.ToolInfo {
	params := make(map[string]*schema.ParameterInfo, len(d.params))
	for _, p := range d.params {
		params[p.Name] = p.einoInfo()
	}
	return &schema.ToolInfo{
		Name:        d.name,
		Desc:        d.description,
		ParamsOneOf: schema.NewParamsOneOfByParams(params),
	}
}

// Validate checks args against the input schema and returns them in their
// JSON-decoded form.
func (d *Descriptor) Validate(args map[string]any) (map[string]any, error) {
	if args == nil {
		args = map[string]any{}
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("%w: tool=%s arguments are not json: %v", contractx.ErrValidation, d.name, err)
	}
	var normalized map[string]any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return nil, fmt.Errorf("%w: tool=%s arguments are not an object: %v", contractx.ErrValidation, d.name, err)
	}
	var instance any = normalized
	if err := d.schema.Validate(instance); err != nil {
		return nil, fmt.Errorf("%w: tool=%s %v", contractx.ErrValidation, d.name, err)
	}
	return normalized, nil
}

// Invoke validates args and runs the handler. With a recorder attached, every
// call is journaled, including calls rejected by validation.
func (d *Descriptor) Invoke(ctx context.Context, args map[string]any) (any, error) {
	started := time.Now()
	out, err := d.invoke(ctx, args)
	if d.recorder != nil {
		if recErr := d.recorder.Record(ctx, auditx.NewEntry(d.name, args, started, err)); recErr != nil {
			log.Error().Err(recErr).Str("tool", d.name).Msg("failed to record tool invocation")
		}
	}
	return out, err
}

func (d *Descriptor) invoke(ctx context.Context, args map[string]any) (any, error) {
	validated, err := d.Validate(args)
	if err != nil {
		return nil, err
	}
	return d.handler(ctx, validated)
}

func (d *Descriptor) withRecorder(recorder auditx.Recorder) *Descriptor {
	clone := *d
	clone.recorder = recorder
	return &clone
}

func compileSchema(name string, doc []byte) (*jsonschema.Schema, error) {
	parsed, err := jsonschema.UnmarshalJSON(strings.NewReader(string(doc)))
	if err != nil {
		return nil, fmt.Errorf("%w: parse schema for tool=%s: %v", contractx.ErrConfiguration, name, err)
	}
	location := "https://cairo.local/tools/" + url.PathEscape(name) + ".schema.json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(location, parsed); err != nil {
		return nil, fmt.Errorf("%w: add schema for tool=%s: %v", contractx.ErrConfiguration, name, err)
	}
	compiled, err := c.Compile(location)
	if err != nil {
		return nil, fmt.Errorf("%w: compile schema for tool=%s: %v", contractx.ErrConfiguration, name, err)
	}
	return compiled, nil
}
