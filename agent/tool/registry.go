package tool

import (
	"fmt"
	"strings"
	"sync"

	auditx "github.com/colomboai/cairo/agent/audit"
	contractx "github.com/colomboai/cairo/agent/contract"
)

type RegistryOption func(*Registry)

// WithRecorder journals every invocation made through tools of this registry.
func WithRecorder(recorder auditx.Recorder) RegistryOption {
	return func(r *Registry) {
		r.recorder = recorder
	}
}

// Registry owns the descriptors it hands out and keeps them in registration order.
type Registry struct {
	mu       sync.RWMutex
	tools    map[string]*Descriptor
	order    []string
	recorder auditx.Recorder
}

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{tools: make(map[string]*Descriptor)}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Register adds descriptors; names are unique case-insensitively.
func (r *Registry) Register(descriptors ...*Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range descriptors {
		if d == nil {
			return fmt.Errorf("%w: tool is nil", contractx.ErrConfiguration)
		}
		key := strings.ToLower(d.Name())
		if _, exists := r.tools[key]; exists {
			return fmt.Errorf("%w: tool %s already registered", contractx.ErrConfiguration, d.Name())
		}
		if r.recorder != nil {
			d = d.withRecorder(r.recorder)
		}
		r.tools[key] = d
		r.order = append(r.order, key)
	}
	return nil
}

func (r *Registry) Lookup(name string) (*Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.tools[strings.ToLower(strings.TrimSpace(name))]
	return d, ok
}

// Tools returns a snapshot in registration order.
func (r *Registry) Tools() []*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Descriptor, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.tools[key])
	}
	return out
}

func (r *Registry) Names() []string {
	tools := r.Tools()
	names := make([]string, 0, len(tools))
	for _, d := range tools {
		names = append(names, d.Name())
	}
	return names
}
