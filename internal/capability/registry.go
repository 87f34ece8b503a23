// Package capability exposes a registry of named, strictly-typed
// JSON-in/JSON-out operations. Callers pick a capability by name and supply a
// JSON body; no caller-provided code is ever evaluated.
package capability

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	apperrors "github.com/target/dialtone/internal/errors"
)

// Detail describes a registered capability for discovery responses.
type Detail struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	Usage       string `json:"usage"`
}

// Handler executes a capability against its raw JSON input and returns a
// JSON-marshalable result.
type Handler func(ctx context.Context, input json.RawMessage) (any, error)

// Capability pairs a Detail with its handler.
type Capability struct {
	Detail  Detail
	Handler Handler
}

// Registry maps capability names to handlers.
type Registry struct {
	mu   sync.RWMutex
	caps map[string]Capability
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{caps: make(map[string]Capability)}
}

// Register adds or replaces a capability under its Detail.Name.
func (r *Registry) Register(c Capability) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.caps[c.Detail.Name] = c
}

// Get returns the Detail for name.
func (r *Registry) Get(name string) (Detail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.caps[name]
	if !ok {
		return Detail{}, apperrors.NotFoundf("unknown capability %q", name)
	}
	return c.Detail, nil
}

// List returns the Details of all registered capabilities sorted by name.
func (r *Registry) List() []Detail {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Detail, 0, len(r.caps))
	for _, c := range r.caps {
		out = append(out, c.Detail)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Invoke runs the named capability against input.
func (r *Registry) Invoke(ctx context.Context, name string, input json.RawMessage) (any, error) {
	r.mu.RLock()
	c, ok := r.caps[name]
	r.mu.RUnlock()
	if !ok {
		return nil, apperrors.NotFoundf("unknown capability %q", name)
	}
	return c.Handler(ctx, input)
}

// DefaultRegistry returns a registry with the built-in capabilities.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(JSONQuery())
	return r
}
