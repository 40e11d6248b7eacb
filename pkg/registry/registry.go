// Copyright 2025 Siyadah
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package registry

import (
	"gopkg.in/yaml.v3"

	"github.com/siyadah/flowgen/pkg/catalog"
	"github.com/siyadah/flowgen/pkg/errors"
)

// builtinTools are runtime-native pieces that never need a stored
// connection, regardless of what the registry declares.
var builtinTools = map[string]bool{
	"webhook":  true,
	"schedule": true,
	"branch":   true,
	"code":     true,
	"delay":    true,
	"loop":     true,
	"storage":  true,
	"http":     true,
}

// Registry is the read-only capability catalog. Construct it once with
// Load or New and pass it to every component that needs lookups; it is
// safe for concurrent use because it is never mutated after construction.
type Registry struct {
	tools map[string]*ToolDefinition
	order []string
}

// New builds a registry from already-decoded tool definitions.
// Declaration order is preserved for listing.
func New(tools []ToolDefinition) *Registry {
	r := &Registry{tools: make(map[string]*ToolDefinition, len(tools))}
	for i := range tools {
		t := &tools[i]
		if _, dup := r.tools[t.ID]; dup {
			continue
		}
		r.tools[t.ID] = t
		r.order = append(r.order, t.ID)
	}
	return r
}

// Load decodes the embedded tool catalog into a registry.
func Load() (*Registry, error) {
	var doc struct {
		Tools []ToolDefinition `yaml:"tools"`
	}
	if err := yaml.Unmarshal(catalog.ToolsYAML(), &doc); err != nil {
		return nil, &errors.ConfigError{Key: "catalog.tools", Reason: "decode failed", Cause: err}
	}
	if len(doc.Tools) == 0 {
		return nil, &errors.ConfigError{Key: "catalog.tools", Reason: "catalog has no tools"}
	}
	return New(doc.Tools), nil
}

// Tool returns the definition for a tool id, or nil if unknown.
func (r *Registry) Tool(id string) *ToolDefinition {
	return r.tools[id]
}

// Has reports whether the tool id exists in the registry.
func (r *Registry) Has(id string) bool {
	_, ok := r.tools[id]
	return ok
}

// Action resolves a (tool, action) pair, or returns a NotFoundError
// naming the missing piece.
func (r *Registry) Action(toolID, name string) (*Action, error) {
	t := r.tools[toolID]
	if t == nil {
		return nil, &errors.NotFoundError{Resource: "tool", ID: toolID}
	}
	a := t.Action(name)
	if a == nil {
		return nil, &errors.NotFoundError{Resource: "action", ID: toolID + "." + name}
	}
	return a, nil
}

// Trigger resolves a (tool, trigger) pair, or returns a NotFoundError
// naming the missing piece.
func (r *Registry) Trigger(toolID, name string) (*Trigger, error) {
	t := r.tools[toolID]
	if t == nil {
		return nil, &errors.NotFoundError{Resource: "tool", ID: toolID}
	}
	tr := t.Trigger(name)
	if tr == nil {
		return nil, &errors.NotFoundError{Resource: "trigger", ID: toolID + "." + name}
	}
	return tr, nil
}

// Tools returns every tool definition in declaration order.
func (r *Registry) Tools() []*ToolDefinition {
	out := make([]*ToolDefinition, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.tools[id])
	}
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.order)
}

// IsBuiltin reports whether the tool id is a runtime-native piece that
// needs no stored connection.
func IsBuiltin(id string) bool {
	return builtinTools[id]
}
