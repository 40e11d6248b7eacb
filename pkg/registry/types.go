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

// Package registry holds the capability registry: the static catalog of
// integrable tools with their actions, triggers and input properties.
//
// The registry is loaded once at startup from the embedded catalog and is
// immutable afterwards. Every other component holds only string ids into
// it, never copies of its entries, so a tool definition has exactly one
// owner.
package registry

// AuthMode describes how a tool authenticates to its provider.
type AuthMode string

const (
	AuthNone   AuthMode = "none"
	AuthOAuth2 AuthMode = "oauth2"
	AuthSecret AuthMode = "secret"
	AuthBasic  AuthMode = "basic"
	AuthCustom AuthMode = "custom"
)

// RequiresConnection reports whether a tool with this auth mode needs a
// stored connection before a flow using it can run.
func (m AuthMode) RequiresConnection() bool {
	return m != "" && m != AuthNone
}

// TriggerKind distinguishes event-driven triggers from polled schedules.
type TriggerKind string

const (
	TriggerInstant   TriggerKind = "instant"
	TriggerScheduled TriggerKind = "scheduled"
)

// Property is a declared input of an action or trigger.
type Property struct {
	// Name is the property identifier used in input templates
	Name string `yaml:"name"`

	// DisplayName is the human-readable label
	DisplayName string `yaml:"display_name"`

	// Type is the runtime property type (SHORT_TEXT, LONG_TEXT, NUMBER,
	// DROPDOWN, CHECKBOX, MARKDOWN)
	Type string `yaml:"type"`

	// Required marks properties that must receive a binding
	Required bool `yaml:"required"`
}

// Action is an invokable operation a tool exposes.
type Action struct {
	// Name is unique within the owning tool
	Name string `yaml:"name"`

	// DisplayName is the human-readable label
	DisplayName string `yaml:"display_name"`

	// Description explains what the action does
	Description string `yaml:"description"`

	// Props are the declared input properties, in declaration order
	Props []Property `yaml:"props"`
}

// Trigger is an event source a tool exposes that can start a flow.
type Trigger struct {
	// Name is unique within the owning tool
	Name string `yaml:"name"`

	// DisplayName is the human-readable label
	DisplayName string `yaml:"display_name"`

	// Kind is instant or scheduled
	Kind TriggerKind `yaml:"kind"`
}

// ToolDefinition is one registry entry. Immutable after load.
type ToolDefinition struct {
	// ID is the canonical tool identifier
	ID string `yaml:"id"`

	// DisplayName is the human-readable tool name
	DisplayName string `yaml:"display_name"`

	// Auth is the tool's supported authentication mode
	Auth AuthMode `yaml:"auth"`

	// Actions the tool exposes, in declaration order
	Actions []Action `yaml:"actions"`

	// Triggers the tool exposes, in declaration order
	Triggers []Trigger `yaml:"triggers"`
}

// Action returns the named action, or nil if the tool does not have it.
func (t *ToolDefinition) Action(name string) *Action {
	for i := range t.Actions {
		if t.Actions[i].Name == name {
			return &t.Actions[i]
		}
	}
	return nil
}

// Trigger returns the named trigger, or nil if the tool does not have it.
func (t *ToolDefinition) Trigger(name string) *Trigger {
	for i := range t.Triggers {
		if t.Triggers[i].Name == name {
			return &t.Triggers[i]
		}
	}
	return nil
}
