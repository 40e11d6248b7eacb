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

// Package flow defines the compiled workflow artifact: a trigger node,
// an ordered sequence of step nodes, auto-attached error handlers and the
// connections the flow needs. A Flow is created fresh per request by the
// synthesizer, mutated in place only by the auto-fixer, and handed whole
// to the runtime-submission collaborator once it validates.
package flow

import (
	"time"

	"github.com/siyadah/flowgen/pkg/registry"
)

// Metadata carries flow-level bookkeeping.
type Metadata struct {
	// ID uniquely identifies this compilation artifact
	ID string `json:"id" yaml:"id"`

	// Name is the flow display name
	Name string `json:"name" yaml:"name"`

	// Description is a human-readable summary
	Description string `json:"description" yaml:"description"`

	// Intent is the classified intent this flow was synthesized for
	Intent string `json:"intent" yaml:"intent"`

	// Confidence is the classifier confidence for that intent
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// Industry is the caller-declared business vertical
	Industry string `json:"industry" yaml:"industry"`

	// CreatedAt is the synthesis timestamp
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// Version is the flow format version
	Version string `json:"version" yaml:"version"`

	// TotalNodes counts steps plus the trigger
	TotalNodes int `json:"total_nodes" yaml:"total_nodes"`
}

// TriggerSettings holds the materialized trigger configuration. Webhook
// triggers use Path/Method; scheduled triggers use CronExpression/Timezone.
type TriggerSettings struct {
	Path           string `json:"path,omitempty" yaml:"path,omitempty"`
	Method         string `json:"method,omitempty" yaml:"method,omitempty"`
	CronExpression string `json:"cron_expression,omitempty" yaml:"cron_expression,omitempty"`
	Timezone       string `json:"timezone,omitempty" yaml:"timezone,omitempty"`
}

// TriggerNode is the flow's single entry point.
type TriggerNode struct {
	// ToolID references the capability registry
	ToolID string `json:"tool_id" yaml:"tool_id"`

	// ToolName is the registry display name, denormalized for rendering
	ToolName string `json:"tool_name" yaml:"tool_name"`

	// TriggerName is the trigger within the tool
	TriggerName string `json:"trigger_name" yaml:"trigger_name"`

	// DisplayName is the trigger's human-readable label
	DisplayName string `json:"display_name" yaml:"display_name"`

	// Kind is instant or scheduled
	Kind registry.TriggerKind `json:"kind" yaml:"kind"`

	// Settings is the materialized configuration
	Settings TriggerSettings `json:"settings" yaml:"settings"`
}

// ErrorPolicy is the per-step failure behavior.
type ErrorPolicy struct {
	// Strategy names the failure handling approach
	Strategy string `json:"strategy" yaml:"strategy"`

	// MaxRetries bounds retry attempts before OnFailure applies
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// OnFailure is what happens after retries are exhausted
	// (continue rather than abort, so one flaky step does not kill the flow)
	OnFailure string `json:"on_failure" yaml:"on_failure"`
}

// StepNode is one action invocation in the flow.
type StepNode struct {
	// Index is 1-based and contiguous across the flow
	Index int `json:"index" yaml:"index"`

	// ToolID references the capability registry
	ToolID string `json:"tool_id" yaml:"tool_id"`

	// ToolName is the registry display name, denormalized for rendering
	ToolName string `json:"tool_name" yaml:"tool_name"`

	// ActionName is the action within the tool
	ActionName string `json:"action_name" yaml:"action_name"`

	// DisplayName is the action's human-readable label
	DisplayName string `json:"display_name" yaml:"display_name"`

	// Description is the action's registry description
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Role tags why this step is in the flow (log, notify_team, ...)
	Role string `json:"role,omitempty" yaml:"role,omitempty"`

	// Auth is the owning tool's authentication mode
	Auth registry.AuthMode `json:"auth" yaml:"auth"`

	// Input maps property names to binding expressions or literals
	Input map[string]string `json:"input" yaml:"input"`

	// RequiredProps lists the properties that must be bound before the
	// flow can run, for downstream tooling to surface
	RequiredProps []registry.Property `json:"required_props,omitempty" yaml:"required_props,omitempty"`

	// OutputRef is the stable token other steps bind to
	OutputRef string `json:"output_ref" yaml:"output_ref"`

	// OnError is the step's failure policy
	OnError ErrorPolicy `json:"on_error" yaml:"on_error"`
}

// ErrorHandler is a flow-level recovery rule attached by the synthesizer
// from the error-category catalog.
type ErrorHandler struct {
	// Code is the catalog error code this handler covers
	Code string `json:"code" yaml:"code"`

	// Message is the localized user-facing description
	Message string `json:"message" yaml:"message"`

	// Strategy names the auto-fix procedure
	Strategy string `json:"strategy" yaml:"strategy"`

	// MaxRetries bounds the strategy's attempts
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// AffectedSteps are the indices of steps this handler covers
	AffectedSteps []int `json:"affected_steps" yaml:"affected_steps"`
}

// Flow is the compiled artifact.
type Flow struct {
	Metadata Metadata `json:"metadata" yaml:"metadata"`

	Trigger *TriggerNode `json:"trigger" yaml:"trigger"`

	Steps []*StepNode `json:"steps" yaml:"steps"`

	ErrorHandlers []ErrorHandler `json:"error_handlers" yaml:"error_handlers"`

	// ConnectionsRequired lists tool ids needing a stored connection,
	// deduplicated in first-use order
	ConnectionsRequired []string `json:"connections_required" yaml:"connections_required"`
}

// ToolIDs returns the union of tool ids appearing in the flow, trigger
// included, deduplicated in first-appearance order.
func (f *Flow) ToolIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if f.Trigger != nil {
		add(f.Trigger.ToolID)
	}
	for _, s := range f.Steps {
		add(s.ToolID)
	}
	return ids
}

// DeclaresConnection reports whether the flow declares a connection for
// the given tool id.
func (f *Flow) DeclaresConnection(toolID string) bool {
	for _, id := range f.ConnectionsRequired {
		if id == toolID {
			return true
		}
	}
	return false
}
