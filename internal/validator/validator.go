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

// Package validator checks a synthesized flow through five independent
// gates and repairs the mechanical defects a fixer can safely touch.
//
// Every gate always runs, even after an earlier gate fails, so one
// validation pass reports every problem at once. Findings carry stable
// machine-readable codes; a flow is valid iff no gate reports an error.
// Warnings never block.
package validator

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/siyadah/flowgen/pkg/flow"
	"github.com/siyadah/flowgen/pkg/registry"
)

// Gate names, in run order.
const (
	GateStructure   = "structure"
	GateRegistry    = "registry"
	GateConnections = "connections"
	GateVariables   = "variables"
	GateSafety      = "safety"
)

// Finding is one validation outcome with a stable code.
type Finding struct {
	// Code is the stable machine-readable identifier
	Code string `json:"code"`

	// Message is the human-readable description
	Message string `json:"message"`

	// Step is the 1-based step index, 0 for flow-level findings
	Step int `json:"step,omitempty"`
}

// GateResult is one gate's outcome.
type GateResult struct {
	Gate     string    `json:"gate"`
	Passed   bool      `json:"passed"`
	Errors   []Finding `json:"errors"`
	Warnings []Finding `json:"warnings"`
}

// Report aggregates all five gates.
type Report struct {
	// Valid is true iff no gate reported an error
	Valid bool `json:"valid"`

	Gates []GateResult `json:"gates"`

	TotalErrors   int `json:"total_errors"`
	TotalWarnings int `json:"total_warnings"`
}

// Gate returns the named gate's result, nil if absent.
func (r *Report) Gate(name string) *GateResult {
	for i := range r.Gates {
		if r.Gates[i].Gate == name {
			return &r.Gates[i]
		}
	}
	return nil
}

// Errors flattens every gate's errors in gate order.
func (r *Report) Errors() []Finding {
	var out []Finding
	for _, g := range r.Gates {
		out = append(out, g.Errors...)
	}
	return out
}

// Warnings flattens every gate's warnings in gate order.
func (r *Report) Warnings() []Finding {
	var out []Finding
	for _, g := range r.Gates {
		out = append(out, g.Warnings...)
	}
	return out
}

// Validator runs the gates against a capability registry.
type Validator struct {
	reg *registry.Registry
}

// New creates a validator over the given registry.
func New(reg *registry.Registry) *Validator {
	return &Validator{reg: reg}
}

// Validate runs all five gates and aggregates their findings. Pure with
// respect to the flow: validation never mutates it.
func (v *Validator) Validate(f *flow.Flow) *Report {
	report := &Report{
		Gates: []GateResult{
			v.checkStructure(f),
			v.checkRegistry(f),
			v.checkConnections(f),
			v.checkVariables(f),
			v.checkSafety(f),
		},
	}
	for _, g := range report.Gates {
		report.TotalErrors += len(g.Errors)
		report.TotalWarnings += len(g.Warnings)
	}
	report.Valid = report.TotalErrors == 0
	return report
}

func finish(g GateResult) GateResult {
	g.Passed = len(g.Errors) == 0
	return g
}

// checkStructure verifies the flow's shape: a trigger, at least one
// step, and well-formed nodes with unique indices.
func (v *Validator) checkStructure(f *flow.Flow) GateResult {
	g := GateResult{Gate: GateStructure}

	if f == nil {
		g.Errors = append(g.Errors, Finding{Code: "NO_FLOW", Message: "flow is nil"})
		return finish(g)
	}
	if f.Trigger == nil {
		g.Errors = append(g.Errors, Finding{Code: "NO_TRIGGER", Message: "flow has no trigger"})
	} else {
		if f.Trigger.ToolID == "" {
			g.Errors = append(g.Errors, Finding{Code: "TRIGGER_NO_TOOL", Message: "trigger has no tool id"})
		}
		if f.Trigger.TriggerName == "" {
			g.Errors = append(g.Errors, Finding{Code: "TRIGGER_NO_NAME", Message: "trigger has no trigger name"})
		}
	}
	if len(f.Steps) == 0 {
		g.Errors = append(g.Errors, Finding{Code: "NO_STEPS", Message: "flow has no steps"})
	}
	if f.Metadata.ID == "" {
		g.Warnings = append(g.Warnings, Finding{Code: "NO_METADATA", Message: "flow metadata is incomplete"})
	}

	seen := make(map[int]bool)
	for i, s := range f.Steps {
		if s.ToolID == "" {
			g.Errors = append(g.Errors, Finding{Code: "STEP_NO_TOOL", Message: fmt.Sprintf("step %d has no tool id", i+1), Step: i + 1})
		}
		if s.ActionName == "" {
			g.Errors = append(g.Errors, Finding{Code: "STEP_NO_ACTION", Message: fmt.Sprintf("step %d has no action name", i+1), Step: i + 1})
		}
		if s.Index == 0 {
			g.Errors = append(g.Errors, Finding{Code: "STEP_NO_INDEX", Message: fmt.Sprintf("step at position %d has no index", i+1), Step: i + 1})
			continue
		}
		if seen[s.Index] {
			g.Errors = append(g.Errors, Finding{Code: "DUPLICATE_INDEX", Message: fmt.Sprintf("duplicate step index %d", s.Index), Step: s.Index})
		}
		seen[s.Index] = true
	}

	return finish(g)
}

// checkRegistry verifies every tool, trigger and action reference
// against the registry.
func (v *Validator) checkRegistry(f *flow.Flow) GateResult {
	g := GateResult{Gate: GateRegistry}
	if f == nil {
		return finish(g)
	}

	if f.Trigger != nil && f.Trigger.ToolID != "" {
		tool := v.reg.Tool(f.Trigger.ToolID)
		if tool == nil {
			g.Errors = append(g.Errors, Finding{
				Code:    "TRIGGER_TOOL_NOT_FOUND",
				Message: fmt.Sprintf("trigger tool '%s' not in registry", f.Trigger.ToolID),
			})
		} else if f.Trigger.TriggerName != "" && tool.Trigger(f.Trigger.TriggerName) == nil {
			g.Errors = append(g.Errors, Finding{
				Code:    "TRIGGER_NOT_FOUND",
				Message: fmt.Sprintf("trigger '%s' not in tool '%s'", f.Trigger.TriggerName, f.Trigger.ToolID),
			})
		}
	}

	for _, s := range f.Steps {
		if s.ToolID == "" {
			continue
		}
		tool := v.reg.Tool(s.ToolID)
		if tool == nil {
			g.Errors = append(g.Errors, Finding{
				Code:    "TOOL_NOT_FOUND",
				Message: fmt.Sprintf("tool '%s' not in registry", s.ToolID),
				Step:    s.Index,
			})
			continue
		}
		if s.ActionName != "" && tool.Action(s.ActionName) == nil {
			g.Errors = append(g.Errors, Finding{
				Code:    "ACTION_NOT_FOUND",
				Message: fmt.Sprintf("action '%s' not in tool '%s'", s.ActionName, s.ToolID),
				Step:    s.Index,
			})
		}
	}

	return finish(g)
}

// checkConnections flags tools that need a stored connection but whose
// flow does not declare one. Builtins never need connections. A missing
// declaration is a warning: the flow imports fine, it just cannot run
// until the user connects the account.
func (v *Validator) checkConnections(f *flow.Flow) GateResult {
	g := GateResult{Gate: GateConnections}
	if f == nil {
		return finish(g)
	}

	for _, id := range f.ToolIDs() {
		if registry.IsBuiltin(id) {
			continue
		}
		tool := v.reg.Tool(id)
		if tool == nil {
			g.Errors = append(g.Errors, Finding{
				Code:    "UNKNOWN_TOOL",
				Message: fmt.Sprintf("cannot determine connection needs of unknown tool '%s'", id),
			})
			continue
		}
		if tool.Auth.RequiresConnection() && !f.DeclaresConnection(id) {
			g.Warnings = append(g.Warnings, Finding{
				Code:    "MISSING_CONNECTION",
				Message: fmt.Sprintf("tool '%s' needs a connection the flow does not declare", id),
			})
		}
	}

	return finish(g)
}

// stepRefRegex matches step-output references like {{steps.step_3}}.
var stepRefRegex = regexp.MustCompile(`\{\{steps\.step_(\d+)`)

// checkVariables verifies data-flow ordering: a step may only reference
// outputs of strictly earlier steps. References are scanned textually;
// expressions are opaque strings evaluated by the downstream runtime.
func (v *Validator) checkVariables(f *flow.Flow) GateResult {
	g := GateResult{Gate: GateVariables}
	if f == nil {
		return finish(g)
	}

	for _, s := range f.Steps {
		for prop, value := range s.Input {
			for _, m := range stepRefRegex.FindAllStringSubmatch(value, -1) {
				var ref int
				fmt.Sscanf(m[1], "%d", &ref)
				if ref >= s.Index {
					g.Errors = append(g.Errors, Finding{
						Code:    "FORWARD_REF",
						Message: fmt.Sprintf("step %d property '%s' references step %d output", s.Index, prop, ref),
						Step:    s.Index,
					})
				}
			}
		}
	}

	return finish(g)
}

// dangerousInputs are textual signatures of injection payloads. The
// scan is over literal input values; it catches copy-pasted attacks,
// not obfuscated ones.
var dangerousInputs = []struct {
	code    string
	pattern *regexp.Regexp
	message string
}{
	{"DANGEROUS_CMD", regexp.MustCompile(`(?i)rm\s+-rf`), "destructive shell command in input"},
	{"SQL_INJECTION", regexp.MustCompile(`(?i)DROP\s+TABLE`), "SQL injection pattern in input"},
	{"XSS", regexp.MustCompile(`(?i)<script`), "script tag in input"},
	{"CODE_INJECTION", regexp.MustCompile(`(?i)eval\s*\(`), "code evaluation call in input"},
}

// maxMessageLength is the longest message most messaging tools accept.
const maxMessageLength = 4096

// highUsagePerTool is the per-tool invocation count above which the
// flow likely burns that tool's API quota faster than a trial account
// allows.
const highUsagePerTool = 5

// checkSafety scans literal input values for injection signatures and
// warns about oversized messages and tools invoked unusually often.
func (v *Validator) checkSafety(f *flow.Flow) GateResult {
	g := GateResult{Gate: GateSafety}
	if f == nil {
		return finish(g)
	}

	for _, s := range f.Steps {
		for prop, value := range s.Input {
			for _, d := range dangerousInputs {
				if d.pattern.MatchString(value) {
					g.Errors = append(g.Errors, Finding{
						Code:    d.code,
						Message: fmt.Sprintf("step %d property '%s': %s", s.Index, prop, d.message),
						Step:    s.Index,
					})
				}
			}
			if (prop == "message" || prop == "body") && utf8.RuneCountInString(value) > maxMessageLength {
				g.Warnings = append(g.Warnings, Finding{
					Code:    "LONG_MESSAGE",
					Message: fmt.Sprintf("step %d '%s' exceeds %d characters", s.Index, prop, maxMessageLength),
					Step:    s.Index,
				})
			}
		}
	}

	usage := make(map[string]int)
	for _, s := range f.Steps {
		usage[s.ToolID]++
	}
	warned := make(map[string]bool)
	for _, s := range f.Steps {
		if usage[s.ToolID] > highUsagePerTool && !warned[s.ToolID] {
			warned[s.ToolID] = true
			g.Warnings = append(g.Warnings, Finding{
				Code:    "HIGH_API_USAGE",
				Message: fmt.Sprintf("tool '%s' is invoked %d times, expect elevated API usage", s.ToolID, usage[s.ToolID]),
			})
		}
	}

	return finish(g)
}
