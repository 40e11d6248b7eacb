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

// Package selector maps a classified intent to concrete capabilities:
// a trigger plus an ordered list of (tool, action) steps, every
// reference verified against the capability registry.
package selector

import (
	"fmt"

	"github.com/siyadah/flowgen/internal/arabic"
	"github.com/siyadah/flowgen/internal/intent"
	"github.com/siyadah/flowgen/pkg/registry"
)

// Provenance values for selected steps.
const (
	// ProvenanceTemplate marks steps from the intent's default template.
	ProvenanceTemplate = "template"
	// ProvenanceUserMentioned marks optional steps added because the
	// user explicitly named their tool.
	ProvenanceUserMentioned = "user_mentioned"
)

// SelectedTrigger is the verified trigger choice.
type SelectedTrigger struct {
	Tool        string `json:"tool"`
	Trigger     string `json:"trigger"`
	DisplayName string `json:"display_name"`
}

// SelectedStep is one verified step choice.
type SelectedStep struct {
	Tool       string `json:"tool"`
	Action     string `json:"action"`
	Role       string `json:"role"`
	Verified   bool   `json:"verified"`
	Provenance string `json:"provenance"`
}

// Selection is the selector's result. OK is true iff no errors
// accumulated; a failed selection still carries whatever diagnostics
// and partial step list were gathered, since partial diagnostics beat
// failing fast.
type Selection struct {
	OK             bool             `json:"success"`
	Intent         string           `json:"intent"`
	Confidence     float64          `json:"confidence"`
	Trigger        *SelectedTrigger `json:"trigger,omitempty"`
	Steps          []SelectedStep   `json:"steps"`
	OptionalSteps  []SelectedStep   `json:"optional_steps"`
	MentionedTools []string         `json:"mentioned_tools"`
	Errors         []string         `json:"errors"`

	// TotalSteps counts required + optional steps + the trigger
	TotalSteps int `json:"total_steps"`
}

// Selector verifies intent mappings against the capability registry.
type Selector struct {
	reg *registry.Registry
}

// New creates a selector over the given registry.
func New(reg *registry.Registry) *Selector {
	return &Selector{reg: reg}
}

// Select resolves the analysis's primary intent through the mapping
// table. Registry verification failures accumulate rather than
// short-circuit so one pass surfaces every broken reference.
func (s *Selector) Select(analysis *intent.Analysis) *Selection {
	if analysis == nil || analysis.Primary == nil {
		return &Selection{
			Errors: []string{"لم يتم تحديد نية واضحة من الطلب"},
		}
	}

	intentID := analysis.Primary.Intent
	mapping, ok := IntentMappings[intentID]
	if !ok {
		// A taxonomy intent without a mapping is a configuration gap,
		// caught by the offline consistency test; this path is a guard.
		return &Selection{
			Intent: intentID,
			Errors: []string{fmt.Sprintf("لا توجد خريطة أدوات للنية: %s", intentID)},
		}
	}

	sel := &Selection{
		Intent:     intentID,
		Confidence: analysis.Primary.Confidence,
	}

	// Verify the trigger.
	if tool := s.reg.Tool(mapping.Trigger.Tool); tool == nil {
		sel.Errors = append(sel.Errors, fmt.Sprintf("trigger tool '%s' not in registry", mapping.Trigger.Tool))
	} else if tool.Trigger(mapping.Trigger.Trigger) == nil {
		sel.Errors = append(sel.Errors, fmt.Sprintf("trigger '%s' not in %s", mapping.Trigger.Trigger, mapping.Trigger.Tool))
	} else {
		sel.Trigger = &SelectedTrigger{
			Tool:        mapping.Trigger.Tool,
			Trigger:     mapping.Trigger.Trigger,
			DisplayName: tool.DisplayName,
		}
	}

	// Verify required steps, keeping the survivors.
	for _, step := range mapping.Steps {
		tool := s.reg.Tool(step.Tool)
		if tool == nil {
			sel.Errors = append(sel.Errors, fmt.Sprintf("tool '%s' not in registry", step.Tool))
			continue
		}
		if tool.Action(step.Action) == nil {
			sel.Errors = append(sel.Errors, fmt.Sprintf("action '%s' not in %s", step.Action, step.Tool))
			continue
		}
		sel.Steps = append(sel.Steps, SelectedStep{
			Tool:       step.Tool,
			Action:     step.Action,
			Role:       step.Role,
			Verified:   true,
			Provenance: ProvenanceTemplate,
		})
	}

	// Explicitly named tools can pull in optional steps beyond the
	// default template.
	sel.MentionedTools = resolveMentions(analysis.Entities)
	for _, opt := range mapping.Optional {
		if !containsString(sel.MentionedTools, opt.Tool) {
			continue
		}
		if !s.reg.Has(opt.Tool) {
			continue
		}
		sel.OptionalSteps = append(sel.OptionalSteps, SelectedStep{
			Tool:       opt.Tool,
			Action:     opt.Action,
			Role:       opt.Role,
			Verified:   true,
			Provenance: ProvenanceUserMentioned,
		})
	}

	sel.OK = len(sel.Errors) == 0
	sel.TotalSteps = len(sel.Steps) + len(sel.OptionalSteps) + 1
	return sel
}

// resolveMentions maps tool-kind entities through the alias table to
// canonical registry ids. Unknown mentions drop out.
func resolveMentions(entities []intent.Entity) []string {
	var tools []string
	for _, value := range intent.ToolMentions(entities) {
		if id, ok := ToolAliases[arabic.Normalize(value)]; ok {
			tools = append(tools, id)
		}
	}
	return tools
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
