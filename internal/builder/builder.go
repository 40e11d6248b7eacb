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

// Package builder synthesizes a full flow from a tool selection:
// materialized trigger settings, per-step input templates bound to
// trigger outputs, default error policies and auto-attached error
// handlers from the error-category catalog.
package builder

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/siyadah/flowgen/internal/selector"
	"github.com/siyadah/flowgen/pkg/catalog"
	"github.com/siyadah/flowgen/pkg/errors"
	"github.com/siyadah/flowgen/pkg/flow"
	"github.com/siyadah/flowgen/pkg/registry"
)

// defaultTimezone anchors all generated cron schedules.
const defaultTimezone = "Asia/Riyadh"

// flowVersion is the current flow format version.
const flowVersion = "1.0"

// scheduleCrons maps a schedule trigger's cadence name to its one fixed
// cron expression. A lookup table, not computed: one cadence, one cron.
var scheduleCrons = map[string]string{
	"every_hour":      "0 * * * *",
	"every_day":       "0 8 * * *", // 08:00 Riyadh
	"every_week":      "0 8 * * 0", // Sunday 08:00
	"cron_expression": "0 0 1 * *", // first of the month
}

// defaultCron applies to scheduled triggers with no cadence entry.
const defaultCron = "0 * * * *"

// Options tune one synthesis run.
type Options struct {
	// Name overrides the generated flow name
	Name string

	// Description overrides the generated description
	Description string

	// IncludeOptional appends the user-mentioned optional steps
	IncludeOptional bool

	// Industry tags the flow's business vertical, defaults to "general"
	Industry string
}

// Builder synthesizes flows against a registry and error catalog.
type Builder struct {
	reg    *registry.Registry
	errors *catalog.ErrorCatalog
}

// New creates a builder.
func New(reg *registry.Registry, errCatalog *catalog.ErrorCatalog) *Builder {
	return &Builder{reg: reg, errors: errCatalog}
}

// Build expands a selection into a complete flow. A failed selection is
// rejected outright; a selection without a trigger is a synthesis-time
// error distinct from selection-time errors.
func (b *Builder) Build(sel *selector.Selection, opts Options) (*flow.Flow, error) {
	if sel == nil || (!sel.OK && len(sel.Errors) > 0) {
		return nil, &errors.ValidationError{
			Field:   "selection",
			Message: fmt.Sprintf("tool selection has %d errors", len(selErrors(sel))),
		}
	}
	if sel.Trigger == nil {
		return nil, &errors.ValidationError{
			Field:   "selection.trigger",
			Message: "selection has no trigger",
		}
	}

	name := opts.Name
	if name == "" {
		name = fmt.Sprintf("flow_%s_%s", sel.Intent, uuid.NewString()[:8])
	}
	description := opts.Description
	if description == "" {
		description = fmt.Sprintf("تدفق %s (مولّد تلقائياً)", sel.Intent)
	}
	industry := opts.Industry
	if industry == "" {
		industry = "general"
	}

	f := &flow.Flow{
		Metadata: flow.Metadata{
			ID:          uuid.NewString(),
			Name:        name,
			Description: description,
			Intent:      sel.Intent,
			Confidence:  sel.Confidence,
			Industry:    industry,
			CreatedAt:   time.Now().UTC(),
			Version:     flowVersion,
		},
		Trigger: b.buildTrigger(sel.Trigger),
	}

	appendStep := func(step selector.SelectedStep) {
		built := b.buildStep(step, len(f.Steps)+1)
		if built == nil {
			return
		}
		f.Steps = append(f.Steps, built)
		if !f.DeclaresConnection(step.Tool) {
			f.ConnectionsRequired = append(f.ConnectionsRequired, step.Tool)
		}
	}

	for _, step := range sel.Steps {
		appendStep(step)
	}
	if opts.IncludeOptional {
		for _, step := range sel.OptionalSteps {
			appendStep(step)
		}
	}

	f.ErrorHandlers = b.buildErrorHandlers(f)
	f.Metadata.TotalNodes = len(f.Steps) + 1

	return f, nil
}

func selErrors(sel *selector.Selection) []string {
	if sel == nil {
		return nil
	}
	return sel.Errors
}

// buildTrigger materializes trigger settings: webhook triggers get a
// unique path, scheduled triggers get their cadence's cron expression.
func (b *Builder) buildTrigger(ref *selector.SelectedTrigger) *flow.TriggerNode {
	tool := b.reg.Tool(ref.Tool)
	if tool == nil {
		return nil
	}
	def := tool.Trigger(ref.Trigger)

	node := &flow.TriggerNode{
		ToolID:      ref.Tool,
		ToolName:    tool.DisplayName,
		TriggerName: ref.Trigger,
		Kind:        registry.TriggerInstant,
	}
	if def != nil {
		node.DisplayName = def.DisplayName
		if def.Kind != "" {
			node.Kind = def.Kind
		}
	} else {
		node.DisplayName = ref.Trigger
	}

	switch {
	case ref.Trigger == "catch_webhook":
		node.Settings = flow.TriggerSettings{
			Path:   "/webhook/" + uuid.NewString(),
			Method: "POST",
		}
	case node.Kind == registry.TriggerScheduled:
		cron, ok := scheduleCrons[ref.Trigger]
		if !ok {
			cron = defaultCron
		}
		node.Settings = flow.TriggerSettings{
			CronExpression: cron,
			Timezone:       defaultTimezone,
		}
	}

	return node
}

// buildStep materializes one step: registry metadata, the input
// template, the output reference token and the default error policy.
// Returns nil when the registry no longer resolves the reference; the
// selector verified it, so this only happens with a mismatched registry.
func (b *Builder) buildStep(step selector.SelectedStep, index int) *flow.StepNode {
	tool := b.reg.Tool(step.Tool)
	if tool == nil {
		return nil
	}
	action := tool.Action(step.Action)
	if action == nil {
		return nil
	}

	var required []registry.Property
	for _, p := range action.Props {
		if p.Required {
			required = append(required, p)
		}
	}

	return &flow.StepNode{
		Index:         index,
		ToolID:        step.Tool,
		ToolName:      tool.DisplayName,
		ActionName:    step.Action,
		DisplayName:   action.DisplayName,
		Description:   action.Description,
		Role:          step.Role,
		Auth:          tool.Auth,
		Input:         buildInputTemplate(action.Props),
		RequiredProps: required,
		OutputRef:     fmt.Sprintf("{{steps.step_%d}}", index),
		OnError: flow.ErrorPolicy{
			Strategy:   "retry_and_continue",
			MaxRetries: 2,
			OnFailure:  "continue",
		},
	}
}

// buildInputTemplate binds declared properties to trigger-output paths.
// Known semantic names get well-known bindings; other required
// properties bind to a generic path matching their own name; optional
// unrecognized properties stay unbound. Best-effort scaffolding for a
// human to refine, not a claim of semantic correctness.
func buildInputTemplate(props []registry.Property) map[string]string {
	template := make(map[string]string)
	for _, prop := range props {
		if prop.Type == "MARKDOWN" {
			continue
		}
		switch prop.Name {
		case "message", "body", "text":
			template[prop.Name] = "{{trigger.body.message}}"
		case "receiver", "to", "number":
			template[prop.Name] = "{{trigger.body.phone}}"
		case "subject":
			template[prop.Name] = "{{trigger.body.subject}}"
		case "channel", "channelName":
			template[prop.Name] = "{{config.slack_channel}}"
		default:
			if prop.Required {
				template[prop.Name] = fmt.Sprintf("{{trigger.body.%s}}", prop.Name)
			}
		}
	}
	return template
}

// buildErrorHandlers attaches a handler for every catalog error whose
// affected-tools set intersects the flow's tools and which declares an
// auto-fix strategy. Errors without one need manual handling and get no
// flow-level handler.
func (b *Builder) buildErrorHandlers(f *flow.Flow) []flow.ErrorHandler {
	flowTools := make(map[string]bool)
	for _, id := range f.ToolIDs() {
		flowTools[id] = true
	}

	var handlers []flow.ErrorHandler
	for _, entry := range b.errors.All() {
		if entry.AutoFix == nil {
			continue
		}
		relevant := entry.Wildcard()
		if !relevant {
			for _, id := range entry.AffectedTools {
				if flowTools[id] {
					relevant = true
					break
				}
			}
		}
		if !relevant {
			continue
		}

		var affected []int
		for _, step := range f.Steps {
			if entry.Affects(step.ToolID) {
				affected = append(affected, step.Index)
			}
		}

		maxRetries := entry.AutoFix.MaxRetries
		if maxRetries == 0 {
			maxRetries = 1
		}
		handlers = append(handlers, flow.ErrorHandler{
			Code:          entry.Code,
			Message:       entry.Message,
			Strategy:      entry.AutoFix.Strategy,
			MaxRetries:    maxRetries,
			AffectedSteps: affected,
		})
	}
	return handlers
}
