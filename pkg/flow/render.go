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

package flow

import "fmt"

// piecePrefix is the runtime's package namespace for integration pieces.
const piecePrefix = "@activepieces/piece-"

// RenderedStepRef links one rendered node to the next in the chain.
type RenderedStepRef struct {
	Name string `json:"name" yaml:"name"`
}

// RenderedTriggerSettings is the trigger configuration in runtime form.
type RenderedTriggerSettings struct {
	PieceName   string            `json:"pieceName" yaml:"pieceName"`
	TriggerName string            `json:"triggerName" yaml:"triggerName"`
	Input       map[string]string `json:"input" yaml:"input"`
}

// RenderedTrigger is the flow entry point in runtime form.
type RenderedTrigger struct {
	Name       string                  `json:"name" yaml:"name"`
	Type       string                  `json:"type" yaml:"type"`
	Settings   RenderedTriggerSettings `json:"settings" yaml:"settings"`
	NextAction *RenderedStepRef        `json:"nextAction,omitempty" yaml:"nextAction,omitempty"`
}

// RenderedActionSettings is a step's configuration in runtime form.
type RenderedActionSettings struct {
	PieceName  string            `json:"pieceName" yaml:"pieceName"`
	ActionName string            `json:"actionName" yaml:"actionName"`
	Input      map[string]string `json:"input" yaml:"input"`
}

// RenderedAction is one step node in runtime form.
type RenderedAction struct {
	Name       string                 `json:"name" yaml:"name"`
	Type       string                 `json:"type" yaml:"type"`
	Settings   RenderedActionSettings `json:"settings" yaml:"settings"`
	NextAction *RenderedStepRef       `json:"nextAction,omitempty" yaml:"nextAction,omitempty"`
}

// Rendered is the runtime-submission-ready form of a flow: a linked
// trigger/action chain in the automation runtime's import format.
type Rendered struct {
	DisplayName string           `json:"displayName" yaml:"displayName"`
	Description string           `json:"description" yaml:"description"`
	Trigger     RenderedTrigger  `json:"trigger" yaml:"trigger"`
	Actions     []RenderedAction `json:"actions" yaml:"actions"`
}

// Render converts a compiled flow into the runtime import format. Steps
// are chained in index order; the trigger points at the first step.
// Returns nil for a flow without a trigger; rendering is only defined
// for fully synthesized flows.
func Render(f *Flow) *Rendered {
	if f == nil || f.Trigger == nil {
		return nil
	}

	triggerSettings := map[string]string{}
	switch {
	case f.Trigger.Settings.Path != "":
		triggerSettings["path"] = f.Trigger.Settings.Path
		triggerSettings["method"] = f.Trigger.Settings.Method
	case f.Trigger.Settings.CronExpression != "":
		triggerSettings["cronExpression"] = f.Trigger.Settings.CronExpression
		triggerSettings["timezone"] = f.Trigger.Settings.Timezone
	}

	out := &Rendered{
		DisplayName: f.Metadata.Name,
		Description: f.Metadata.Description,
		Trigger: RenderedTrigger{
			Name: "trigger",
			Type: "PIECE_TRIGGER",
			Settings: RenderedTriggerSettings{
				PieceName:   piecePrefix + f.Trigger.ToolID,
				TriggerName: f.Trigger.TriggerName,
				Input:       triggerSettings,
			},
		},
	}

	if len(f.Steps) > 0 {
		out.Trigger.NextAction = &RenderedStepRef{Name: stepName(f.Steps[0].Index)}
	}

	for i, step := range f.Steps {
		action := RenderedAction{
			Name: stepName(step.Index),
			Type: "PIECE",
			Settings: RenderedActionSettings{
				PieceName:  piecePrefix + step.ToolID,
				ActionName: step.ActionName,
				Input:      step.Input,
			},
		}
		if i < len(f.Steps)-1 {
			action.NextAction = &RenderedStepRef{Name: stepName(f.Steps[i+1].Index)}
		}
		out.Actions = append(out.Actions, action)
	}

	return out
}

func stepName(index int) string {
	return fmt.Sprintf("step_%d", index)
}
