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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFlow() *Flow {
	return &Flow{
		Metadata: Metadata{Name: "invoice flow", Description: "send invoices"},
		Trigger: &TriggerNode{
			ToolID:      "webhook",
			TriggerName: "catch_webhook",
			Settings:    TriggerSettings{Path: "/webhook/abc", Method: "POST"},
		},
		Steps: []*StepNode{
			{Index: 1, ToolID: "stripe", ActionName: "create_invoice", Input: map[string]string{"customer": "{{trigger.body.customer}}"}},
			{Index: 2, ToolID: "whatsapp", ActionName: "sendMessage", Input: map[string]string{"message": "{{steps.step_1}}"}},
			{Index: 3, ToolID: "google-sheets", ActionName: "insert_row", Input: map[string]string{}},
		},
	}
}

func TestRender(t *testing.T) {
	r := Render(sampleFlow())
	require.NotNil(t, r)

	assert.Equal(t, "invoice flow", r.DisplayName)
	assert.Equal(t, "PIECE_TRIGGER", r.Trigger.Type)
	assert.Equal(t, "@activepieces/piece-webhook", r.Trigger.Settings.PieceName)
	assert.Equal(t, "catch_webhook", r.Trigger.Settings.TriggerName)
	assert.Equal(t, "/webhook/abc", r.Trigger.Settings.Input["path"])
	assert.Equal(t, "POST", r.Trigger.Settings.Input["method"])

	require.Len(t, r.Actions, 3)
	for i, a := range r.Actions {
		assert.Equal(t, "PIECE", a.Type)
		assert.Equal(t, stepName(i+1), a.Name)
	}
	assert.Equal(t, "@activepieces/piece-stripe", r.Actions[0].Settings.PieceName)
}

func TestRenderChaining(t *testing.T) {
	r := Render(sampleFlow())
	require.NotNil(t, r)

	// Trigger points at step 1, each action at its successor, the last
	// at nothing.
	require.NotNil(t, r.Trigger.NextAction)
	assert.Equal(t, "step_1", r.Trigger.NextAction.Name)
	require.NotNil(t, r.Actions[0].NextAction)
	assert.Equal(t, "step_2", r.Actions[0].NextAction.Name)
	require.NotNil(t, r.Actions[1].NextAction)
	assert.Equal(t, "step_3", r.Actions[1].NextAction.Name)
	assert.Nil(t, r.Actions[2].NextAction)
}

func TestRenderScheduledTrigger(t *testing.T) {
	f := sampleFlow()
	f.Trigger.ToolID = "schedule"
	f.Trigger.TriggerName = "every_day"
	f.Trigger.Settings = TriggerSettings{CronExpression: "0 8 * * *", Timezone: "Asia/Riyadh"}

	r := Render(f)
	require.NotNil(t, r)
	assert.Equal(t, "0 8 * * *", r.Trigger.Settings.Input["cronExpression"])
	assert.Equal(t, "Asia/Riyadh", r.Trigger.Settings.Input["timezone"])
}

func TestRenderDegenerate(t *testing.T) {
	assert.Nil(t, Render(nil))
	assert.Nil(t, Render(&Flow{}), "no trigger means nothing to render")

	// Trigger-only flow renders with no chain.
	f := sampleFlow()
	f.Steps = nil
	r := Render(f)
	require.NotNil(t, r)
	assert.Nil(t, r.Trigger.NextAction)
	assert.Empty(t, r.Actions)
}

func TestToolIDs(t *testing.T) {
	f := sampleFlow()
	f.Steps = append(f.Steps, &StepNode{Index: 4, ToolID: "stripe", ActionName: "create_payment_link"})

	ids := f.ToolIDs()
	assert.Equal(t, []string{"webhook", "stripe", "whatsapp", "google-sheets"}, ids)
}

func TestDeclaresConnection(t *testing.T) {
	f := sampleFlow()
	f.ConnectionsRequired = []string{"stripe"}
	assert.True(t, f.DeclaresConnection("stripe"))
	assert.False(t, f.DeclaresConnection("whatsapp"))
}
