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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siyadah/flowgen/pkg/errors"
)

func TestLoad(t *testing.T) {
	reg, err := Load()
	require.NoError(t, err)
	assert.Greater(t, reg.Len(), 20, "embedded catalog carries the full tool set")

	// The mapping table's anchor tools must all be present.
	for _, id := range []string{
		"webhook", "schedule", "google-sheets", "google-calendar", "gmail",
		"whatsapp", "slack", "openai", "hubspot", "stripe", "twilio",
		"shopify", "jira-cloud", "notion", "airtable", "mailchimp",
		"twitter", "linkedin", "telegram-bot",
	} {
		assert.True(t, reg.Has(id), "missing tool %s", id)
	}
}

func TestToolLookups(t *testing.T) {
	reg, err := Load()
	require.NoError(t, err)

	t.Run("known tool", func(t *testing.T) {
		tool := reg.Tool("whatsapp")
		require.NotNil(t, tool)
		assert.Equal(t, "whatsapp", tool.ID)
		assert.NotEmpty(t, tool.DisplayName)
		require.NotNil(t, tool.Action("sendMessage"))
		assert.Nil(t, tool.Action("nope"))
	})

	t.Run("unknown tool", func(t *testing.T) {
		assert.Nil(t, reg.Tool("nope"))
		assert.False(t, reg.Has("nope"))
	})

	t.Run("action resolution", func(t *testing.T) {
		a, err := reg.Action("gmail", "send_email")
		require.NoError(t, err)
		assert.Equal(t, "send_email", a.Name)

		_, err = reg.Action("gmail", "nope")
		var nf *errors.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "action", nf.Resource)

		_, err = reg.Action("nope", "send_email")
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "tool", nf.Resource)
	})

	t.Run("trigger resolution", func(t *testing.T) {
		tr, err := reg.Trigger("webhook", "catch_webhook")
		require.NoError(t, err)
		assert.Equal(t, "catch_webhook", tr.Name)

		_, err = reg.Trigger("webhook", "nope")
		assert.Error(t, err)
	})
}

func TestScheduleTriggers(t *testing.T) {
	reg, err := Load()
	require.NoError(t, err)

	schedule := reg.Tool("schedule")
	require.NotNil(t, schedule)
	for _, name := range []string{"every_hour", "every_day", "every_week", "cron_expression"} {
		tr := schedule.Trigger(name)
		require.NotNil(t, tr, "missing schedule trigger %s", name)
		assert.Equal(t, TriggerScheduled, tr.Kind)
	}
}

func TestToolsOrderStable(t *testing.T) {
	reg, err := Load()
	require.NoError(t, err)

	tools := reg.Tools()
	require.NotEmpty(t, tools)
	again := reg.Tools()
	for i := range tools {
		assert.Equal(t, tools[i].ID, again[i].ID)
	}
}

func TestIsBuiltin(t *testing.T) {
	for _, id := range []string{"webhook", "schedule", "branch", "code", "delay", "loop", "storage", "http"} {
		assert.True(t, IsBuiltin(id), id)
	}
	assert.False(t, IsBuiltin("whatsapp"))
	assert.False(t, IsBuiltin(""))
}

func TestAuthModeRequiresConnection(t *testing.T) {
	assert.False(t, AuthMode("").RequiresConnection())
	assert.False(t, AuthNone.RequiresConnection())
	assert.True(t, AuthOAuth2.RequiresConnection())
	assert.True(t, AuthSecret.RequiresConnection())
	assert.True(t, AuthBasic.RequiresConnection())
}

func TestNewSkipsDuplicates(t *testing.T) {
	reg := New([]ToolDefinition{
		{ID: "a", DisplayName: "first"},
		{ID: "a", DisplayName: "second"},
		{ID: "b"},
	})
	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, "first", reg.Tool("a").DisplayName)
}
