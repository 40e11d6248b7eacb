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

package deploy

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siyadah/flowgen/pkg/runtime"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestDeployDryRun(t *testing.T) {
	out, _, err := execute(t, "--dry-run", "أبي أحجز موعد")
	require.NoError(t, err)

	var imported runtime.ImportedFlow
	require.NoError(t, json.Unmarshal([]byte(out), &imported))
	assert.Equal(t, "mock-1", imported.ID)
	assert.Equal(t, "DISABLED", imported.Status)
	assert.NotEmpty(t, imported.DisplayName)
}

func TestDeployDryRunEnable(t *testing.T) {
	out, _, err := execute(t, "--dry-run", "--enable", "--name", "booking", "أبي أحجز موعد")
	require.NoError(t, err)

	var imported runtime.ImportedFlow
	require.NoError(t, json.Unmarshal([]byte(out), &imported))
	assert.Equal(t, "ENABLED", imported.Status)
	assert.Equal(t, "booking", imported.DisplayName)
}

func TestDeployRequiresRuntimeURL(t *testing.T) {
	t.Setenv("FLOWGEN_RUNTIME_URL", "")
	_, _, err := execute(t, "أبي أحجز موعد")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "runtime URL")
}

func TestDeployCompileFailure(t *testing.T) {
	_, errOut, err := execute(t, "--dry-run", "hello world")
	require.Error(t, err)
	assert.Contains(t, errOut, "NO_INTENT")
}
