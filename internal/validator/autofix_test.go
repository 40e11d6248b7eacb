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

package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoFixMissingIndex(t *testing.T) {
	f := validFlow()
	f.Steps[0].Index = 0
	f.Steps[1].Index = 0

	result := AutoFix(f)
	require.True(t, result.Fixed)
	assert.Equal(t, 1, f.Steps[0].Index)
	assert.Equal(t, 2, f.Steps[1].Index)

	kinds := make(map[string]int)
	for _, fix := range result.Fixes {
		kinds[fix.Kind]++
	}
	assert.Equal(t, 2, kinds[FixAddIndex])
}

func TestAutoFixPhoneNormalization(t *testing.T) {
	tests := []struct {
		name  string
		prop  string
		value string
		want  string
		fixed bool
	}{
		{"local receiver", "receiver", "0551234567", "+966551234567", true},
		{"local number", "number", "0501112233", "+966501112233", true},
		{"local to", "to", "0559998877", "+966559998877", true},
		{"already international", "receiver", "+966551234567", "+966551234567", false},
		{"binding untouched", "receiver", "{{trigger.body.phone}}", "{{trigger.body.phone}}", false},
		{"non-phone prop untouched", "message", "0551234567", "0551234567", false},
		{"landline untouched", "receiver", "0112345678", "0112345678", false},
		{"too short untouched", "receiver", "055123", "055123", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFlow()
			f.Steps[0].Input[tt.prop] = tt.value

			result := AutoFix(f)
			assert.Equal(t, tt.want, f.Steps[0].Input[tt.prop])
			if tt.fixed {
				assert.True(t, result.Fixed)
			}
		})
	}
}

func TestAutoFixIdempotent(t *testing.T) {
	f := validFlow()
	f.Steps[0].Index = 0
	f.Steps[0].Input["receiver"] = "0551234567"

	first := AutoFix(f)
	require.True(t, first.Fixed)

	second := AutoFix(f)
	assert.False(t, second.Fixed, "second run must find nothing to repair: %v", second.Fixes)
	assert.Equal(t, "+966551234567", f.Steps[0].Input["receiver"])
	assert.Equal(t, 1, f.Steps[0].Index)
}

func TestAutoFixNilFlow(t *testing.T) {
	result := AutoFix(nil)
	assert.False(t, result.Fixed)
	assert.Empty(t, result.Fixes)
}

func TestAutoFixMakesNoValidityClaim(t *testing.T) {
	// A flow with an unknown tool stays broken; AutoFix only touches
	// indices and phone literals.
	f := validFlow()
	f.Steps[0].ToolID = "nope"
	result := AutoFix(f)
	assert.False(t, result.Fixed)
	assert.Equal(t, "nope", f.Steps[0].ToolID)
}
