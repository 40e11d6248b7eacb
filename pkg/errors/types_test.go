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

package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "trigger", Message: "missing", Suggestion: "add a trigger"}
	assert.Contains(t, err.Error(), "trigger")
	assert.Contains(t, err.Error(), "missing")
}

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{Resource: "tool", ID: "whatsapp"}
	assert.Contains(t, err.Error(), "tool")
	assert.Contains(t, err.Error(), "whatsapp")
}

func TestWrappedCausesUnwrap(t *testing.T) {
	cause := stderrors.New("connection refused")

	tests := []struct {
		name string
		err  error
	}{
		{"config", &ConfigError{Key: "catalog.tools", Reason: "decode failed", Cause: cause}},
		{"runtime", &RuntimeError{Operation: "POST /v1/flows", Message: "request failed", Cause: cause}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, Is(tt.err, cause))
		})
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("boom")
	wrapped := Wrap(cause, "loading catalog")
	require.Error(t, wrapped)
	assert.Contains(t, wrapped.Error(), "loading catalog")
	assert.True(t, Is(wrapped, cause))

	assert.Nil(t, Wrap(nil, "nothing"))
}

func TestAs(t *testing.T) {
	var err error = &NotFoundError{Resource: "action", ID: "gmail.nope"}
	var nf *NotFoundError
	require.True(t, As(err, &nf))
	assert.Equal(t, "action", nf.Resource)
}
