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

package pipeline

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siyadah/flowgen/internal/intent"
	"github.com/siyadah/flowgen/pkg/catalog"
	"github.com/siyadah/flowgen/pkg/registry"
)

func newPipeline(t *testing.T) *Pipeline {
	t.Helper()
	reg, err := registry.Load()
	require.NoError(t, err)
	cat, err := catalog.LoadErrorCatalog()
	require.NoError(t, err)
	return New(Config{Registry: reg, ErrorCatalog: cat})
}

func TestCompileAppointmentBooking(t *testing.T) {
	p := newPipeline(t)
	result := p.Compile("أبي أحجز موعد", nil)

	require.True(t, result.Success, "errors: %v", result.Errors)
	assert.Equal(t, StageReady, result.StageReached)
	require.NotNil(t, result.Flow)
	assert.Equal(t, intent.AppointmentBook, result.Flow.Metadata.Intent)
	require.NotNil(t, result.Rendered)
	assert.NotEmpty(t, result.Rendered.Actions)
	assert.NotEmpty(t, result.Message)
	assert.Greater(t, result.ExecutionTime.Nanoseconds(), int64(0))
}

func TestCompileInvoice(t *testing.T) {
	p := newPipeline(t)
	result := p.Compile("أرسل فاتورة للعميل", nil)

	require.True(t, result.Success, "errors: %v", result.Errors)
	require.NotNil(t, result.Flow)
	assert.Equal(t, intent.InvoiceSend, result.Flow.Metadata.Intent)

	var tools []string
	for _, s := range result.Flow.Steps {
		tools = append(tools, s.ToolID)
	}
	assert.Contains(t, tools, "stripe")
}

func TestCompileEmptyInput(t *testing.T) {
	p := newPipeline(t)
	result := p.Compile("", nil)

	assert.False(t, result.Success)
	assert.Equal(t, StageFailed, result.StageReached)
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, StageUnderstand, result.Errors[0].Stage)
	assert.Equal(t, "NO_INTENT", result.Errors[0].Code)
	assert.Nil(t, result.Flow)
	assert.NotEmpty(t, result.Message)
}

func TestCompileStageTrace(t *testing.T) {
	p := newPipeline(t)

	t.Run("success covers all stages", func(t *testing.T) {
		result := p.Compile("أبي أحجز موعد", nil)
		require.True(t, result.Success)

		var names []string
		for _, s := range result.Stages {
			names = append(names, s.Stage)
		}
		assert.Equal(t, []string{StageUnderstand, StageSelect, StageBuild, StageValidate, StageFormat}, names)
		for _, s := range result.Stages {
			assert.True(t, s.OK, "stage %s failed in a successful run", s.Stage)
		}
	})

	t.Run("failure stops the trace early", func(t *testing.T) {
		result := p.Compile("", nil)
		require.NotEmpty(t, result.Stages)
		assert.Equal(t, StageUnderstand, result.Stages[0].Stage)
		assert.False(t, result.Stages[0].OK)
		assert.Len(t, result.Stages, 1)
	})
}

func TestCompileOptions(t *testing.T) {
	p := newPipeline(t)
	result := p.Compile("أبي أحجز موعد", &Options{Name: "clinic booking", Industry: "clinic"})

	require.True(t, result.Success)
	assert.Equal(t, "clinic booking", result.Flow.Metadata.Name)
	assert.Equal(t, "clinic", result.Flow.Metadata.Industry)
	assert.Equal(t, "clinic booking", result.Rendered.DisplayName)
}

func TestCompileManyPreservesOrder(t *testing.T) {
	p := newPipeline(t)
	texts := []string{
		"أبي أحجز موعد",
		"",
		"أرسل فاتورة للعميل",
		"xyzzy",
		"أرسل واتساب",
	}

	results := p.CompileMany(texts, nil)
	require.Len(t, results, len(texts))
	for i, r := range results {
		assert.Equal(t, texts[i], r.Input, "result %d out of order", i)
	}
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.True(t, results[2].Success)
	assert.False(t, results[3].Success)
	assert.True(t, results[4].Success)
}

func TestCompileRecoversFromPanic(t *testing.T) {
	reg, err := registry.Load()
	require.NoError(t, err)
	cat, err := catalog.LoadErrorCatalog()
	require.NoError(t, err)

	// A nil builder panics inside the build stage; the boundary must
	// turn that into a failed result instead of crashing the caller.
	p := New(Config{Registry: reg, ErrorCatalog: cat})
	p.builder = nil

	var result *Result
	assert.NotPanics(t, func() {
		result = p.Compile("أبي أحجز موعد", nil)
	})
	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.Equal(t, StageFailed, result.StageReached)
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, "INTERNAL_PANIC", result.Errors[len(result.Errors)-1].Code)
}

func TestHealthCheck(t *testing.T) {
	p := newPipeline(t)
	h := p.HealthCheck()

	assert.Equal(t, 5, h.Total)
	assert.Equal(t, h.Total, h.Passed, "probes: %+v", h.Probes)
	assert.True(t, h.Healthy)
	require.Len(t, h.Probes, 5)
	for _, probe := range h.Probes {
		assert.True(t, probe.Success, "probe %q reached %s", probe.Input, probe.Stage)
		assert.NotEmpty(t, probe.Intent)
	}
}

func TestMetricsObserved(t *testing.T) {
	reg, err := registry.Load()
	require.NoError(t, err)
	cat, err := catalog.LoadErrorCatalog()
	require.NoError(t, err)

	promReg := prometheus.NewRegistry()
	p := New(Config{
		Registry:     reg,
		ErrorCatalog: cat,
		Metrics:      NewMetrics(promReg),
	})

	p.Compile("أبي أحجز موعد", nil)
	p.Compile("", nil)

	families, err := promReg.Gather()
	require.NoError(t, err)

	found := make(map[string]bool)
	for _, f := range families {
		found[f.GetName()] = true
	}
	assert.True(t, found["flowgen_compilations_total"])
	assert.True(t, found["flowgen_compilation_duration_seconds"])
}

func TestCustomScoring(t *testing.T) {
	reg, err := registry.Load()
	require.NoError(t, err)
	cat, err := catalog.LoadErrorCatalog()
	require.NoError(t, err)

	// An impossible threshold makes every request unclassifiable.
	strict := intent.DefaultScoring()
	strict.Threshold = 2.0
	p := New(Config{Registry: reg, ErrorCatalog: cat, Scoring: &strict})

	result := p.Compile("أبي أحجز موعد", nil)
	assert.False(t, result.Success)
	assert.Equal(t, "NO_INTENT", result.Errors[0].Code)
}
