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

// Package pipeline drives one request through the full compilation:
// understand the text, select tools, build the flow, validate it, fix
// what can be fixed, and render the runtime-submission form.
//
// The pipeline advances only on stage success and never retries except
// for the single validate-fix-revalidate loop. Stage errors surface in
// the result verbatim; panics anywhere inside a stage are converted to
// a failed result at the Compile boundary so a malformed input can
// never take down a batch.
package pipeline

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/siyadah/flowgen/internal/builder"
	"github.com/siyadah/flowgen/internal/intent"
	"github.com/siyadah/flowgen/internal/log"
	"github.com/siyadah/flowgen/internal/selector"
	"github.com/siyadah/flowgen/internal/validator"
	"github.com/siyadah/flowgen/pkg/catalog"
	"github.com/siyadah/flowgen/pkg/flow"
	"github.com/siyadah/flowgen/pkg/registry"
)

// Pipeline stages, in order. StageReady and StageFailed are terminal.
const (
	StageUnderstand = "understand"
	StageSelect     = "select"
	StageBuild      = "build"
	StageValidate   = "validate"
	StageFix        = "fix"
	StageFormat     = "format"
	StageReady      = "ready"
	StageFailed     = "failed"
)

// Error is one pipeline-level failure, attributed to its stage.
type Error struct {
	Stage   string `json:"stage"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StageSummary records one stage's outcome for the trace.
type StageSummary struct {
	Stage    string `json:"stage"`
	OK       bool   `json:"ok"`
	Detail   string `json:"detail,omitempty"`
	Duration int64  `json:"duration_ms"`
}

// Result is the complete outcome of one compilation.
type Result struct {
	// Input is the raw request text
	Input string `json:"input"`

	// Success is true iff the pipeline reached the ready state
	Success bool `json:"success"`

	// StageReached is the terminal stage, ready or failed
	StageReached string `json:"stage_reached"`

	// Stages is the ordered trace of executed stages
	Stages []StageSummary `json:"stages"`

	// Analysis is the understanding-stage output
	Analysis *intent.Analysis `json:"analysis,omitempty"`

	// Selection is the tool-selection output
	Selection *selector.Selection `json:"selection,omitempty"`

	// Flow is the synthesized artifact, present from the build stage on
	Flow *flow.Flow `json:"flow,omitempty"`

	// Validation is the final validation report
	Validation *validator.Report `json:"validation,omitempty"`

	// Fixes records auto-fixer repairs, nil when none ran
	Fixes *validator.FixResult `json:"fixes,omitempty"`

	// Rendered is the runtime-submission form, present on success
	Rendered *flow.Rendered `json:"rendered,omitempty"`

	// Errors are the failures that stopped the pipeline
	Errors []Error `json:"errors,omitempty"`

	// Warnings are non-blocking findings carried through
	Warnings []string `json:"warnings,omitempty"`

	// Message is a localized human-readable summary
	Message string `json:"message"`

	// ExecutionTime is wall-clock duration for the whole compilation
	ExecutionTime time.Duration `json:"execution_time"`
}

// Options tune one compilation.
type Options struct {
	// Name overrides the generated flow name
	Name string

	// Description overrides the generated description
	Description string

	// Industry tags the flow's business vertical
	Industry string

	// IncludeOptional adds user-mentioned optional steps
	IncludeOptional bool
}

// Pipeline wires the stage components together. Construct once, use for
// many requests; all per-request state lives in the Result.
type Pipeline struct {
	classifier *intent.Classifier
	selector   *selector.Selector
	builder    *builder.Builder
	validator  *validator.Validator
	logger     *slog.Logger
	metrics    *Metrics
}

// Config assembles a pipeline's collaborators. Registry and ErrorCatalog
// are required; the rest default.
type Config struct {
	Registry     *registry.Registry
	ErrorCatalog *catalog.ErrorCatalog

	// Scoring overrides the classifier constants, zero value means defaults
	Scoring *intent.Scoring

	// Logger defaults to a discard logger
	Logger *slog.Logger

	// Metrics is optional instrumentation
	Metrics *Metrics
}

// New creates a pipeline from the given configuration.
func New(cfg Config) *Pipeline {
	scoring := intent.DefaultScoring()
	if cfg.Scoring != nil {
		scoring = *cfg.Scoring
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Discard()
	}
	return &Pipeline{
		classifier: intent.NewClassifier(scoring),
		selector:   selector.New(cfg.Registry),
		builder:    builder.New(cfg.Registry, cfg.ErrorCatalog),
		validator:  validator.New(cfg.Registry),
		logger:     log.WithComponent(logger, "pipeline"),
		metrics:    cfg.Metrics,
	}
}

// Compile runs the full pipeline over one request. It never panics:
// stage panics become a failed result.
func (p *Pipeline) Compile(text string, opts *Options) (result *Result) {
	start := time.Now()
	if opts == nil {
		opts = &Options{}
	}
	result = &Result{Input: text, StageReached: StageFailed}

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("compilation panicked", slog.Any("panic", r))
			result.StageReached = StageFailed
			result.Success = false
			result.Errors = append(result.Errors, Error{
				Stage:   StageFailed,
				Code:    "INTERNAL_PANIC",
				Message: fmt.Sprintf("internal error: %v", r),
			})
			result.Message = "حدث خطأ داخلي أثناء المعالجة"
		}
		result.ExecutionTime = time.Since(start)
		p.observe(result)
	}()

	p.compile(text, opts, result)
	return result
}

func (p *Pipeline) compile(text string, opts *Options, result *Result) {
	// Stage 1: understand.
	stage := p.beginStage(result, StageUnderstand)
	analysis := p.classifier.Analyze(text)
	result.Analysis = analysis
	if analysis.Primary == nil {
		p.endStage(result, stage, false, "no intent cleared the threshold")
		p.fail(result, StageUnderstand, "NO_INTENT", "لم نتمكن من فهم الطلب، حاول صياغته بشكل أوضح")
		return
	}
	p.endStage(result, stage, true, fmt.Sprintf("intent %s (%.2f)", analysis.Primary.Intent, analysis.Primary.Confidence))

	// Stage 2: select.
	stage = p.beginStage(result, StageSelect)
	sel := p.selector.Select(analysis)
	result.Selection = sel
	if !sel.OK {
		p.endStage(result, stage, false, strings.Join(sel.Errors, "; "))
		for _, e := range sel.Errors {
			result.Errors = append(result.Errors, Error{Stage: StageSelect, Code: "SELECTION_FAILED", Message: e})
		}
		p.fail(result, StageSelect, "", "تعذر اختيار الأدوات المناسبة للطلب")
		return
	}
	p.endStage(result, stage, true, fmt.Sprintf("%d steps", sel.TotalSteps))

	// Stage 3: build.
	stage = p.beginStage(result, StageBuild)
	built, err := p.builder.Build(sel, builder.Options{
		Name:            opts.Name,
		Description:     opts.Description,
		IncludeOptional: opts.IncludeOptional,
		Industry:        opts.Industry,
	})
	if err != nil {
		p.endStage(result, stage, false, err.Error())
		result.Errors = append(result.Errors, Error{Stage: StageBuild, Code: "BUILD_FAILED", Message: err.Error()})
		p.fail(result, StageBuild, "", "تعذر بناء التدفق")
		return
	}
	result.Flow = built
	p.endStage(result, stage, true, fmt.Sprintf("%d nodes", built.Metadata.TotalNodes))

	// Stage 4: validate, with one fix attempt.
	stage = p.beginStage(result, StageValidate)
	report := p.validator.Validate(built)
	result.Validation = report
	p.endStage(result, stage, report.Valid, fmt.Sprintf("%d errors, %d warnings", report.TotalErrors, report.TotalWarnings))

	if !report.Valid {
		stage = p.beginStage(result, StageFix)
		fixes := validator.AutoFix(built)
		result.Fixes = fixes
		p.endStage(result, stage, fixes.Fixed, fmt.Sprintf("%d fixes", len(fixes.Fixes)))

		stage = p.beginStage(result, StageValidate)
		report = p.validator.Validate(built)
		result.Validation = report
		p.endStage(result, stage, report.Valid, fmt.Sprintf("%d errors, %d warnings", report.TotalErrors, report.TotalWarnings))
	}

	for _, w := range report.Warnings() {
		result.Warnings = append(result.Warnings, w.Message)
	}
	if !report.Valid {
		for _, e := range report.Errors() {
			result.Errors = append(result.Errors, Error{Stage: StageValidate, Code: e.Code, Message: e.Message})
		}
		p.fail(result, StageValidate, "", "التدفق المولّد لم يجتز التحقق")
		return
	}

	// Stage 5: format.
	stage = p.beginStage(result, StageFormat)
	rendered := flow.Render(built)
	if rendered == nil {
		p.endStage(result, stage, false, "rendering produced nothing")
		result.Errors = append(result.Errors, Error{Stage: StageFormat, Code: "RENDER_FAILED", Message: "flow could not be rendered"})
		p.fail(result, StageFormat, "", "تعذر تجهيز التدفق للتشغيل")
		return
	}
	result.Rendered = rendered
	p.endStage(result, stage, true, "")

	result.Success = true
	result.StageReached = StageReady
	result.Message = fmt.Sprintf("تم إنشاء التدفق '%s' بنجاح", built.Metadata.Name)

	log.WithFlow(p.logger, built.Metadata.Name, built.Metadata.Intent).Info("compilation succeeded",
		slog.Int("steps", len(built.Steps)),
		slog.Float64("confidence", built.Metadata.Confidence))
}

// fail marks the result terminal. code may be empty when per-item
// errors were already appended.
func (p *Pipeline) fail(result *Result, stage, code, message string) {
	if code != "" {
		result.Errors = append(result.Errors, Error{Stage: stage, Code: code, Message: message})
	}
	result.StageReached = StageFailed
	result.Message = message
	p.logger.Warn("compilation failed",
		slog.String(log.StageKey, stage),
		slog.Int(log.ErrorsKey, len(result.Errors)))
}

type stageTimer struct {
	name  string
	start time.Time
}

func (p *Pipeline) beginStage(result *Result, name string) stageTimer {
	p.logger.Debug("stage started", slog.String(log.StageKey, name))
	return stageTimer{name: name, start: time.Now()}
}

func (p *Pipeline) endStage(result *Result, t stageTimer, ok bool, detail string) {
	elapsed := time.Since(t.start).Milliseconds()
	result.Stages = append(result.Stages, StageSummary{
		Stage:    t.name,
		OK:       ok,
		Detail:   detail,
		Duration: elapsed,
	})
	p.logger.Debug("stage finished",
		slog.String(log.StageKey, t.name),
		slog.Bool("ok", ok),
		log.Duration("duration", elapsed))
}

func (p *Pipeline) observe(result *Result) {
	if p.metrics == nil {
		return
	}
	p.metrics.Observe(result)
}

// CompileMany compiles each request independently, in order. One
// failure never affects the others; results line up with inputs by
// position.
func (p *Pipeline) CompileMany(texts []string, opts *Options) []*Result {
	results := make([]*Result, len(texts))
	for i, text := range texts {
		results[i] = p.Compile(text, opts)
	}
	return results
}

// healthProbes are canonical requests covering the common intents. A
// regression in any core stage shows up as a failed probe.
var healthProbes = []string{
	"أبي أحجز موعد",
	"أرسل فاتورة للعميل",
	"عميل جديد يتواصل",
	"أبي تقرير يومي",
	"أرسل واتساب",
}

// ProbeResult is one health-check compilation outcome.
type ProbeResult struct {
	Input    string        `json:"input"`
	Success  bool          `json:"success"`
	Stage    string        `json:"stage"`
	Intent   string        `json:"intent,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Health is the aggregate health-check outcome.
type Health struct {
	Healthy bool          `json:"healthy"`
	Passed  int           `json:"passed"`
	Total   int           `json:"total"`
	Probes  []ProbeResult `json:"probes"`
}

// HealthCheck compiles the canonical probe requests and reports
// per-probe outcomes. Healthy means every probe compiled.
func (p *Pipeline) HealthCheck() *Health {
	h := &Health{Total: len(healthProbes)}
	for _, probe := range healthProbes {
		res := p.Compile(probe, nil)
		pr := ProbeResult{
			Input:    probe,
			Success:  res.Success,
			Stage:    res.StageReached,
			Duration: res.ExecutionTime,
		}
		if res.Analysis != nil && res.Analysis.Primary != nil {
			pr.Intent = res.Analysis.Primary.Intent
		}
		h.Probes = append(h.Probes, pr)
		if res.Success {
			h.Passed++
		}
	}
	h.Healthy = h.Passed == h.Total
	return h
}
