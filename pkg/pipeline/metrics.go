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
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics instruments the pipeline. Optional: a nil Metrics on the
// pipeline disables instrumentation entirely.
type Metrics struct {
	compilations *prometheus.CounterVec
	duration     prometheus.Histogram
	flowSteps    prometheus.Histogram
}

// NewMetrics creates and registers the pipeline metrics with the given
// registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		compilations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flowgen",
			Name:      "compilations_total",
			Help:      "Compilations by outcome and terminal stage.",
		}, []string{"outcome", "stage"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "flowgen",
			Name:      "compilation_duration_seconds",
			Help:      "Wall-clock duration of one compilation.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		flowSteps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "flowgen",
			Name:      "flow_steps",
			Help:      "Step count of successfully compiled flows.",
			Buckets:   []float64{1, 2, 3, 4, 5, 7, 10},
		}),
	}
	reg.MustRegister(m.compilations, m.duration, m.flowSteps)
	return m
}

// Observe records one finished compilation.
func (m *Metrics) Observe(result *Result) {
	outcome := "failure"
	if result.Success {
		outcome = "success"
	}
	stage := result.StageReached
	if !result.Success && len(result.Stages) > 0 {
		// Attribute the failure to the last stage that actually ran.
		stage = result.Stages[len(result.Stages)-1].Stage
	}
	m.compilations.WithLabelValues(outcome, stage).Inc()
	m.duration.Observe(result.ExecutionTime.Seconds())
	if result.Success && result.Flow != nil {
		m.flowSteps.Observe(float64(len(result.Flow.Steps)))
	}
}
