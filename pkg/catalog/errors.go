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

package catalog

import (
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/siyadah/flowgen/pkg/errors"
)

// Known auto-fix strategy names. The catalog consistency test rejects
// strategies outside this set so a typo in errors.yaml fails the build,
// not a production flow.
const (
	StrategyExponentialBackoff = "exponential_backoff"
	StrategyRefreshToken       = "refresh_token"
	StrategyPhoneNormalization = "phone_normalization"
	StrategyFindAndUpdate      = "find_and_update"
	StrategyTruncateMessage    = "truncate_message"
	StrategyRetryOnce          = "retry_once"
)

// KnownStrategies lists every auto-fix strategy the runtime understands.
var KnownStrategies = []string{
	StrategyExponentialBackoff,
	StrategyRefreshToken,
	StrategyPhoneNormalization,
	StrategyFindAndUpdate,
	StrategyTruncateMessage,
	StrategyRetryOnce,
}

// AutoFix describes how the runtime can recover from an error without
// human intervention.
type AutoFix struct {
	// Strategy names the recovery procedure (one of KnownStrategies)
	Strategy string `yaml:"strategy"`

	// MaxRetries bounds how many times the strategy may run
	MaxRetries int `yaml:"max_retries"`

	// SAPatterns are locale-specific phone patterns for phone_normalization
	SAPatterns []string `yaml:"sa_patterns,omitempty"`
}

// ErrorEntry is one known failure mode from the catalog.
type ErrorEntry struct {
	// Code is the stable machine-readable error identifier
	Code string `yaml:"code"`

	// Message is the localized user-facing description
	Message string `yaml:"message"`

	// AffectedTools lists registry tool ids this error applies to,
	// or ["*"] for any tool
	AffectedTools []string `yaml:"affected_tools"`

	// AutoFix is the recovery strategy, nil when the error needs
	// manual handling
	AutoFix *AutoFix `yaml:"auto_fix,omitempty"`

	// UserAction is the manual-recovery hint for errors without auto-fix
	UserAction string `yaml:"user_action,omitempty"`
}

// Category groups related error entries.
type Category struct {
	Errors []ErrorEntry `yaml:"errors"`
}

// ErrorCatalog is the decoded error-category catalog.
type ErrorCatalog struct {
	Categories map[string]Category `yaml:"categories"`
}

// All returns every error entry across all categories, ordered by
// category name then declaration order, so handler attachment is
// deterministic run to run.
func (c *ErrorCatalog) All() []ErrorEntry {
	names := make([]string, 0, len(c.Categories))
	for name := range c.Categories {
		names = append(names, name)
	}
	sort.Strings(names)

	var all []ErrorEntry
	for _, name := range names {
		all = append(all, c.Categories[name].Errors...)
	}
	return all
}

// Wildcard reports whether the entry applies to every tool.
func (e *ErrorEntry) Wildcard() bool {
	for _, t := range e.AffectedTools {
		if t == "*" {
			return true
		}
	}
	return false
}

// Affects reports whether the entry applies to the given tool id.
func (e *ErrorEntry) Affects(toolID string) bool {
	for _, t := range e.AffectedTools {
		if t == "*" || t == toolID {
			return true
		}
	}
	return false
}

// LoadErrorCatalog decodes the embedded error-category catalog.
func LoadErrorCatalog() (*ErrorCatalog, error) {
	var cat ErrorCatalog
	if err := yaml.Unmarshal(errorsYAML, &cat); err != nil {
		return nil, &errors.ConfigError{Key: "catalog.errors", Reason: "decode failed", Cause: err}
	}
	if len(cat.Categories) == 0 {
		return nil, &errors.ConfigError{Key: "catalog.errors", Reason: "catalog has no categories"}
	}
	return &cat, nil
}
