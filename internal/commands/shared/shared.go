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

// Package shared holds state and helpers common to all CLI commands.
package shared

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/siyadah/flowgen/internal/log"
	"github.com/siyadah/flowgen/pkg/catalog"
	"github.com/siyadah/flowgen/pkg/pipeline"
	"github.com/siyadah/flowgen/pkg/registry"
)

// Version information, set once from main's ldflags values.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// SetVersion stores build-time version information.
func SetVersion(v, c, b string) {
	version, commit, buildDate = v, c, b
}

// GetVersion returns the stored version information.
func GetVersion() (string, string, string) {
	return version, commit, buildDate
}

// NewPipeline assembles a ready-to-use pipeline from the embedded
// catalogs and the environment's logging configuration.
func NewPipeline() (*pipeline.Pipeline, *registry.Registry, error) {
	reg, err := registry.Load()
	if err != nil {
		return nil, nil, err
	}
	errCatalog, err := catalog.LoadErrorCatalog()
	if err != nil {
		return nil, nil, err
	}
	p := pipeline.New(pipeline.Config{
		Registry:     reg,
		ErrorCatalog: errCatalog,
		Logger:       log.New(log.FromEnv()),
	})
	return p, reg, nil
}

// WriteOutput encodes v to w in the requested format, json or yaml.
func WriteOutput(w io.Writer, v any, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown output format %q, want json or yaml", format)
	}
}
