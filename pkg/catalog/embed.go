// Package catalog provides access to the embedded static compiler data.
//
// Two data files ship inside the binary: the capability registry
// (tools.yaml, the tools with their actions, triggers and input
// properties) and the error-category catalog (errors.yaml, known runtime
// failure modes with their auto-fix strategies and localized messages).
// Both are read once at startup and treated as immutable afterwards.
package catalog

import (
	_ "embed"
)

// Embed the capability registry into the binary. The registry is the
// single source of truth for which tools, actions and triggers the
// compiler may reference.
//
//go:embed tools.yaml
var toolsYAML []byte

// Embed the error-category catalog into the binary. The flow synthesizer
// cross-references it when attaching error handlers.
//
//go:embed errors.yaml
var errorsYAML []byte

// ToolsYAML returns the embedded capability registry as raw bytes.
func ToolsYAML() []byte {
	return toolsYAML
}

// ErrorsYAML returns the embedded error-category catalog as raw bytes.
func ErrorsYAML() []byte {
	return errorsYAML
}
