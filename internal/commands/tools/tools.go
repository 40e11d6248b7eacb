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

// Package tools implements the tools command.
package tools

import (
	"github.com/spf13/cobra"

	"github.com/siyadah/flowgen/internal/commands/shared"
	"github.com/siyadah/flowgen/pkg/registry"
)

type toolSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Auth     string `json:"auth"`
	Actions  int    `json:"actions"`
	Triggers int    `json:"triggers"`
}

// NewCommand creates the tools command.
func NewCommand() *cobra.Command {
	var output string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the capability registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.Load()
			if err != nil {
				return err
			}
			if verbose {
				return shared.WriteOutput(cmd.OutOrStdout(), reg.Tools(), output)
			}

			summaries := make([]toolSummary, 0, reg.Len())
			for _, t := range reg.Tools() {
				summaries = append(summaries, toolSummary{
					ID:       t.ID,
					Name:     t.DisplayName,
					Auth:     string(t.Auth),
					Actions:  len(t.Actions),
					Triggers: len(t.Triggers),
				})
			}
			return shared.WriteOutput(cmd.OutOrStdout(), summaries, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format (json|yaml)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Include full action and trigger definitions")

	return cmd
}
