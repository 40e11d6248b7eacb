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

// Package health implements the health command.
package health

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/siyadah/flowgen/internal/commands/shared"
)

// NewCommand creates the health command.
func NewCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Compile canonical probe requests and report the outcome",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := shared.NewPipeline()
			if err != nil {
				return err
			}
			h := p.HealthCheck()
			if err := shared.WriteOutput(cmd.OutOrStdout(), h, output); err != nil {
				return err
			}
			if !h.Healthy {
				return fmt.Errorf("%d of %d probes failed", h.Total-h.Passed, h.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format (json|yaml)")

	return cmd
}
