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

// Package compile implements the compile command.
package compile

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/siyadah/flowgen/internal/commands/shared"
	"github.com/siyadah/flowgen/pkg/pipeline"
)

type options struct {
	name            string
	industry        string
	includeOptional bool
	output          string
	full            bool
}

// NewCommand creates the compile command.
func NewCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "compile <text>",
		Short: "Compile a natural-language request into a workflow",
		Long: `Compile an Arabic automation request into a validated workflow
definition ready for import into the automation runtime.

The request text may be passed as one argument or several words.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "Flow display name")
	cmd.Flags().StringVar(&opts.industry, "industry", "", "Business vertical tag")
	cmd.Flags().BoolVar(&opts.includeOptional, "include-optional", false, "Add steps for explicitly mentioned tools")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "json", "Output format (json|yaml)")
	cmd.Flags().BoolVar(&opts.full, "full", false, "Print the full compilation result, not just the rendered flow")

	return cmd
}

func run(cmd *cobra.Command, text string, opts *options) error {
	p, _, err := shared.NewPipeline()
	if err != nil {
		return err
	}

	result := p.Compile(text, &pipeline.Options{
		Name:            opts.name,
		Industry:        opts.industry,
		IncludeOptional: opts.includeOptional,
	})

	if opts.full {
		if err := shared.WriteOutput(cmd.OutOrStdout(), result, opts.output); err != nil {
			return err
		}
	} else if result.Success {
		if err := shared.WriteOutput(cmd.OutOrStdout(), result.Rendered, opts.output); err != nil {
			return err
		}
	}

	if !result.Success {
		for _, e := range result.Errors {
			fmt.Fprintf(cmd.ErrOrStderr(), "[%s] %s: %s\n", e.Stage, e.Code, e.Message)
		}
		return fmt.Errorf("compilation failed at stage %s: %s",
			lastStage(result), result.Message)
	}
	return nil
}

func lastStage(result *pipeline.Result) string {
	if len(result.Stages) == 0 {
		return result.StageReached
	}
	return result.Stages[len(result.Stages)-1].Stage
}
