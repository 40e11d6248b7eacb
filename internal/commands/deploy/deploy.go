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

// Package deploy implements the deploy command: compile a request and
// import the rendered flow into the automation runtime.
package deploy

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/siyadah/flowgen/internal/commands/shared"
	"github.com/siyadah/flowgen/pkg/pipeline"
	"github.com/siyadah/flowgen/pkg/runtime"
)

type options struct {
	name            string
	industry        string
	includeOptional bool
	output          string
	url             string
	apiKey          string
	dryRun          bool
	enable          bool
}

// NewCommand creates the deploy command.
func NewCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "deploy <text>",
		Short: "Compile a request and import the flow into the runtime",
		Long: `Compile an Arabic automation request and hand the rendered flow to
the automation runtime. The runtime URL and API key come from --url and
--api-key, or from FLOWGEN_RUNTIME_URL and FLOWGEN_RUNTIME_KEY.

With --dry-run the flow is imported into an in-memory runtime instead,
so the full compile-and-import path can be exercised offline.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "Flow display name")
	cmd.Flags().StringVar(&opts.industry, "industry", "", "Business vertical tag")
	cmd.Flags().BoolVar(&opts.includeOptional, "include-optional", false, "Add steps for explicitly mentioned tools")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "json", "Output format (json|yaml)")
	cmd.Flags().StringVar(&opts.url, "url", "", "Runtime base URL (default $FLOWGEN_RUNTIME_URL)")
	cmd.Flags().StringVar(&opts.apiKey, "api-key", "", "Runtime API key (default $FLOWGEN_RUNTIME_KEY)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Import into an in-memory runtime instead of a real one")
	cmd.Flags().BoolVar(&opts.enable, "enable", false, "Enable the flow after import")

	return cmd
}

func run(cmd *cobra.Command, text string, opts *options) error {
	client, err := newClient(opts)
	if err != nil {
		return err
	}

	p, _, err := shared.NewPipeline()
	if err != nil {
		return err
	}

	result := p.Compile(text, &pipeline.Options{
		Name:            opts.name,
		Industry:        opts.industry,
		IncludeOptional: opts.includeOptional,
	})
	if !result.Success {
		for _, e := range result.Errors {
			fmt.Fprintf(cmd.ErrOrStderr(), "[%s] %s: %s\n", e.Stage, e.Code, e.Message)
		}
		return fmt.Errorf("compilation failed: %s", result.Message)
	}

	ctx := cmd.Context()
	imported, err := client.ImportFlow(ctx, result.Rendered)
	if err != nil {
		return fmt.Errorf("importing flow: %w", err)
	}
	if opts.enable {
		if err := client.EnableFlow(ctx, imported.ID); err != nil {
			return fmt.Errorf("enabling flow %s: %w", imported.ID, err)
		}
		imported, err = client.GetFlow(ctx, imported.ID)
		if err != nil {
			return fmt.Errorf("fetching flow after enable: %w", err)
		}
	}

	return shared.WriteOutput(cmd.OutOrStdout(), imported, opts.output)
}

func newClient(opts *options) (runtime.Client, error) {
	if opts.dryRun {
		return runtime.NewMockClient(), nil
	}
	url := opts.url
	if url == "" {
		url = os.Getenv("FLOWGEN_RUNTIME_URL")
	}
	if url == "" {
		return nil, fmt.Errorf("runtime URL required: set --url or FLOWGEN_RUNTIME_URL, or use --dry-run")
	}
	apiKey := opts.apiKey
	if apiKey == "" {
		apiKey = os.Getenv("FLOWGEN_RUNTIME_KEY")
	}
	return runtime.NewHTTPClient(url, apiKey), nil
}
