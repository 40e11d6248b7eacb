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

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/siyadah/flowgen/internal/commands/batch"
	"github.com/siyadah/flowgen/internal/commands/compile"
	"github.com/siyadah/flowgen/internal/commands/deploy"
	"github.com/siyadah/flowgen/internal/commands/health"
	"github.com/siyadah/flowgen/internal/commands/shared"
	"github.com/siyadah/flowgen/internal/commands/tools"
	versioncmd "github.com/siyadah/flowgen/internal/commands/version"
)

// Version information (injected via ldflags at build time)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	shared.SetVersion(version, commit, buildDate)

	rootCmd := &cobra.Command{
		Use:   "flowgen",
		Short: "Compile natural-language requests into runnable workflows",
		Long: `flowgen turns Arabic automation requests into validated workflow
definitions for the automation runtime: classify the intent, pick the
tools, synthesize the flow, validate it and render the import format.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(compile.NewCommand())
	rootCmd.AddCommand(batch.NewCommand())
	rootCmd.AddCommand(deploy.NewCommand())
	rootCmd.AddCommand(tools.NewCommand())
	rootCmd.AddCommand(health.NewCommand())
	rootCmd.AddCommand(versioncmd.NewCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
