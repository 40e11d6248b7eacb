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

// Package batch implements the batch command.
package batch

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/siyadah/flowgen/internal/commands/shared"
)

type options struct {
	file   string
	output string
}

// NewCommand creates the batch command.
func NewCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "batch [text ...]",
		Short: "Compile many requests, one result per input in order",
		Long: `Compile a batch of requests. Inputs come from arguments, or from a
file (one request per line) via --file. Results preserve input order;
one failing request never affects the others.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "File with one request per line")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "json", "Output format (json|yaml)")

	return cmd
}

func run(cmd *cobra.Command, args []string, opts *options) error {
	texts := args
	if opts.file != "" {
		fromFile, err := readLines(opts.file)
		if err != nil {
			return err
		}
		texts = append(texts, fromFile...)
	}
	if len(texts) == 0 {
		return fmt.Errorf("no requests given, pass arguments or --file")
	}

	p, _, err := shared.NewPipeline()
	if err != nil {
		return err
	}

	results := p.CompileMany(texts, nil)
	if err := shared.WriteOutput(cmd.OutOrStdout(), results, opts.output); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d requests failed", failed, len(results))
	}
	return nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
