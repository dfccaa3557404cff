// Copyright (c) 2026, Promstack Authors.  All rights reserved.
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

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/promstack/provisioner/pkg/executor"
	"github.com/promstack/provisioner/pkg/facts"
	"github.com/promstack/provisioner/pkg/orchestrator"
	"github.com/promstack/provisioner/pkg/serializer"
	"github.com/promstack/provisioner/pkg/spec"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Converge the host to the declared daemon state",
	Long: `Converge the host to the declared daemon state.

Runs the full pipeline: resolves the artifact for the host architecture,
installs the daemon binary, renders the configuration and alert rules,
converges the service, and restarts or reloads it only when the relevant
artifacts changed. Re-running against a converged host changes nothing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadCompletedSpec(cmd.Context())
		if err != nil {
			return err
		}

		exec := executor.NewLocalExecutor()
		defer exec.Close()

		result, err := orchestrator.New(exec).Run(cmd.Context(), s)
		if err != nil {
			return err
		}
		return writeResult(cmd.Context(), result)
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)
}

// loadCompletedSpec loads the spec file, merges in the gathered host facts,
// and validates the completed spec.
func loadCompletedSpec(ctx context.Context) (*spec.ProvisioningSpec, error) {
	path, err := resolveSpecPath()
	if err != nil {
		return nil, err
	}

	s, err := spec.Load(path)
	if err != nil {
		return nil, err
	}

	hostFacts, err := facts.Gather(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to gather host facts: %w", err)
	}
	hostFacts.ApplyTo(s)

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// writeResult serializes v to the configured output and format.
func writeResult(ctx context.Context, v any) error {
	outFormat := serializer.Format(format)
	if outFormat.IsUnknown() {
		return fmt.Errorf("unknown output format: %q", format)
	}

	w := serializer.NewFileWriterOrStdout(outFormat, output)
	defer func() {
		if closeErr := w.Close(); closeErr != nil {
			slog.Warn("failed to close output writer", "error", closeErr)
		}
	}()

	return w.Serialize(ctx, v)
}
