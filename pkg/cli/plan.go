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
	"github.com/spf13/cobra"

	"github.com/promstack/provisioner/pkg/executor"
	"github.com/promstack/provisioner/pkg/orchestrator"
)

// planOutput combines the run summary with the recorded directives.
type planOutput struct {
	Result     *orchestrator.Result `json:"result" yaml:"result"`
	Directives []executor.Directive `json:"directives" yaml:"directives"`
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show what apply would change without touching the host",
	Long: `Show what apply would change without touching the host.

Runs the same pipeline as apply against a read-only executor: the spec is
validated, the artifact resolved, and every file compared against its
desired content, but nothing is written and no service is touched. The
output lists each directive and whether it would change the host.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadCompletedSpec(cmd.Context())
		if err != nil {
			return err
		}

		plan := executor.NewPlanExecutor()
		result, err := orchestrator.New(plan).Run(cmd.Context(), s)
		if err != nil {
			return err
		}

		return writeResult(cmd.Context(), &planOutput{
			Result:     result,
			Directives: plan.Directives,
		})
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
}
