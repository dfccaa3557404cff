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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promstack/provisioner/pkg/facts"
)

var factsCmd = &cobra.Command{
	Use:   "facts",
	Short: "Print the host facts a provisioning run uses",
	RunE: func(cmd *cobra.Command, args []string) error {
		hostFacts, err := facts.Gather(cmd.Context(), nil)
		if err != nil {
			return fmt.Errorf("failed to gather host facts: %w", err)
		}
		return writeResult(cmd.Context(), hostFacts)
	},
}

func init() {
	rootCmd.AddCommand(factsCmd)
}
