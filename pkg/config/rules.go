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

package config

import "fmt"

// ExpandRulePaths turns logical rule-group stems into per-directory glob
// paths under the configuration tree:
//
//	<configDir>/rules/<stem>/*.rules
//
// Input order is preserved so the rendered rule_files list is stable across
// runs. Stems are used verbatim; an empty input yields an empty (non-nil)
// slice.
func ExpandRulePaths(stems []string, configDir string) []string {
	paths := make([]string, 0, len(stems))
	for _, stem := range stems {
		paths = append(paths, fmt.Sprintf("%s/rules/%s/*.rules", configDir, stem))
	}
	return paths
}
