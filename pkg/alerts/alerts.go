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

package alerts

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/promstack/provisioner/pkg/errors"
	"github.com/promstack/provisioner/pkg/spec"
)

const ruleFileSuffix = ".rules"

// Artifact is one materialized alert-rule file. Artifacts are independent of
// each other and of the main configuration file; regenerating one never
// touches its siblings.
type Artifact struct {
	// FileName is the normalized on-disk name, always carrying the rule
	// file suffix.
	FileName string
	// Path is the absolute destination path under the rules directory.
	Path string
	// Content is the serialized rule payload.
	Content []byte
}

// Generate materializes the declared alert-rule sets as file artifacts under
// rulesDir. Declared names are normalized for the filesystem (lowercased,
// suffixed with ".rules" when missing); a name carrying a path separator
// fails with INVALID_SPEC since the artifact must land inside the rules
// directory, and two declared names that collide after normalization fail
// with DUPLICATE_ALERT_FILE since they would silently overwrite each other on
// case-insensitive filesystems. Output order is sorted by file name so
// repeated runs produce identical artifact lists.
func Generate(files map[string]spec.RuleSet, rulesDir string) ([]Artifact, error) {
	if len(files) == 0 {
		return nil, nil
	}

	declared := make([]string, 0, len(files))
	for name := range files {
		declared = append(declared, name)
	}
	sort.Strings(declared)

	seen := make(map[string]string, len(declared))
	artifacts := make([]Artifact, 0, len(declared))

	for _, name := range declared {
		if strings.ContainsAny(name, `/\`) {
			return nil, errors.NewWithContext(errors.ErrCodeInvalidSpec,
				"alert file name must not contain path separators",
				map[string]any{"declared": name})
		}

		fileName := normalizeFileName(name)
		if prev, ok := seen[fileName]; ok {
			return nil, errors.NewWithContext(errors.ErrCodeDuplicateAlertFile,
				"alert file names collide after normalization",
				map[string]any{
					"fileName": fileName,
					"declared": []string{prev, name},
				})
		}
		seen[fileName] = name

		content, err := yaml.Marshal(map[string]any(files[name]))
		if err != nil {
			return nil, fmt.Errorf("failed to serialize alert rules %q: %w", name, err)
		}

		artifacts = append(artifacts, Artifact{
			FileName: fileName,
			Path:     rulesDir + "/" + fileName,
			Content:  content,
		})
	}

	return artifacts, nil
}

// normalizeFileName lowercases the declared name and appends the rule file
// suffix when absent.
func normalizeFileName(name string) string {
	fileName := strings.ToLower(name)
	if !strings.HasSuffix(fileName, ruleFileSuffix) {
		fileName += ruleFileSuffix
	}
	return fileName
}
