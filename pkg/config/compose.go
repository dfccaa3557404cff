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

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/promstack/provisioner/pkg/spec"
)

// Built-in global defaults applied beneath any operator overrides.
func globalDefaults() map[string]any {
	return map[string]any{
		"scrape_interval":     "15s",
		"evaluation_interval": "15s",
	}
}

// MergedConfig is the fully-composed daemon configuration for one run. It is
// derived from the spec during composition and owned by the run; Render
// produces the exact bytes written to the daemon's configuration file.
type MergedConfig struct {
	// Document is the composed configuration tree.
	Document map[string]any
	// RuleFilePaths is the expanded rule_files list, in declaration order.
	RuleFilePaths []string
}

// Compose builds the merged daemon configuration from the spec: built-in
// global defaults merged beneath operator overrides, rule stems expanded to
// glob paths, and the scrape, remote read/write, and alerting sections passed
// through. Sections with no content are omitted from the document entirely so
// the rendered file stays minimal.
func Compose(s *spec.ProvisioningSpec) (*MergedConfig, error) {
	global, err := Merge(globalDefaults(), s.Config.Global)
	if err != nil {
		return nil, fmt.Errorf("failed to compose global section: %w", err)
	}

	doc := map[string]any{
		"global": global,
	}

	rulePaths := ExpandRulePaths(s.Config.RuleStems, s.Locations.ConfigDir)
	if len(rulePaths) > 0 {
		doc["rule_files"] = rulePaths
	}

	if len(s.Config.ScrapeConfigs) > 0 {
		doc["scrape_configs"] = s.Config.ScrapeConfigs
	}
	if len(s.Config.RemoteRead) > 0 {
		doc["remote_read"] = s.Config.RemoteRead
	}
	if len(s.Config.RemoteWrite) > 0 {
		doc["remote_write"] = s.Config.RemoteWrite
	}

	if alerting := composeAlerting(s); len(alerting) > 0 {
		doc["alerting"] = alerting
	}

	return &MergedConfig{
		Document:      doc,
		RuleFilePaths: rulePaths,
	}, nil
}

// composeAlerting assembles the alerting section from the alertmanager
// targets and relabel configuration. Returns an empty map when neither is
// declared.
func composeAlerting(s *spec.ProvisioningSpec) map[string]any {
	alerting := make(map[string]any)

	if len(s.Config.AlertmanagerTargets) > 0 {
		alerting["alertmanagers"] = []map[string]any{
			{
				"static_configs": []map[string]any{
					{"targets": s.Config.AlertmanagerTargets},
				},
			},
		}
	}

	if len(s.Config.AlertRelabelConfigs) > 0 {
		alerting["alert_relabel_configs"] = s.Config.AlertRelabelConfigs
	}

	return alerting
}

// Render serializes the composed document to YAML. Mapping keys are emitted
// in sorted order, so identical documents always render to identical bytes.
func (c *MergedConfig) Render() ([]byte, error) {
	out, err := yaml.Marshal(c.Document)
	if err != nil {
		return nil, fmt.Errorf("failed to render configuration: %w", err)
	}
	return out, nil
}
