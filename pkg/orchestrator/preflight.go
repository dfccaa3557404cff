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

package orchestrator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/promstack/provisioner/pkg/alerts"
	"github.com/promstack/provisioner/pkg/artifact"
	"github.com/promstack/provisioner/pkg/config"
	"github.com/promstack/provisioner/pkg/executor"
	"github.com/promstack/provisioner/pkg/spec"
	"github.com/promstack/provisioner/pkg/version"
)

// ConfigFileName is the rendered daemon configuration file name under the
// configuration directory.
const ConfigFileName = "prometheus.yaml"

// Materialized holds every artifact a run will apply, fully resolved before
// the first stage touches the host. Pre-flight failure means nothing below
// executes, so a bad spec never leaves partial convergence behind.
type Materialized struct {
	// Arch is the normalized artifact architecture tag.
	Arch string
	// URL is the resolved artifact download URL.
	URL string
	// Install is the install request derived from the artifact identity.
	Install executor.InstallRequest
	// ConfigPath and ConfigBytes are the rendered daemon configuration.
	ConfigPath  string
	ConfigBytes []byte
	// RulesDir is the root of the rule tree; RuleDirs are the per-stem
	// directories the expanded glob paths point into.
	RulesDir string
	RuleDirs []string
	// AlertArtifacts are the independent alert-rule files.
	AlertArtifacts []alerts.Artifact
	// EnvFilePath and EnvFileBytes are the rendered environment file that
	// assembles the daemon command line.
	EnvFilePath  string
	EnvFileBytes []byte
	// Service is the desired service state.
	Service executor.ServiceRequest
}

// Preflight validates the spec and resolves every run artifact: architecture
// and download URL, composed configuration, alert files, and the env file.
// It performs no I/O.
func Preflight(s *spec.ProvisioningSpec) (*Materialized, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	src := s.Artifact.Source
	src.PkgName = s.SourcePkgName()

	resolved, err := artifact.Resolve(s.Artifact.Version, s.Artifact.OS, s.Artifact.RawArch, src)
	if err != nil {
		return nil, err
	}

	// canonical version string for directory naming, "v" prefix stripped;
	// with an explicit URL the declared version is not required to parse
	verStr := s.Artifact.Version
	if v, parseErr := version.Parse(verStr); parseErr == nil {
		verStr = v.String()
	}

	merged, err := config.Compose(s)
	if err != nil {
		return nil, err
	}
	configBytes, err := merged.Render()
	if err != nil {
		return nil, err
	}

	rulesDir := filepath.Join(s.Locations.ConfigDir, "rules")
	ruleDirs := make([]string, 0, len(s.Config.RuleStems))
	for _, stem := range s.Config.RuleStems {
		ruleDirs = append(ruleDirs, filepath.Join(rulesDir, stem))
	}

	alertArtifacts, err := alerts.Generate(s.Config.AlertFiles, rulesDir)
	if err != nil {
		return nil, err
	}

	pkgDirName := fmt.Sprintf("%s-%s.%s-%s",
		s.SourcePkgName(), verStr, s.Artifact.OS, resolved.Arch)

	configPath := filepath.Join(s.Locations.ConfigDir, ConfigFileName)

	return &Materialized{
		Arch: resolved.Arch,
		URL:  resolved.URL,
		Install: executor.InstallRequest{
			Method:     s.Artifact.InstallMethod,
			URL:        resolved.URL,
			PkgDirName: pkgDirName,
			SharedRoot: s.Locations.SharedDir,
			BinDir:     s.Locations.BinDir,
			BinaryName: s.SourcePkgName(),
		},
		ConfigPath:     configPath,
		ConfigBytes:    configBytes,
		RulesDir:       rulesDir,
		RuleDirs:       ruleDirs,
		AlertArtifacts: alertArtifacts,
		EnvFilePath:    s.Locations.EnvFilePath,
		EnvFileBytes:   renderEnvFile(s, configPath),
		Service: executor.ServiceRequest{
			Unit:   s.Service.Name,
			Ensure: s.Service.Ensure,
			Enable: s.ServiceEnabled(),
		},
	}, nil
}

// renderEnvFile produces the environment file the service unit sources to
// assemble the daemon command line. Everything here is
// command-line-affecting: a change to this file only takes effect on process
// restart.
func renderEnvFile(s *spec.ProvisioningSpec, configPath string) []byte {
	args := []string{
		"--config.file=" + configPath,
		"--storage.tsdb.path=" + s.Locations.LocalStoragePath,
		"--storage.tsdb.retention.time=" + s.Config.StorageRetention,
	}
	args = append(args, s.Config.ExtraArgs...)

	var b strings.Builder
	b.WriteString("# Managed by promprov. Manual edits will be overwritten.\n")
	b.WriteString("PROMETHEUS_OPTS='")
	b.WriteString(strings.Join(args, " "))
	b.WriteString("'\n")
	return []byte(b.String())
}
