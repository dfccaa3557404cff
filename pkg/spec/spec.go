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

package spec

import (
	"github.com/promstack/provisioner/pkg/artifact"
)

// InstallMethod selects how the daemon binary is installed.
type InstallMethod string

const (
	// InstallMethodURL installs from a downloaded release artifact.
	InstallMethodURL InstallMethod = "url"
	// InstallMethodPackage would install via the system package manager.
	// Only URL-based install is implemented; selecting this surfaces a
	// NOT_IMPLEMENTED error from the install stage.
	InstallMethodPackage InstallMethod = "package"
)

// ServiceEnsure is the desired runtime state of the supervised service.
type ServiceEnsure string

const (
	// ServiceRunning keeps the daemon process running.
	ServiceRunning ServiceEnsure = "running"
	// ServiceStopped keeps the daemon process stopped.
	ServiceStopped ServiceEnsure = "stopped"
)

// Identity describes the system user the daemon runs as.
type Identity struct {
	User        string   `json:"user,omitempty" yaml:"user,omitempty"`
	Group       string   `json:"group,omitempty" yaml:"group,omitempty"`
	ExtraGroups []string `json:"extraGroups,omitempty" yaml:"extraGroups,omitempty"`
}

// Locations holds the filesystem layout for the installation.
type Locations struct {
	// BinDir is where the daemon binary is placed.
	BinDir string `json:"binDir,omitempty" yaml:"binDir,omitempty"`
	// SharedDir holds version-independent shared assets (consoles, libraries).
	SharedDir string `json:"sharedDir,omitempty" yaml:"sharedDir,omitempty"`
	// ConfigDir is the root of the daemon configuration tree. Rule
	// subdirectories live under <ConfigDir>/rules.
	ConfigDir string `json:"configDir,omitempty" yaml:"configDir,omitempty"`
	// LocalStoragePath is the daemon's time-series storage directory.
	// Command-line-affecting: changing it requires a process restart.
	LocalStoragePath string `json:"localStoragePath,omitempty" yaml:"localStoragePath,omitempty"`
	// EnvFilePath is the environment file consumed by the service unit to
	// assemble the daemon command line.
	EnvFilePath string `json:"envFilePath,omitempty" yaml:"envFilePath,omitempty"`
}

// Artifact identifies the binary artifact to install.
type Artifact struct {
	// Version is the daemon release version (major.minor.patch). Required.
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	// OS is the host kernel name fact, lowercased (e.g. "linux"). Supplied by
	// the fact source; required by the time validation runs.
	OS string `json:"os,omitempty" yaml:"os,omitempty"`
	// RawArch is the host CPU architecture fact (e.g. "x86_64"). Supplied by
	// the fact source; required by the time validation runs.
	RawArch string `json:"arch,omitempty" yaml:"arch,omitempty"`
	// InstallMethod selects url or package install. Defaults to url.
	InstallMethod InstallMethod `json:"installMethod,omitempty" yaml:"installMethod,omitempty"`
	// PackageName is the artifact (and system package) name.
	PackageName string `json:"packageName,omitempty" yaml:"packageName,omitempty"`
	// PackageEnsure is the package state when InstallMethod is package.
	PackageEnsure string `json:"packageEnsure,omitempty" yaml:"packageEnsure,omitempty"`
	// Source describes where the artifact is downloaded from.
	Source artifact.Source `json:"source,omitempty" yaml:"source,omitempty"`
}

// Service holds the runtime behavior flags for the supervised daemon.
type Service struct {
	// Name is the service unit name (without the .service suffix).
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Enable controls boot-time enablement. Defaults to true.
	Enable *bool `json:"enable,omitempty" yaml:"enable,omitempty"`
	// Ensure is the desired runtime state. Defaults to running.
	Ensure ServiceEnsure `json:"ensure,omitempty" yaml:"ensure,omitempty"`
	// Manage controls whether the pipeline manages the service at all.
	// Defaults to true.
	Manage *bool `json:"manage,omitempty" yaml:"manage,omitempty"`
	// RestartOnChange wires a restart notification to the service stage when
	// command-line-affecting settings change. When false, such changes apply
	// only on the next natural restart; the daemon may briefly run with stale
	// start-up flags. That is accepted behavior, not a bug. Defaults to true.
	RestartOnChange *bool `json:"restartOnChange,omitempty" yaml:"restartOnChange,omitempty"`
	// InitStyle is the host service-manager style fact (e.g. "systemd").
	InitStyle string `json:"initStyle,omitempty" yaml:"initStyle,omitempty"`
	// PurgeConfigDir removes unmanaged files from the config directory.
	// Defaults to true.
	PurgeConfigDir *bool `json:"purgeConfigDir,omitempty" yaml:"purgeConfigDir,omitempty"`
}

// RuleSet is an opaque alert-rule payload serialized into one rule file.
type RuleSet map[string]any

// Config is the daemon configuration payload.
type Config struct {
	// Global holds operator overrides merged over the built-in global
	// defaults. Key presence, not truthiness, decides precedence.
	Global map[string]any `json:"global,omitempty" yaml:"global,omitempty"`
	// RuleStems are logical rule-group names, each expanded to a
	// per-directory glob path. Order is preserved.
	RuleStems []string `json:"ruleStems,omitempty" yaml:"ruleStems,omitempty"`
	// ScrapeConfigs is the ordered list of scrape configurations.
	ScrapeConfigs []map[string]any `json:"scrapeConfigs,omitempty" yaml:"scrapeConfigs,omitempty"`
	// RemoteRead and RemoteWrite are passed through to the rendered config.
	RemoteRead  []map[string]any `json:"remoteRead,omitempty" yaml:"remoteRead,omitempty"`
	RemoteWrite []map[string]any `json:"remoteWrite,omitempty" yaml:"remoteWrite,omitempty"`
	// AlertFiles maps rule file names to alert-rule sets, each materialized
	// as an independent file under the rules directory.
	AlertFiles map[string]RuleSet `json:"alertFiles,omitempty" yaml:"alertFiles,omitempty"`
	// AlertRelabelConfigs is the alerting relabel configuration.
	AlertRelabelConfigs []map[string]any `json:"alertRelabelConfigs,omitempty" yaml:"alertRelabelConfigs,omitempty"`
	// AlertmanagerTargets are the alertmanager host:port targets.
	AlertmanagerTargets []string `json:"alertmanagers,omitempty" yaml:"alertmanagers,omitempty"`
	// StorageRetention is the time-series retention window passed on the
	// daemon command line. Command-line-affecting.
	StorageRetention string `json:"storageRetention,omitempty" yaml:"storageRetention,omitempty"`
	// ExtraArgs are additional daemon command-line arguments.
	// Command-line-affecting.
	ExtraArgs []string `json:"extraArgs,omitempty" yaml:"extraArgs,omitempty"`
}

// ProvisioningSpec is the fully-resolved set of inputs for one provisioning
// run. It is caller-supplied and treated as an immutable snapshot once
// orchestration begins; all derived entities (resolved artifact, merged
// config, alert artifacts) are owned by the run and discarded afterwards.
type ProvisioningSpec struct {
	Identity  Identity  `json:"identity,omitempty" yaml:"identity,omitempty"`
	Locations Locations `json:"locations,omitempty" yaml:"locations,omitempty"`
	Artifact  Artifact  `json:"artifact,omitempty" yaml:"artifact,omitempty"`
	Service   Service   `json:"service,omitempty" yaml:"service,omitempty"`
	Config    Config    `json:"config,omitempty" yaml:"config,omitempty"`
}

// RestartOnChange resolves the restart-on-change flag with its default.
func (s *ProvisioningSpec) RestartOnChange() bool {
	if s.Service.RestartOnChange == nil {
		return true
	}
	return *s.Service.RestartOnChange
}

// ManageService resolves the manage-service flag with its default.
func (s *ProvisioningSpec) ManageService() bool {
	if s.Service.Manage == nil {
		return true
	}
	return *s.Service.Manage
}

// ServiceEnabled resolves the boot-enablement flag with its default.
func (s *ProvisioningSpec) ServiceEnabled() bool {
	if s.Service.Enable == nil {
		return true
	}
	return *s.Service.Enable
}

// PurgeConfigDir resolves the purge flag with its default.
func (s *ProvisioningSpec) PurgeConfigDir() bool {
	if s.Service.PurgeConfigDir == nil {
		return true
	}
	return *s.Service.PurgeConfigDir
}
