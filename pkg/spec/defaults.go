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

import "github.com/promstack/provisioner/pkg/defaults"

// ApplyDefaults fills optional fields with their documented defaults.
// Required fields (artifact version, OS, architecture) are never defaulted;
// their absence is caught by Validate. The method mutates the spec in place
// and is safe to call more than once.
func (s *ProvisioningSpec) ApplyDefaults() {
	if s.Identity.User == "" {
		s.Identity.User = defaults.DaemonUser
	}
	if s.Identity.Group == "" {
		s.Identity.Group = defaults.DaemonGroup
	}

	if s.Locations.BinDir == "" {
		s.Locations.BinDir = defaults.BinDir
	}
	if s.Locations.SharedDir == "" {
		s.Locations.SharedDir = defaults.SharedDir
	}
	if s.Locations.ConfigDir == "" {
		s.Locations.ConfigDir = defaults.ConfigDir
	}
	if s.Locations.LocalStoragePath == "" {
		s.Locations.LocalStoragePath = defaults.LocalStoragePath
	}
	if s.Locations.EnvFilePath == "" {
		s.Locations.EnvFilePath = defaults.EnvFilePath
	}

	if s.Artifact.InstallMethod == "" {
		s.Artifact.InstallMethod = InstallMethodURL
	}
	if s.Artifact.PackageName == "" {
		s.Artifact.PackageName = defaults.PackageName
	}
	if s.Artifact.Source.URLBase == "" && s.Artifact.Source.ExplicitURL == "" {
		s.Artifact.Source.URLBase = defaults.DownloadURLBase
	}
	if s.Artifact.Source.Extension == "" {
		s.Artifact.Source.Extension = defaults.DownloadExtension
	}

	if s.Service.Name == "" {
		s.Service.Name = defaults.ServiceName
	}
	if s.Service.Ensure == "" {
		s.Service.Ensure = ServiceRunning
	}
	if s.Config.StorageRetention == "" {
		s.Config.StorageRetention = defaults.StorageRetention
	}
}
