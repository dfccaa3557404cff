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
	"github.com/promstack/provisioner/pkg/errors"
)

// Validate checks that every required parameter is present and that the flag
// combinations are coherent. Required fields have no defaults; their absence
// fails with MISSING_REQUIRED_PARAMETER. Validation runs before any stage
// executes, so a bad spec never produces partial convergence.
func (s *ProvisioningSpec) Validate() error {
	if s.Artifact.Version == "" {
		return errors.New(errors.ErrCodeMissingRequiredParameter, "artifact.version is required")
	}
	if s.Artifact.OS == "" {
		return errors.New(errors.ErrCodeMissingRequiredParameter, "artifact.os is required")
	}
	if s.Artifact.RawArch == "" {
		return errors.New(errors.ErrCodeMissingRequiredParameter, "artifact.arch is required")
	}

	switch s.Artifact.InstallMethod {
	case InstallMethodURL:
		if s.Artifact.Source.ExplicitURL == "" {
			if s.Artifact.Source.URLBase == "" {
				return errors.New(errors.ErrCodeMissingRequiredParameter,
					"artifact.source.urlBase is required when no explicit download URL is set")
			}
			if s.Artifact.Source.PkgName == "" && s.Artifact.PackageName == "" {
				return errors.New(errors.ErrCodeMissingRequiredParameter,
					"artifact.packageName is required when no explicit download URL is set")
			}
			if s.Artifact.Source.Extension == "" {
				return errors.New(errors.ErrCodeMissingRequiredParameter,
					"artifact.source.extension is required when no explicit download URL is set")
			}
		}
	case InstallMethodPackage:
		if s.Artifact.PackageName == "" {
			return errors.New(errors.ErrCodeMissingRequiredParameter,
				"artifact.packageName is required for package install")
		}
	default:
		return errors.Newf(errors.ErrCodeInvalidSpec,
			"unknown install method %q", s.Artifact.InstallMethod)
	}

	switch s.Service.Ensure {
	case ServiceRunning, ServiceStopped, "":
	default:
		return errors.Newf(errors.ErrCodeInvalidSpec,
			"unknown service ensure %q", s.Service.Ensure)
	}

	if s.Locations.ConfigDir == "" {
		return errors.New(errors.ErrCodeMissingRequiredParameter, "locations.configDir is required")
	}
	if s.Locations.BinDir == "" {
		return errors.New(errors.ErrCodeMissingRequiredParameter, "locations.binDir is required")
	}

	return nil
}

// SourcePkgName returns the package name used in URL templating, falling
// back to the artifact package name when the source does not set its own.
func (s *ProvisioningSpec) SourcePkgName() string {
	if s.Artifact.Source.PkgName != "" {
		return s.Artifact.Source.PkgName
	}
	return s.Artifact.PackageName
}
