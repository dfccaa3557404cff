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

package executor

import (
	"context"
	"os"

	"github.com/promstack/provisioner/pkg/spec"
)

// InstallRequest describes one artifact installation.
type InstallRequest struct {
	// Method selects url or package install.
	Method spec.InstallMethod
	// URL is the resolved artifact download URL (url install only).
	URL string
	// PkgDirName is the directory name the artifact unpacks to
	// (e.g. "prometheus-2.53.1.linux-amd64").
	PkgDirName string
	// SharedRoot is where versioned artifact trees are unpacked.
	SharedRoot string
	// BinDir is where the binary symlink is maintained.
	BinDir string
	// BinaryName is the daemon binary name inside the unpacked tree.
	BinaryName string
}

// ServiceRequest describes the desired service state.
type ServiceRequest struct {
	// Unit is the service unit name without the .service suffix.
	Unit string
	// Ensure is the desired runtime state.
	Ensure spec.ServiceEnsure
	// Enable controls boot-time enablement.
	Enable bool
}

// Executor applies desired state to a host. Every Ensure operation is
// idempotent: it reports true only when it had to change the host to reach
// the desired state, so a converged host yields a run with no change signals.
type Executor interface {
	// EnsureDirectory creates the directory path when missing.
	EnsureDirectory(ctx context.Context, path string, mode os.FileMode) (bool, error)

	// EnsureFile writes content to path unless the file already holds
	// exactly that content.
	EnsureFile(ctx context.Context, path string, content []byte, mode os.FileMode) (bool, error)

	// InstallArtifact converges the installed daemon binary to the
	// requested version.
	InstallArtifact(ctx context.Context, req InstallRequest) (bool, error)

	// PurgeUnmanaged removes files in dir whose names are not in keep.
	// Subdirectories are left alone.
	PurgeUnmanaged(ctx context.Context, dir string, keep []string) (bool, error)

	// EnsureService converges the service runtime state and boot enablement.
	EnsureService(ctx context.Context, req ServiceRequest) (bool, error)

	// RestartService restarts the unit so command-line changes take effect.
	RestartService(ctx context.Context, unit string) error

	// ReloadService asks the unit to re-read its configuration in place.
	ReloadService(ctx context.Context, unit string) error
}
