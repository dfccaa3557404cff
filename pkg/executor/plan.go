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
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/promstack/provisioner/pkg/errors"
	"github.com/promstack/provisioner/pkg/spec"
)

// Directive is one recorded action from a planning run.
type Directive struct {
	// Action names the operation (e.g. "ensure-file", "restart-service").
	Action string `json:"action" yaml:"action"`
	// Target is the file path or unit the action applies to.
	Target string `json:"target" yaml:"target"`
	// Changed reports whether applying the action would modify the host,
	// as far as read-only inspection can tell.
	Changed bool `json:"changed" yaml:"changed"`
	// Detail carries extra human-oriented context.
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// PlanExecutor inspects the host read-only and records what an apply run
// would do. The filesystem checks are real; service-state checks require a
// ServiceManager and otherwise assume the service is converged.
type PlanExecutor struct {
	// Services, when set, is used for read-only service-state checks.
	Services ServiceManager

	Directives []Directive
}

// NewPlanExecutor creates a plan executor with no service manager.
func NewPlanExecutor() *PlanExecutor {
	return &PlanExecutor{}
}

func (p *PlanExecutor) record(action, target string, changed bool, detail string) bool {
	p.Directives = append(p.Directives, Directive{
		Action:  action,
		Target:  target,
		Changed: changed,
		Detail:  detail,
	})
	return changed
}

// EnsureDirectory records whether the directory would be created.
func (p *PlanExecutor) EnsureDirectory(ctx context.Context, path string, mode os.FileMode) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return p.record("ensure-directory", path, false, ""), nil
	case err == nil:
		return false, fmt.Errorf("path %s exists and is not a directory", path)
	case !os.IsNotExist(err):
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return p.record("ensure-directory", path, true, "would create"), nil
}

// EnsureFile records whether the file content would change.
func (p *PlanExecutor) EnsureFile(ctx context.Context, path string, content []byte, mode os.FileMode) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	existing, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(existing, content):
		return p.record("ensure-file", path, false, ""), nil
	case err == nil:
		return p.record("ensure-file", path, true, "content differs"), nil
	case os.IsNotExist(err):
		return p.record("ensure-file", path, true, "would create"), nil
	default:
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
}

// InstallArtifact records whether the binary symlink would move.
func (p *PlanExecutor) InstallArtifact(ctx context.Context, req InstallRequest) (bool, error) {
	if req.Method == spec.InstallMethodPackage {
		return false, errors.New(errors.ErrCodeNotImplemented,
			"package-manager based install is not implemented, use the url install method")
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	binaryTarget := filepath.Join(req.SharedRoot, req.PkgDirName, req.BinaryName)
	link := filepath.Join(req.BinDir, req.BinaryName)

	if current, err := os.Readlink(link); err == nil && current == binaryTarget {
		if _, err := os.Stat(binaryTarget); err == nil {
			return p.record("install-artifact", link, false, ""), nil
		}
	}
	return p.record("install-artifact", link, true, "would install "+req.PkgDirName), nil
}

// PurgeUnmanaged records which unmanaged files would be removed.
func (p *PlanExecutor) PurgeUnmanaged(ctx context.Context, dir string, keep []string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return p.record("purge-unmanaged", dir, false, ""), nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	managed := make(map[string]struct{}, len(keep))
	for _, name := range keep {
		managed[name] = struct{}{}
	}

	changed := false
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := managed[entry.Name()]; ok {
			continue
		}
		p.record("purge-unmanaged", filepath.Join(dir, entry.Name()), true, "would remove")
		changed = true
	}
	if !changed {
		p.record("purge-unmanaged", dir, false, "")
	}
	return changed, nil
}

// EnsureService records the desired service state. Without a service
// manager the current state is unknown and the service is assumed converged.
func (p *PlanExecutor) EnsureService(ctx context.Context, req ServiceRequest) (bool, error) {
	detail := fmt.Sprintf("ensure=%s enable=%t", req.Ensure, req.Enable)

	if p.Services == nil {
		return p.record("ensure-service", req.Unit, false, detail), nil
	}

	active, err := p.Services.IsActive(ctx, req.Unit)
	if err != nil {
		return false, err
	}
	enabled, err := p.Services.IsEnabled(ctx, req.Unit)
	if err != nil {
		return false, err
	}

	wantActive := req.Ensure == spec.ServiceRunning
	changed := active != wantActive || enabled != req.Enable
	return p.record("ensure-service", req.Unit, changed, detail), nil
}

// RestartService records the restart that an apply run would issue.
func (p *PlanExecutor) RestartService(ctx context.Context, unit string) error {
	p.record("restart-service", unit, true, "")
	return nil
}

// ReloadService records the reload that an apply run would issue.
func (p *PlanExecutor) ReloadService(ctx context.Context, unit string) error {
	p.record("reload-service", unit, true, "")
	return nil
}
