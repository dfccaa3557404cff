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
	"log/slog"
	"os"
	"path/filepath"

	"github.com/promstack/provisioner/pkg/defaults"
	"github.com/promstack/provisioner/pkg/errors"
	"github.com/promstack/provisioner/pkg/spec"
)

// LocalExecutor converges the local host: filesystem state directly,
// artifact installs over HTTP, and service state through the service
// manager.
type LocalExecutor struct {
	// Downloader fetches release artifacts. Nil uses the default.
	Downloader *Downloader
	// Services converges service state. Nil connects to systemd on first use.
	Services ServiceManager
}

// NewLocalExecutor creates a local executor with default dependencies.
// The service-manager connection is established lazily.
func NewLocalExecutor() *LocalExecutor {
	return &LocalExecutor{
		Downloader: NewDownloader(),
	}
}

// EnsureDirectory creates path when missing. An existing non-directory at
// path is an error rather than something to silently replace.
func (e *LocalExecutor) EnsureDirectory(ctx context.Context, path string, mode os.FileMode) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return false, nil
	case err == nil:
		return false, fmt.Errorf("path %s exists and is not a directory", path)
	case !os.IsNotExist(err):
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := os.MkdirAll(path, mode); err != nil {
		return false, fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	slog.Debug("directory created", "path", path)
	return true, nil
}

// EnsureFile writes content to path unless the file already holds exactly
// that content. Writes go through a temp file and rename so readers never
// observe a partial file.
func (e *LocalExecutor) EnsureFile(ctx context.Context, path string, content []byte, mode os.FileMode) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, content) {
		return false, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return false, fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	_, writeErr := tmp.Write(content)
	if closeErr := tmp.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr == nil {
		writeErr = os.Chmod(tmpName, mode)
	}
	if writeErr == nil {
		writeErr = os.Rename(tmpName, path)
	}
	if writeErr != nil {
		if rmErr := os.Remove(tmpName); rmErr != nil && !os.IsNotExist(rmErr) {
			slog.Warn("failed to clean up temp file", "path", tmpName, "error", rmErr)
		}
		return false, fmt.Errorf("failed to write %s: %w", path, writeErr)
	}

	slog.Debug("file written", "path", path, "bytes", len(content))
	return true, nil
}

// InstallArtifact converges the installed binary to the requested version.
// The archive unpacks into a versioned tree under SharedRoot and the binary
// is exposed through a symlink in BinDir, so convergence reduces to checking
// the symlink target. Package-manager installs are not implemented.
func (e *LocalExecutor) InstallArtifact(ctx context.Context, req InstallRequest) (bool, error) {
	if req.Method == spec.InstallMethodPackage {
		return false, errors.New(errors.ErrCodeNotImplemented,
			"package-manager based install is not implemented, use the url install method")
	}

	versionedDir := filepath.Join(req.SharedRoot, req.PkgDirName)
	binaryTarget := filepath.Join(versionedDir, req.BinaryName)
	link := filepath.Join(req.BinDir, req.BinaryName)

	if current, err := os.Readlink(link); err == nil && current == binaryTarget {
		if _, err := os.Stat(binaryTarget); err == nil {
			return false, nil
		}
	}

	if _, err := e.EnsureDirectory(ctx, req.SharedRoot, defaults.DirMode); err != nil {
		return false, err
	}

	if _, err := os.Stat(binaryTarget); err != nil {
		if err := e.downloadAndUnpack(ctx, req); err != nil {
			return false, err
		}
	}

	if _, err := os.Stat(binaryTarget); err != nil {
		return false, fmt.Errorf("archive did not contain expected binary %s: %w", binaryTarget, err)
	}
	if err := os.Chmod(binaryTarget, defaults.BinMode); err != nil {
		return false, fmt.Errorf("failed to set binary mode: %w", err)
	}

	if err := replaceSymlink(binaryTarget, link); err != nil {
		return false, err
	}

	slog.Info("artifact installed", "binary", link, "target", binaryTarget)
	return true, nil
}

func (e *LocalExecutor) downloadAndUnpack(ctx context.Context, req InstallRequest) error {
	if e.Downloader == nil {
		e.Downloader = NewDownloader()
	}

	tmp, err := os.CreateTemp("", "promprov-artifact-*.tar.gz")
	if err != nil {
		return fmt.Errorf("failed to create download temp file: %w", err)
	}
	tmpName := tmp.Name()
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close download temp file: %w", err)
	}
	defer func() {
		if rmErr := os.Remove(tmpName); rmErr != nil && !os.IsNotExist(rmErr) {
			slog.Warn("failed to remove downloaded archive", "path", tmpName, "error", rmErr)
		}
	}()

	if err := e.Downloader.Fetch(ctx, req.URL, tmpName); err != nil {
		return err
	}

	if err := extractTarGz(tmpName, req.SharedRoot); err != nil {
		return fmt.Errorf("failed to unpack artifact: %w", err)
	}
	return nil
}

// replaceSymlink points link at target atomically via a temp link + rename.
func replaceSymlink(target, link string) error {
	tmpLink := link + ".tmp"
	if err := os.Remove(tmpLink); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove stale temp link: %w", err)
	}
	if err := os.Symlink(target, tmpLink); err != nil {
		return fmt.Errorf("failed to create symlink: %w", err)
	}
	if err := os.Rename(tmpLink, link); err != nil {
		return fmt.Errorf("failed to activate symlink %s: %w", link, err)
	}
	return nil
}

// PurgeUnmanaged removes regular files in dir whose names are not in keep.
// Subdirectories (the rules tree among them) are left alone. A missing dir
// is already converged.
func (e *LocalExecutor) PurgeUnmanaged(ctx context.Context, dir string, keep []string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return false, nil
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
		path := filepath.Join(dir, entry.Name())
		if err := os.Remove(path); err != nil {
			return changed, fmt.Errorf("failed to remove unmanaged file %s: %w", path, err)
		}
		slog.Info("removed unmanaged file", "path", path)
		changed = true
	}

	return changed, nil
}

// EnsureService converges the unit's runtime state and boot enablement.
func (e *LocalExecutor) EnsureService(ctx context.Context, req ServiceRequest) (bool, error) {
	mgr, err := e.serviceManager(ctx)
	if err != nil {
		return false, err
	}

	changed := false

	enabled, err := mgr.IsEnabled(ctx, req.Unit)
	if err != nil {
		return false, err
	}
	if enabled != req.Enable {
		if req.Enable {
			err = mgr.Enable(ctx, req.Unit)
		} else {
			err = mgr.Disable(ctx, req.Unit)
		}
		if err != nil {
			return changed, err
		}
		changed = true
	}

	active, err := mgr.IsActive(ctx, req.Unit)
	if err != nil {
		return changed, err
	}

	switch req.Ensure {
	case spec.ServiceRunning:
		if !active {
			if err := mgr.Start(ctx, req.Unit); err != nil {
				return changed, err
			}
			changed = true
		}
	case spec.ServiceStopped:
		if active {
			if err := mgr.Stop(ctx, req.Unit); err != nil {
				return changed, err
			}
			changed = true
		}
	}

	return changed, nil
}

// RestartService restarts the unit.
func (e *LocalExecutor) RestartService(ctx context.Context, unit string) error {
	mgr, err := e.serviceManager(ctx)
	if err != nil {
		return err
	}
	return mgr.Restart(ctx, unit)
}

// ReloadService asks the unit to re-read its configuration in place.
func (e *LocalExecutor) ReloadService(ctx context.Context, unit string) error {
	mgr, err := e.serviceManager(ctx)
	if err != nil {
		return err
	}
	return mgr.Reload(ctx, unit)
}

func (e *LocalExecutor) serviceManager(ctx context.Context) (ServiceManager, error) {
	if e.Services != nil {
		return e.Services, nil
	}
	mgr, err := NewSystemdManager(ctx)
	if err != nil {
		return nil, err
	}
	e.Services = mgr
	return mgr, nil
}

// Close releases the service-manager connection if one was established.
func (e *LocalExecutor) Close() {
	if e.Services != nil {
		e.Services.Close()
	}
}
