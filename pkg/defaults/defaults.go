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

package defaults

import (
	"io/fs"
	"time"
)

// Daemon identity and filesystem layout defaults.
const (
	// DaemonUser is the system user the daemon runs as.
	DaemonUser = "prometheus"

	// DaemonGroup is the primary group of the daemon user.
	DaemonGroup = "prometheus"

	// BinDir is where the daemon binary is installed.
	BinDir = "/usr/local/bin"

	// SharedDir holds version-independent shared assets.
	SharedDir = "/usr/local/share/prometheus"

	// ConfigDir is the root of the daemon configuration tree.
	ConfigDir = "/etc/prometheus"

	// LocalStoragePath is the daemon time-series storage directory.
	LocalStoragePath = "/var/lib/prometheus"

	// EnvFilePath is the environment file consumed by the service unit.
	EnvFilePath = "/etc/default/prometheus"

	// PackageName is the upstream artifact package name.
	PackageName = "prometheus"

	// ServiceName is the service unit name without the .service suffix.
	ServiceName = "prometheus"

	// DownloadURLBase is the upstream release download base URL.
	DownloadURLBase = "https://github.com/prometheus/prometheus/releases"

	// DownloadExtension is the release archive extension.
	DownloadExtension = "tar.gz"

	// StorageRetention is the default time-series retention window.
	StorageRetention = "360h"
)

// File and directory modes for materialized state.
const (
	// DirMode is the mode for managed directories.
	DirMode fs.FileMode = 0o755

	// FileMode is the mode for managed configuration files.
	FileMode fs.FileMode = 0o644

	// BinMode is the mode for installed binaries.
	BinMode fs.FileMode = 0o755
)

// Executor timeouts for external state convergence.
const (
	// DownloadTimeout is the total timeout for fetching the release artifact.
	DownloadTimeout = 5 * time.Minute

	// ServiceOpTimeout is the timeout for a single service-manager operation
	// (start, restart, reload, enable).
	ServiceOpTimeout = 90 * time.Second

	// StageTimeout bounds a single provisioning stage end to end.
	StageTimeout = 10 * time.Minute

	// FactTimeout bounds host fact collection.
	FactTimeout = 10 * time.Second
)

// HTTP client tuning for artifact downloads.
const (
	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 10 * time.Second

	// DownloadRatePerMinute caps artifact download attempts per minute so a
	// crash-looping caller cannot hammer the release mirror.
	DownloadRatePerMinute = 6
)
