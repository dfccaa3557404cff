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

package facts

import (
	"context"
	"fmt"
	"os"
	"runtime"
)

// PlatformCollector reports the OS, machine architecture, and hostname.
type PlatformCollector struct{}

// Collect fills the platform facts. The architecture is the raw kernel
// value where the platform exposes one, falling back to the Go runtime
// identifier elsewhere.
func (c *PlatformCollector) Collect(ctx context.Context, f *HostFacts) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f.OS = runtime.GOOS

	arch, err := machineArch()
	if err != nil {
		return fmt.Errorf("failed to read machine architecture: %w", err)
	}
	f.Arch = arch

	hostname, err := os.Hostname()
	if err != nil {
		return fmt.Errorf("failed to read hostname: %w", err)
	}
	f.Hostname = hostname

	return nil
}
