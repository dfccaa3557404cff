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

	"github.com/coreos/go-systemd/v22/util"
)

// Known init styles.
const (
	InitSystemd = "systemd"
	InitUnknown = "unknown"
)

// InitCollector detects the host's service-manager style.
type InitCollector struct{}

// Collect reports systemd when the host is booted with it, unknown otherwise.
func (c *InitCollector) Collect(ctx context.Context, f *HostFacts) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if util.IsRunningSystemd() {
		f.InitStyle = InitSystemd
	} else {
		f.InitStyle = InitUnknown
	}
	return nil
}
