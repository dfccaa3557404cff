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
	"fmt"
	"strings"

	"github.com/coreos/go-systemd/v22/dbus"

	"github.com/promstack/provisioner/pkg/defaults"
)

// ServiceManager abstracts the host service manager so tests can substitute
// a fake and so non-systemd hosts can plug in an alternative.
type ServiceManager interface {
	IsActive(ctx context.Context, unit string) (bool, error)
	IsEnabled(ctx context.Context, unit string) (bool, error)
	Start(ctx context.Context, unit string) error
	Stop(ctx context.Context, unit string) error
	Restart(ctx context.Context, unit string) error
	Reload(ctx context.Context, unit string) error
	Enable(ctx context.Context, unit string) error
	Disable(ctx context.Context, unit string) error
	Close()
}

const unitSuffix = ".service"

// unitName appends the .service suffix when the caller passed a bare name.
func unitName(unit string) string {
	if strings.Contains(unit, ".") {
		return unit
	}
	return unit + unitSuffix
}

// SystemdManager converges service state through the systemd D-Bus API.
type SystemdManager struct {
	conn *dbus.Conn
}

// NewSystemdManager connects to the system bus.
func NewSystemdManager(ctx context.Context) (*SystemdManager, error) {
	conn, err := dbus.NewWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to systemd: %w", err)
	}
	return &SystemdManager{conn: conn}, nil
}

// Close releases the D-Bus connection.
func (m *SystemdManager) Close() {
	if m.conn != nil {
		m.conn.Close()
	}
}

// IsActive reports whether the unit is in the active state.
func (m *SystemdManager) IsActive(ctx context.Context, unit string) (bool, error) {
	u := unitName(unit)
	statuses, err := m.conn.ListUnitsByNamesContext(ctx, []string{u})
	if err != nil {
		return false, fmt.Errorf("failed to query unit %s: %w", u, err)
	}
	for _, s := range statuses {
		if s.Name == u {
			return s.ActiveState == "active", nil
		}
	}
	return false, nil
}

// IsEnabled reports whether the unit is enabled at boot.
func (m *SystemdManager) IsEnabled(ctx context.Context, unit string) (bool, error) {
	u := unitName(unit)
	prop, err := m.conn.GetUnitPropertyContext(ctx, u, "UnitFileState")
	if err != nil {
		return false, fmt.Errorf("failed to query unit file state for %s: %w", u, err)
	}

	state, _ := prop.Value.Value().(string)
	switch state {
	case "enabled", "enabled-runtime", "static", "linked":
		return true, nil
	default:
		return false, nil
	}
}

// Start starts the unit and waits for the job to finish.
func (m *SystemdManager) Start(ctx context.Context, unit string) error {
	return m.runJob(ctx, unit, "start", m.conn.StartUnitContext)
}

// Stop stops the unit and waits for the job to finish.
func (m *SystemdManager) Stop(ctx context.Context, unit string) error {
	return m.runJob(ctx, unit, "stop", m.conn.StopUnitContext)
}

// Restart restarts the unit and waits for the job to finish.
func (m *SystemdManager) Restart(ctx context.Context, unit string) error {
	return m.runJob(ctx, unit, "restart", m.conn.RestartUnitContext)
}

// Reload asks the unit to re-read its configuration in place.
func (m *SystemdManager) Reload(ctx context.Context, unit string) error {
	return m.runJob(ctx, unit, "reload", m.conn.ReloadUnitContext)
}

// Enable enables the unit at boot.
func (m *SystemdManager) Enable(ctx context.Context, unit string) error {
	u := unitName(unit)
	if _, _, err := m.conn.EnableUnitFilesContext(ctx, []string{u}, false, true); err != nil {
		return fmt.Errorf("failed to enable unit %s: %w", u, err)
	}
	return nil
}

// Disable disables the unit at boot.
func (m *SystemdManager) Disable(ctx context.Context, unit string) error {
	u := unitName(unit)
	if _, err := m.conn.DisableUnitFilesContext(ctx, []string{u}, false); err != nil {
		return fmt.Errorf("failed to disable unit %s: %w", u, err)
	}
	return nil
}

type jobFunc func(ctx context.Context, name, mode string, ch chan<- string) (int, error)

// runJob submits a unit job and waits for its completion signal.
func (m *SystemdManager) runJob(ctx context.Context, unit, op string, fn jobFunc) error {
	u := unitName(unit)

	ctx, cancel := context.WithTimeout(ctx, defaults.ServiceOpTimeout)
	defer cancel()

	done := make(chan string, 1)
	if _, err := fn(ctx, u, "replace", done); err != nil {
		return fmt.Errorf("failed to %s unit %s: %w", op, u, err)
	}

	select {
	case result := <-done:
		if result != "done" {
			return fmt.Errorf("%s of unit %s finished with result %q", op, u, result)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("timed out waiting for %s of unit %s: %w", op, u, ctx.Err())
	}
}
