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
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/promstack/provisioner/pkg/defaults"
	"github.com/promstack/provisioner/pkg/spec"
)

// HostFacts holds the host properties a provisioning run depends on.
type HostFacts struct {
	// OS is the lowercased kernel name (e.g. "linux").
	OS string `json:"os" yaml:"os"`
	// Arch is the raw machine architecture as reported by the kernel
	// (e.g. "x86_64"), not the normalized artifact tag.
	Arch string `json:"arch" yaml:"arch"`
	// Hostname is the host's reported name.
	Hostname string `json:"hostname" yaml:"hostname"`
	// InitStyle names the detected service manager (e.g. "systemd").
	InitStyle string `json:"initStyle" yaml:"initStyle"`
}

// Collector gathers one group of host facts into f.
type Collector interface {
	Collect(ctx context.Context, f *HostFacts) error
}

// Factory creates collectors with their dependencies.
// The interface enables dependency injection for testing.
type Factory interface {
	CreatePlatformCollector() Collector
	CreateInitCollector() Collector
}

// DefaultFactory creates collectors reading from the live host.
type DefaultFactory struct{}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory() *DefaultFactory {
	return &DefaultFactory{}
}

// CreatePlatformCollector creates the OS and architecture collector.
func (f *DefaultFactory) CreatePlatformCollector() Collector {
	return &PlatformCollector{}
}

// CreateInitCollector creates the service-manager detection collector.
func (f *DefaultFactory) CreateInitCollector() Collector {
	return &InitCollector{}
}

// Gather runs all fact collectors in parallel and returns the combined host
// facts. A nil factory uses the default live-host collectors. Any collector
// failure fails the whole gather.
func Gather(ctx context.Context, factory Factory) (*HostFacts, error) {
	if factory == nil {
		factory = NewDefaultFactory()
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.FactTimeout)
	defer cancel()

	facts := &HostFacts{}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var partial HostFacts
		if err := factory.CreatePlatformCollector().Collect(gctx, &partial); err != nil {
			return fmt.Errorf("failed to collect platform facts: %w", err)
		}
		mu.Lock()
		facts.OS = partial.OS
		facts.Arch = partial.Arch
		facts.Hostname = partial.Hostname
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		var partial HostFacts
		if err := factory.CreateInitCollector().Collect(gctx, &partial); err != nil {
			return fmt.Errorf("failed to collect init facts: %w", err)
		}
		mu.Lock()
		facts.InitStyle = partial.InitStyle
		mu.Unlock()
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("host facts gathered",
		"os", facts.OS,
		"arch", facts.Arch,
		"initStyle", facts.InitStyle,
	)

	return facts, nil
}

// ApplyTo fills the fact-derived spec fields that the operator left empty.
// Operator-declared values always win over detected facts.
func (f *HostFacts) ApplyTo(s *spec.ProvisioningSpec) {
	if s.Artifact.OS == "" {
		s.Artifact.OS = f.OS
	}
	if s.Artifact.RawArch == "" {
		s.Artifact.RawArch = f.Arch
	}
	if s.Service.InitStyle == "" {
		s.Service.InitStyle = f.InitStyle
	}
}
