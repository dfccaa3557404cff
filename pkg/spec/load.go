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
	"fmt"

	"github.com/promstack/provisioner/pkg/serializer"
)

// Load reads a provisioning spec from a YAML or JSON file and applies the
// documented defaults. Validation is deliberately left to the caller: host
// facts (OS, architecture, init style) are merged in after loading, and
// required-field checks must run against the completed spec.
func Load(path string) (*ProvisioningSpec, error) {
	s, err := serializer.FromFile[ProvisioningSpec](path)
	if err != nil {
		return nil, fmt.Errorf("failed to load provisioning spec: %w", err)
	}

	s.ApplyDefaults()
	return s, nil
}
