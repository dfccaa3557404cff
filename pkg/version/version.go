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

package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/promstack/provisioner/pkg/errors"
)

// Version represents a three-component semantic version number.
// Artifact version comparisons in the provisioning pipeline require full
// major.minor.patch precision; anything less precise is rejected at parse
// time so that downstream comparisons never operate on partial input.
type Version struct {
	Major int `json:"major" yaml:"major"`
	Minor int `json:"minor" yaml:"minor"`
	Patch int `json:"patch" yaml:"patch"`
}

// New creates a Version with the specified major, minor, and patch values.
func New(major, minor, patch int) Version {
	return Version{Major: major, Minor: minor, Patch: patch}
}

// String returns the canonical "major.minor.patch" representation.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Parse parses a version string into a Version struct.
// The input must be a three-component semantic version ("1.2.3"). A leading
// "v" prefix is tolerated and stripped. Anything else fails with an
// INVALID_VERSION_FORMAT structured error: the upstream release URL layout
// depends on full semantic-version precedence, so malformed versions must be
// rejected before any URL is built.
func Parse(s string) (Version, error) {
	if s == "" {
		return Version{}, errors.New(errors.ErrCodeInvalidVersionFormat, "version string is empty")
	}

	s = strings.TrimPrefix(s, "v")

	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, errors.Newf(errors.ErrCodeInvalidVersionFormat,
			"version %q must have exactly 3 components (major.minor.patch)", s)
	}

	var v Version
	for i, part := range parts {
		if part == "" {
			return Version{}, errors.Newf(errors.ErrCodeInvalidVersionFormat,
				"version %q has an empty component", s)
		}
		num, err := strconv.Atoi(part)
		if err != nil {
			return Version{}, errors.Newf(errors.ErrCodeInvalidVersionFormat,
				"version component %q is not numeric", part)
		}
		if num < 0 {
			return Version{}, errors.Newf(errors.ErrCodeInvalidVersionFormat,
				"version component cannot be negative: %d", num)
		}

		switch i {
		case 0:
			v.Major = num
		case 1:
			v.Minor = num
		case 2:
			v.Patch = num
		}
	}

	return v, nil
}

// MustParse parses a version string and panics if parsing fails.
// Only use this for hardcoded strings or in tests. For user input or runtime
// data, always use Parse and handle errors explicitly.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("MustParse: %v", err))
	}
	return v
}

// Compare returns an integer comparing two versions using semantic-version
// precedence: -1 if v < other, 0 if v == other, 1 if v > other.
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		if v.Major < other.Major {
			return -1
		}
		return 1
	}

	if v.Minor != other.Minor {
		if v.Minor < other.Minor {
			return -1
		}
		return 1
	}

	if v.Patch != other.Patch {
		if v.Patch < other.Patch {
			return -1
		}
		return 1
	}

	return 0
}

// EqualsOrNewer returns true if v is equal to or newer than other.
func (v Version) EqualsOrNewer(other Version) bool {
	return v.Compare(other) >= 0
}

// IsNewer returns true if v is strictly newer than other.
func (v Version) IsNewer(other Version) bool {
	return v.Compare(other) > 0
}

// Equals returns true if all components match.
func (v Version) Equals(other Version) bool {
	return v == other
}
