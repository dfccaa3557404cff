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

package artifact

import (
	"fmt"

	"github.com/promstack/provisioner/pkg/version"
)

// taggingBoundary is the release at which the upstream project switched to
// "v"-prefixed tags in its download path. The prefix applies to the path
// segment only, never to the file name.
var taggingBoundary = version.New(1, 0, 0)

// Source describes where the daemon binary artifact comes from. Exactly one
// of ExplicitURL or the template parts (URLBase, PkgName, Extension) is used:
// a non-empty ExplicitURL always wins and is returned verbatim without
// validation.
type Source struct {
	// ExplicitURL, when set, short-circuits URL templating entirely.
	ExplicitURL string `json:"downloadUrl,omitempty" yaml:"downloadUrl,omitempty"`

	// URLBase is the release download base URL, e.g.
	// "https://github.com/prometheus/prometheus/releases". Callers must supply
	// a well-formed base URL without a trailing slash; no normalization is
	// attempted here.
	URLBase string `json:"urlBase,omitempty" yaml:"urlBase,omitempty"`

	// PkgName is the artifact package name, e.g. "prometheus".
	PkgName string `json:"pkgName,omitempty" yaml:"pkgName,omitempty"`

	// Extension is the archive extension, e.g. "tar.gz".
	Extension string `json:"extension,omitempty" yaml:"extension,omitempty"`
}

// Resolved is the immutable result of artifact resolution for one
// provisioning run: the canonical architecture tag and the final download
// URL. It is computed once per run and never mutated.
type Resolved struct {
	Arch string `json:"arch" yaml:"arch"`
	URL  string `json:"url" yaml:"url"`
}

// ResolveURL produces the exact artifact download URL for the given version,
// OS, and canonical architecture.
//
// When no explicit URL is supplied, the version is compared against the
// 1.0.0 tagging boundary using full semantic-version precedence:
//
//	< 1.0.0:  <base>/download/<ver>/<pkg>-<ver>.<os>-<arch>.<ext>
//	>= 1.0.0: <base>/download/v<ver>/<pkg>-<ver>.<os>-<arch>.<ext>
//
// Malformed versions fail with INVALID_VERSION_FORMAT before any URL is
// built.
func ResolveURL(ver, os, arch string, src Source) (string, error) {
	if src.ExplicitURL != "" {
		return src.ExplicitURL, nil
	}

	v, err := version.Parse(ver)
	if err != nil {
		return "", err
	}

	tag := v.String()
	if v.EqualsOrNewer(taggingBoundary) {
		tag = "v" + tag
	}

	return fmt.Sprintf("%s/download/%s/%s-%s.%s-%s.%s",
		src.URLBase, tag, src.PkgName, v.String(), os, arch, src.Extension), nil
}

// Resolve performs the full artifact resolution: architecture normalization
// followed by URL templating. The result is safe to treat as an immutable
// snapshot for the remainder of the run.
func Resolve(ver, os, rawArch string, src Source) (*Resolved, error) {
	arch, err := ResolveArch(rawArch)
	if err != nil {
		return nil, err
	}

	u, err := ResolveURL(ver, os, arch, src)
	if err != nil {
		return nil, err
	}

	return &Resolved{Arch: arch, URL: u}, nil
}
