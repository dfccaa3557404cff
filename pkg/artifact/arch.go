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

import "github.com/promstack/provisioner/pkg/errors"

// Canonical artifact architecture tags used in upstream release file names.
const (
	ArchAMD64 = "amd64"
	Arch386   = "386"
)

// ResolveArch maps a raw architecture fact string to the canonical artifact
// architecture tag used in release file names. There is deliberately no
// fallback: an unrecognized architecture means no artifact exists for the
// host, and guessing would produce a download URL that 404s at install time.
func ResolveArch(raw string) (string, error) {
	switch raw {
	case "x86_64", "amd64":
		return ArchAMD64, nil
	case "i386":
		return Arch386, nil
	default:
		return "", errors.Newf(errors.ErrCodeUnsupportedArchitecture,
			"architecture %q has no artifact mapping", raw)
	}
}
