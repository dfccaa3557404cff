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

package config

import (
	"github.com/promstack/provisioner/pkg/errors"
	"github.com/promstack/provisioner/pkg/spec"
)

// Merge produces a new mapping combining base and overrides. Keys present in
// overrides win, decided by key presence alone: an override value of false,
// zero, or nil still replaces the base value. When both sides hold a mapping
// for the same key the two merge recursively; on any other conflict the
// override value replaces the base value wholesale, including a scalar or
// sequence replacing a whole subtree. Only non-mapping top-level inputs fail,
// with MERGE_TYPE_ERROR. Neither input is mutated.
func Merge(base, overrides any) (map[string]any, error) {
	bm, ok := asMap(base)
	if !ok {
		return nil, errors.NewWithContext(errors.ErrCodeMergeType,
			"top-level defaults value is not a mapping",
			map[string]any{"type": typeName(base)})
	}
	om, ok := asMap(overrides)
	if !ok {
		return nil, errors.NewWithContext(errors.ErrCodeMergeType,
			"top-level overrides value is not a mapping",
			map[string]any{"type": typeName(overrides)})
	}
	return deepMerge(bm, om), nil
}

func deepMerge(base, overrides map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}

	for k, ov := range overrides {
		if bv, exists := out[k]; exists {
			if bm, baseIsMap := asMap(bv); baseIsMap {
				if om, overrideIsMap := asMap(ov); overrideIsMap {
					out[k] = deepMerge(bm, om)
					continue
				}
			}
		}
		out[k] = ov
	}

	return out
}

// asMap normalizes the mapping shapes that YAML decoding and the spec types
// can produce.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case spec.RuleSet:
		return m, true
	default:
		return nil, false
	}
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	if _, ok := asMap(v); ok {
		return "mapping"
	}
	return "scalar or sequence"
}
