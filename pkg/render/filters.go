// Copyright 2026 the kolett authors
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

package render

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// builtinFilters is the default filter table. Path filters operate on the
// string form of the value, so numeric metadata pipes through cleanly.
func builtinFilters() template.FuncMap {
	return template.FuncMap{
		"upper": func(v any) string { return strings.ToUpper(asString(v)) },
		"lower": func(v any) string { return strings.ToLower(asString(v)) },
		"title": func(v any) string { return cases.Title(language.Und).String(asString(v)) },
		"trim":  func(v any) string { return strings.TrimSpace(asString(v)) },
		// pad zero-pads the value to the given width, for frame numbers
		// and version counters.
		"pad": func(width int, v any) string {
			s := asString(v)
			for len(s) < width {
				s = "0" + s
			}
			return s
		},
		"replace": func(old, new string, v any) string {
			return strings.ReplaceAll(asString(v), old, new)
		},
		// default substitutes for empty values only; a key missing from the
		// context is always an error, never an empty substitution.
		"default": func(def, v any) any {
			if v == nil || asString(v) == "" {
				return def
			}
			return v
		},
		"basename": func(v any) string { return filepath.Base(asString(v)) },
		"dirname":  func(v any) string { return filepath.Dir(asString(v)) },
		"stem": func(v any) string {
			base := filepath.Base(asString(v))
			return strings.TrimSuffix(base, filepath.Ext(base))
		},
		"ext": func(v any) string { return filepath.Ext(asString(v)) },
	}
}

// asString renders a scalar the way text/template would print it.
func asString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
