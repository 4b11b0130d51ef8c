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

// Package manifest defines the delivery manifest model and its structural
// validation. A manifest describes one delivery package: an ordered list of
// items, each with a source file, a destination template, and the metadata
// used to render that template.
package manifest

import (
	"fmt"

	"github.com/kolett/kolett/pkg/transfer"
)

// 📦 Item is one deliverable unit within a manifest.
type Item struct {
	// SourcePath is the absolute path to the source file. Existence is
	// checked at transfer time, not here: manifests are often validated
	// before the storage mount is available.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// TargetTemplate produces the destination path, relative to the
	// delivery directory unless it renders to an absolute path.
	TargetTemplate string `json:"target_template" yaml:"target_template"`

	// Metadata is the variable context for TargetTemplate. Values must be
	// scalars (string, number, bool). Keys are item-local.
	Metadata map[string]any `json:"metadata" yaml:"metadata"`

	// ProcessMethod selects the transfer strategy. Empty means "copy".
	ProcessMethod string `json:"process_method,omitempty" yaml:"process_method,omitempty"`
}

// Method returns the effective transfer strategy name.
func (it *Item) Method() string {
	if it.ProcessMethod == "" {
		return transfer.DefaultMethod
	}
	return it.ProcessMethod
}

// 📚 Manifest is the root delivery description. It is constructed once per
// invocation and never mutated after validation.
type Manifest struct {
	// PackageName names the delivery folder and titles the report.
	PackageName string `json:"package_name" yaml:"package_name"`

	// ClientConfig selects downstream formatting/notification behavior.
	// Opaque to the engine, passed through to the report.
	ClientConfig string `json:"client_config" yaml:"client_config"`

	// Items are delivered in order; report order matches.
	Items []Item `json:"items" yaml:"items"`

	// DestinationRoot optionally overrides the configured delivery root.
	DestinationRoot string `json:"destination_root,omitempty" yaml:"destination_root,omitempty"`
}

// 🚫 ValidationError reports a structurally malformed manifest. The run
// aborts before any transfer; nothing is retried.
type ValidationError struct {
	Field  string // dotted path to the offending field
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid manifest: %s: %s", e.Field, e.Reason)
}

// 🔍 Validate checks the manifest structure. It fails fast on the first
// problem: a partially-invalid manifest is never processed.
func (m *Manifest) Validate() error {
	if m.PackageName == "" {
		return &ValidationError{Field: "package_name", Reason: "must be a non-empty string"}
	}
	if m.ClientConfig == "" {
		return &ValidationError{Field: "client_config", Reason: "must be a non-empty string"}
	}
	if len(m.Items) == 0 {
		return &ValidationError{Field: "items", Reason: "must contain at least one item"}
	}
	for i, item := range m.Items {
		field := func(name string) string { return fmt.Sprintf("items[%d].%s", i, name) }
		if item.SourcePath == "" {
			return &ValidationError{Field: field("source_path"), Reason: "must be a non-empty string"}
		}
		if item.TargetTemplate == "" {
			return &ValidationError{Field: field("target_template"), Reason: "must be a non-empty string"}
		}
		if item.ProcessMethod != "" && !transfer.Registered(item.ProcessMethod) {
			return &ValidationError{
				Field:  field("process_method"),
				Reason: fmt.Sprintf("unknown transfer strategy %q", item.ProcessMethod),
			}
		}
		for key, value := range item.Metadata {
			if !isScalar(value) {
				return &ValidationError{
					Field:  field("metadata." + key),
					Reason: fmt.Sprintf("must be a scalar, got %T", value),
				}
			}
		}
	}
	return nil
}

// isScalar accepts the metadata value types both JSON and YAML decoders
// produce for strings, numbers, and booleans.
func isScalar(v any) bool {
	switch v.(type) {
	case string, bool, int, int64, uint64, float64:
		return true
	default:
		return false
	}
}
