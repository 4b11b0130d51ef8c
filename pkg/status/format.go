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

// Package status formats delivery progress and per-item outcomes for the
// console.
package status

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/kolett/kolett/pkg/engine"
)

// OutcomeFormatter defines how per-item outcomes should be formatted
type OutcomeFormatter interface {
	// FormatOutcome formats one item outcome as a console line
	FormatOutcome(o engine.Outcome) string

	// FormatSummary formats the run totals
	FormatSummary(c engine.Counts) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultOutcomeFormatter provides a default implementation of OutcomeFormatter
type DefaultOutcomeFormatter struct{}

// NewDefaultOutcomeFormatter creates a new DefaultOutcomeFormatter
func NewDefaultOutcomeFormatter() *DefaultOutcomeFormatter {
	return &DefaultOutcomeFormatter{}
}

// FormatOutcome renders one outcome with a colored status symbol.
func (f *DefaultOutcomeFormatter) FormatOutcome(o engine.Outcome) string {
	name := filepath.Base(o.Source)
	switch o.Status {
	case engine.StatusSucceeded:
		symbol := color.New(color.FgGreen).Sprint("✓")
		return fmt.Sprintf("%s %s -> %s", symbol, name, o.Destination)
	case engine.StatusFailed:
		symbol := color.New(color.FgRed).Sprint("✗")
		return fmt.Sprintf("%s %s: %s", symbol, name, o.Error)
	case engine.StatusSkippedDryRun:
		symbol := color.New(color.FgYellow).Sprint("⏭")
		return fmt.Sprintf("%s %s -> %s (dry run)", symbol, name, o.Destination)
	default:
		return fmt.Sprintf("? %s", name)
	}
}

// FormatSummary renders the totals line, colored by outcome.
func (f *DefaultOutcomeFormatter) FormatSummary(c engine.Counts) string {
	line := fmt.Sprintf("%d items: %d succeeded, %d failed, %d skipped",
		c.Total, c.Succeeded, c.Failed, c.Skipped)
	if c.Failed > 0 {
		return color.New(color.FgRed).Sprint(line)
	}
	return color.New(color.FgGreen).Sprint(line)
}

// FormatError formats an error message
func (f *DefaultOutcomeFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return color.New(color.FgRed).Sprintf("error: %v", err)
}
