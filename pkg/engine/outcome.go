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

package engine

import (
	"encoding/json"
	"fmt"
	"time"
)

// 📊 Status is the final state of one item's transfer attempt.
type Status int

const (
	StatusUnknown Status = iota
	StatusSucceeded
	StatusFailed
	StatusSkippedDryRun // dry run: resolution computed, nothing written
)

// String returns a string representation of Status
func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	case StatusSkippedDryRun:
		return "skipped"
	default:
		return "unknown"
	}
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// 📄 Outcome records the result of one item's transfer. Outcomes are
// recorded exactly once per item, in item order, and never mutated.
type Outcome struct {
	Index       int       `json:"index"`                 // item position in the manifest
	Source      string    `json:"source"`                // item source path
	Destination string    `json:"destination,omitempty"` // resolved destination, empty if the template failed
	Status      Status    `json:"status"`
	Error       string    `json:"error,omitempty"` // cause, present iff Status is failed
	CompletedAt time.Time `json:"completed_at"`
}

// 🧮 Counts aggregates outcome statuses. Succeeded+Failed+Skipped == Total.
type Counts struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}

// 📦 Result is the structured summary of a completed run: the data the
// report is rendered from, exposed programmatically for output collaborators.
type Result struct {
	PackageName  string    `json:"package_name"`
	ClientConfig string    `json:"client_config"`
	DeliveryPath string    `json:"delivery_path"`
	DryRun       bool      `json:"dry_run"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
	Outcomes     []Outcome `json:"results"`
}

// Counts tallies the outcomes by status.
func (r *Result) Counts() Counts {
	c := Counts{Total: len(r.Outcomes)}
	for _, o := range r.Outcomes {
		switch o.Status {
		case StatusSucceeded:
			c.Succeeded++
		case StatusFailed:
			c.Failed++
		case StatusSkippedDryRun:
			c.Skipped++
		}
	}
	return c
}

// Summary returns the one-line human summary used in reports and logs.
func (r *Result) Summary() string {
	c := r.Counts()
	if r.DryRun {
		return fmt.Sprintf("Dry run: resolved %d of %d items.", c.Skipped, c.Total)
	}
	return fmt.Sprintf("Successfully delivered %d of %d items.", c.Succeeded, c.Total)
}
