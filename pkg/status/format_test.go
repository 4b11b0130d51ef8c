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

package status_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kolett/kolett/pkg/engine"
	"github.com/kolett/kolett/pkg/status"
)

// 🧪 TestFormatOutcome tests per-item console lines
func TestFormatOutcome(t *testing.T) {
	f := status.NewDefaultOutcomeFormatter()

	t.Run("succeeded", func(t *testing.T) {
		line := f.FormatOutcome(engine.Outcome{
			Source:      "/mnt/shots/s01.exr",
			Destination: "/deliveries/pkg/s01_v004.exr",
			Status:      engine.StatusSucceeded,
		})
		assert.Contains(t, line, "s01.exr")
		assert.Contains(t, line, "/deliveries/pkg/s01_v004.exr")
	})

	t.Run("failed carries the error", func(t *testing.T) {
		line := f.FormatOutcome(engine.Outcome{
			Source: "/mnt/shots/s02.exr",
			Status: engine.StatusFailed,
			Error:  "source path does not exist",
		})
		assert.Contains(t, line, "s02.exr")
		assert.Contains(t, line, "source path does not exist")
	})

	t.Run("dry run is marked", func(t *testing.T) {
		line := f.FormatOutcome(engine.Outcome{
			Source:      "/mnt/shots/s03.exr",
			Destination: "/deliveries/pkg/s03.exr",
			Status:      engine.StatusSkippedDryRun,
		})
		assert.Contains(t, line, "dry run")
	})
}

// 🧪 TestFormatSummary tests the totals line
func TestFormatSummary(t *testing.T) {
	f := status.NewDefaultOutcomeFormatter()

	line := f.FormatSummary(engine.Counts{Total: 3, Succeeded: 2, Failed: 1})
	assert.Contains(t, line, "3 items")
	assert.Contains(t, line, "2 succeeded")
	assert.Contains(t, line, "1 failed")
}

// 🧪 TestFormatError tests error formatting
func TestFormatError(t *testing.T) {
	f := status.NewDefaultOutcomeFormatter()
	assert.Empty(t, f.FormatError(nil))
	assert.Contains(t, f.FormatError(assert.AnError), "error:")
}
