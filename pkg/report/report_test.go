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

package report_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolett/kolett/pkg/engine"
	"github.com/kolett/kolett/pkg/render"
	"github.com/kolett/kolett/pkg/report"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func sampleResult() *engine.Result {
	finished := time.Date(2026, 2, 15, 18, 45, 0, 0, time.UTC)
	return &engine.Result{
		PackageName:  "BTL_EP01_20260215",
		ClientConfig: "btl_default",
		DeliveryPath: "/deliveries/BTL_EP01_20260215",
		StartedAt:    finished.Add(-2 * time.Minute),
		FinishedAt:   finished,
		Outcomes: []engine.Outcome{
			{Index: 0, Source: "/mnt/a.exr", Destination: "/deliveries/BTL_EP01_20260215/s01_v004.exr", Status: engine.StatusSucceeded, CompletedAt: finished},
			{Index: 1, Source: "/mnt/b.exr", Status: engine.StatusFailed, Error: "source path does not exist: /mnt/b.exr", CompletedAt: finished},
			{Index: 2, Source: "/mnt/c.exr", Destination: "/deliveries/BTL_EP01_20260215/s03_v001.exr", Status: engine.StatusSkippedDryRun, CompletedAt: finished},
		},
	}
}

// 🧪 TestRender_Default tests the embedded Markdown template
func TestRender_Default(t *testing.T) {
	ctx := testContext(t)

	content, err := report.NewGenerator(nil).Render(ctx, sampleResult(), "")
	require.NoError(t, err)

	assert.Contains(t, content, "# Delivery Report: BTL_EP01_20260215")
	assert.Contains(t, content, "btl_default")
	assert.Contains(t, content, "2026-02-15 18:45:00")
	assert.Contains(t, content, "s01_v004.exr")
	assert.Contains(t, content, "SUCCEEDED")
	assert.Contains(t, content, "FAILED")
	assert.Contains(t, content, "source path does not exist")
	assert.Contains(t, content, "3 items: 1 succeeded, 1 failed, 1 skipped")
}

// 🧪 TestRender_CustomTemplate tests an externally supplied template
func TestRender_CustomTemplate(t *testing.T) {
	ctx := testContext(t)

	tmpl := "{{ package_name }}: {{ summary }} ({{ counts.failed }} failures)"
	content, err := report.NewGenerator(render.New()).Render(ctx, sampleResult(), tmpl)
	require.NoError(t, err)

	assert.Equal(t, "BTL_EP01_20260215: Successfully delivered 1 of 3 items. (1 failures)", content)
}

// 🧪 TestRender_AllFailed verifies a report is produced even on total failure
func TestRender_AllFailed(t *testing.T) {
	ctx := testContext(t)

	result := sampleResult()
	for i := range result.Outcomes {
		result.Outcomes[i].Status = engine.StatusFailed
		result.Outcomes[i].Error = "disk on fire"
		result.Outcomes[i].Destination = ""
	}

	content, err := report.NewGenerator(nil).Render(ctx, result, "")
	require.NoError(t, err)
	assert.Contains(t, content, "3 items: 0 succeeded, 3 failed, 0 skipped")
}

// 🧪 TestRender_TemplateFailureAborts verifies report template errors abort
func TestRender_TemplateFailureAborts(t *testing.T) {
	ctx := testContext(t)

	_, err := report.NewGenerator(nil).Render(ctx, sampleResult(), "{{ no_such_key }}")
	require.Error(t, err)

	var terr *render.TemplateError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "no_such_key", terr.Name)
}

// 🧪 TestContext verifies the aggregate context invariants
func TestContext(t *testing.T) {
	result := sampleResult()
	ctx := report.Context(result)

	counts := ctx["counts"].(map[string]any)
	total := counts["total"].(int)
	assert.Equal(t, counts["succeeded"].(int)+counts["failed"].(int)+counts["skipped"].(int), total)
	assert.Equal(t, len(result.Outcomes), total)

	results := ctx["results"].([]map[string]any)
	require.Len(t, results, 3)
	assert.Equal(t, 1, results[0]["position"])
	assert.Equal(t, "succeeded", results[0]["status"])
}

// 🧪 TestWrite tests report persistence into the delivery directory
func TestWrite(t *testing.T) {
	ctx := testContext(t)

	result := sampleResult()
	result.DeliveryPath = t.TempDir()

	path, err := report.NewGenerator(nil).Write(ctx, result, "# report body")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(result.DeliveryPath, "manifest.md"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# report body", string(content))
}
