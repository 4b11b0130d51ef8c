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

// Package report renders the human-readable delivery summary from a run
// result. The report template is external configuration; a Markdown default
// is embedded.
package report

import (
	"context"
	"embed"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/kolett/kolett/pkg/engine"
	"github.com/kolett/kolett/pkg/render"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// DefaultFileName is the report file written into the delivery directory.
const DefaultFileName = "manifest.md"

// timestampLayout matches the timestamps clients see in reports.
const timestampLayout = "2006-01-02 15:04:05"

// 📝 Generator renders delivery reports through the template evaluator.
type Generator struct {
	evaluator *render.Evaluator
}

// 🏭 NewGenerator creates a generator. A nil evaluator gets the default
// filter set.
func NewGenerator(evaluator *render.Evaluator) *Generator {
	if evaluator == nil {
		evaluator = render.New()
	}
	return &Generator{evaluator: evaluator}
}

// 🎯 Render renders the report for a completed run. templateText of ""
// selects the embedded default. A template failure here has no item to
// isolate to, so it aborts report generation.
func (g *Generator) Render(ctx context.Context, result *engine.Result, templateText string) (string, error) {
	logger := zerolog.Ctx(ctx)

	if templateText == "" {
		data, err := templatesFS.ReadFile("templates/delivery.md.tmpl")
		if err != nil {
			return "", errors.Errorf("reading embedded report template: %w", err)
		}
		templateText = string(data)
	}

	content, err := g.evaluator.Evaluate(templateText, Context(result))
	if err != nil {
		return "", errors.Errorf("rendering report: %w", err)
	}

	logger.Debug().Str("package", result.PackageName).Msg("report rendered")
	return content, nil
}

// 📦 Context builds the aggregate template context: package metadata,
// summary counts, and the ordered per-item results. Keys are snake_case so
// report templates read like the path templates.
func Context(result *engine.Result) map[string]any {
	counts := result.Counts()
	results := make([]map[string]any, 0, len(result.Outcomes))
	for _, o := range result.Outcomes {
		results = append(results, map[string]any{
			"position":    o.Index + 1,
			"source":      o.Source,
			"destination": o.Destination,
			"status":      o.Status.String(),
			"error":       o.Error,
		})
	}
	return map[string]any{
		"package_name":  result.PackageName,
		"client_config": result.ClientConfig,
		"delivery_path": result.DeliveryPath,
		"timestamp":     result.FinishedAt.Format(timestampLayout),
		"summary":       result.Summary(),
		"counts": map[string]any{
			"total":     counts.Total,
			"succeeded": counts.Succeeded,
			"failed":    counts.Failed,
			"skipped":   counts.Skipped,
		},
		"results": results,
	}
}

// Path returns where the report lives inside the delivery directory.
func Path(result *engine.Result) string {
	return filepath.Join(result.DeliveryPath, DefaultFileName)
}

// 💾 Write stores the rendered report in the delivery directory and returns
// its path.
func (g *Generator) Write(ctx context.Context, result *engine.Result, content string) (string, error) {
	logger := zerolog.Ctx(ctx)

	path := Path(result)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", errors.Errorf("writing report: %w", err)
	}

	logger.Info().Str("path", path).Msg("report written")
	return path, nil
}
