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

// Package engine orchestrates a delivery run: it resolves each item's
// destination, executes the item's transfer strategy, and accumulates
// per-item outcomes. A failing item never blocks the items after it; Run
// always returns one outcome per manifest item.
package engine

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/kolett/kolett/pkg/manifest"
	"github.com/kolett/kolett/pkg/render"
	"github.com/kolett/kolett/pkg/transfer"
)

// 🔧 Options carries the run parameters that live outside the manifest.
type Options struct {
	// Root is the delivery root directory. The manifest's destination_root
	// overrides it when set. The delivery directory is Root/PackageName.
	Root string

	// DryRun computes every resolution without mutating the filesystem.
	DryRun bool

	// Workers bounds the number of items transferred in parallel.
	// Zero or one means sequential processing in manifest order.
	Workers int
}

// 🎮 Engine is the delivery orchestrator.
type Engine struct {
	evaluator *render.Evaluator
}

// 🏭 New creates an engine. A nil evaluator gets the default filter set.
func New(evaluator *render.Evaluator) *Engine {
	if evaluator == nil {
		evaluator = render.New()
	}
	return &Engine{evaluator: evaluator}
}

// 🎯 Run processes every manifest item and returns the run result. Per-item
// failures (template errors, missing sources, transfer errors) are captured
// as failed outcomes; Run itself only errors when the delivery root cannot
// be prepared. Outcome order always matches item order, regardless of how
// many workers executed the transfers.
func (e *Engine) Run(ctx context.Context, m *manifest.Manifest, opts Options) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	root := opts.Root
	if m.DestinationRoot != "" {
		root = m.DestinationRoot
	}
	if root == "" {
		return nil, errors.Errorf("delivery root is not configured")
	}
	deliveryPath := filepath.Join(root, m.PackageName)

	if opts.DryRun {
		logger.Info().Str("package", m.PackageName).Str("path", deliveryPath).Msg("DRY RUN: starting delivery")
	} else {
		logger.Info().Str("package", m.PackageName).Str("path", deliveryPath).Msg("starting delivery")
		if err := os.MkdirAll(deliveryPath, 0o755); err != nil {
			return nil, errors.Errorf("preparing delivery directory %s: %w", deliveryPath, err)
		}
	}

	result := &Result{
		PackageName:  m.PackageName,
		ClientConfig: m.ClientConfig,
		DeliveryPath: deliveryPath,
		DryRun:       opts.DryRun,
		StartedAt:    time.Now(),
		Outcomes:     make([]Outcome, len(m.Items)),
	}

	// Each item writes only its own index-addressed slot, so parallel
	// workers never contend on the outcome collection.
	if opts.Workers > 1 {
		var g errgroup.Group
		g.SetLimit(opts.Workers)
		for i := range m.Items {
			g.Go(func() error {
				result.Outcomes[i] = e.processItem(ctx, i, &m.Items[i], deliveryPath, opts.DryRun)
				return nil
			})
		}
		_ = g.Wait() // item failures live in the outcomes, not here
	} else {
		for i := range m.Items {
			result.Outcomes[i] = e.processItem(ctx, i, &m.Items[i], deliveryPath, opts.DryRun)
		}
	}

	result.FinishedAt = time.Now()
	counts := result.Counts()
	logger.Info().
		Int("total", counts.Total).
		Int("succeeded", counts.Succeeded).
		Int("failed", counts.Failed).
		Int("skipped", counts.Skipped).
		Msg(result.Summary())

	return result, nil
}

// 🔄 processItem runs one item end to end and converts every failure into a
// failed outcome instead of propagating it.
func (e *Engine) processItem(ctx context.Context, index int, item *manifest.Item, deliveryPath string, dryRun bool) Outcome {
	logger := zerolog.Ctx(ctx)

	destination, err := e.resolveDestination(item, deliveryPath)
	if err != nil {
		logger.Error().Err(err).Str("source", item.SourcePath).Msg("failed to resolve destination")
		return e.failed(index, item, "", err)
	}

	strategy, ok := transfer.Get(item.Method())
	if !ok {
		err := errors.Errorf("unknown transfer strategy %q", item.Method())
		logger.Error().Err(err).Str("source", item.SourcePath).Msg("failed to select strategy")
		return e.failed(index, item, destination, err)
	}

	// The source must exist before any strategy-specific action, dry run
	// included: a dry run that hides missing sources is not much of a
	// rehearsal.
	if err := transfer.CheckSource(item.SourcePath); err != nil {
		logger.Error().Err(err).Str("source", item.SourcePath).Msg("failed to deliver")
		return e.failed(index, item, destination, err)
	}

	req := transfer.Request{Source: item.SourcePath, Destination: destination, DryRun: dryRun}
	if err := strategy.Transfer(ctx, req); err != nil {
		logger.Error().Err(err).Str("source", item.SourcePath).Msg("failed to deliver")
		return e.failed(index, item, destination, err)
	}

	status := StatusSucceeded
	if dryRun {
		status = StatusSkippedDryRun
	} else {
		logger.Info().Str("source", filepath.Base(item.SourcePath)).Str("destination", destination).Msg("delivered")
	}
	return Outcome{
		Index:       index,
		Source:      item.SourcePath,
		Destination: destination,
		Status:      status,
		CompletedAt: time.Now(),
	}
}

// resolveDestination renders the item's target template and anchors the
// result under the delivery directory unless it is already absolute.
func (e *Engine) resolveDestination(item *manifest.Item, deliveryPath string) (string, error) {
	rendered, err := e.evaluator.Evaluate(item.TargetTemplate, templateContext(item))
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(rendered) {
		return filepath.Clean(rendered), nil
	}
	return filepath.Join(deliveryPath, rendered), nil
}

// templateContext builds the per-item variable context: well-known derived
// values from the source path, overridden by the item's own metadata.
func templateContext(item *manifest.Item) map[string]any {
	base := filepath.Base(item.SourcePath)
	ext := filepath.Ext(base)
	ctx := map[string]any{
		"source_path": item.SourcePath,
		"source_name": base,
		"source_stem": base[:len(base)-len(ext)],
		"source_ext":  ext,
		"source_dir":  filepath.Dir(item.SourcePath),
	}
	for k, v := range item.Metadata {
		ctx[k] = v
	}
	return ctx
}

func (e *Engine) failed(index int, item *manifest.Item, destination string, err error) Outcome {
	return Outcome{
		Index:       index,
		Source:      item.SourcePath,
		Destination: destination,
		Status:      StatusFailed,
		Error:       err.Error(),
		CompletedAt: time.Now(),
	}
}
