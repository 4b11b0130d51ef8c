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

// Package callback notifies external systems about a completed run. The
// engine's responsibility ends at the run result; callbacks consume it.
package callback

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/kolett/kolett/pkg/engine"
)

// 🔧 Config is the per-callback configuration block from the settings file.
type Config struct {
	Name string `json:"name" yaml:"name" hcl:"name,label"`
	Path string `json:"path,omitempty" yaml:"path,omitempty" hcl:"path,optional"` // resultfile: output path
	URL  string `json:"url,omitempty" yaml:"url,omitempty" hcl:"url,optional"`    // webhook: endpoint
}

// 📣 Callback consumes the result of a completed delivery run.
type Callback interface {
	// Name returns the tag this callback registers under.
	Name() string

	// Run receives the structured run result and the rendered report.
	Run(ctx context.Context, result *engine.Result, report string) error
}

// 🏭 Factory builds a callback from its configuration block.
type Factory func(cfg Config) (Callback, error)

var (
	factoriesMu sync.RWMutex
	factories   = map[string]Factory{}
)

// 📝 Register adds a callback factory under name.
func Register(name string, f Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	factories[name] = f
}

// 🎯 New builds the callback named by cfg.Name.
func New(cfg Config) (Callback, error) {
	factoriesMu.RLock()
	f, ok := factories[cfg.Name]
	factoriesMu.RUnlock()
	if !ok {
		return nil, errors.Errorf("unknown callback %q", cfg.Name)
	}
	return f(cfg)
}

// 🔄 RunAll executes every configured callback. A failing callback is logged
// and skipped; notification problems never undo a finished delivery.
func RunAll(ctx context.Context, configs []Config, result *engine.Result, report string) {
	logger := zerolog.Ctx(ctx)

	for _, cfg := range configs {
		cb, err := New(cfg)
		if err != nil {
			logger.Error().Err(err).Str("callback", cfg.Name).Msg("callback setup failed")
			continue
		}
		logger.Info().Str("callback", cb.Name()).Msg("executing callback")
		if err := cb.Run(ctx, result, report); err != nil {
			logger.Error().Err(err).Str("callback", cb.Name()).Msg("callback failed")
		}
	}
}
