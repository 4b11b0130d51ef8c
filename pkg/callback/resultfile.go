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

package callback

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/kolett/kolett/pkg/engine"
)

func init() {
	Register("resultfile", func(cfg Config) (Callback, error) {
		return &ResultFile{path: cfg.Path}, nil
	})
}

// 💾 ResultFile writes the structured run result as JSON, for database
// write-back or downstream tooling. Defaults to result.json inside the
// delivery directory.
type ResultFile struct {
	path string
}

func (c *ResultFile) Name() string {
	return "resultfile"
}

func (c *ResultFile) Run(ctx context.Context, result *engine.Result, report string) error {
	logger := zerolog.Ctx(ctx)

	path := c.path
	if path == "" {
		path = filepath.Join(result.DeliveryPath, "result.json")
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return errors.Errorf("encoding result: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Errorf("creating result directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Errorf("writing result file: %w", err)
	}

	logger.Info().Str("path", path).Msg("result file written")
	return nil
}
