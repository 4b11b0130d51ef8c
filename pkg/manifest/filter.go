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

package manifest

import (
	"context"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

// 🔍 Filter returns a copy of m without the items whose source path matches
// any of the given doublestar glob patterns. Item order is preserved.
// Patterns that fail to compile are skipped with a debug log, matching no
// items rather than aborting the run.
func Filter(ctx context.Context, m *Manifest, ignorePatterns []string) *Manifest {
	if len(ignorePatterns) == 0 {
		return m
	}
	logger := zerolog.Ctx(ctx)

	out := *m
	out.Items = make([]Item, 0, len(m.Items))
	for _, item := range m.Items {
		if ignored(logger, item.SourcePath, ignorePatterns) {
			logger.Info().Str("source", item.SourcePath).Msg("item ignored by pattern")
			continue
		}
		out.Items = append(out.Items, item)
	}
	return &out
}

func ignored(logger *zerolog.Logger, path string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			logger.Debug().Str("pattern", pattern).Str("path", path).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
