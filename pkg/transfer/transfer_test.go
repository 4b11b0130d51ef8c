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

package transfer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolett/kolett/pkg/transfer"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// 🧪 TestRegistry tests strategy registration and lookup
func TestRegistry(t *testing.T) {
	t.Run("builtin strategies are registered", func(t *testing.T) {
		assert.Equal(t, []string{"copy", "hardlink", "symlink"}, transfer.Methods())
		for _, name := range transfer.Methods() {
			s, ok := transfer.Get(name)
			require.True(t, ok)
			assert.Equal(t, name, s.Name())
		}
	})

	t.Run("unknown strategy", func(t *testing.T) {
		_, ok := transfer.Get("teleport")
		assert.False(t, ok)
		assert.False(t, transfer.Registered("teleport"))
	})
}

// 🧪 TestCheckSource tests the shared transfer precondition
func TestCheckSource(t *testing.T) {
	t.Run("existing source passes", func(t *testing.T) {
		src := writeSource(t, t.TempDir(), "a.exr", "data")
		assert.NoError(t, transfer.CheckSource(src))
	})

	t.Run("missing source fails typed", func(t *testing.T) {
		err := transfer.CheckSource(filepath.Join(t.TempDir(), "missing.exr"))
		require.Error(t, err)

		var nferr *transfer.SourceNotFoundError
		require.ErrorAs(t, err, &nferr)
		assert.Contains(t, nferr.Path, "missing.exr")
	})
}
