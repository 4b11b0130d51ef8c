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

package transfer

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

func init() {
	Register(&SymlinkStrategy{})
}

// 🔗 SymlinkStrategy creates a symbolic link at the destination pointing to
// the absolute source path. No content is duplicated, which suits internal
// deliveries and saves storage. Whatever already occupies the destination,
// including a broken symlink, is removed first.
type SymlinkStrategy struct{}

func (s *SymlinkStrategy) Name() string {
	return "symlink"
}

func (s *SymlinkStrategy) Transfer(ctx context.Context, req Request) error {
	logger := zerolog.Ctx(ctx)

	if req.DryRun {
		logger.Info().Str("source", req.Source).Str("destination", req.Destination).Msg("DRY RUN: would symlink")
		return nil
	}

	if err := ensureParent(req.Destination); err != nil {
		return s.fail(req, err)
	}

	absSource, err := filepath.Abs(req.Source)
	if err != nil {
		return s.fail(req, err)
	}

	if err := removeExisting(req.Destination); err != nil {
		return s.fail(req, err)
	}

	if err := os.Symlink(absSource, req.Destination); err != nil {
		return s.fail(req, err)
	}

	logger.Debug().Str("source", absSource).Str("destination", req.Destination).Msg("symlinked")
	return nil
}

func (s *SymlinkStrategy) fail(req Request, err error) error {
	return &TransferError{Strategy: s.Name(), Source: req.Source, Destination: req.Destination, Cause: err}
}

// removeExisting clears the destination so link creation cannot hit a
// file-exists error. Lstat, not Stat: a broken symlink still occupies the
// path and must be removed.
func removeExisting(destination string) error {
	if _, err := os.Lstat(destination); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return os.Remove(destination)
}
