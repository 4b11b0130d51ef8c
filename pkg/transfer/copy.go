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
	"io"
	"os"

	"github.com/rs/zerolog"
)

func init() {
	Register(&CopyStrategy{})
}

// 📄 CopyStrategy duplicates file content at the destination. An existing
// destination file is overwritten in full. Permission bits are carried over;
// the modification time is preserved best effort, since network filesystems
// (NFS, JuiceFS) do not always support it.
type CopyStrategy struct{}

func (s *CopyStrategy) Name() string {
	return "copy"
}

func (s *CopyStrategy) Transfer(ctx context.Context, req Request) error {
	logger := zerolog.Ctx(ctx)

	if req.DryRun {
		logger.Info().Str("source", req.Source).Str("destination", req.Destination).Msg("DRY RUN: would copy")
		return nil
	}

	if err := ensureParent(req.Destination); err != nil {
		return s.fail(req, err)
	}

	srcInfo, err := os.Stat(req.Source)
	if err != nil {
		return s.fail(req, err)
	}

	src, err := os.Open(req.Source)
	if err != nil {
		return s.fail(req, err)
	}
	defer src.Close()

	dst, err := os.OpenFile(req.Destination, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return s.fail(req, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return s.fail(req, err)
	}
	if err := dst.Close(); err != nil {
		return s.fail(req, err)
	}

	// Permission bits on a pre-existing destination are not touched by
	// OpenFile, so set them explicitly.
	if err := os.Chmod(req.Destination, srcInfo.Mode().Perm()); err != nil {
		return s.fail(req, err)
	}

	// Timestamp preservation is useful but non-critical.
	if err := os.Chtimes(req.Destination, srcInfo.ModTime(), srcInfo.ModTime()); err != nil {
		logger.Debug().Err(err).Str("destination", req.Destination).Msg("could not preserve timestamps")
	}

	logger.Debug().Str("source", req.Source).Str("destination", req.Destination).Msg("copied")
	return nil
}

func (s *CopyStrategy) fail(req Request, err error) error {
	return &TransferError{Strategy: s.Name(), Source: req.Source, Destination: req.Destination, Cause: err}
}
