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

	"github.com/rs/zerolog"
)

func init() {
	Register(&HardlinkStrategy{})
}

// 🔗 HardlinkStrategy creates a hard link at the destination. Only valid
// when source and destination live on the same filesystem.
type HardlinkStrategy struct{}

func (s *HardlinkStrategy) Name() string {
	return "hardlink"
}

func (s *HardlinkStrategy) Transfer(ctx context.Context, req Request) error {
	logger := zerolog.Ctx(ctx)

	if req.DryRun {
		logger.Info().Str("source", req.Source).Str("destination", req.Destination).Msg("DRY RUN: would hardlink")
		return nil
	}

	if err := ensureParent(req.Destination); err != nil {
		return s.fail(req, err)
	}

	if err := removeExisting(req.Destination); err != nil {
		return s.fail(req, err)
	}

	if err := os.Link(req.Source, req.Destination); err != nil {
		return s.fail(req, err)
	}

	logger.Debug().Str("source", req.Source).Str("destination", req.Destination).Msg("hardlinked")
	return nil
}

func (s *HardlinkStrategy) fail(req Request, err error) error {
	return &TransferError{Strategy: s.Name(), Source: req.Source, Destination: req.Destination, Cause: err}
}
