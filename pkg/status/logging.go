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

package status

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"

	"github.com/kolett/kolett/pkg/engine"
)

// 📢 UserLogger provides user-friendly feedback about a delivery run,
// mirrored into the structured log for debugging.
type UserLogger struct {
	log zerolog.Logger
}

// 🎯 NewUserLogger creates a new user logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// 🚚 LogRunStart announces the delivery.
func (u *UserLogger) LogRunStart(packageName, deliveryPath string, dryRun bool) {
	msg := fmt.Sprintf("Delivering %s to %s", packageName, deliveryPath)
	if dryRun {
		msg = fmt.Sprintf("DRY RUN: %s", msg)
	}
	pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"}).Println(msg)
	u.log.Info().Msg(msg)
}

// 📝 LogOutcome logs one item outcome with appropriate emoji and formatting
func (u *UserLogger) LogOutcome(o engine.Outcome) {
	name := filepath.Base(o.Source)

	var printer *pterm.PrefixPrinter
	var msg string
	switch o.Status {
	case engine.StatusSucceeded:
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: "✨"})
		msg = fmt.Sprintf("Delivered %s -> %s", name, o.Destination)
	case engine.StatusSkippedDryRun:
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: "⏭️"})
		msg = fmt.Sprintf("Skipped %s (would deliver to %s)", name, o.Destination)
	case engine.StatusFailed:
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"})
		msg = fmt.Sprintf("Failed %s", name)
	default:
		printer = pterm.Warning.WithPrefix(pterm.Prefix{Text: "❓"})
		msg = fmt.Sprintf("Unknown outcome for %s", name)
	}

	if o.Status == engine.StatusFailed {
		printer.Println(msg)
		pterm.Error.Println(o.Error)
		u.log.Error().Str("error", o.Error).Msg(msg)
	} else {
		printer.Println(msg)
		u.log.Info().Msg(msg)
	}
}

// 📊 LogSummary logs the run totals.
func (u *UserLogger) LogSummary(result *engine.Result) {
	counts := result.Counts()
	msg := result.Summary()
	if counts.Failed > 0 {
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(msg)
		u.log.Warn().Int("failed", counts.Failed).Msg(msg)
	} else {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(msg)
		u.log.Info().Msg(msg)
	}
}

// 🔍 LogValidation logs manifest validation results
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(description)
		u.log.Info().Msg(description)
		return
	}
	pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(description)
	if err != nil {
		pterm.Error.Println(err)
	}
	u.log.Error().Err(err).Msg(description)
}
