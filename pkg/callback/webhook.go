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
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/kolett/kolett/pkg/engine"
)

func init() {
	Register("webhook", func(cfg Config) (Callback, error) {
		if cfg.URL == "" {
			return nil, errors.Errorf("webhook callback requires a url")
		}
		return &Webhook{
			url:    cfg.URL,
			client: &http.Client{Timeout: 10 * time.Second},
		}, nil
	})
}

// 📣 Webhook POSTs the run result as JSON to a notification endpoint
// (chat integrations, pipeline triggers).
type Webhook struct {
	url    string
	client *http.Client
}

func (c *Webhook) Name() string {
	return "webhook"
}

func (c *Webhook) Run(ctx context.Context, result *engine.Result, report string) error {
	logger := zerolog.Ctx(ctx)

	counts := result.Counts()
	payload := map[string]any{
		"package_name":  result.PackageName,
		"delivery_path": result.DeliveryPath,
		"summary":       result.Summary(),
		"counts":        counts,
		"results":       result.Outcomes,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Errorf("encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return errors.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Errorf("posting to webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("webhook returned status %d", resp.StatusCode)
	}

	logger.Info().Str("url", c.url).Int("status", resp.StatusCode).Msg("webhook notified")
	return nil
}
