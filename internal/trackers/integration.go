/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package trackers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/wso2/identity-cookie-consent-service/internal/system/log"
)

// Integration is a third-party tracker family managed by the propagation
// dispatcher. Init must be idempotent: a second call on an initialized
// integration is a no-op. Revoke signals an already-initialized integration
// that consent has been withdrawn; integrations unable to honor it simply
// return nil. CookieNames enumerates the first-party cookies the integration
// is known to plant, so they can be purged on revocation.
type Integration interface {
	Name() string
	Init(ctx context.Context) error
	Revoke(ctx context.Context) error
	IsInitialized() bool
	CookieNames() []string
}

const defaultSignalTimeout = 5 * time.Second

// signalClient posts consent signals to a tracker endpoint. Failures are
// soft: the caller logs and continues, consent transitions never block on
// tracker availability.
type signalClient struct {
	endpoint   string
	httpClient *http.Client
}

func newSignalClient(endpoint string, timeout time.Duration) *signalClient {
	if timeout <= 0 {
		timeout = defaultSignalTimeout
	}
	return &signalClient{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// send posts the payload as JSON and drains the response.
func (c *signalClient) send(ctx context.Context, payload map[string]interface{}) error {

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal tracker signal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build tracker signal request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("tracker signal request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("tracker signal rejected with status %d", resp.StatusCode)
	}
	return nil
}

// signalSoft sends a signal and logs failures without surfacing them.
func (c *signalClient) signalSoft(ctx context.Context, integration string, payload map[string]interface{}) {
	if err := c.send(ctx, payload); err != nil {
		log.GetLogger().Warn(fmt.Sprintf("Failed to signal %s integration.", integration), log.Error(err))
	}
}
