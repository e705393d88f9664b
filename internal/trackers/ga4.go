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
	"context"
	"sync"
	"time"
)

const defaultGAEndpoint = "https://www.google-analytics.com/mp/collect"

// GA4Integration is the analytics measurement integration. It is disabled
// when no measurement ID is configured.
type GA4Integration struct {
	measurementID string
	client        *signalClient

	mu          sync.Mutex
	initialized bool
}

// NewGA4Integration creates the analytics measurement integration. An empty
// endpoint selects the default collection endpoint.
func NewGA4Integration(measurementID, endpoint string, timeout time.Duration) *GA4Integration {
	if endpoint == "" {
		endpoint = defaultGAEndpoint
	}
	return &GA4Integration{
		measurementID: measurementID,
		client:        newSignalClient(endpoint, timeout),
	}
}

func (g *GA4Integration) Name() string {
	return "ga4"
}

// Init activates measurement exactly once. Subsequent calls are no-ops.
func (g *GA4Integration) Init(ctx context.Context) error {
	if g.measurementID == "" {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.initialized {
		return nil
	}
	g.initialized = true

	g.client.signalSoft(ctx, g.Name(), map[string]interface{}{
		"measurement_id": g.measurementID,
		"consent": map[string]string{
			"analytics_storage": "granted",
		},
		"anonymize_ip": true,
	})
	return nil
}

// Revoke sends a native consent-update denial to an initialized integration.
func (g *GA4Integration) Revoke(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.initialized {
		return nil
	}

	g.client.signalSoft(ctx, g.Name(), map[string]interface{}{
		"measurement_id": g.measurementID,
		"consent": map[string]string{
			"analytics_storage": "denied",
			"ad_storage":        "denied",
		},
	})
	return nil
}

func (g *GA4Integration) IsInitialized() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.initialized
}

// CookieNames enumerates the first-party cookies planted by the analytics
// measurement scripts.
func (g *GA4Integration) CookieNames() []string {
	return []string{"_ga", "_gid", "_gat"}
}
