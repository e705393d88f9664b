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

const defaultMetaPixelEndpoint = "https://graph.facebook.com/v18.0/events"

// MetaPixelIntegration is the advertising-pixel integration, permitted only
// under marketing consent.
type MetaPixelIntegration struct {
	pixelID string
	client  *signalClient

	mu          sync.Mutex
	initialized bool
}

// NewMetaPixelIntegration creates the advertising-pixel integration. An empty
// endpoint selects the default events endpoint.
func NewMetaPixelIntegration(pixelID, endpoint string, timeout time.Duration) *MetaPixelIntegration {
	if endpoint == "" {
		endpoint = defaultMetaPixelEndpoint
	}
	return &MetaPixelIntegration{
		pixelID: pixelID,
		client:  newSignalClient(endpoint, timeout),
	}
}

func (m *MetaPixelIntegration) Name() string {
	return "meta_pixel"
}

// Init activates the pixel exactly once and fires a page-view signal
// immediately after initialization.
func (m *MetaPixelIntegration) Init(ctx context.Context) error {
	if m.pixelID == "" {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.initialized {
		return nil
	}
	m.initialized = true

	m.client.signalSoft(ctx, m.Name(), map[string]interface{}{
		"pixel_id": m.pixelID,
		"event":    "init",
	})
	m.client.signalSoft(ctx, m.Name(), map[string]interface{}{
		"pixel_id": m.pixelID,
		"event":    "PageView",
	})
	return nil
}

// Revoke issues the pixel's native consent revocation.
func (m *MetaPixelIntegration) Revoke(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return nil
	}

	m.client.signalSoft(ctx, m.Name(), map[string]interface{}{
		"pixel_id": m.pixelID,
		"event":    "consent_revoked",
	})
	return nil
}

func (m *MetaPixelIntegration) IsInitialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// CookieNames enumerates the first-party cookies planted by the pixel.
func (m *MetaPixelIntegration) CookieNames() []string {
	return []string{"_fbp", "_fbc"}
}
