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

const defaultGTMEndpoint = "https://www.googletagmanager.com/gtm.js"

// GTMIntegration is the tag-manager integration, permitted under analytics
// or marketing consent.
type GTMIntegration struct {
	containerID string
	client      *signalClient

	mu          sync.Mutex
	initialized bool
}

// NewGTMIntegration creates the tag-manager integration. An empty endpoint
// selects the default container endpoint.
func NewGTMIntegration(containerID, endpoint string, timeout time.Duration) *GTMIntegration {
	if endpoint == "" {
		endpoint = defaultGTMEndpoint
	}
	return &GTMIntegration{
		containerID: containerID,
		client:      newSignalClient(endpoint, timeout),
	}
}

func (g *GTMIntegration) Name() string {
	return "gtm"
}

// Init loads the tag container exactly once.
func (g *GTMIntegration) Init(ctx context.Context) error {
	if g.containerID == "" {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.initialized {
		return nil
	}
	g.initialized = true

	g.client.signalSoft(ctx, g.Name(), map[string]interface{}{
		"container_id": g.containerID,
		"event":        "gtm.js",
		"gtm.start":    time.Now().UnixMilli(),
	})
	return nil
}

// Revoke notifies the container that consent was withdrawn.
func (g *GTMIntegration) Revoke(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.initialized {
		return nil
	}

	g.client.signalSoft(ctx, g.Name(), map[string]interface{}{
		"container_id": g.containerID,
		"event":        "consent_revoked",
	})
	return nil
}

func (g *GTMIntegration) IsInitialized() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.initialized
}

// CookieNames is empty: the container itself plants no first-party cookies,
// the tags it loads are covered by their own integration families.
func (g *GTMIntegration) CookieNames() []string {
	return nil
}
