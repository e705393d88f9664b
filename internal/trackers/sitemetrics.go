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

// SiteMetricsIntegration is the first-party performance metrics integration.
// It plants no cookies of its own; enabling and revoking it is purely a
// matter of signalling the collection endpoint.
type SiteMetricsIntegration struct {
	endpoint string
	client   *signalClient

	mu          sync.Mutex
	initialized bool
}

// NewSiteMetricsIntegration creates the site metrics integration. It is
// disabled when no collection endpoint is configured.
func NewSiteMetricsIntegration(endpoint string, timeout time.Duration) *SiteMetricsIntegration {
	return &SiteMetricsIntegration{
		endpoint: endpoint,
		client:   newSignalClient(endpoint, timeout),
	}
}

func (s *SiteMetricsIntegration) Name() string {
	return "site_metrics"
}

// Init enables metrics collection exactly once.
func (s *SiteMetricsIntegration) Init(ctx context.Context) error {
	if s.endpoint == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}
	s.initialized = true

	s.client.signalSoft(ctx, s.Name(), map[string]interface{}{
		"consent": "granted",
	})
	return nil
}

// Revoke disables metrics collection.
func (s *SiteMetricsIntegration) Revoke(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return nil
	}

	s.client.signalSoft(ctx, s.Name(), map[string]interface{}{
		"consent": "revoked",
	})
	return nil
}

func (s *SiteMetricsIntegration) IsInitialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

func (s *SiteMetricsIntegration) CookieNames() []string {
	return nil
}
