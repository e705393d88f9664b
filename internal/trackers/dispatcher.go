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
	"fmt"
	"sync"
	"time"

	model "github.com/wso2/identity-cookie-consent-service/internal/consent/model"
	"github.com/wso2/identity-cookie-consent-service/internal/system/config"
	"github.com/wso2/identity-cookie-consent-service/internal/system/log"
)

// PermittedFunc decides whether an integration family may be active under the
// given category set.
type PermittedFunc func(model.ConsentCategories) bool

// Listener receives the full resulting category set after every
// reconciliation, so independent consumers stay in sync without polling.
type Listener func(model.ConsentCategories)

type entry struct {
	integration Integration
	permitted   PermittedFunc
	active      bool
}

// ReconcileResult reports the integration transitions a reconciliation
// performed.
type ReconcileResult struct {
	Initialized   []string
	Revoked       []string
	PurgedCookies []string
}

// Dispatcher reconciles which tracker integrations may be active after a
// consent state change. Reconciliation is idempotent: repeated calls with
// identical categories perform no duplicate initialization and no duplicate
// revocation.
type Dispatcher struct {
	mu        sync.Mutex
	entries   []entry
	listeners []Listener
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// NewDefaultDispatcher creates a dispatcher with the standard integration
// table: analytics measurement and site metrics under analytics consent, tag
// manager under analytics or marketing, ad pixel under marketing.
func NewDefaultDispatcher(cfg config.TrackersConfig) *Dispatcher {

	timeout := time.Duration(cfg.SignalTimeoutSeconds) * time.Second

	d := NewDispatcher()
	d.Register(NewGA4Integration(cfg.GAMeasurementID, "", timeout), func(c model.ConsentCategories) bool {
		return c.Analytics
	})
	d.Register(NewSiteMetricsIntegration(cfg.MetricsEndpoint, timeout), func(c model.ConsentCategories) bool {
		return c.Analytics
	})
	d.Register(NewGTMIntegration(cfg.GTMContainerID, "", timeout), func(c model.ConsentCategories) bool {
		return c.Analytics || c.Marketing
	})
	d.Register(NewMetaPixelIntegration(cfg.MetaPixelID, "", timeout), func(c model.ConsentCategories) bool {
		return c.Marketing
	})
	return d
}

// Register adds an integration with its permission predicate.
func (d *Dispatcher) Register(integration Integration, permitted PermittedFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries = append(d.entries, entry{integration: integration, permitted: permitted})
}

// Subscribe registers a listener invoked synchronously after every
// reconciliation with the resulting categories.
func (d *Dispatcher) Subscribe(listener Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, listener)
}

// Reconcile brings the integration table in line with the given category set.
// Newly permitted integrations are initialized once; integrations whose
// capability transitioned to false are sent a revocation signal and their
// known first-party cookies are reported for purging. Failures are logged
// and never surfaced.
func (d *Dispatcher) Reconcile(ctx context.Context, categories model.ConsentCategories) ReconcileResult {

	d.mu.Lock()
	defer d.mu.Unlock()

	logger := log.GetLogger()
	var result ReconcileResult

	for i := range d.entries {
		e := &d.entries[i]
		permitted := e.permitted(categories)

		switch {
		case permitted && !e.active:
			if err := e.integration.Init(ctx); err != nil {
				logger.Warn(fmt.Sprintf("Failed to initialize %s integration.", e.integration.Name()), log.Error(err))
				continue
			}
			e.active = true
			if e.integration.IsInitialized() {
				result.Initialized = append(result.Initialized, e.integration.Name())
			}

		case !permitted && e.active:
			if e.integration.IsInitialized() {
				if err := e.integration.Revoke(ctx); err != nil {
					logger.Warn(fmt.Sprintf("Failed to revoke %s integration.", e.integration.Name()), log.Error(err))
				}
				result.Revoked = append(result.Revoked, e.integration.Name())
				result.PurgedCookies = append(result.PurgedCookies, e.integration.CookieNames()...)
			}
			e.active = false
		}
	}

	for _, listener := range d.listeners {
		listener(categories)
	}

	return result
}
