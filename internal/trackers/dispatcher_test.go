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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/wso2/identity-cookie-consent-service/internal/consent/model"
	"github.com/wso2/identity-cookie-consent-service/internal/system/config"
	"github.com/wso2/identity-cookie-consent-service/internal/system/log"
)

func TestMain(m *testing.M) {
	log.Init("ERROR")
	m.Run()
}

// countingIntegration records Init and Revoke calls and mimics the idempotent
// initialization guard of the real integrations.
type countingIntegration struct {
	name        string
	cookies     []string
	initialized bool
	initCalls   int
	revokeCalls int
}

func (c *countingIntegration) Name() string { return c.name }

func (c *countingIntegration) Init(ctx context.Context) error {
	if c.initialized {
		return nil
	}
	c.initialized = true
	c.initCalls++
	return nil
}

func (c *countingIntegration) Revoke(ctx context.Context) error {
	c.revokeCalls++
	return nil
}

func (c *countingIntegration) IsInitialized() bool { return c.initialized }

func (c *countingIntegration) CookieNames() []string { return c.cookies }

func analyticsOnly() model.ConsentCategories {
	return model.ConsentCategories{Essential: true, Analytics: true}
}

func TestReconcileInitializesPermittedIntegration(t *testing.T) {
	tracker := &countingIntegration{name: "analytics"}
	d := NewDispatcher()
	d.Register(tracker, func(c model.ConsentCategories) bool { return c.Analytics })

	result := d.Reconcile(context.Background(), analyticsOnly())

	assert.Equal(t, []string{"analytics"}, result.Initialized)
	assert.Empty(t, result.Revoked)
	assert.Equal(t, 1, tracker.initCalls)
}

func TestReconcileIsIdempotent(t *testing.T) {
	tracker := &countingIntegration{name: "analytics"}
	d := NewDispatcher()
	d.Register(tracker, func(c model.ConsentCategories) bool { return c.Analytics })

	d.Reconcile(context.Background(), analyticsOnly())
	second := d.Reconcile(context.Background(), analyticsOnly())
	third := d.Reconcile(context.Background(), analyticsOnly())

	assert.Equal(t, 1, tracker.initCalls)
	assert.Empty(t, second.Initialized)
	assert.Empty(t, third.Initialized)
	assert.Zero(t, tracker.revokeCalls)
}

func TestReconcileRevokesOnTransitionToDenied(t *testing.T) {
	tracker := &countingIntegration{name: "analytics", cookies: []string{"_ga", "_gid"}}
	d := NewDispatcher()
	d.Register(tracker, func(c model.ConsentCategories) bool { return c.Analytics })

	d.Reconcile(context.Background(), analyticsOnly())
	result := d.Reconcile(context.Background(), model.EssentialOnlyCategories())

	require.Equal(t, []string{"analytics"}, result.Revoked)
	assert.Equal(t, []string{"_ga", "_gid"}, result.PurgedCookies)
	assert.Equal(t, 1, tracker.revokeCalls)
}

func TestReconcileDoesNotRevokeNeverInitialized(t *testing.T) {
	tracker := &countingIntegration{name: "marketing"}
	d := NewDispatcher()
	d.Register(tracker, func(c model.ConsentCategories) bool { return c.Marketing })

	result := d.Reconcile(context.Background(), model.EssentialOnlyCategories())

	assert.Empty(t, result.Revoked)
	assert.Empty(t, result.PurgedCookies)
	assert.Zero(t, tracker.revokeCalls)
}

func TestReconcileRevokesOnlyOncePerTransition(t *testing.T) {
	tracker := &countingIntegration{name: "analytics"}
	d := NewDispatcher()
	d.Register(tracker, func(c model.ConsentCategories) bool { return c.Analytics })

	d.Reconcile(context.Background(), analyticsOnly())
	d.Reconcile(context.Background(), model.EssentialOnlyCategories())
	d.Reconcile(context.Background(), model.EssentialOnlyCategories())

	assert.Equal(t, 1, tracker.revokeCalls)
}

func TestReconcileReGrant(t *testing.T) {
	tracker := &countingIntegration{name: "analytics"}
	d := NewDispatcher()
	d.Register(tracker, func(c model.ConsentCategories) bool { return c.Analytics })

	d.Reconcile(context.Background(), analyticsOnly())
	d.Reconcile(context.Background(), model.EssentialOnlyCategories())
	result := d.Reconcile(context.Background(), analyticsOnly())

	// The integration keeps its initialization guard across a revocation, so
	// a re-grant surfaces it as initialized without a duplicate init call.
	assert.Equal(t, 1, tracker.initCalls)
	assert.Equal(t, []string{"analytics"}, result.Initialized)
}

func TestReconcileNotifiesListeners(t *testing.T) {
	d := NewDispatcher()
	var received []model.ConsentCategories
	d.Subscribe(func(c model.ConsentCategories) {
		received = append(received, c)
	})

	d.Reconcile(context.Background(), analyticsOnly())
	d.Reconcile(context.Background(), model.EssentialOnlyCategories())

	require.Len(t, received, 2)
	assert.True(t, received[0].Analytics)
	assert.False(t, received[1].Analytics)
}

func TestDispatcherPermissionTable(t *testing.T) {
	analytics := &countingIntegration{name: "ga4"}
	metrics := &countingIntegration{name: "site_metrics"}
	tagManager := &countingIntegration{name: "gtm"}
	pixel := &countingIntegration{name: "meta_pixel"}

	d := NewDispatcher()
	d.Register(analytics, func(c model.ConsentCategories) bool { return c.Analytics })
	d.Register(metrics, func(c model.ConsentCategories) bool { return c.Analytics })
	d.Register(tagManager, func(c model.ConsentCategories) bool { return c.Analytics || c.Marketing })
	d.Register(pixel, func(c model.ConsentCategories) bool { return c.Marketing })

	result := d.Reconcile(context.Background(), model.ConsentCategories{
		Essential: true,
		Marketing: true,
	})

	// Marketing alone activates the tag manager and the ad pixel but not the
	// analytics integrations.
	assert.ElementsMatch(t, []string{"gtm", "meta_pixel"}, result.Initialized)
	assert.Zero(t, analytics.initCalls)
	assert.Zero(t, metrics.initCalls)
}

func TestDefaultDispatcherSkipsUnconfiguredIntegrations(t *testing.T) {
	// No identifiers configured, so every integration declines to
	// initialize and nothing is reported as active.
	d := NewDefaultDispatcher(config.TrackersConfig{})

	result := d.Reconcile(context.Background(), model.ConsentCategories{
		Essential: true,
		Analytics: true,
		Marketing: true,
	})

	assert.Empty(t, result.Initialized)
	assert.Empty(t, result.Revoked)
}
