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

package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditModel "github.com/wso2/identity-cookie-consent-service/internal/audit/model"
	model "github.com/wso2/identity-cookie-consent-service/internal/consent/model"
	"github.com/wso2/identity-cookie-consent-service/internal/consent/store"
	"github.com/wso2/identity-cookie-consent-service/internal/system/config"
	"github.com/wso2/identity-cookie-consent-service/internal/system/constants"
	"github.com/wso2/identity-cookie-consent-service/internal/system/log"
	"github.com/wso2/identity-cookie-consent-service/internal/trackers"
)

func TestMain(m *testing.M) {
	log.Init("ERROR")
	m.Run()
}

// fakeIntegration mimics a tracker with the standard idempotent init guard.
type fakeIntegration struct {
	name        string
	cookies     []string
	initialized bool
	initCalls   int
	revokeCalls int
}

func (f *fakeIntegration) Name() string { return f.name }

func (f *fakeIntegration) Init(ctx context.Context) error {
	if !f.initialized {
		f.initialized = true
		f.initCalls++
	}
	return nil
}

func (f *fakeIntegration) Revoke(ctx context.Context) error {
	f.revokeCalls++
	return nil
}

func (f *fakeIntegration) IsInitialized() bool { return f.initialized }

func (f *fakeIntegration) CookieNames() []string { return f.cookies }

// fakeAudit captures audit calls synchronously.
type fakeAudit struct {
	decisions   int
	withdrawals int
	lastSource  string
	lastPrefs   model.ConsentPreferences
}

func (f *fakeAudit) RecordDecision(r *http.Request, prefs model.ConsentPreferences, version, source string) {
	f.decisions++
	f.lastPrefs = prefs
	f.lastSource = source
}

func (f *fakeAudit) RecordWithdrawal(r *http.Request) {
	f.withdrawals++
}

func (f *fakeAudit) GetRecentEvents(limit int) ([]auditModel.AuditEvent, error) {
	return nil, nil
}

type fixture struct {
	service   *ConsentService
	store     *store.CookieStore
	analytics *fakeIntegration
	marketing *fakeIntegration
	audit     *fakeAudit
}

func newFixture() *fixture {
	cookieStore := store.NewCookieStore(config.ConsentConfig{})

	analytics := &fakeIntegration{name: "analytics", cookies: []string{"_ga", "_gid"}}
	marketing := &fakeIntegration{name: "marketing", cookies: []string{"_fbp"}}

	dispatcher := trackers.NewDispatcher()
	dispatcher.Register(analytics, func(c model.ConsentCategories) bool { return c.Analytics })
	dispatcher.Register(marketing, func(c model.ConsentCategories) bool { return c.Marketing })

	audit := &fakeAudit{}
	return &fixture{
		service:   NewConsentService(cookieStore, dispatcher, audit),
		store:     cookieStore,
		analytics: analytics,
		marketing: marketing,
		audit:     audit,
	}
}

func requestWithCookies(cookies []*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/consent", nil)
	for _, cookie := range cookies {
		r.AddCookie(cookie)
	}
	return r
}

// ----------------------------------------------------------------------------
// Policy evaluation
// ----------------------------------------------------------------------------

func TestIsAllowedWithoutRecord(t *testing.T) {
	f := newFixture()

	assert.True(t, f.service.IsAllowed(nil, constants.CategoryEssential))
	assert.False(t, f.service.IsAllowed(nil, constants.CategoryFunctional))
	assert.False(t, f.service.IsAllowed(nil, constants.CategoryAnalytics))
	assert.False(t, f.service.IsAllowed(nil, constants.CategoryMarketing))
}

func TestIsAllowedReturnsStoredFlags(t *testing.T) {
	f := newFixture()
	record := &model.ConsentRecord{
		Version: constants.ConsentPolicyVersion,
		Categories: model.ConsentCategories{
			Essential: true,
			Analytics: true,
		},
	}

	assert.True(t, f.service.IsAllowed(record, constants.CategoryAnalytics))
	assert.False(t, f.service.IsAllowed(record, constants.CategoryMarketing))
	assert.False(t, f.service.IsAllowed(record, "unknown"))
}

func TestIsAllowedIgnoresStaleness(t *testing.T) {
	f := newFixture()
	stale := &model.ConsentRecord{
		Version: "0.9",
		Categories: model.ConsentCategories{
			Essential: true,
			Analytics: true,
		},
	}

	// An outdated record still answers with its stored flags; staleness is a
	// separate signal.
	assert.True(t, f.service.IsAllowed(stale, constants.CategoryAnalytics))
	assert.True(t, f.service.IsExpired(stale))
}

func TestIsExpired(t *testing.T) {
	f := newFixture()

	assert.False(t, f.service.IsExpired(nil))
	assert.False(t, f.service.IsExpired(&model.ConsentRecord{Version: constants.ConsentPolicyVersion}))
	assert.True(t, f.service.IsExpired(&model.ConsentRecord{Version: "0.9"}))
}

func TestStatusWithoutRecord(t *testing.T) {
	f := newFixture()

	status := f.service.Status(httptest.NewRequest(http.MethodGet, "/consent", nil))

	assert.False(t, status.HasRecord)
	assert.False(t, status.Expired)
	assert.Nil(t, status.Categories)
}

// ----------------------------------------------------------------------------
// Consent transitions
// ----------------------------------------------------------------------------

func TestDecidePersistsBeforePropagation(t *testing.T) {
	f := newFixture()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/consent", nil)

	record := f.service.Decide(w, r, model.ConsentPreferences{Analytics: true}, constants.SourceBanner)

	assert.True(t, record.Categories.Analytics)
	assert.Equal(t, 1, f.analytics.initCalls)
	assert.Zero(t, f.marketing.initCalls)
	assert.Equal(t, 1, f.audit.decisions)
	assert.Equal(t, constants.SourceBanner, f.audit.lastSource)

	stored := f.store.Read(requestWithCookies(w.Result().Cookies()))
	require.NotNil(t, stored)
	assert.Equal(t, record, *stored)
}

func TestDecideNarrowingRevokesAndPurges(t *testing.T) {
	f := newFixture()

	w1 := httptest.NewRecorder()
	r1 := httptest.NewRequest(http.MethodPost, "/consent", nil)
	f.service.Decide(w1, r1, model.ConsentPreferences{Analytics: true, Marketing: true}, constants.SourceBanner)

	w2 := httptest.NewRecorder()
	r2 := httptest.NewRequest(http.MethodPost, "/consent", nil)
	f.service.Decide(w2, r2, model.ConsentPreferences{Analytics: true}, constants.SourcePreferences)

	assert.Equal(t, 1, f.marketing.revokeCalls)
	assert.Zero(t, f.analytics.revokeCalls)

	purged := false
	for _, cookie := range w2.Result().Cookies() {
		if cookie.Name == "_fbp" && cookie.MaxAge == -1 {
			purged = true
		}
	}
	assert.True(t, purged)
}

func TestWithdrawRevokesEverything(t *testing.T) {
	f := newFixture()

	w1 := httptest.NewRecorder()
	r1 := httptest.NewRequest(http.MethodPost, "/consent", nil)
	f.service.Decide(w1, r1, model.ConsentPreferences{Analytics: true, Marketing: true}, constants.SourceBanner)

	w2 := httptest.NewRecorder()
	r2 := httptest.NewRequest(http.MethodDelete, "/consent", nil)
	f.service.Withdraw(w2, r2)

	assert.Equal(t, 1, f.analytics.revokeCalls)
	assert.Equal(t, 1, f.marketing.revokeCalls)
	assert.Equal(t, 1, f.audit.withdrawals)

	record := f.store.Read(requestWithCookies(w2.Result().Cookies()))
	assert.Nil(t, record)
}

func TestWithdrawWithoutPriorConsentIsSafe(t *testing.T) {
	f := newFixture()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodDelete, "/consent", nil)

	f.service.Withdraw(w, r)

	assert.Zero(t, f.analytics.revokeCalls)
	assert.Zero(t, f.marketing.revokeCalls)
	assert.Equal(t, 1, f.audit.withdrawals)
}

func TestStatusAfterDecide(t *testing.T) {
	f := newFixture()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/consent", nil)
	f.service.Decide(w, r, model.ConsentPreferences{Functional: true}, constants.SourcePreferences)

	status := f.service.Status(requestWithCookies(w.Result().Cookies()))

	assert.True(t, status.HasRecord)
	assert.False(t, status.Expired)
	require.NotNil(t, status.Categories)
	assert.True(t, status.Categories.Functional)
	assert.False(t, status.Categories.Analytics)
	assert.Equal(t, constants.ConsentPolicyVersion, status.Version)
	assert.Equal(t, constants.SourcePreferences, status.Source)
}
