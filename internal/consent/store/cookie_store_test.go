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

package store

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/wso2/identity-cookie-consent-service/internal/consent/model"
	"github.com/wso2/identity-cookie-consent-service/internal/system/config"
	"github.com/wso2/identity-cookie-consent-service/internal/system/constants"
	"github.com/wso2/identity-cookie-consent-service/internal/system/log"
)

func TestMain(m *testing.M) {
	log.Init("ERROR")
	m.Run()
}

func newTestStore() *CookieStore {
	return NewCookieStore(config.ConsentConfig{})
}

func requestWithCookies(cookies []*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/consent", nil)
	for _, cookie := range cookies {
		r.AddCookie(cookie)
	}
	return r
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestReadWithoutRecord(t *testing.T) {
	store := newTestStore()
	r := httptest.NewRequest(http.MethodGet, "/consent", nil)

	assert.Nil(t, store.Read(r))
	assert.False(t, store.HasRecord(r))
}

func TestWriteThenRead(t *testing.T) {
	store := newTestStore()
	w := httptest.NewRecorder()

	written := store.Write(w, model.ConsentPreferences{
		Functional: true,
		Analytics:  true,
		Marketing:  false,
	}, constants.SourceBanner)

	record := store.Read(requestWithCookies(w.Result().Cookies()))
	require.NotNil(t, record)
	assert.Equal(t, written, *record)
	assert.True(t, record.Categories.Essential)
	assert.True(t, record.Categories.Functional)
	assert.True(t, record.Categories.Analytics)
	assert.False(t, record.Categories.Marketing)
	assert.Equal(t, constants.ConsentPolicyVersion, record.Version)
	assert.Equal(t, constants.SourceBanner, record.Source)
	assert.NotEmpty(t, record.Timestamp)
}

func TestWriteForcesEssentialOn(t *testing.T) {
	store := newTestStore()
	w := httptest.NewRecorder()

	record := store.Write(w, model.ConsentPreferences{}, constants.SourceBanner)

	assert.True(t, record.Categories.Essential)
	cookie := cookieByName(w.Result().Cookies(), constants.ConsentCookiePrefix+constants.CategoryEssential)
	require.NotNil(t, cookie)
	assert.Equal(t, "true", cookie.Value)
}

func TestWriteEmitsCategoryAndLegalCookies(t *testing.T) {
	store := newTestStore()
	w := httptest.NewRecorder()

	store.Write(w, model.ConsentPreferences{Analytics: true}, constants.SourcePreferences)

	cookies := w.Result().Cookies()
	expected := map[string]string{
		constants.ConsentCookiePrefix + constants.CategoryEssential:  "true",
		constants.ConsentCookiePrefix + constants.CategoryFunctional: "false",
		constants.ConsentCookiePrefix + constants.CategoryAnalytics:  "true",
		constants.ConsentCookiePrefix + constants.CategoryMarketing:  "false",
		constants.LegalAcceptanceCookie:                              "true",
	}
	for name, value := range expected {
		cookie := cookieByName(cookies, name)
		require.NotNil(t, cookie, "expected cookie %s", name)
		assert.Equal(t, value, cookie.Value)
		assert.Equal(t, "/", cookie.Path)
		assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
		assert.Positive(t, cookie.MaxAge)
	}
	require.NotNil(t, cookieByName(cookies, constants.ConsentRecordCookie))
}

func TestReadCorruptRecordReturnsNil(t *testing.T) {
	store := newTestStore()

	r := requestWithCookies([]*http.Cookie{{
		Name:  constants.ConsentRecordCookie,
		Value: "not-json",
	}})

	assert.Nil(t, store.Read(r))
	assert.False(t, store.HasRecord(r))
}

func TestWithdrawDeletesConsentKeepsLegalFlag(t *testing.T) {
	store := newTestStore()
	w := httptest.NewRecorder()

	store.Withdraw(w)

	cookies := w.Result().Cookies()
	deleted := []string{
		constants.ConsentRecordCookie,
		constants.ConsentCookiePrefix + constants.CategoryEssential,
		constants.ConsentCookiePrefix + constants.CategoryFunctional,
		constants.ConsentCookiePrefix + constants.CategoryAnalytics,
		constants.ConsentCookiePrefix + constants.CategoryMarketing,
	}
	for _, name := range deleted {
		cookie := cookieByName(cookies, name)
		require.NotNil(t, cookie, "expected deletion of cookie %s", name)
		assert.Equal(t, -1, cookie.MaxAge)
	}
	assert.Nil(t, cookieByName(cookies, constants.LegalAcceptanceCookie))
}

func TestExpireCookies(t *testing.T) {
	store := newTestStore()
	w := httptest.NewRecorder()

	store.ExpireCookies(w, []string{"_ga", "_gid"})

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 2)
	for _, cookie := range cookies {
		assert.Equal(t, -1, cookie.MaxAge)
		assert.Empty(t, cookie.Value)
	}
}
