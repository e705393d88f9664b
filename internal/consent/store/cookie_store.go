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
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	model "github.com/wso2/identity-cookie-consent-service/internal/consent/model"
	"github.com/wso2/identity-cookie-consent-service/internal/system/config"
	"github.com/wso2/identity-cookie-consent-service/internal/system/constants"
	"github.com/wso2/identity-cookie-consent-service/internal/system/log"
)

// CookieStore persists consent state in the visitor's cookies. The JSON
// consent record cookie is the source of truth; the per-category cookies are
// a denormalized read cache derived from it on every write. The store is
// constructed once at the application boundary and passed to its consumers.
type CookieStore struct {
	domain        string
	secure        bool
	expiry        time.Duration
	policyVersion string
}

// NewCookieStore creates a CookieStore from the consent configuration.
func NewCookieStore(cfg config.ConsentConfig) *CookieStore {
	return &CookieStore{
		domain:        cfg.CookieDomain,
		secure:        cfg.SecureCookies,
		expiry:        constants.CookieExpiryDays * 24 * time.Hour,
		policyVersion: constants.ConsentPolicyVersion,
	}
}

// PolicyVersion returns the consent policy version new records are written
// with.
func (s *CookieStore) PolicyVersion() string {
	return s.policyVersion
}

// Read parses the persisted consent record from the request. A missing or
// unparseable record is reported as nil; corrupt state fails open to the
// "no consent given" state so the visitor is re-prompted.
func (s *CookieStore) Read(r *http.Request) *model.ConsentRecord {

	cookie, err := r.Cookie(constants.ConsentRecordCookie)
	if err != nil {
		return nil
	}

	decoded, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		log.GetLogger().Debug("Failed to decode consent record cookie.", log.Error(err))
		return nil
	}

	var record model.ConsentRecord
	if err := json.Unmarshal([]byte(decoded), &record); err != nil {
		log.GetLogger().Debug("Failed to parse consent record cookie.", log.Error(err))
		return nil
	}

	return &record
}

// HasRecord reports whether the request carries a readable consent record.
// Callers use this to decide whether to show the consent prompt.
func (s *CookieStore) HasRecord(r *http.Request) bool {
	return s.Read(r) != nil
}

// Write constructs a new consent record from the given preferences, with
// essential forced on, and persists it wholesale: the record cookie, the
// per-category cookies, and the legal acceptance flag. The prior record, if
// any, is replaced.
func (s *CookieStore) Write(w http.ResponseWriter, prefs model.ConsentPreferences, source string) model.ConsentRecord {

	categories := model.CategoriesFromPreferences(prefs)
	record := model.ConsentRecord{
		Version:    s.policyVersion,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Categories: categories,
		Source:     source,
	}

	payload, err := json.Marshal(record)
	if err != nil {
		// Marshalling a struct of booleans and strings cannot fail; the
		// branch exists to satisfy the contract that Write never panics.
		log.GetLogger().Error("Failed to serialize consent record.", log.Error(err))
		return record
	}

	s.setCookie(w, constants.ConsentRecordCookie, url.QueryEscape(string(payload)))
	s.writeCategoryCookies(w, categories)
	s.setCookie(w, constants.LegalAcceptanceCookie, "true")

	return record
}

// Withdraw deletes the consent record and all denormalized per-category
// cookies, returning the visitor to the "no consent given" state. The legal
// acceptance flag is intentionally left in place; withdrawing tracking
// consent does not revoke access to routes already unlocked.
func (s *CookieStore) Withdraw(w http.ResponseWriter) {

	s.deleteCookie(w, constants.ConsentRecordCookie)
	for _, category := range []string{
		constants.CategoryEssential,
		constants.CategoryFunctional,
		constants.CategoryAnalytics,
		constants.CategoryMarketing,
	} {
		s.deleteCookie(w, constants.ConsentCookiePrefix+category)
	}
}

// ExpireCookies instructs the client to delete the named cookies. Used by the
// propagation dispatcher to purge first-party tracking cookies on revocation.
func (s *CookieStore) ExpireCookies(w http.ResponseWriter, names []string) {
	for _, name := range names {
		s.deleteCookie(w, name)
	}
}

// writeCategoryCookies persists the per-category convenience cookies.
func (s *CookieStore) writeCategoryCookies(w http.ResponseWriter, categories model.ConsentCategories) {

	flags := map[string]bool{
		constants.CategoryEssential:  categories.Essential,
		constants.CategoryFunctional: categories.Functional,
		constants.CategoryAnalytics:  categories.Analytics,
		constants.CategoryMarketing:  categories.Marketing,
	}
	for category, allowed := range flags {
		s.setCookie(w, fmt.Sprintf("%s%s", constants.ConsentCookiePrefix, category), strconv.FormatBool(allowed))
	}
}

func (s *CookieStore) setCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   s.domain,
		Expires:  time.Now().Add(s.expiry),
		MaxAge:   int(s.expiry.Seconds()),
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *CookieStore) deleteCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   s.domain,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
	})
}
