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
	"net/http"

	auditService "github.com/wso2/identity-cookie-consent-service/internal/audit/service"
	model "github.com/wso2/identity-cookie-consent-service/internal/consent/model"
	"github.com/wso2/identity-cookie-consent-service/internal/consent/store"
	"github.com/wso2/identity-cookie-consent-service/internal/system/constants"
	syscontext "github.com/wso2/identity-cookie-consent-service/internal/system/context"
	"github.com/wso2/identity-cookie-consent-service/internal/system/log"
	"github.com/wso2/identity-cookie-consent-service/internal/trackers"
)

// ConsentServiceInterface is the consent policy engine and the entry point
// for consent transitions.
type ConsentServiceInterface interface {
	IsAllowed(record *model.ConsentRecord, category string) bool
	IsExpired(record *model.ConsentRecord) bool
	Status(r *http.Request) model.ConsentStatus
	Decide(w http.ResponseWriter, r *http.Request, prefs model.ConsentPreferences, source string) model.ConsentRecord
	Withdraw(w http.ResponseWriter, r *http.Request)
}

// ConsentService is the default implementation. All collaborators are
// explicit dependencies wired at the application boundary.
type ConsentService struct {
	store      *store.CookieStore
	dispatcher *trackers.Dispatcher
	audit      auditService.AuditServiceInterface
}

// NewConsentService creates a ConsentService.
func NewConsentService(cookieStore *store.CookieStore, dispatcher *trackers.Dispatcher,
	audit auditService.AuditServiceInterface) *ConsentService {

	return &ConsentService{
		store:      cookieStore,
		dispatcher: dispatcher,
		audit:      audit,
	}
}

// IsAllowed reports whether the given category is permitted under the record.
// With no record only essential is allowed: denying tracking by default is
// always safe. With a record, the stored boolean is returned verbatim.
// Staleness is never evaluated here; expired and denied must stay
// distinguishable for callers.
func (cs *ConsentService) IsAllowed(record *model.ConsentRecord, category string) bool {

	if record == nil {
		return category == constants.CategoryEssential
	}
	return record.Categories.Get(category)
}

// IsExpired reports whether the record predates the current policy version
// and the visitor should be re-prompted. A nil record is not expired; it is
// absent.
func (cs *ConsentService) IsExpired(record *model.ConsentRecord) bool {

	if record == nil {
		return false
	}
	return record.Version != cs.store.PolicyVersion()
}

// Status returns the informational consent state for the request.
func (cs *ConsentService) Status(r *http.Request) model.ConsentStatus {

	record := cs.store.Read(r)
	if record == nil {
		return model.ConsentStatus{}
	}
	return model.ConsentStatus{
		HasRecord:  true,
		Expired:    cs.IsExpired(record),
		Categories: &record.Categories,
		Version:    record.Version,
		Source:     record.Source,
	}
}

// Decide persists a new consent record and propagates it. Persistence happens
// synchronously before the dispatcher runs, so the response never closes the
// prompt while trackers still observe the old state. Audit recording is
// fire-and-forget.
func (cs *ConsentService) Decide(w http.ResponseWriter, r *http.Request,
	prefs model.ConsentPreferences, source string) model.ConsentRecord {

	record := cs.store.Write(w, prefs, source)

	result := cs.dispatcher.Reconcile(r.Context(), record.Categories)
	cs.store.ExpireCookies(w, result.PurgedCookies)

	cs.audit.RecordDecision(r, prefs, record.Version, source)
	log.GetLogger().Audit(log.AuditEvent{
		InitiatorType: "visitor",
		ActionID:      log.ActionRecordConsent,
		TraceID:       syscontext.GetTraceID(r.Context()),
		Data: map[string]interface{}{
			"source":      source,
			"initialized": result.Initialized,
			"revoked":     result.Revoked,
		},
	})
	return record
}

// Withdraw deletes the consent record, revokes all non-essential trackers,
// and purges their first-party cookies. The legal acceptance flag is kept.
func (cs *ConsentService) Withdraw(w http.ResponseWriter, r *http.Request) {

	cs.store.Withdraw(w)

	result := cs.dispatcher.Reconcile(r.Context(), model.EssentialOnlyCategories())
	cs.store.ExpireCookies(w, result.PurgedCookies)

	cs.audit.RecordWithdrawal(r)
	log.GetLogger().Audit(log.AuditEvent{
		InitiatorType: "visitor",
		ActionID:      log.ActionWithdrawConsent,
		TraceID:       syscontext.GetTraceID(r.Context()),
		Data: map[string]interface{}{
			"revoked": result.Revoked,
		},
	})
}
