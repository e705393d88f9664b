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
	"time"

	"github.com/google/uuid"
	model "github.com/wso2/identity-cookie-consent-service/internal/audit/model"
	"github.com/wso2/identity-cookie-consent-service/internal/audit/store"
	consentModel "github.com/wso2/identity-cookie-consent-service/internal/consent/model"
	"github.com/wso2/identity-cookie-consent-service/internal/system/constants"
	"github.com/wso2/identity-cookie-consent-service/internal/system/crypto"
	"github.com/wso2/identity-cookie-consent-service/internal/system/log"
	"github.com/wso2/identity-cookie-consent-service/internal/system/utils"
)

// AuditServiceInterface records consent decisions for compliance auditing.
// Recording is fire-and-forget: it never blocks or fails the consent
// transition that triggered it.
type AuditServiceInterface interface {
	RecordDecision(r *http.Request, prefs consentModel.ConsentPreferences, version, source string)
	RecordWithdrawal(r *http.Request)
	GetRecentEvents(limit int) ([]model.AuditEvent, error)
}

// AuditService is the default implementation, backed by a queue drained by a
// single worker goroutine.
type AuditService struct {
	store  store.AuditStoreInterface
	crypto *crypto.CryptoService
	queue  chan model.AuditEvent
}

// NewAuditService creates an AuditService and starts its worker. The crypto
// service may be nil, in which case IP addresses are persisted truncated but
// unencrypted.
func NewAuditService(auditStore store.AuditStoreInterface, cryptoService *crypto.CryptoService) *AuditService {

	s := &AuditService{
		store:  auditStore,
		crypto: cryptoService,
		queue:  make(chan model.AuditEvent, constants.DefaultQueueSize),
	}
	go s.drainQueue()
	return s
}

// RecordDecision enqueues an audit event for a consent decision.
func (s *AuditService) RecordDecision(r *http.Request, prefs consentModel.ConsentPreferences, version, source string) {

	event := model.AuditEvent{
		EventID:    uuid.New().String(),
		EventType:  model.EventTypeDecision,
		Functional: prefs.Functional,
		Analytics:  prefs.Analytics,
		Marketing:  prefs.Marketing,
		Version:    version,
		Source:     source,
		IPAddress:  s.protectIP(utils.ExtractClientIP(r.Header)),
		UserAgent:  utils.Truncate(r.UserAgent(), constants.AuditUserAgentMaxLength),
		RecordedAt: time.Now().UTC().Format(time.RFC3339),
	}
	s.enqueue(event)
}

// RecordWithdrawal enqueues an audit event for a consent withdrawal.
func (s *AuditService) RecordWithdrawal(r *http.Request) {

	event := model.AuditEvent{
		EventID:    uuid.New().String(),
		EventType:  model.EventTypeWithdrawal,
		Version:    constants.ConsentPolicyVersion,
		IPAddress:  s.protectIP(utils.ExtractClientIP(r.Header)),
		UserAgent:  utils.Truncate(r.UserAgent(), constants.AuditUserAgentMaxLength),
		RecordedAt: time.Now().UTC().Format(time.RFC3339),
	}
	s.enqueue(event)
}

// GetRecentEvents returns the most recent audit events, newest first.
func (s *AuditService) GetRecentEvents(limit int) ([]model.AuditEvent, error) {
	return s.store.GetRecentAuditEvents(limit)
}

// enqueue hands an event to the worker without blocking; when the queue is
// full the event is dropped and logged, never the request delayed.
func (s *AuditService) enqueue(event model.AuditEvent) {
	select {
	case s.queue <- event:
	default:
		log.GetLogger().Warn("Audit event queue is full; dropping event.",
			log.String("eventId", event.EventID))
	}
}

func (s *AuditService) drainQueue() {
	for event := range s.queue {
		if err := s.store.AddAuditEvent(event); err != nil {
			log.GetLogger().Warn("Failed to persist audit event.",
				log.String("eventId", event.EventID), log.Error(err))
		}
	}
}

// protectIP truncates the client IP and encrypts it at rest.
func (s *AuditService) protectIP(ip string) string {
	if ip == "" {
		return ""
	}
	ip = utils.Truncate(ip, constants.AuditIPAddressMaxLength)
	if s.crypto == nil {
		return ip
	}
	encrypted, err := s.crypto.Encrypt(ip)
	if err != nil {
		log.GetLogger().Warn("Failed to encrypt audit IP address; omitting it.", log.Error(err))
		return ""
	}
	return encrypted
}
