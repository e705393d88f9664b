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
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/wso2/identity-cookie-consent-service/internal/audit/model"
	consentModel "github.com/wso2/identity-cookie-consent-service/internal/consent/model"
	"github.com/wso2/identity-cookie-consent-service/internal/system/constants"
	"github.com/wso2/identity-cookie-consent-service/internal/system/crypto"
	"github.com/wso2/identity-cookie-consent-service/internal/system/log"
)

const testEncryptionKey = "6368616e676520746869732070617373776f726420746f206120736563726574"

func TestMain(m *testing.M) {
	log.Init("ERROR")
	m.Run()
}

// memoryStore is a thread-safe in-memory audit store.
type memoryStore struct {
	mu     sync.Mutex
	events []model.AuditEvent
}

func (m *memoryStore) AddAuditEvent(event model.AuditEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *memoryStore) GetRecentAuditEvents(limit int) ([]model.AuditEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit > len(m.events) {
		limit = len(m.events)
	}
	out := make([]model.AuditEvent, 0, limit)
	for i := len(m.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.events[i])
	}
	return out, nil
}

func (m *memoryStore) Ping() error { return nil }

func (m *memoryStore) snapshot() []model.AuditEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.AuditEvent(nil), m.events...)
}

func decisionRequest() *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/consent", nil)
	r.Header.Set(constants.HeaderForwardedFor, "203.0.113.10")
	r.Header.Set("User-Agent", "consent-test-agent")
	return r
}

func TestRecordDecisionPersistsEvent(t *testing.T) {
	store := &memoryStore{}
	service := NewAuditService(store, nil)

	service.RecordDecision(decisionRequest(), consentModel.ConsentPreferences{
		Functional: true,
		Analytics:  true,
	}, constants.ConsentPolicyVersion, constants.SourceBanner)

	require.Eventually(t, func() bool {
		return len(store.snapshot()) == 1
	}, time.Second, 10*time.Millisecond)

	event := store.snapshot()[0]
	assert.Equal(t, model.EventTypeDecision, event.EventType)
	assert.NotEmpty(t, event.EventID)
	assert.True(t, event.Functional)
	assert.True(t, event.Analytics)
	assert.False(t, event.Marketing)
	assert.Equal(t, constants.ConsentPolicyVersion, event.Version)
	assert.Equal(t, constants.SourceBanner, event.Source)
	assert.Equal(t, "203.0.113.10", event.IPAddress)
	assert.Equal(t, "consent-test-agent", event.UserAgent)
	assert.NotEmpty(t, event.RecordedAt)
}

func TestRecordWithdrawalPersistsEvent(t *testing.T) {
	store := &memoryStore{}
	service := NewAuditService(store, nil)

	service.RecordWithdrawal(decisionRequest())

	require.Eventually(t, func() bool {
		return len(store.snapshot()) == 1
	}, time.Second, 10*time.Millisecond)

	event := store.snapshot()[0]
	assert.Equal(t, model.EventTypeWithdrawal, event.EventType)
	assert.False(t, event.Functional)
	assert.False(t, event.Analytics)
	assert.False(t, event.Marketing)
	assert.Empty(t, event.Source)
}

func TestRecordDecisionEncryptsIP(t *testing.T) {
	store := &memoryStore{}
	cryptoService, err := crypto.NewCryptoService(testEncryptionKey)
	require.NoError(t, err)
	service := NewAuditService(store, cryptoService)

	service.RecordDecision(decisionRequest(), consentModel.ConsentPreferences{},
		constants.ConsentPolicyVersion, constants.SourceBanner)

	require.Eventually(t, func() bool {
		return len(store.snapshot()) == 1
	}, time.Second, 10*time.Millisecond)

	event := store.snapshot()[0]
	assert.NotEqual(t, "203.0.113.10", event.IPAddress)

	decrypted, err := cryptoService.Decrypt(event.IPAddress)
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.10", decrypted)
}

func TestRecordDecisionTruncatesUserAgent(t *testing.T) {
	store := &memoryStore{}
	service := NewAuditService(store, nil)

	longAgent := make([]byte, constants.AuditUserAgentMaxLength*2)
	for i := range longAgent {
		longAgent[i] = 'a'
	}
	r := decisionRequest()
	r.Header.Set("User-Agent", string(longAgent))

	service.RecordDecision(r, consentModel.ConsentPreferences{},
		constants.ConsentPolicyVersion, constants.SourceBanner)

	require.Eventually(t, func() bool {
		return len(store.snapshot()) == 1
	}, time.Second, 10*time.Millisecond)

	assert.Len(t, store.snapshot()[0].UserAgent, constants.AuditUserAgentMaxLength)
}

func TestGetRecentEventsNewestFirst(t *testing.T) {
	store := &memoryStore{}
	service := NewAuditService(store, nil)

	service.RecordWithdrawal(decisionRequest())
	service.RecordDecision(decisionRequest(), consentModel.ConsentPreferences{Analytics: true},
		constants.ConsentPolicyVersion, constants.SourcePreferences)

	require.Eventually(t, func() bool {
		return len(store.snapshot()) == 2
	}, time.Second, 10*time.Millisecond)

	events, err := service.GetRecentEvents(10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, model.EventTypeDecision, events[0].EventType)
	assert.Equal(t, model.EventTypeWithdrawal, events[1].EventType)
}
