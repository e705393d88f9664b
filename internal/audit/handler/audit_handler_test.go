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

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/wso2/identity-cookie-consent-service/internal/audit/model"
	consentModel "github.com/wso2/identity-cookie-consent-service/internal/consent/model"
	"github.com/wso2/identity-cookie-consent-service/internal/system/config"
	"github.com/wso2/identity-cookie-consent-service/internal/system/log"
)

const (
	testSecret   = "admin-test-secret"
	testAudience = "wccs-admin"
)

func TestMain(m *testing.M) {
	log.Init("ERROR")
	config.OverrideWCCSRuntime("", &config.Config{
		AdminAPI: config.AdminAPIConfig{
			JWTSecret:   testSecret,
			JWTAudience: testAudience,
		},
	})
	m.Run()
}

// stubAuditService returns canned events.
type stubAuditService struct {
	events    []model.AuditEvent
	err       error
	lastLimit int
}

func (s *stubAuditService) RecordDecision(r *http.Request, prefs consentModel.ConsentPreferences, version, source string) {
}

func (s *stubAuditService) RecordWithdrawal(r *http.Request) {}

func (s *stubAuditService) GetRecentEvents(limit int) ([]model.AuditEvent, error) {
	s.lastLimit = limit
	return s.events, s.err
}

func adminToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin",
		"aud": testAudience,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func auditRequest(t *testing.T, target string, authorized bool) *http.Request {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	if authorized {
		r.Header.Set("Authorization", "Bearer "+adminToken(t))
	}
	return r
}

func TestGetAuditEventsRequiresToken(t *testing.T) {
	handler := NewAuditHandler(&stubAuditService{})

	w := httptest.NewRecorder()
	handler.GetAuditEvents(w, auditRequest(t, "/consent/audit", false))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetAuditEventsSuccess(t *testing.T) {
	stub := &stubAuditService{events: []model.AuditEvent{
		{EventID: "evt-1", EventType: model.EventTypeDecision},
		{EventID: "evt-2", EventType: model.EventTypeWithdrawal},
	}}
	handler := NewAuditHandler(stub)

	w := httptest.NewRecorder()
	handler.GetAuditEvents(w, auditRequest(t, "/consent/audit", true))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 100, stub.lastLimit)

	var response struct {
		Events []model.AuditEvent `json:"events"`
		Count  int                `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 2, response.Count)
	require.Len(t, response.Events, 2)
	assert.Equal(t, "evt-1", response.Events[0].EventID)
}

func TestGetAuditEventsCustomLimit(t *testing.T) {
	stub := &stubAuditService{}
	handler := NewAuditHandler(stub)

	w := httptest.NewRecorder()
	handler.GetAuditEvents(w, auditRequest(t, "/consent/audit?limit=25", true))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 25, stub.lastLimit)
}

func TestGetAuditEventsInvalidLimit(t *testing.T) {
	handler := NewAuditHandler(&stubAuditService{})

	for _, limit := range []string{"0", "-5", "abc", "5000"} {
		w := httptest.NewRecorder()
		handler.GetAuditEvents(w, auditRequest(t, "/consent/audit?limit="+limit, true))

		assert.Equal(t, http.StatusBadRequest, w.Code, "limit: %s", limit)
	}
}

func TestGetAuditEventsEmptyStoreReturnsEmptyList(t *testing.T) {
	handler := NewAuditHandler(&stubAuditService{})

	w := httptest.NewRecorder()
	handler.GetAuditEvents(w, auditRequest(t, "/consent/audit", true))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"events": [], "count": 0}`, w.Body.String())
}
