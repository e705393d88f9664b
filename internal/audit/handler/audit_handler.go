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
	"net/http"
	"strconv"

	"github.com/wso2/identity-cookie-consent-service/internal/audit/model"
	"github.com/wso2/identity-cookie-consent-service/internal/audit/service"
	syscontext "github.com/wso2/identity-cookie-consent-service/internal/system/context"
	"github.com/wso2/identity-cookie-consent-service/internal/system/errors"
	"github.com/wso2/identity-cookie-consent-service/internal/system/security"
	"github.com/wso2/identity-cookie-consent-service/internal/system/utils"
)

const (
	defaultEventLimit = 100
	maxEventLimit     = 1000
)

type auditEventsResponse struct {
	Events []model.AuditEvent `json:"events"`
	Count  int                `json:"count"`
}

// AuditHandler exposes recorded consent audit events to administrators.
type AuditHandler struct {
	service service.AuditServiceInterface
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(svc service.AuditServiceInterface) *AuditHandler {
	return &AuditHandler{service: svc}
}

// GetAuditEvents handles the admin request for recent consent audit events.
func (h *AuditHandler) GetAuditEvents(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAdminRequest(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	limit := defaultEventLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxEventLimit {
			utils.HandleError(w, errors.NewClientError(errors.ErrorMessage{
				Code:        errors.BAD_REQUEST.Code,
				Message:     errors.BAD_REQUEST.Message,
				Description: "Query parameter limit must be an integer between 1 and 1000.",
			}, http.StatusBadRequest))
			return
		}
		limit = parsed
	}

	events, err := h.service.GetRecentEvents(limit)
	if err != nil {
		utils.HandleError(w, errors.NewServerErrorWithTraceID(errors.FETCH_CONSENT_AUDIT_EVENTS,
			err, syscontext.GetTraceID(r.Context())))
		return
	}
	if events == nil {
		events = []model.AuditEvent{}
	}

	utils.WriteJSONResponse(w, http.StatusOK, auditEventsResponse{
		Events: events,
		Count:  len(events),
	})
}
