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
	"time"

	consentModel "github.com/wso2/identity-cookie-consent-service/internal/consent/model"
	"github.com/wso2/identity-cookie-consent-service/internal/consent/service"
	"github.com/wso2/identity-cookie-consent-service/internal/system/constants"
	"github.com/wso2/identity-cookie-consent-service/internal/system/errors"
	"github.com/wso2/identity-cookie-consent-service/internal/system/utils"
)

// ConsentHandler exposes the consent endpoints.
type ConsentHandler struct {
	service service.ConsentServiceInterface
}

// NewConsentHandler creates a new ConsentHandler.
func NewConsentHandler(consentService service.ConsentServiceInterface) *ConsentHandler {
	return &ConsentHandler{
		service: consentService,
	}
}

// GetConsent handles GET /consent. Informational only: the cookies carried by
// the request are the authoritative state.
func (h *ConsentHandler) GetConsent(w http.ResponseWriter, r *http.Request) {

	status := h.service.Status(r)
	utils.WriteJSONResponse(w, http.StatusOK, status)
}

// UpdateConsent handles POST /consent.
func (h *ConsentHandler) UpdateConsent(w http.ResponseWriter, r *http.Request) {

	var request consentModel.ConsentUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.CONSENT_DECODE_BAD_REQUEST.Code,
			Message:     errors.CONSENT_DECODE_BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "consent preferences"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	if request.Functional == nil || request.Analytics == nil || request.Marketing == nil {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.CONSENT_PREFERENCES_VALIDATION.Code,
			Message:     errors.CONSENT_PREFERENCES_VALIDATION.Message,
			Description: "functional, analytics, and marketing must all be provided as booleans.",
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	source := request.Source
	if source == "" {
		source = constants.SourceBanner
	}
	if !constants.AllowedConsentSources[source] {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.CONSENT_PREFERENCES_VALIDATION.Code,
			Message:     errors.CONSENT_PREFERENCES_VALIDATION.Message,
			Description: "source must be one of: banner, preferences.",
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	prefs := consentModel.ConsentPreferences{
		Functional: *request.Functional,
		Analytics:  *request.Analytics,
		Marketing:  *request.Marketing,
	}
	record := h.service.Decide(w, r, prefs, source)

	utils.WriteJSONResponse(w, http.StatusOK, consentModel.ConsentUpdateResponse{
		Success:   true,
		Timestamp: record.Timestamp,
	})
}

// WithdrawConsent handles DELETE /consent.
func (h *ConsentHandler) WithdrawConsent(w http.ResponseWriter, r *http.Request) {

	h.service.Withdraw(w, r)

	utils.WriteJSONResponse(w, http.StatusOK, consentModel.ConsentUpdateResponse{
		Success:   true,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
