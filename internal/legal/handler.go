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

package legal

import (
	"net/http"

	"github.com/wso2/identity-cookie-consent-service/internal/system/utils"
)

type acceptanceResponse struct {
	Accepted bool `json:"accepted"`
}

// Handler exposes the legal-acceptance status over HTTP.
type Handler struct {
	gate *Gate
}

// NewHandler creates a new legal-acceptance handler.
func NewHandler(gate *Gate) *Handler {
	return &Handler{gate: gate}
}

// GetAcceptance handles the legal acceptance status request.
func (h *Handler) GetAcceptance(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, acceptanceResponse{
		Accepted: h.gate.HasAccepted(r),
	})
}
