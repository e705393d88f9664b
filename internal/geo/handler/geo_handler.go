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

	"github.com/wso2/identity-cookie-consent-service/internal/geo/service"
	"github.com/wso2/identity-cookie-consent-service/internal/system/utils"
)

// geoCacheControl advertises a shared one-hour cache: geolocation is stable
// short-term.
const geoCacheControl = "public, s-maxage=3600, stale-while-revalidate=1800"

// GeoHandler exposes the region classification endpoint.
type GeoHandler struct {
	service service.GeoServiceInterface
}

// NewGeoHandler creates a new GeoHandler.
func NewGeoHandler(geoService service.GeoServiceInterface) *GeoHandler {
	return &GeoHandler{
		service: geoService,
	}
}

// GetGeo handles GET /geo. It always answers 200: classification failures
// degrade to the non-EU default inside the service.
func (h *GeoHandler) GetGeo(w http.ResponseWriter, r *http.Request) {

	classification := h.service.Classify(r.Context(), r.Header)

	w.Header().Set("Cache-Control", geoCacheControl)
	utils.WriteJSONResponse(w, http.StatusOK, classification)
}
