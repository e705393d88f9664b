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

package services

import (
	"net/http"

	"github.com/wso2/identity-cookie-consent-service/internal/audit/store"
	"github.com/wso2/identity-cookie-consent-service/internal/health_check/handler"
)

// HealthService handles routing for health and readiness endpoints.
type HealthService struct {
	healthHandler *handler.HealthHandler
}

// NewHealthService creates a new HealthService instance. Health endpoints are
// served outside the API base path.
func NewHealthService(mux *http.ServeMux, auditStore store.AuditStoreInterface) *HealthService {

	instance := &HealthService{
		healthHandler: handler.NewHealthHandler(auditStore),
	}
	instance.RegisterRoutes(mux)

	return instance
}

func (s *HealthService) RegisterRoutes(mux *http.ServeMux) {

	mux.HandleFunc("GET /health", s.healthHandler.HandleHealth)
	mux.HandleFunc("GET /ready", s.healthHandler.HandleReadiness)
}
