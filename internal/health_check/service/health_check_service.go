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
	"errors"
	"fmt"

	"github.com/wso2/identity-cookie-consent-service/internal/audit/store"
	"github.com/wso2/identity-cookie-consent-service/internal/system/log"
)

// HealthCheckServiceInterface defines the service interface.
type HealthCheckServiceInterface interface {
	CheckReadiness() error
}

// HealthCheckService is the default implementation.
type HealthCheckService struct {
	auditStore store.AuditStoreInterface
}

// GetHealthCheckService returns a new instance backed by the given audit store.
func GetHealthCheckService(auditStore store.AuditStoreInterface) HealthCheckServiceInterface {
	return &HealthCheckService{auditStore: auditStore}
}

func (h HealthCheckService) CheckReadiness() error {
	logger := log.GetLogger()
	if logger == nil {
		return errors.New("logger not initialized")
	}

	if h.auditStore == nil {
		return errors.New("audit store not initialized")
	}

	// A lightweight probe to ensure the audit backend is reachable.
	if err := h.auditStore.Ping(); err != nil {
		return fmt.Errorf("audit store connectivity check failed: %v", err)
	}

	return nil
}
