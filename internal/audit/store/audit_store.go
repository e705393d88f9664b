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

package store

import (
	"fmt"

	model "github.com/wso2/identity-cookie-consent-service/internal/audit/model"
	"github.com/wso2/identity-cookie-consent-service/internal/system/config"
	"github.com/wso2/identity-cookie-consent-service/internal/system/constants"
)

// AuditStoreInterface is the persistence contract for consent audit events.
type AuditStoreInterface interface {
	AddAuditEvent(event model.AuditEvent) error
	GetRecentAuditEvents(limit int) ([]model.AuditEvent, error)
	Ping() error
}

// NewAuditStore creates the audit store for the configured datasource.
// Postgres is the default.
func NewAuditStore(cfg config.AuditConfig) (AuditStoreInterface, error) {

	switch cfg.Datasource {
	case constants.AuditDatasourceMongo:
		return NewMongoAuditStore(cfg.Mongo)
	case constants.AuditDatasourcePostgres, "":
		return NewPostgresAuditStore(), nil
	default:
		return nil, fmt.Errorf("unsupported audit datasource: %s", cfg.Datasource)
	}
}
