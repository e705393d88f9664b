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

package managers

import (
	"net/http"

	auditService "github.com/wso2/identity-cookie-consent-service/internal/audit/service"
	auditStore "github.com/wso2/identity-cookie-consent-service/internal/audit/store"
	consentService "github.com/wso2/identity-cookie-consent-service/internal/consent/service"
	consentStore "github.com/wso2/identity-cookie-consent-service/internal/consent/store"
	geoLookup "github.com/wso2/identity-cookie-consent-service/internal/geo/lookup"
	geoService "github.com/wso2/identity-cookie-consent-service/internal/geo/service"
	"github.com/wso2/identity-cookie-consent-service/internal/legal"
	"github.com/wso2/identity-cookie-consent-service/internal/system/config"
	"github.com/wso2/identity-cookie-consent-service/internal/system/crypto"
	"github.com/wso2/identity-cookie-consent-service/internal/system/log"
	"github.com/wso2/identity-cookie-consent-service/internal/system/services"
	"github.com/wso2/identity-cookie-consent-service/internal/trackers"
)

type ServiceManagerInterface interface {
	RegisterServices(apiBasePath string) error
}

type ServiceManager struct {
	mux *http.ServeMux
}

// NewServiceManager creates a new instance of ServiceManager.
func NewServiceManager(mux *http.ServeMux) ServiceManagerInterface {

	return &ServiceManager{
		mux: mux,
	}
}

// RegisterServices wires the shared collaborators and mounts every HTTP
// service on the mux.
func (sm *ServiceManager) RegisterServices(apiBasePath string) error {

	logger := log.GetLogger()
	cfg := config.GetWCCSRuntime().Config

	cookieStore := consentStore.NewCookieStore(cfg.Consent)
	dispatcher := trackers.NewDefaultDispatcher(cfg.Trackers)
	gate := legal.NewGate(cfg.Consent)

	var cryptoService *crypto.CryptoService
	if cfg.Crypto.EncryptionKey != "" {
		var err error
		cryptoService, err = crypto.NewCryptoService(cfg.Crypto.EncryptionKey)
		if err != nil {
			return err
		}
	} else {
		logger.Warn("Encryption key is not configured. Audit IP addresses will be stored unencrypted.")
	}

	eventStore, err := auditStore.NewAuditStore(cfg.Audit)
	if err != nil {
		return err
	}
	auditSvc := auditService.NewAuditService(eventStore, cryptoService)

	consentSvc := consentService.NewConsentService(cookieStore, dispatcher, auditSvc)
	geoSvc := geoService.NewGeoService(geoLookup.NewIPAPIClient(cfg.Geo))

	services.NewConsentService(sm.mux, apiBasePath, consentSvc)
	services.NewGeoService(sm.mux, apiBasePath, geoSvc)
	services.NewLegalService(sm.mux, apiBasePath, gate)
	services.NewAuditService(sm.mux, apiBasePath, auditSvc)
	services.NewHealthService(sm.mux, eventStore)

	return nil
}
