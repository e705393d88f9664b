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

package constants

import "time"

// ApiBasePath is the base path for all public API endpoints.
const ApiBasePath = "/api/v1"

// ContextKey is the type used for request-scoped context values.
type ContextKey string

const (
	TraceIDContextKey ContextKey = "traceId"
)

// Consent categories. Essential is display-only and always allowed; it is
// never persisted as a user choice.
const (
	CategoryEssential  = "essential"
	CategoryFunctional = "functional"
	CategoryAnalytics  = "analytics"
	CategoryMarketing  = "marketing"
)

// AllowedConsentCategories defines the valid set of consent categories.
var AllowedConsentCategories = map[string]bool{
	CategoryEssential:  true,
	CategoryFunctional: true,
	CategoryAnalytics:  true,
	CategoryMarketing:  true,
}

// Consent decision surfaces.
const (
	SourceBanner      = "banner"
	SourcePreferences = "preferences"
)

// AllowedConsentSources defines the valid set of consent decision surfaces.
var AllowedConsentSources = map[string]bool{
	SourceBanner:      true,
	SourcePreferences: true,
}

// Cookie names for the persisted consent state. The consent record cookie is
// the source of truth; the per-category cookies are a denormalized read cache
// derived from it.
const (
	ConsentRecordCookie   = "cookie_consent"
	ConsentCookiePrefix   = "consent_"
	LegalAcceptanceCookie = "legal_accepted"
	LocaleCookie          = "preferred_locale"
)

// ConsentPolicyVersion identifies the consent policy schema the current
// deployment writes. Stored records carrying a different version are reported
// as expired, never reinterpreted.
const ConsentPolicyVersion = "1.0"

// CookieExpiryDays is the shared lifetime of all consent-related cookies.
const CookieExpiryDays = 365

// Request headers consulted for client IP extraction, in precedence order.
const (
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderCFConnectingIP = "CF-Connecting-IP"
	HeaderRealIP         = "X-Real-IP"
	HeaderCFIPCountry    = "CF-IPCountry"
	HeaderCountryCode    = "X-Country-Code"
)

// GeoCacheTTL bounds how long a resolved classification is reused per IP.
const GeoCacheTTL = time.Hour

// Audit datasource types.
const (
	AuditDatasourcePostgres = "postgres"
	AuditDatasourceMongo    = "mongo"
)

// Truncation limits applied to audit event fields before persistence.
const (
	AuditIPAddressMaxLength = 50
	AuditUserAgentMaxLength = 200
)

// DefaultQueueSize is the buffer size of the audit event queue.
const DefaultQueueSize = 100
