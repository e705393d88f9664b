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
	"time"

	"github.com/wso2/identity-cookie-consent-service/internal/system/config"
	"github.com/wso2/identity-cookie-consent-service/internal/system/constants"
	"github.com/wso2/identity-cookie-consent-service/internal/system/errors"
	"github.com/wso2/identity-cookie-consent-service/internal/system/utils"
)

// Gate is the legal-acceptance navigation gate. It unlocks once any consent
// decision has been recorded, accept or reject alike, and it stays unlocked
// even after a later withdrawal. It is not a privacy control and must never
// be used to answer whether a tracking category is allowed.
type Gate struct {
	domain string
	secure bool
	expiry time.Duration
}

// NewGate creates a Gate from the consent configuration.
func NewGate(cfg config.ConsentConfig) *Gate {
	return &Gate{
		domain: cfg.CookieDomain,
		secure: cfg.SecureCookies,
		expiry: constants.CookieExpiryDays * 24 * time.Hour,
	}
}

// HasAccepted reports whether the request carries the acceptance flag.
func (g *Gate) HasAccepted(r *http.Request) bool {

	cookie, err := r.Cookie(constants.LegalAcceptanceCookie)
	if err != nil {
		return false
	}
	return cookie.Value == "true"
}

// MarkAccepted sets the acceptance flag on the response.
func (g *Gate) MarkAccepted(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     constants.LegalAcceptanceCookie,
		Value:    "true",
		Path:     "/",
		Domain:   g.domain,
		Expires:  time.Now().Add(g.expiry),
		MaxAge:   int(g.expiry.Seconds()),
		Secure:   g.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// RequireAcceptance wraps a handler for a protected route, rejecting
// requests from visitors who have not yet recorded any consent decision.
func (g *Gate) RequireAcceptance(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.HasAccepted(r) {
			utils.HandleError(w, errors.NewClientError(errors.ErrorMessage{
				Code:        errors.UN_AUTHORIZED.Code,
				Message:     errors.UN_AUTHORIZED.Message,
				Description: "Legal acceptance is required before accessing this resource.",
			}, http.StatusForbidden))
			return
		}
		next.ServeHTTP(w, r)
	})
}
