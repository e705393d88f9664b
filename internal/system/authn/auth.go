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

package authn

import (
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wso2/identity-cookie-consent-service/internal/system/config"
	errors2 "github.com/wso2/identity-cookie-consent-service/internal/system/errors"
	"github.com/wso2/identity-cookie-consent-service/internal/system/log"
)

// ValidateAdminToken validates an HMAC-signed admin bearer token and returns
// its claims. The token must be signed with the configured admin secret and
// carry the expected audience.
func ValidateAdminToken(tokenString string) (jwt.MapClaims, error) {

	logger := log.GetLogger()
	adminConfig := config.GetWCCSRuntime().Config.AdminAPI

	if adminConfig.JWTSecret == "" {
		logger.Warn("Admin API JWT secret is not configured; rejecting request.")
		return nil, unauthorizedError()
	}

	claims := jwt.MapClaims{}
	parserOptions := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if adminConfig.JWTAudience != "" {
		parserOptions = append(parserOptions, jwt.WithAudience(adminConfig.JWTAudience))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(adminConfig.JWTSecret), nil
	}, parserOptions...)

	if err != nil {
		logger.Debug("Admin token validation failed.", log.Error(err))
		return nil, unauthorizedError()
	}
	if !token.Valid {
		logger.Debug("Admin token is not valid.")
		return nil, unauthorizedError()
	}

	return claims, nil
}

func unauthorizedError() error {
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.UN_AUTHORIZED.Code,
		Message:     errors2.UN_AUTHORIZED.Message,
		Description: "Missing or invalid credentials.",
	}, http.StatusUnauthorized)
}
