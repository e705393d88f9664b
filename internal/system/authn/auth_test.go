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
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wso2/identity-cookie-consent-service/internal/system/config"
	"github.com/wso2/identity-cookie-consent-service/internal/system/log"
)

const (
	testSecret   = "admin-test-secret"
	testAudience = "wccs-admin"
)

func TestMain(m *testing.M) {
	log.Init("ERROR")
	m.Run()
}

func setAdminConfig(secret, audience string) {
	config.OverrideWCCSRuntime("", &config.Config{
		AdminAPI: config.AdminAPIConfig{
			JWTSecret:   secret,
			JWTAudience: audience,
		},
	})
}

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestValidateAdminTokenSuccess(t *testing.T) {
	setAdminConfig(testSecret, testAudience)

	tokenString := signedToken(t, testSecret, jwt.MapClaims{
		"sub": "admin",
		"aud": testAudience,
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	claims, err := ValidateAdminToken(tokenString)

	require.NoError(t, err)
	assert.Equal(t, "admin", claims["sub"])
}

func TestValidateAdminTokenWrongSecret(t *testing.T) {
	setAdminConfig(testSecret, testAudience)

	tokenString := signedToken(t, "some-other-secret", jwt.MapClaims{
		"aud": testAudience,
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := ValidateAdminToken(tokenString)

	assert.Error(t, err)
}

func TestValidateAdminTokenExpired(t *testing.T) {
	setAdminConfig(testSecret, testAudience)

	tokenString := signedToken(t, testSecret, jwt.MapClaims{
		"aud": testAudience,
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err := ValidateAdminToken(tokenString)

	assert.Error(t, err)
}

func TestValidateAdminTokenMissingExpiry(t *testing.T) {
	setAdminConfig(testSecret, testAudience)

	tokenString := signedToken(t, testSecret, jwt.MapClaims{
		"aud": testAudience,
	})

	_, err := ValidateAdminToken(tokenString)

	assert.Error(t, err)
}

func TestValidateAdminTokenWrongAudience(t *testing.T) {
	setAdminConfig(testSecret, testAudience)

	tokenString := signedToken(t, testSecret, jwt.MapClaims{
		"aud": "another-service",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := ValidateAdminToken(tokenString)

	assert.Error(t, err)
}

func TestValidateAdminTokenNoSecretConfigured(t *testing.T) {
	setAdminConfig("", testAudience)

	tokenString := signedToken(t, testSecret, jwt.MapClaims{
		"aud": testAudience,
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := ValidateAdminToken(tokenString)

	assert.Error(t, err)
}

func TestValidateAdminTokenGarbage(t *testing.T) {
	setAdminConfig(testSecret, testAudience)

	_, err := ValidateAdminToken("not-a-token")

	assert.Error(t, err)
}
