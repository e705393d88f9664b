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

package utils

import (
	"encoding/json"
	"errors" // Standard Go errors package
	"net/http"
	"strings"

	"github.com/wso2/identity-cookie-consent-service/internal/system/constants"
	customerrors "github.com/wso2/identity-cookie-consent-service/internal/system/errors" // Alias for the custom errors
	"github.com/wso2/identity-cookie-consent-service/internal/system/log"
)

// HandleError sends an HTTP error response based on the provided error
func HandleError(w http.ResponseWriter, err error) {
	var clientError *customerrors.ClientError
	w.Header().Set("Content-Type", "application/json")
	if ok := errors.As(err, &clientError); ok {
		w.WriteHeader(clientError.StatusCode)
		_ = json.NewEncoder(w).Encode(struct {
			Code        string `json:"code"`
			Message     string `json:"message"`
			Description string `json:"description"`
		}{
			Code:        clientError.ErrorMessage.Code,
			Message:     clientError.ErrorMessage.Message,
			Description: clientError.ErrorMessage.Description,
		})
		return
	}

	var serverError *customerrors.ServerError
	if ok := errors.As(err, &serverError); ok {
		logger := log.GetLogger()
		logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error": "Internal server error",
		})
		return
	}
}

// WriteJSONResponse encodes data as a JSON response with the given status code.
func WriteJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// ExtractClientIP resolves the originating client IP from proxy headers with
// fixed precedence: X-Forwarded-For (first entry), CF-Connecting-IP, X-Real-IP.
// Returns an empty string when no IP-bearing header is present.
func ExtractClientIP(headers http.Header) string {

	forwardedFor := headers.Get(constants.HeaderForwardedFor)
	if forwardedFor != "" {
		// X-Forwarded-For can contain multiple IPs, the first one is the
		// original client.
		parts := strings.Split(forwardedFor, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}

	if ip := strings.TrimSpace(headers.Get(constants.HeaderCFConnectingIP)); ip != "" {
		return ip
	}

	if ip := strings.TrimSpace(headers.Get(constants.HeaderRealIP)); ip != "" {
		return ip
	}

	return ""
}

// Truncate limits a string to the given byte length for audit persistence.
func Truncate(value string, maxLength int) string {
	if len(value) <= maxLength {
		return value
	}
	return value[:maxLength]
}
