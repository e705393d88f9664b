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

package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/wso2/identity-cookie-consent-service/internal/system/config"
)

const (
	defaultProviderURL    = "https://ipapi.co"
	defaultRequestTimeout = 5 * time.Second
	userAgent             = "WSO2-Cookie-Consent-Service/1.0"
)

// IPAPIClient is the default CountryLookup implementation, talking to an
// ipapi.co compatible geolocation provider.
type IPAPIClient struct {
	baseURL    string
	httpClient *http.Client
}

// ipapiResponse covers the provider fields the client consumes. The provider
// reports errors in-band with a 200 status, so the error fields must be
// checked before the country code is trusted.
type ipapiResponse struct {
	CountryCode    string      `json:"country_code"`
	CountryCodeAlt string      `json:"countryCode"`
	Error          interface{} `json:"error"`
	Reason         string      `json:"reason"`
}

// NewIPAPIClient creates an IPAPIClient from the geo configuration. Empty
// settings fall back to provider defaults.
func NewIPAPIClient(cfg config.GeoConfig) *IPAPIClient {

	baseURL := cfg.ProviderURL
	if baseURL == "" {
		baseURL = defaultProviderURL
	}
	timeout := time.Duration(cfg.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &IPAPIClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// LookupCountry resolves the country code for the given IP. Any transport
// failure, non-2xx response, or provider-reported error yields an error; the
// caller decides the fallback policy.
func (c *IPAPIClient) LookupCountry(ctx context.Context, ip string) (string, error) {

	url := fmt.Sprintf("%s/%s/json/", c.baseURL, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build geolocation request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("geolocation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("geolocation provider returned status %d", resp.StatusCode)
	}

	var payload ipapiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode geolocation response: %w", err)
	}

	if payload.Error != nil && payload.Error != false {
		return "", fmt.Errorf("geolocation provider error: %s", payload.Reason)
	}

	countryCode := payload.CountryCode
	if countryCode == "" {
		countryCode = payload.CountryCodeAlt
	}
	if countryCode == "" {
		return "", fmt.Errorf("geolocation provider returned no country code")
	}

	return countryCode, nil
}
