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

package model

// GeoClassification is the best-effort EU/non-EU determination for a request.
// It is ephemeral, re-derived per request, and used only to bias UI defaults,
// never to gate functionality.
type GeoClassification struct {
	CountryCode *string `json:"countryCode"`
	IsInEU      bool    `json:"isInEU"`
}

// NonEUDefault is the soft-failure classification: when the originating
// country cannot be determined the service deliberately assumes non-EU
// framing rather than over-complying.
func NonEUDefault() GeoClassification {
	return GeoClassification{CountryCode: nil, IsInEU: false}
}

// Classified builds a classification for a resolved country code.
func Classified(countryCode string, isInEU bool) GeoClassification {
	return GeoClassification{CountryCode: &countryCode, IsInEU: isInEU}
}
