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
	"context"
	"fmt"
	"net/http"
	"strings"

	model "github.com/wso2/identity-cookie-consent-service/internal/geo/model"
	"github.com/wso2/identity-cookie-consent-service/internal/geo/lookup"
	"github.com/wso2/identity-cookie-consent-service/internal/system/cache"
	"github.com/wso2/identity-cookie-consent-service/internal/system/constants"
	"github.com/wso2/identity-cookie-consent-service/internal/system/log"
	"github.com/wso2/identity-cookie-consent-service/internal/system/utils"
)

// GeoServiceInterface classifies the originating region of a request.
type GeoServiceInterface interface {
	Classify(ctx context.Context, headers http.Header) model.GeoClassification
}

// GeoService is the default implementation. Classification never fails hard:
// every failure path degrades to the non-EU default and is logged, not
// surfaced.
type GeoService struct {
	lookup lookup.CountryLookup
	cache  *cache.Cache
}

// NewGeoService creates a GeoService around the given lookup provider.
func NewGeoService(countryLookup lookup.CountryLookup) *GeoService {
	return &GeoService{
		lookup: countryLookup,
		cache:  cache.NewCache(constants.GeoCacheTTL),
	}
}

// Classify resolves the request's country and EU membership. The client IP
// is extracted with fixed header precedence; without an IP, direct country
// header hints are consulted before giving up. Successful IP resolutions are
// cached per IP for a bounded interval; hint-based results are not cached.
func (gs *GeoService) Classify(ctx context.Context, headers http.Header) model.GeoClassification {

	ip := utils.ExtractClientIP(headers)
	if ip == "" {
		return gs.classifyFromHints(headers)
	}

	if cached, found := gs.cache.Get(ip); found {
		if classification, ok := cached.(model.GeoClassification); ok {
			return classification
		}
	}

	countryCode, err := gs.lookup.LookupCountry(ctx, ip)
	if err != nil {
		log.GetLogger().Warn("Geolocation lookup failed; defaulting to non-EU framing.",
			log.String("ip", ip), log.Error(err))
		return model.NonEUDefault()
	}

	classification := gs.classifyCountry(countryCode)
	gs.cache.Set(ip, classification)
	return classification
}

// classifyFromHints falls back to CDN-provided country headers when no
// IP-bearing header is present.
func (gs *GeoService) classifyFromHints(headers http.Header) model.GeoClassification {

	for _, header := range []string{constants.HeaderCFIPCountry, constants.HeaderCountryCode} {
		if code := strings.TrimSpace(headers.Get(header)); code != "" {
			return gs.classifyCountry(code)
		}
	}

	log.GetLogger().Debug("No client IP or country hint detected.")
	return model.NonEUDefault()
}

func (gs *GeoService) classifyCountry(countryCode string) model.GeoClassification {
	normalized := strings.ToUpper(strings.TrimSpace(countryCode))
	if normalized == "" {
		return model.NonEUDefault()
	}
	classification := model.Classified(normalized, IsEUCountry(normalized))
	log.GetLogger().Debug(fmt.Sprintf("Classified request country as %s.", normalized),
		log.Bool("isInEU", classification.IsInEU))
	return classification
}
