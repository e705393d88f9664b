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

import (
	"github.com/wso2/identity-cookie-consent-service/internal/system/constants"
)

// ConsentCategories is a fixed record of the four consent capabilities.
// Essential is always true and is never persisted as a user choice.
type ConsentCategories struct {
	Essential  bool `json:"essential"`
	Functional bool `json:"functional"`
	Analytics  bool `json:"analytics"`
	Marketing  bool `json:"marketing"`
}

// ConsentPreferences carries the user-decidable subset of the categories.
type ConsentPreferences struct {
	Functional bool `json:"functional"`
	Analytics  bool `json:"analytics"`
	Marketing  bool `json:"marketing"`
}

// ConsentRecord is the durable snapshot of a visitor's consent decision.
// Records are immutable; a change in preference replaces the record wholesale.
type ConsentRecord struct {
	Version    string            `json:"version"`
	Timestamp  string            `json:"timestamp"`
	Categories ConsentCategories `json:"categories"`
	Source     string            `json:"source"`
}

// ConsentStatus is the informational view returned by GET /consent.
type ConsentStatus struct {
	HasRecord  bool               `json:"has_record"`
	Expired    bool               `json:"expired"`
	Categories *ConsentCategories `json:"categories,omitempty"`
	Version    string             `json:"version,omitempty"`
	Source     string             `json:"source,omitempty"`
}

// ConsentUpdateRequest is the POST /consent request body. The category fields
// are pointers so that absent fields can be rejected rather than defaulted.
type ConsentUpdateRequest struct {
	Functional *bool  `json:"functional"`
	Analytics  *bool  `json:"analytics"`
	Marketing  *bool  `json:"marketing"`
	Version    string `json:"version,omitempty"`
	Source     string `json:"source,omitempty"`
}

// ConsentUpdateResponse is the acknowledgement returned by POST and DELETE
// /consent.
type ConsentUpdateResponse struct {
	Success   bool   `json:"success"`
	Timestamp string `json:"timestamp"`
}

// CategoriesFromPreferences expands preferences to a full category set with
// essential forced on.
func CategoriesFromPreferences(prefs ConsentPreferences) ConsentCategories {
	return ConsentCategories{
		Essential:  true,
		Functional: prefs.Functional,
		Analytics:  prefs.Analytics,
		Marketing:  prefs.Marketing,
	}
}

// EssentialOnlyCategories is the synthetic category set used after a
// withdrawal: everything off except essential.
func EssentialOnlyCategories() ConsentCategories {
	return ConsentCategories{Essential: true}
}

// Get returns the stored boolean for the named category. Unknown categories
// are reported as not allowed.
func (c ConsentCategories) Get(category string) bool {
	switch category {
	case constants.CategoryEssential:
		return c.Essential
	case constants.CategoryFunctional:
		return c.Functional
	case constants.CategoryAnalytics:
		return c.Analytics
	case constants.CategoryMarketing:
		return c.Marketing
	default:
		return false
	}
}
