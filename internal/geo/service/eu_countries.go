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

import "strings"

// euCountryCodes is the fixed roster of the 27 EU member states
// (post-Brexit; the UK is excluded), as ISO-3166-1 alpha-2 codes.
var euCountryCodes = map[string]bool{
	"AT": true, // Austria
	"BE": true, // Belgium
	"BG": true, // Bulgaria
	"HR": true, // Croatia
	"CY": true, // Cyprus
	"CZ": true, // Czech Republic
	"DK": true, // Denmark
	"EE": true, // Estonia
	"FI": true, // Finland
	"FR": true, // France
	"DE": true, // Germany
	"GR": true, // Greece
	"HU": true, // Hungary
	"IE": true, // Ireland
	"IT": true, // Italy
	"LV": true, // Latvia
	"LT": true, // Lithuania
	"LU": true, // Luxembourg
	"MT": true, // Malta
	"NL": true, // Netherlands
	"PL": true, // Poland
	"PT": true, // Portugal
	"RO": true, // Romania
	"SK": true, // Slovakia
	"SI": true, // Slovenia
	"ES": true, // Spain
	"SE": true, // Sweden
}

// IsEUCountry reports whether the country code belongs to an EU member
// state. The check is case-insensitive; empty codes are non-EU.
func IsEUCountry(countryCode string) bool {
	if countryCode == "" {
		return false
	}
	return euCountryCodes[strings.ToUpper(countryCode)]
}
