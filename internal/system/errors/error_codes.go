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

package errors

const errorPrefix = "WCCS-"

var (
	// Server error codes

	ADD_CONSENT_AUDIT_EVENT = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Error while recording consent audit event.",
	}

	FETCH_CONSENT_AUDIT_EVENTS = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Error while fetching consent audit events.",
	}

	GEO_LOOKUP = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Error while resolving country for IP address.",
	}

	DB_CLIENT_INIT = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Unable to initialize database client.",
	}

	AUDIT_STORE_INIT = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Unable to initialize audit event store.",
	}

	TRACKER_SIGNAL = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while signalling tracker integration.",
	}

	CRYPTO_OPERATION = ErrorMessage{
		Code:    errorPrefix + "15007",
		Message: "Error while performing cryptographic operation.",
	}

	// Client error codes

	BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "11001",
		Message: "Invalid request.",
	}

	CONSENT_PREFERENCES_VALIDATION = ErrorMessage{
		Code:    errorPrefix + "11002",
		Message: "Invalid consent preferences.",
	}

	CONSENT_DECODE_BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "11003",
		Message: "Malformed consent request body.",
	}

	UN_AUTHORIZED = ErrorMessage{
		Code:    errorPrefix + "11004",
		Message: "Unauthorized request.",
	}
)
