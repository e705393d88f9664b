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

// Audit event types.
const (
	EventTypeDecision   = "decision"
	EventTypeWithdrawal = "withdrawal"
)

// AuditEvent is a persisted record of a consent decision or withdrawal.
// It is an append-only audit trail: events are written fire-and-forget and
// never read back to gate client behavior. The IP address is stored
// encrypted.
type AuditEvent struct {
	EventID    string `json:"event_id" bson:"event_id"`
	EventType  string `json:"event_type" bson:"event_type"`
	Functional bool   `json:"functional" bson:"functional"`
	Analytics  bool   `json:"analytics" bson:"analytics"`
	Marketing  bool   `json:"marketing" bson:"marketing"`
	Version    string `json:"version" bson:"version"`
	Source     string `json:"source,omitempty" bson:"source,omitempty"`
	IPAddress  string `json:"ip_address,omitempty" bson:"ip_address,omitempty"`
	UserAgent  string `json:"user_agent,omitempty" bson:"user_agent,omitempty"`
	RecordedAt string `json:"recorded_at" bson:"recorded_at"`
}
