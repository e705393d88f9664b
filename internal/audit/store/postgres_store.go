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

package store

import (
	"fmt"
	"time"

	model "github.com/wso2/identity-cookie-consent-service/internal/audit/model"
	"github.com/wso2/identity-cookie-consent-service/internal/system/database/provider"
	errors2 "github.com/wso2/identity-cookie-consent-service/internal/system/errors"
	"github.com/wso2/identity-cookie-consent-service/internal/system/log"
)

// PostgresAuditStore persists consent audit events in PostgreSQL.
type PostgresAuditStore struct{}

// NewPostgresAuditStore creates a new PostgresAuditStore.
func NewPostgresAuditStore() *PostgresAuditStore {
	return &PostgresAuditStore{}
}

// AddAuditEvent inserts a new consent audit event.
func (s *PostgresAuditStore) AddAuditEvent(event model.AuditEvent) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for inserting audit event: %s", event.EventID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_CONSENT_AUDIT_EVENT.Code,
			Message:     errors2.ADD_CONSENT_AUDIT_EVENT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := `INSERT INTO consent_audit_events
				(event_id, event_type, functional, analytics, marketing, version, source, ip_address, user_agent, recorded_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	tx, err := dbClient.BeginTx()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to begin transaction for inserting audit event: %s", event.EventID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_CONSENT_AUDIT_EVENT.Code,
			Message:     errors2.ADD_CONSENT_AUDIT_EVENT.Message,
			Description: errorMsg,
		}, err)
	}
	_, err = tx.Exec(query, event.EventID, event.EventType, event.Functional, event.Analytics,
		event.Marketing, event.Version, event.Source, event.IPAddress, event.UserAgent, event.RecordedAt)
	if err != nil {
		if errRollback := tx.Rollback(); errRollback != nil {
			errorMsg := fmt.Sprintf("Failed to rollback inserting audit event: %s", event.EventID)
			logger.Debug(errorMsg, log.Error(errRollback))
			return errors2.NewServerError(errors2.ErrorMessage{
				Code:        errors2.ADD_CONSENT_AUDIT_EVENT.Code,
				Message:     errors2.ADD_CONSENT_AUDIT_EVENT.Message,
				Description: errorMsg,
			}, errRollback)
		}
		errorMsg := fmt.Sprintf("Failed to execute query for inserting audit event: %s", event.EventID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_CONSENT_AUDIT_EVENT.Code,
			Message:     errors2.ADD_CONSENT_AUDIT_EVENT.Message,
			Description: errorMsg,
		}, err)
	}
	logger.Debug(fmt.Sprintf("Successfully inserted audit event: %s", event.EventID))
	return tx.Commit()
}

// GetRecentAuditEvents retrieves the most recent audit events, newest first.
func (s *PostgresAuditStore) GetRecentAuditEvents(limit int) ([]model.AuditEvent, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get db client for fetching audit events."
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_CONSENT_AUDIT_EVENTS.Code,
			Message:     errors2.FETCH_CONSENT_AUDIT_EVENTS.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := `SELECT event_id, event_type, functional, analytics, marketing, version, source, ip_address, user_agent, recorded_at
				FROM consent_audit_events ORDER BY recorded_at DESC LIMIT $1`
	results, err := dbClient.ExecuteQuery(query, limit)
	if err != nil {
		errorMsg := "Failed to execute query for fetching audit events."
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_CONSENT_AUDIT_EVENTS.Code,
			Message:     errors2.FETCH_CONSENT_AUDIT_EVENTS.Message,
			Description: errorMsg,
		}, err)
	}

	events := make([]model.AuditEvent, 0, len(results))
	for _, row := range results {
		events = append(events, model.AuditEvent{
			EventID:    stringValue(row["event_id"]),
			EventType:  stringValue(row["event_type"]),
			Functional: boolValue(row["functional"]),
			Analytics:  boolValue(row["analytics"]),
			Marketing:  boolValue(row["marketing"]),
			Version:    stringValue(row["version"]),
			Source:     stringValue(row["source"]),
			IPAddress:  stringValue(row["ip_address"]),
			UserAgent:  stringValue(row["user_agent"]),
			RecordedAt: stringValue(row["recorded_at"]),
		})
	}
	return events, nil
}

// Ping verifies database connectivity.
func (s *PostgresAuditStore) Ping() error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return fmt.Errorf("failed to create database client: %v", err)
	}
	defer dbClient.Close()

	if _, err := dbClient.ExecuteQuery("SELECT 1;"); err != nil {
		return fmt.Errorf("database connectivity check failed: %v", err)
	}
	return nil
}

func stringValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	default:
		return ""
	}
}

func boolValue(value interface{}) bool {
	b, ok := value.(bool)
	return ok && b
}
