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
	"context"
	"fmt"
	"time"

	model "github.com/wso2/identity-cookie-consent-service/internal/audit/model"
	"github.com/wso2/identity-cookie-consent-service/internal/system/config"
	errors2 "github.com/wso2/identity-cookie-consent-service/internal/system/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const mongoOpTimeout = 5 * time.Second

// MongoAuditStore persists consent audit events in a MongoDB collection.
type MongoAuditStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoAuditStore connects to the configured MongoDB deployment and binds
// the audit collection.
func NewMongoAuditStore(cfg config.MongoConfig) (*MongoAuditStore, error) {

	if cfg.URI == "" || cfg.Database == "" {
		return nil, fmt.Errorf("mongo audit datasource requires uri and database")
	}
	collectionName := cfg.Collection
	if collectionName == "" {
		collectionName = "consent_audit_events"
	}

	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.AUDIT_STORE_INIT.Code,
			Message:     errors2.AUDIT_STORE_INIT.Message,
			Description: "Failed to connect to the MongoDB audit datasource.",
		}, err)
	}

	return &MongoAuditStore{
		client:     client,
		collection: client.Database(cfg.Database).Collection(collectionName),
	}, nil
}

// AddAuditEvent inserts a new consent audit event.
func (s *MongoAuditStore) AddAuditEvent(event model.AuditEvent) error {

	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	if _, err := s.collection.InsertOne(ctx, event); err != nil {
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_CONSENT_AUDIT_EVENT.Code,
			Message:     errors2.ADD_CONSENT_AUDIT_EVENT.Message,
			Description: fmt.Sprintf("Failed to insert audit event: %s", event.EventID),
		}, err)
	}
	return nil
}

// GetRecentAuditEvents retrieves the most recent audit events, newest first.
func (s *MongoAuditStore) GetRecentAuditEvents(limit int) ([]model.AuditEvent, error) {

	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	findOptions := options.Find().
		SetSort(bson.D{{Key: "recorded_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_CONSENT_AUDIT_EVENTS.Code,
			Message:     errors2.FETCH_CONSENT_AUDIT_EVENTS.Message,
			Description: "Failed to fetch audit events.",
		}, err)
	}
	defer cursor.Close(ctx)

	var events []model.AuditEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_CONSENT_AUDIT_EVENTS.Code,
			Message:     errors2.FETCH_CONSENT_AUDIT_EVENTS.Message,
			Description: "Failed to decode audit events.",
		}, err)
	}
	return events, nil
}

// Ping verifies connectivity to the MongoDB deployment.
func (s *MongoAuditStore) Ping() error {

	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	return s.client.Ping(ctx, readpref.Primary())
}
