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

package config

type AddrConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type LogConfig struct {
	LogLevel string `yaml:"log_level"`
}

type AuthConfig struct {
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

// AdminAPIConfig configures access to the administrative audit endpoints.
type AdminAPIConfig struct {
	JWTSecret   string `yaml:"jwt_secret"`
	JWTAudience string `yaml:"jwt_audience"`
}

// GeoConfig configures the external IP geolocation provider.
type GeoConfig struct {
	ProviderURL    string `yaml:"provider_url"`
	RequestTimeout int    `yaml:"request_timeout_seconds"`
}

// ConsentConfig configures consent cookie issuance.
type ConsentConfig struct {
	CookieDomain  string `yaml:"cookie_domain"`
	SecureCookies bool   `yaml:"secure_cookies"`
}

// TrackersConfig carries the identifiers of the third-party tracker
// integrations. An empty identifier disables the integration.
type TrackersConfig struct {
	GAMeasurementID      string `yaml:"ga_measurement_id"`
	GTMContainerID       string `yaml:"gtm_container_id"`
	MetaPixelID          string `yaml:"meta_pixel_id"`
	MetricsEndpoint      string `yaml:"metrics_endpoint"`
	SignalTimeoutSeconds int    `yaml:"signal_timeout_seconds"`
}

// MongoConfig configures the MongoDB audit datasource.
type MongoConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

// AuditConfig selects and configures the consent audit datasource.
type AuditConfig struct {
	Datasource string      `yaml:"datasource"`
	Mongo      MongoConfig `yaml:"mongo"`
}

// DataSourceConfig configures the PostgreSQL audit datasource.
type DataSourceConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// CryptoConfig carries the key used to protect PII fields at rest.
type CryptoConfig struct {
	EncryptionKey string `yaml:"encryption_key"`
}

type Config struct {
	Addr       AddrConfig       `yaml:"addr"`
	Log        LogConfig        `yaml:"log"`
	Auth       AuthConfig       `yaml:"auth"`
	AdminAPI   AdminAPIConfig   `yaml:"admin_api"`
	Geo        GeoConfig        `yaml:"geo"`
	Consent    ConsentConfig    `yaml:"consent"`
	Trackers   TrackersConfig   `yaml:"trackers"`
	Audit      AuditConfig      `yaml:"audit"`
	DataSource DataSourceConfig `yaml:"datasource"`
	Crypto     CryptoConfig     `yaml:"crypto"`
}
