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

import "sync"

// WCCSRuntime holds the runtime configuration for the consent service.
type WCCSRuntime struct {
	WCCSHome string `yaml:"wccs_home"`
	Config   Config `yaml:"config"`
}

var (
	runtimeConfig *WCCSRuntime
	once          sync.Once
)

// InitializeWCCSRuntime initializes the WCCSRuntime configuration.
func InitializeWCCSRuntime(wccsHome string, config *Config) error {

	once.Do(func() {
		runtimeConfig = &WCCSRuntime{
			WCCSHome: wccsHome,
			Config:   *config,
		}
	})

	return nil
}

// OverrideWCCSRuntime replaces the runtime configuration regardless of prior
// initialization. Intended for tests.
func OverrideWCCSRuntime(wccsHome string, config *Config) {

	runtimeConfig = &WCCSRuntime{
		WCCSHome: wccsHome,
		Config:   *config,
	}
}

// GetWCCSRuntime returns the WCCSRuntime configuration.
func GetWCCSRuntime() *WCCSRuntime {

	if runtimeConfig == nil {
		panic("WCCSRuntime is not initialized")
	}
	return runtimeConfig
}
