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

package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/wso2/identity-cookie-consent-service/internal/system/config"
	"github.com/wso2/identity-cookie-consent-service/internal/system/constants"
	syscontext "github.com/wso2/identity-cookie-consent-service/internal/system/context"
	"github.com/wso2/identity-cookie-consent-service/internal/system/log"
	"github.com/wso2/identity-cookie-consent-service/internal/system/managers"
)

func main() {
	wccsHome := getWCCSHome()
	const configFile = "/repository/conf/deployment.yaml"

	envFiles, _ := filepath.Glob("config/*.env")
	_ = godotenv.Load(envFiles...)

	// Load the configuration file.
	wccsConfig, err := config.LoadConfig(wccsHome, configFile)
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize runtime configurations.
	if err := config.InitializeWCCSRuntime(wccsHome, wccsConfig); err != nil {
		stdlog.Fatalf("Failed to initialize runtime: %v", err)
	}

	// Initialize logger.
	if err := log.Init(wccsConfig.Log.LogLevel); err != nil {
		stdlog.Fatalf("Failed to initialize logger: %v", err)
	}
	logger := log.GetLogger()

	serverAddr := fmt.Sprintf("%s:%d", wccsConfig.Addr.Host, wccsConfig.Addr.Port)
	mux := enableCORS(withTraceID(initMultiplexer()), wccsConfig.Auth.CORSAllowedOrigins)

	ln, err := net.Listen("tcp", serverAddr)
	if err != nil {
		logger.Fatal("Failed to start listener.", log.Error(err))
	}

	logger.Info("WSO2 cookie consent service started.", log.String("address", serverAddr))

	server := &http.Server{Handler: mux}
	if err := server.Serve(ln); err != nil {
		logger.Fatal("Failed to serve requests.", log.Error(err))
	}
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer() *http.ServeMux {

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux)

	// Register the services.
	if err := serviceManager.RegisterServices(constants.ApiBasePath); err != nil {
		log.GetLogger().Fatal("Failed to register the services.", log.Error(err))
	}

	return mux
}

// withTraceID attaches a per-request trace ID to the request context so that
// audit log entries can be correlated.
func withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := syscontext.WithTraceID(r.Context(), syscontext.GetOrGenerateTraceID(r.Context()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// enableCORS answers preflight requests and reflects the configured origins.
// Consent endpoints rely on credentialed requests, so a wildcard origin is
// never emitted when an allow-list is configured.
func enableCORS(next http.Handler, allowedOrigins []string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && originAllowed(origin, allowedOrigins) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func originAllowed(origin string, allowedOrigins []string) bool {
	for _, allowed := range allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

func getWCCSHome() string {

	// Parse project directory from command line arguments.
	projectHome := ""
	projectHomeFlag := flag.String("wccsHome", "", "Path to cookie consent service home directory")
	flag.Parse()

	if *projectHomeFlag != "" {
		projectHome = *projectHomeFlag
	} else {
		// If no command line argument is provided, use the current working directory.
		dir, dirErr := os.Getwd()
		if dirErr != nil {
			stdlog.Fatalf("Failed to get current working directory: %v", dirErr)
		}
		projectHome = dir
	}

	return projectHome
}
