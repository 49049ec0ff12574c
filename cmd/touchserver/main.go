/*
	Copyright 2025 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

// Binary touchserver serves chart touch resolution over HTTP.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/ilhamster/charttouch/service"
)

var (
	port     = flag.Int("port", 7411, "Port to serve touch queries on")
	charts   = flag.String("charts", "charts.yaml", "Path to the YAML chart definitions")
	sessions = flag.Int("sessions", 100, "The number of touch sessions to keep")
	logLevel = flag.String("log_level", "info", "Logging level: debug, info, warn or error")
)

func main() {
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "touchserver",
	})
	level, err := log.ParseLevel(*logLevel)
	if err != nil {
		logger.Fatal("Bad log level", "level", *logLevel, "error", err)
	}
	logger.SetLevel(level)

	svc, err := service.FromFile(logger, *sessions, *charts)
	if err != nil {
		logger.Fatal("Failed to create touch service", "error", err)
	}
	mux := http.NewServeMux()
	svc.RegisterHandlers(mux)

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("Serving touch queries", "addr", addr, "charts", *charts)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatal("Server failed", "error", err)
	}
}
