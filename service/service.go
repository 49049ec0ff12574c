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

// Package service assembles the chart touch HTTP service.
package service

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/ilhamster/charttouch/config"
	"github.com/ilhamster/charttouch/handlers"
	querydispatcher "github.com/ilhamster/charttouch/query_dispatcher"
	touchsource "github.com/ilhamster/charttouch/touch_source"
)

// Service serves touch queries on a set of charts.
type Service struct {
	source       *touchsource.DataSource
	queryHandler handlers.QueryHandler
}

// New returns a Service for the provided charts, caching up to sessions
// touch sessions.
func New(logger *log.Logger, sessions int, charts ...*config.Chart) (*Service, error) {
	source, err := touchsource.New(sessions, charts...)
	if err != nil {
		return nil, err
	}
	source.WithLogger(logger)
	qd, err := querydispatcher.New(source)
	if err != nil {
		return nil, err
	}
	qd.WithLogger(logger)
	return &Service{
		source:       source,
		queryHandler: handlers.NewQueryHandler(qd, logger),
	}, nil
}

// FromFile returns a Service for the charts defined in the named file.
func FromFile(logger *log.Logger, sessions int, chartsPath string) (*Service, error) {
	charts, err := config.LoadFile(chartsPath)
	if err != nil {
		return nil, err
	}
	for _, chart := range charts {
		logger.Info("Loaded chart", "name", chart.Name, "kind", chart.Config.Kind, "points", chart.DataSet.Len())
	}
	return New(logger, sessions, charts...)
}

// DataSource returns the receiver's touch data source, e.g. to update chart
// data.
func (s *Service) DataSource() *touchsource.DataSource {
	return s.source
}

// RegisterHandlers registers the receiver's handlers on mux.
func (s *Service) RegisterHandlers(mux *http.ServeMux) {
	for path, handler := range s.queryHandler.HandlersByPath() {
		mux.HandleFunc(path, handler)
	}
}
