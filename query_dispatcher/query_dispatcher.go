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

// Package querydispatcher provides QueryDispatcher, which routes the series
// requests of a DataRequest to the data sources able to answer them.
package querydispatcher

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ilhamster/charttouch/util"
	"golang.org/x/sync/errgroup"
)

// dataSource answers a fixed set of queries.  dataSource instances must
// support concurrent HandleDataSeriesRequests calls.
type dataSource interface {
	// SupportedDataSeriesQueries returns the query names this dataSource
	// handles.  Query names should be unique across dataSources, e.g. by
	// sharing a dataSource-specific prefix.
	SupportedDataSeriesQueries() []string
	// HandleDataSeriesRequests handles a set of DataSeriesRequests with the
	// supplied global filters, adding a DataSeries to drb for each.  Any
	// returned error fails the entire DataRequest.
	HandleDataSeriesRequests(ctx context.Context, globalFilters map[string]*util.V, drb *util.DataResponseBuilder, reqs []*util.DataSeriesRequest) error
}

// QueryDispatcher multiplexes data sources.
type QueryDispatcher struct {
	dataSources []dataSource
	// Maps query names to the index in dataSources of their handler.
	dataSeriesQueryHandlers map[string]int
	logger                  *log.Logger
}

// New returns a *QueryDispatcher wrapping the provided dataSources.
func New(dss ...dataSource) (*QueryDispatcher, error) {
	qd := &QueryDispatcher{
		dataSeriesQueryHandlers: map[string]int{},
		logger:                  log.New(io.Discard),
	}
	for dsIdx, ds := range dss {
		qd.dataSources = append(qd.dataSources, ds)
		for _, queryName := range ds.SupportedDataSeriesQueries() {
			if _, ok := qd.dataSeriesQueryHandlers[queryName]; ok {
				return nil, fmt.Errorf("multiple dataSources handle query `%s`", queryName)
			}
			qd.dataSeriesQueryHandlers[queryName] = dsIdx
		}
	}
	return qd, nil
}

// WithLogger directs the receiver's logging to logger.
func (qd *QueryDispatcher) WithLogger(logger *log.Logger) *QueryDispatcher {
	qd.logger = logger
	return qd
}

// HandleDataRequest distributes req's series requests among the dataSources
// handling them, concurrently, and assembles their responses.
func (qd *QueryDispatcher) HandleDataRequest(ctx context.Context, req *util.DataRequest) (*util.Data, error) {
	start := time.Now()
	drb := util.NewDataResponseBuilder()
	groupedReqs := map[int][]*util.DataSeriesRequest{}
	for _, seriesReq := range req.SeriesRequests {
		dsIdx, ok := qd.dataSeriesQueryHandlers[seriesReq.QueryName]
		if !ok {
			return nil, fmt.Errorf("unsupported data query `%s`", seriesReq.QueryName)
		}
		groupedReqs[dsIdx] = append(groupedReqs[dsIdx], seriesReq)
	}
	errg, ctx := errgroup.WithContext(ctx)
	for dsIdx, seriesReqs := range groupedReqs {
		ds, seriesReqs := qd.dataSources[dsIdx], seriesReqs
		errg.Go(func() error {
			return ds.HandleDataSeriesRequests(ctx, req.GlobalFilters, drb, seriesReqs)
		})
	}
	if err := errg.Wait(); err != nil {
		qd.logger.Error("DataRequest failed", "series", len(req.SeriesRequests), "error", err)
		return nil, err
	}
	qd.logger.Debug("Handled DataRequest", "series", len(req.SeriesRequests), "elapsed", time.Since(start))
	return drb.Data()
}
