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

// Package touchsource provides a data source answering chart touch queries.
//
// Every query names its chart and touch in the DataRequest's global filters:
//
//	chart_name                 the chart, as loaded by package config
//	session_id                 the touching client; required by touch.begin
//	                           and touch.end
//	touch_x, touch_y           the touch location
//	rect_x, rect_y,
//	rect_width, rect_height    the chart's drawable rectangle
//
// touch.begin and touch.end drive a per-session touch.Resolver; sessions are
// kept in an LRU cache.  A session's rectangle persists between requests, so
// a drag need only send it once.  touch.resolve resolves statelessly and
// requires the rectangle.
package touchsource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/golang-lru/simplelru"
	"github.com/ilhamster/charttouch/config"
	"github.com/ilhamster/charttouch/dataset"
	"github.com/ilhamster/charttouch/geometry"
	"github.com/ilhamster/charttouch/marker"
	"github.com/ilhamster/charttouch/touch"
	"github.com/ilhamster/charttouch/util"
)

const (
	beginQuery   = "touch.begin"
	endQuery     = "touch.end"
	resolveQuery = "touch.resolve"

	chartNameKey  = "chart_name"
	sessionIDKey  = "session_id"
	touchXKey     = "touch_x"
	touchYKey     = "touch_y"
	rectXKey      = "rect_x"
	rectYKey      = "rect_y"
	rectWidthKey  = "rect_width"
	rectHeightKey = "rect_height"

	markerEventKey = "marker_event"
	touchStateKey  = "touch_state"
	foundKey       = "found"
)

// Marker events reported under marker_event.
const (
	markerEventNone    = "none"
	markerEventChanged = "changed"
	markerEventCleared = "cleared"
)

// session is one client's touch on one chart.
type session struct {
	mu       sync.Mutex
	resolver *touch.Resolver
	// The last marker notification, reset by each request.
	event string
}

func (s *session) MarkerChanged(d *marker.Descriptor) {
	s.event = markerEventChanged
}

func (s *session) MarkerCleared() {
	s.event = markerEventCleared
}

type sessionKey struct {
	chart, session string
}

// DataSource implements querydispatcher.dataSource for chart touches.
type DataSource struct {
	logger *log.Logger

	mu     sync.Mutex
	charts map[string]*config.Chart
	// An LRU cache of the most recently active sessions.
	sessions *simplelru.LRU
}

// New returns a DataSource serving the provided charts, caching up to cap
// touch sessions.
func New(cap int, charts ...*config.Chart) (*DataSource, error) {
	sessions, err := simplelru.NewLRU(cap, nil /* no onEvict policy */)
	if err != nil {
		return nil, err
	}
	ds := &DataSource{
		logger:   log.New(io.Discard),
		charts:   map[string]*config.Chart{},
		sessions: sessions,
	}
	for _, chart := range charts {
		if _, ok := ds.charts[chart.Name]; ok {
			return nil, fmt.Errorf("chart %q is defined more than once", chart.Name)
		}
		ds.charts[chart.Name] = chart
	}
	return ds, nil
}

// WithLogger directs the receiver's logging, and that of its resolvers, to
// logger.
func (ds *DataSource) WithLogger(logger *log.Logger) *DataSource {
	ds.logger = logger
	return ds
}

// SupportedDataSeriesQueries returns the DataSeriesRequest query names
// supported by DataSource.
func (ds *DataSource) SupportedDataSeriesQueries() []string {
	return []string{
		beginQuery,
		endQuery,
		resolveQuery,
	}
}

// UpdateData replaces the named chart's DataSet.  Active sessions on that
// chart resolve their next touch against it.
func (ds *DataSource) UpdateData(chartName string, data *dataset.DataSet) error {
	if data == nil {
		data = dataset.Empty()
	}
	ds.mu.Lock()
	defer ds.mu.Unlock()
	chart, ok := ds.charts[chartName]
	if !ok {
		return fmt.Errorf("unknown chart %q", chartName)
	}
	updated := *chart
	updated.DataSet = data
	ds.charts[chartName] = &updated
	for _, k := range ds.sessions.Keys() {
		key := k.(sessionKey)
		if key.chart != chartName {
			continue
		}
		if sIf, ok := ds.sessions.Peek(key); ok {
			s := sIf.(*session)
			s.mu.Lock()
			s.resolver.SetDataSet(data)
			s.mu.Unlock()
		}
	}
	ds.logger.Info("Chart data updated", "chart", chartName, "version", data.Version(), "points", data.Len())
	return nil
}

func (ds *DataSource) chart(name string) (*config.Chart, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	chart, ok := ds.charts[name]
	if !ok {
		return nil, fmt.Errorf("unknown chart %q", name)
	}
	return chart, nil
}

// session returns the specified session from the LRU, creating it if it
// isn't there.  The chart is looked up under the same lock that adds the
// session, so a new session never starts on a DataSet UpdateData has already
// replaced.
func (ds *DataSource) session(chartName, sessionID string) (*session, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	key := sessionKey{chartName, sessionID}
	if sIf, ok := ds.sessions.Get(key); ok {
		s, ok := sIf.(*session)
		if !ok {
			return nil, fmt.Errorf("cached session wasn't a session")
		}
		return s, nil
	}
	chart, ok := ds.charts[chartName]
	if !ok {
		return nil, fmt.Errorf("unknown chart %q", chartName)
	}
	s := &session{}
	r, err := touch.New(chart.Config, chart.Geometry,
		touch.WithDataSet(chart.DataSet),
		touch.WithListener(s),
		touch.WithLogger(ds.logger.With("chart", chart.Name, "session", sessionID)),
	)
	if err != nil {
		return nil, err
	}
	s.resolver = r
	ds.sessions.Add(key, s)
	return s, nil
}

// existingSession returns the specified session if it is cached.
func (ds *DataSource) existingSession(chartName, sessionID string) (*session, bool) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	sIf, ok := ds.sessions.Peek(sessionKey{chartName, sessionID})
	if !ok {
		return nil, false
	}
	s, ok := sIf.(*session)
	return s, ok
}

// filters holds the touch described by a DataRequest's global filters.
type filters struct {
	chartName string
	sessionID string
	location  geometry.Point
	hasTouch  bool
	rect      geometry.Rect
	hasRect   bool
}

func filtersFromGlobalFilters(globalFilters map[string]*util.V) (*filters, error) {
	f := &filters{}
	var err error
	chartNameVal, ok := globalFilters[chartNameKey]
	if !ok {
		return nil, fmt.Errorf("missing required filter option '%s'", chartNameKey)
	}
	if f.chartName, err = util.ExpectStringValue(chartNameVal); err != nil {
		return nil, fmt.Errorf("filter option '%s' must be a string", chartNameKey)
	}
	if v, ok := globalFilters[sessionIDKey]; ok {
		if f.sessionID, err = util.ExpectStringValue(v); err != nil {
			return nil, fmt.Errorf("filter option '%s' must be a string", sessionIDKey)
		}
	}
	doubles := func(keys ...string) ([]float64, bool, error) {
		ret := make([]float64, len(keys))
		found := 0
		for i, key := range keys {
			v, ok := globalFilters[key]
			if !ok {
				continue
			}
			found++
			if ret[i], err = util.ExpectDoubleValue(v); err != nil {
				return nil, false, fmt.Errorf("filter option '%s' must be a number", key)
			}
		}
		if found != 0 && found != len(keys) {
			return nil, false, fmt.Errorf("filter options %v must be provided together", keys)
		}
		return ret, found != 0, nil
	}
	loc, hasTouch, err := doubles(touchXKey, touchYKey)
	if err != nil {
		return nil, err
	}
	if hasTouch {
		f.location, f.hasTouch = geometry.Pt(loc[0], loc[1]), true
	}
	rect, hasRect, err := doubles(rectXKey, rectYKey, rectWidthKey, rectHeightKey)
	if err != nil {
		return nil, err
	}
	if hasRect {
		f.rect, f.hasRect = geometry.NewRect(rect[0], rect[1], rect[2], rect[3]), true
	}
	return f, nil
}

// HandleDataSeriesRequests handles the provided set of DataSeriesRequests, with
// the provided global filters.  It assembles its responses in the provided
// DataResponseBuilder.
func (ds *DataSource) HandleDataSeriesRequests(ctx context.Context, globalFilters map[string]*util.V, drb *util.DataResponseBuilder, reqs []*util.DataSeriesRequest) error {
	f, err := filtersFromGlobalFilters(globalFilters)
	if err != nil {
		return err
	}
	chart, err := ds.chart(f.chartName)
	if err != nil {
		return err
	}
	for _, req := range reqs {
		series := drb.DataSeries(req)
		var err error
		switch req.QueryName {
		case beginQuery:
			err = ds.handleBegin(f, series)
		case endQuery:
			err = ds.handleEnd(f, series)
		case resolveQuery:
			err = handleResolve(chart, f, series)
		default:
			err = fmt.Errorf("unsupported data query")
		}
		if err != nil {
			return fmt.Errorf("error handling data query %s: %w", req.QueryName, err)
		}
	}
	return nil
}

func requireSession(f *filters) error {
	if f.sessionID == "" {
		return fmt.Errorf("missing required filter option '%s'", sessionIDKey)
	}
	return nil
}

func (ds *DataSource) handleBegin(f *filters, series util.DataBuilder) error {
	if !f.hasTouch {
		return fmt.Errorf("missing required filter options '%s' and '%s'", touchXKey, touchYKey)
	}
	if err := requireSession(f); err != nil {
		return err
	}
	s, err := ds.session(f.chartName, f.sessionID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if f.hasRect {
		s.resolver.UpdateGeometry(f.rect)
	}
	s.event = markerEventNone
	d, err := s.resolver.BeginTouch(touch.Event{Location: f.location})
	return buildResult(series, d, err, s.event, s.resolver.State())
}

// handleEnd ends the session's touch.  A session that isn't cached has no
// touch to end, and is not created.
func (ds *DataSource) handleEnd(f *filters, series util.DataBuilder) error {
	if err := requireSession(f); err != nil {
		return err
	}
	s, ok := ds.existingSession(f.chartName, f.sessionID)
	if !ok {
		series.With(
			util.StringProperty(markerEventKey, markerEventNone),
			util.StringProperty(touchStateKey, touch.Idle.String()),
		)
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.event = markerEventNone
	s.resolver.EndTouch()
	series.With(
		util.StringProperty(markerEventKey, s.event),
		util.StringProperty(touchStateKey, s.resolver.State().String()),
	)
	return nil
}

func handleResolve(chart *config.Chart, f *filters, series util.DataBuilder) error {
	if !f.hasTouch || !f.hasRect {
		return fmt.Errorf("touch.resolve requires a touch location and drawable rectangle")
	}
	d, err := touch.Resolve(chart.Config, touch.Event{Location: f.location, Rect: f.rect}, chart.DataSet, chart.Geometry)
	if err != nil && !errors.Is(err, touch.ErrNotFound) {
		return err
	}
	series.With(util.IntegerProperty(foundKey, boolToInt(d != nil)))
	if d != nil {
		d.Build(series)
	}
	return nil
}

// buildResult populates series with a BeginTouch result.  A touch resolving
// to nothing is not an error.
func buildResult(series util.DataBuilder, d *marker.Descriptor, err error, event string, state touch.State) error {
	if err != nil && !errors.Is(err, touch.ErrNotFound) {
		return err
	}
	series.With(
		util.IntegerProperty(foundKey, boolToInt(d != nil)),
		util.StringProperty(markerEventKey, event),
		util.StringProperty(touchStateKey, state.String()),
	)
	if d != nil {
		d.Build(series)
	}
	return nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
