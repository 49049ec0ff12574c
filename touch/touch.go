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

// Package touch resolves touches on a chart to the data beneath them, and
// to the marker drawn in response.
//
// A Resolver is created per chart instance, from a Config fixed for its
// lifetime and a geometry provider laying the chart out:
//
//	r, err := touch.New(
//	  touch.DefaultConfig(marker.BarChart),
//	  bars,
//	  touch.WithListener(renderer),
//	  touch.WithDataSet(ds),
//	)
//	if err != nil {
//	  // The configuration is unusable: errors.Is(err, touch.ErrConfiguration).
//	}
//	r.UpdateGeometry(drawableRect)
//
// The host then forwards its pointer events:
//
//	r.BeginTouch(touch.Event{Location: pos}) // on pointer down and move
//	r.EndTouch()                             // on pointer up or cancel
//
// Each BeginTouch resolves against the Resolver's current DataSet and
// geometry and notifies the Listener synchronously: MarkerChanged with the
// new Descriptor, or MarkerCleared when a marker was showing and the touch no
// longer resolves.  EndTouch clears any showing marker.
//
// Resolvers are not safe for concurrent use.  DataSets are immutable, so a
// host updating data in the background swaps in a new DataSet with
// SetDataSet between touches.
package touch

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
	chartgeometry "github.com/ilhamster/charttouch/chart_geometry"
	"github.com/ilhamster/charttouch/dataset"
	"github.com/ilhamster/charttouch/geometry"
	"github.com/ilhamster/charttouch/label"
	"github.com/ilhamster/charttouch/marker"
)

// State is a Resolver's touch state.
type State int

// Resolver states.
const (
	Idle State = iota
	Tracking
)

func (s State) String() string {
	if s == Tracking {
		return "tracking"
	}
	return "idle"
}

// Listener receives marker changes.  It is typically the marker renderer.
type Listener interface {
	// MarkerChanged is called with each successfully resolved touch.
	MarkerChanged(d *marker.Descriptor)
	// MarkerCleared is called when a showing marker should be removed.
	MarkerCleared()
}

// Option configures a Resolver.
type Option func(r *Resolver)

// WithLogger directs the Resolver's debug logging to logger.
func WithLogger(logger *log.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithListener registers the Resolver's Listener.
func WithListener(l Listener) Option {
	return func(r *Resolver) {
		r.listener = l
	}
}

// WithDataSet sets the Resolver's initial DataSet.
func WithDataSet(ds *dataset.DataSet) Option {
	return func(r *Resolver) {
		r.SetDataSet(ds)
	}
}

// Resolver tracks touches on one chart.
type Resolver struct {
	cfg       Config
	geo       chartgeometry.Provider
	formatter *label.Formatter
	listener  Listener
	logger    *log.Logger

	ds    *dataset.DataSet
	rect  geometry.Rect
	state State
	// True while the Listener shows a marker.
	showing bool
}

// New returns a Resolver for cfg, laid out by geo.  It fails with a
// *ConfigurationError if cfg is invalid or geo is nil.
func New(cfg Config, geo chartgeometry.Provider, opts ...Option) (*Resolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if geo == nil {
		return nil, &ConfigurationError{Kind: cfg.Kind, Option: "geometry", Err: errors.New("no geometry provider")}
	}
	r := &Resolver{
		cfg:       cfg,
		geo:       geo,
		formatter: label.New(cfg.Locale),
		logger:    log.New(io.Discard),
		ds:        dataset.Empty(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Config returns the receiver's configuration.
func (r *Resolver) Config() Config {
	return r.cfg
}

// State returns the receiver's touch state.
func (r *Resolver) State() State {
	return r.state
}

// DataSet returns the receiver's current DataSet.
func (r *Resolver) DataSet() *dataset.DataSet {
	return r.ds
}

// SetDataSet replaces the receiver's DataSet.  The next BeginTouch resolves
// against it.  A nil ds is treated as empty.
func (r *Resolver) SetDataSet(ds *dataset.DataSet) {
	if ds == nil {
		ds = dataset.Empty()
	}
	r.ds = ds
	r.logger.Debug("DataSet replaced", "version", ds.Version(), "points", ds.Len())
}

// UpdateGeometry sets the drawable rectangle used by events that carry no
// rectangle at all.
// Hosts call it whenever layout changes.
func (r *Resolver) UpdateGeometry(rect geometry.Rect) {
	r.rect = rect
	r.logger.Debug("Geometry updated", "x", rect.X, "y", rect.Y, "width", rect.Width, "height", rect.Height)
}

// Resolve resolves ev against the receiver's current DataSet and geometry
// without changing its state or notifying its Listener.  An event with no
// rectangle uses the one from UpdateGeometry; an event whose rectangle has
// no area resolves to nothing.
func (r *Resolver) Resolve(ev Event) (*marker.Descriptor, error) {
	if ev.Rect == (geometry.Rect{}) {
		ev.Rect = r.rect
	}
	return resolve(r.cfg, r.formatter, ev, r.ds, r.geo)
}

// BeginTouch starts or continues a touch at ev, resolves it, and notifies
// the Listener.  It returns the resolved Descriptor, or ErrNotFound.
func (r *Resolver) BeginTouch(ev Event) (*marker.Descriptor, error) {
	if r.state == Idle {
		r.logger.Debug("Touch began", "kind", r.cfg.Kind)
	}
	r.state = Tracking
	d, err := r.Resolve(ev)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			r.logger.Error("Failed to resolve touch", "kind", r.cfg.Kind, "error", err)
		}
		r.clear()
		return nil, err
	}
	r.logger.Debug("Touch resolved",
		"kind", r.cfg.Kind,
		"x", ev.Location.X,
		"y", ev.Location.Y,
		"matches", len(d.Matches),
		"version", d.DataSetVersion,
	)
	r.showing = true
	if r.listener != nil {
		r.listener.MarkerChanged(d)
	}
	return d, nil
}

// EndTouch ends the current touch and clears any showing marker.  It is a
// no-op when no touch is active.
func (r *Resolver) EndTouch() {
	if r.state == Idle {
		return
	}
	r.state = Idle
	r.clear()
	r.logger.Debug("Touch ended", "kind", r.cfg.Kind)
}

func (r *Resolver) clear() {
	if !r.showing {
		return
	}
	r.showing = false
	if r.listener != nil {
		r.listener.MarkerCleared()
	}
}
