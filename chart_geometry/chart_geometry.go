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

// Package chartgeometry lays chart data out in pixel space.
//
// A Provider places every point of a DataSet within a chart's drawable
// rectangle:
//
//	placement := provider.Place(rect, ds)
//	pos := placement.Points[i].Position
//
// Hosts with their own layout engine implement Provider directly, or wrap a
// function with ProviderFunc.  This package also supplies providers for the
// chart kinds it knows: Bars (plain and grouped), Lines (one or more
// series), and Pie (including donuts).
//
// Bar layout and bar touch resolution share one horizontal partition, from
// BarSegments, so that a touch always lands in the column its bar is drawn
// in.
package chartgeometry

import (
	"math"

	continuousaxis "github.com/ilhamster/charttouch/continuous_axis"
	"github.com/ilhamster/charttouch/dataset"
	"github.com/ilhamster/charttouch/geometry"
)

// Provider lays out a DataSet within a drawable rectangle.
type Provider interface {
	// Place returns the layout of ds within rect, or nil if ds can't be laid
	// out there, e.g. because rect has no area.  The returned Placement's
	// Points parallel ds's points.
	Place(rect geometry.Rect, ds *dataset.DataSet) *Placement
}

// ProviderFunc adapts a function to a Provider.
type ProviderFunc func(rect geometry.Rect, ds *dataset.DataSet) *Placement

// Place calls f.
func (f ProviderFunc) Place(rect geometry.Rect, ds *dataset.DataSet) *Placement {
	return f(rect, ds)
}

// Placement is a DataSet's layout for one layout pass.
type Placement struct {
	Rect   geometry.Rect
	Points []Placed
	// Pie is set only by pie layouts.
	Pie *PieFrame
	// Axis is the value axis vertical positions were scaled on.  Nil for
	// pies.
	Axis *continuousaxis.Axis
}

// Placed is one point's layout.
type Placed struct {
	// Position is the point's anchor: the top center of a bar, a line
	// vertex, or the middle of a pie wedge.
	Position geometry.Point
	// Body is the drawn extent of a bar; zero for other kinds.
	Body geometry.Rect
}

// PieFrame describes a pie or donut.
type PieFrame struct {
	Center                   geometry.Point
	InnerRadius, OuterRadius float64
	// Wedges parallel the DataSet's points.
	Wedges []Wedge
}

// Wedge is an angular span in radians, clockwise from 12 o'clock.
type Wedge struct {
	Start, End float64
}

// Contains returns true if angle lies in [Start, End).
func (w Wedge) Contains(angle float64) bool {
	return angle >= w.Start && angle < w.End
}

// Mid returns the wedge's bisecting angle.
func (w Wedge) Mid() float64 {
	return (w.Start + w.End) / 2
}

// Segment is a half-open horizontal span [Min, Max) assigned to one bar.
// The last segment of a chart is closed at Max.
type Segment struct {
	Min, Max float64
}

// BarSegments partitions rect's width among ds's bars.  Ungrouped data gets
// one equal segment per point; grouped data gets one equal segment per
// group, each divided equally among that group's points.  Segments parallel
// ds's points.
func BarSegments(rect geometry.Rect, ds *dataset.DataSet) []Segment {
	n := ds.Len()
	if n == 0 || rect.Empty() {
		return nil
	}
	segs := make([]Segment, 0, n)
	if !ds.Grouped() {
		for i := 0; i < n; i++ {
			segs = append(segs, Segment{
				Min: rect.X + boundary(i, n, rect.Width),
				Max: rect.X + boundary(i+1, n, rect.Width),
			})
		}
		return segs
	}
	groups := len(ds.Groups())
	for g := 0; g < groups; g++ {
		gMin := rect.X + boundary(g, groups, rect.Width)
		gWidth := boundary(g+1, groups, rect.Width) - boundary(g, groups, rect.Width)
		m := ds.GroupLen(g)
		for j := 0; j < m; j++ {
			segs = append(segs, Segment{
				Min: gMin + boundary(j, m, gWidth),
				Max: gMin + boundary(j+1, m, gWidth),
			})
		}
	}
	return segs
}

// BarColumn returns the index of the bar whose segment contains x, or false
// if x lies outside rect horizontally or ds is empty.
func BarColumn(rect geometry.Rect, ds *dataset.DataSet, x float64) (int, bool) {
	n := ds.Len()
	if n == 0 || rect.Empty() || math.IsNaN(x) || x < rect.X || x > rect.MaxX() {
		return 0, false
	}
	rel := x - rect.X
	if !ds.Grouped() {
		return segmentIndex(rel, n, rect.Width), true
	}
	groups := len(ds.Groups())
	g := segmentIndex(rel, groups, rect.Width)
	gMin := boundary(g, groups, rect.Width)
	gWidth := boundary(g+1, groups, rect.Width) - gMin
	m := ds.GroupLen(g)
	if m == 0 {
		return 0, false
	}
	j := segmentIndex(rel-gMin, m, gWidth)
	return ds.GroupPoint(g, j).Index, true
}

// boundary returns the left edge of the i'th of n equal segments of width.
// Both layout and hit-testing compute edges this way, so a coordinate
// computed as float64(i)*width/float64(n) lands exactly on an edge.
func boundary(i, n int, width float64) float64 {
	return float64(i) * width / float64(n)
}

// segmentIndex returns the segment of n equal, left-closed segments of width
// containing rel, in [0, width].  The last segment is right-closed.
func segmentIndex(rel float64, n int, width float64) int {
	idx := int(math.Floor(rel * float64(n) / width))
	// Correct for rounding against the exact edges.
	for idx > 0 && rel < boundary(idx, n, width) {
		idx--
	}
	for idx < n-1 && rel >= boundary(idx+1, n, width) {
		idx++
	}
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	return idx
}
