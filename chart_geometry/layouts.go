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

package chartgeometry

import (
	"fmt"
	"math"

	continuousaxis "github.com/ilhamster/charttouch/continuous_axis"
	"github.com/ilhamster/charttouch/dataset"
	"github.com/ilhamster/charttouch/geometry"
)

// BarRenderSettings controls bar layout.
type BarRenderSettings struct {
	// The fraction, in (0, 1], of its segment a bar's width fills.
	BarWidthFraction float64
	// Horizontal space, in pixels, between adjacent groups of a grouped bar
	// chart.  Half of it is taken from each side of the boundary; the chart's
	// outer edges are not inset.
	GroupSpacingPx float64
}

// DefaultBarRenderSettings returns full-width bars with no group spacing.
func DefaultBarRenderSettings() BarRenderSettings {
	return BarRenderSettings{BarWidthFraction: 1}
}

// Bars lays out bar charts, grouped or not.  Bars rise from the zero line of
// a value axis spanning the data and zero.
type Bars struct {
	rs BarRenderSettings
}

// NewBars returns a bar layout with the provided settings.
func NewBars(rs BarRenderSettings) (*Bars, error) {
	if rs.BarWidthFraction <= 0 || rs.BarWidthFraction > 1 {
		return nil, fmt.Errorf("bar width fraction must be in (0, 1], got %v", rs.BarWidthFraction)
	}
	if rs.GroupSpacingPx < 0 {
		return nil, fmt.Errorf("group spacing must not be negative, got %v", rs.GroupSpacingPx)
	}
	return &Bars{rs: rs}, nil
}

// Place implements Provider.
func (b *Bars) Place(rect geometry.Rect, ds *dataset.DataSet) *Placement {
	segs := BarSegments(rect, ds)
	if segs == nil {
		return nil
	}
	min, max := ds.Extent()
	axis := continuousaxis.New(0, min, max)
	baseline := axis.Scale(0, rect.MaxY(), rect.Y)
	placement := &Placement{
		Rect:   rect,
		Points: make([]Placed, len(segs)),
		Axis:   axis,
	}
	for i, seg := range segs {
		p := ds.Point(i)
		left, right := seg.Min, seg.Max
		if ds.Grouped() {
			inset := b.rs.GroupSpacingPx / 2
			if p.IndexInGroup == 0 && p.GroupIndex > 0 {
				left += inset
			}
			if p.IndexInGroup == ds.GroupLen(p.GroupIndex)-1 && p.GroupIndex < len(ds.Groups())-1 {
				right -= inset
			}
			if right < left {
				mid := (left + right) / 2
				left, right = mid, mid
			}
		}
		width := (right - left) * b.rs.BarWidthFraction
		cx := (left + right) / 2
		top := axis.Scale(p.Value, rect.MaxY(), rect.Y)
		placement.Points[i] = Placed{
			Position: geometry.Pt(cx, top),
			Body: geometry.NewRect(
				cx-width/2, math.Min(top, baseline),
				width, math.Abs(baseline-top),
			),
		}
	}
	return placement
}

// Lines lays out line charts.  Ungrouped data is one series; grouped data is
// one series per group.  Each series spreads its points evenly across the
// rectangle's width; all series share a value axis spanning the data.
type Lines struct{}

// NewLines returns a line layout.
func NewLines() *Lines {
	return &Lines{}
}

// Place implements Provider.
func (l *Lines) Place(rect geometry.Rect, ds *dataset.DataSet) *Placement {
	if ds.Len() == 0 || rect.Empty() {
		return nil
	}
	min, max := ds.Extent()
	axis := continuousaxis.New(min, max)
	placement := &Placement{
		Rect:   rect,
		Points: make([]Placed, ds.Len()),
		Axis:   axis,
	}
	for i, p := range ds.Points() {
		count, j := ds.Len(), p.Index
		if ds.Grouped() {
			count, j = ds.GroupLen(p.GroupIndex), p.IndexInGroup
		}
		x := rect.Center().X
		if count > 1 {
			x = rect.X + boundary(j, count-1, rect.Width)
		}
		placement.Points[i] = Placed{
			Position: geometry.Pt(x, axis.Scale(p.Value, rect.MaxY(), rect.Y)),
		}
	}
	return placement
}

// Pie lays out pie and donut charts, centered in the rectangle and as large
// as fits.  Wedges run clockwise from 12 o'clock in data order, sized by each
// point's share of the positive total; non-positive values get empty wedges.
type Pie struct {
	donutRatio float64
}

// NewPie returns a pie layout.  donutRatio is the inner radius as a fraction
// of the outer radius, in [0, 1); 0 draws a full pie.
func NewPie(donutRatio float64) (*Pie, error) {
	if donutRatio < 0 || donutRatio >= 1 || math.IsNaN(donutRatio) {
		return nil, fmt.Errorf("donut ratio must be in [0, 1), got %v", donutRatio)
	}
	return &Pie{donutRatio: donutRatio}, nil
}

// Place implements Provider.
func (p *Pie) Place(rect geometry.Rect, ds *dataset.DataSet) *Placement {
	total := ds.Total()
	if ds.Len() == 0 || rect.Empty() || total <= 0 {
		return nil
	}
	frame := &PieFrame{
		Center:      rect.Center(),
		OuterRadius: math.Min(rect.Width, rect.Height) / 2,
		Wedges:      make([]Wedge, ds.Len()),
	}
	frame.InnerRadius = frame.OuterRadius * p.donutRatio
	placement := &Placement{
		Rect:   rect,
		Points: make([]Placed, ds.Len()),
		Pie:    frame,
	}
	lastPositive := -1
	for i := 0; i < ds.Len(); i++ {
		if ds.Point(i).Value > 0 {
			lastPositive = i
		}
	}
	var cumulative float64
	for i := 0; i < ds.Len(); i++ {
		start := 2 * math.Pi * cumulative / total
		if v := ds.Point(i).Value; v > 0 {
			cumulative += v
		}
		end := 2 * math.Pi * cumulative / total
		if i == lastPositive {
			// Close the circle exactly, whatever the rounding.
			end = 2 * math.Pi
		}
		if i > lastPositive {
			start, end = 2*math.Pi, 2*math.Pi
		}
		w := Wedge{Start: start, End: end}
		frame.Wedges[i] = w
		placement.Points[i] = Placed{
			Position: geometry.FromPolar(frame.Center, (frame.InnerRadius+frame.OuterRadius)/2, w.Mid()),
		}
	}
	return placement
}
