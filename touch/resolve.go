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

package touch

import (
	"fmt"
	"math"

	chartgeometry "github.com/ilhamster/charttouch/chart_geometry"
	"github.com/ilhamster/charttouch/dataset"
	"github.com/ilhamster/charttouch/geometry"
	"github.com/ilhamster/charttouch/label"
	"github.com/ilhamster/charttouch/marker"
)

// Event is a single touch: where it landed, and the chart's drawable
// rectangle at that moment.
type Event struct {
	Location geometry.Point
	Rect     geometry.Rect
}

// Resolve maps ev to the data under it within ds, laid out by geo, and
// returns the marker cfg draws for it.  Resolve depends only on its
// arguments.  It returns ErrNotFound when nothing is under the touch.
func Resolve(cfg Config, ev Event, ds *dataset.DataSet, geo chartgeometry.Provider) (*marker.Descriptor, error) {
	return resolve(cfg, label.New(cfg.Locale), ev, ds, geo)
}

func resolve(cfg Config, lf *label.Formatter, ev Event, ds *dataset.DataSet, geo chartgeometry.Provider) (*marker.Descriptor, error) {
	rect, loc := ev.Rect, ev.Location
	if rect.Empty() || !rect.Contains(loc) || ds.Len() == 0 || geo == nil {
		return nil, ErrNotFound
	}
	placement := geo.Place(rect, ds)
	if placement == nil {
		return nil, ErrNotFound
	}
	if len(placement.Points) != ds.Len() {
		return nil, fmt.Errorf("geometry placed %d points for a DataSet of %d", len(placement.Points), ds.Len())
	}
	var (
		matches []marker.Match
		segment chartgeometry.Segment
	)
	switch cfg.Kind {
	case marker.BarChart:
		idx, ok := chartgeometry.BarColumn(rect, ds, loc.X)
		if !ok {
			return nil, ErrNotFound
		}
		placed := placement.Points[idx]
		if cfg.hitTest() == BarIntersectOnly && !placed.Body.Contains(loc) {
			return nil, ErrNotFound
		}
		segment = chartgeometry.BarSegments(rect, ds)[idx]
		matches = []marker.Match{match(ds, placement, idx)}
	case marker.LineChart:
		for _, idx := range nearestLinePoints(ds, placement, loc, cfg.hitTest() == LineNearestPerSeries) {
			matches = append(matches, match(ds, placement, idx))
		}
	case marker.PieChart:
		idx, ok := pieWedge(placement.Pie, loc)
		if !ok || idx >= ds.Len() {
			return nil, ErrNotFound
		}
		m := match(ds, placement, idx)
		wedge := placement.Pie.Wedges[idx]
		m.Wedge = &wedge
		matches = []marker.Match{m}
	default:
		return nil, fmt.Errorf("unsupported chart kind %s", cfg.Kind)
	}
	if len(matches) == 0 {
		return nil, ErrNotFound
	}
	points := make([]dataset.Point, len(matches))
	for i := range matches {
		marker.Decorate(cfg.Kind, cfg.Marker, rect, loc, segment, &matches[i])
		points[i] = matches[i].Point
	}
	lbl, err := lf.InfoBox(points)
	if err != nil {
		return nil, err
	}
	return &marker.Descriptor{
		Kind:           cfg.Kind,
		Style:          cfg.Marker.Style,
		Attachment:     cfg.Marker.Attachment.Kind,
		Location:       loc,
		Rect:           rect,
		Matches:        matches,
		Label:          lbl,
		DataSetVersion: ds.Version(),
		Palette:        cfg.Palette,
		Groups:         len(ds.Groups()),
		Axis:           placement.Axis,
	}, nil
}

func match(ds *dataset.DataSet, placement *chartgeometry.Placement, idx int) marker.Match {
	return marker.Match{
		Point:    ds.Point(idx),
		Position: placement.Points[idx].Position,
	}
}

// nearestLinePoints returns the indices of the points nearest loc, either
// the single nearest or the nearest of each series in series order.
// Distance is horizontal first: points are ordered by horizontal distance,
// then vertical distance, then series, then index.  Points placed at
// non-finite positions are never selected.
func nearestLinePoints(ds *dataset.DataSet, placement *chartgeometry.Placement, loc geometry.Point, perSeries bool) []int {
	series := func(p dataset.Point) int {
		if p.Group == nil {
			return 0
		}
		return p.GroupIndex
	}
	best := map[int]int{}
	order := []int{}
	for idx, placed := range placement.Points {
		if !placed.Position.Valid() {
			continue
		}
		s := 0
		if perSeries {
			s = series(ds.Point(idx))
		}
		cur, ok := best[s]
		if !ok {
			best[s] = idx
			order = append(order, s)
			continue
		}
		if closer(placed.Position, placement.Points[cur].Position, loc) {
			best[s] = idx
		}
	}
	ret := make([]int, 0, len(order))
	for _, s := range order {
		ret = append(ret, best[s])
	}
	return ret
}

// closer returns true if a is strictly closer to loc than b.  Points are
// visited in series then index order, so ties keep the earlier point.
func closer(a, b, loc geometry.Point) bool {
	adx, bdx := math.Abs(a.X-loc.X), math.Abs(b.X-loc.X)
	if adx != bdx {
		return adx < bdx
	}
	return math.Abs(a.Y-loc.Y) < math.Abs(b.Y-loc.Y)
}

// pieWedge returns the index of the wedge under loc, which must lie outside
// the inner radius and within the outer radius.
func pieWedge(pie *chartgeometry.PieFrame, loc geometry.Point) (int, bool) {
	if pie == nil {
		return 0, false
	}
	r, angle := geometry.Polar(pie.Center, loc)
	if !(r > pie.InnerRadius && r <= pie.OuterRadius) {
		return 0, false
	}
	for idx, w := range pie.Wedges {
		if w.Contains(angle) {
			return idx, true
		}
	}
	return 0, false
}
