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

// Package dataset defines the immutable chart data that touch resolution
// reads.
//
// A DataSet is assembled with a Builder:
//
//	b := dataset.NewBuilder()
//	b.Point("jan", 12, "January")
//	b.Point("feb", 8, "February")
//	ds, err := b.Build()
//
// Grouped data, used by grouped bar charts and multi-series line charts, is
// added through groups:
//
//	europe := b.Group(dataset.NewGroup("europe", "Europe", "steelblue"))
//	europe.Point("eu-apples", 12, "apples")
//	europe.Point("eu-pears", 6, "pears")
//
// Points keep insertion order, except that a grouped DataSet is ordered
// group by group, groups in order of first appearance.  Each point records
// its overall Index, its group's GroupIndex, and its IndexInGroup, all derived
// from that order.
//
// Built DataSets never change.  Every Build yields a distinct Version, so a
// consumer holding a Point can tell whether it came from the DataSet it is
// currently looking at.
package dataset

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync/atomic"

	"github.com/ilhamster/charttouch/util"
)

const (
	groupIDKey          = "group_id"
	groupDisplayNameKey = "group_display_name"
	groupColorKey       = "group_color"

	pointIDKey           = "point_id"
	pointValueKey        = "point_value"
	pointDescriptionKey  = "point_description"
	pointIndexKey        = "point_index"
	pointGroupIndexKey   = "point_group_index"
	pointIndexInGroupKey = "point_index_in_group"
)

// ErrMixedGrouping is returned by Build when grouped and ungrouped points are
// combined.
var ErrMixedGrouping = errors.New("dataset mixes grouped and ungrouped points")

var versions atomic.Uint64

// Group identifies a category of points: a bar group, or a line series.
type Group struct {
	ID          string
	DisplayName string
	// Color is an optional fixed color for the group's markers.
	Color string
}

// NewGroup returns a new Group.
func NewGroup(id, displayName, color string) *Group {
	return &Group{
		ID:          id,
		DisplayName: displayName,
		Color:       color,
	}
}

// Define annotates with the receiver's identity.
func (g *Group) Define() util.PropertyUpdate {
	return util.Chain(
		util.StringProperty(groupIDKey, g.ID),
		util.StringProperty(groupDisplayNameKey, g.DisplayName),
		util.If(g.Color != "", util.StringProperty(groupColorKey, g.Color)),
	)
}

// Point is one plotted value.
type Point struct {
	ID          string
	Value       float64
	Description string
	// Group is nil for ungrouped points.
	Group        *Group
	Index        int
	GroupIndex   int
	IndexInGroup int
}

// Define annotates with the receiver's identity and value.
func (p Point) Define() util.PropertyUpdate {
	return util.Chain(
		util.StringProperty(pointIDKey, p.ID),
		util.DoubleProperty(pointValueKey, p.Value),
		util.If(p.Description != "", util.StringProperty(pointDescriptionKey, p.Description)),
		util.IntegerProperty(pointIndexKey, int64(p.Index)),
		util.If(p.Group != nil, util.Chain(
			util.IntegerProperty(pointGroupIndexKey, int64(p.GroupIndex)),
			util.IntegerProperty(pointIndexInGroupKey, int64(p.IndexInGroup)),
		)),
	)
}

// DataSet is an immutable, ordered collection of Points.
type DataSet struct {
	version uint64
	points  []Point
	groups  []*Group
	// Index of each group's first point; groups are contiguous.
	groupStarts []int
	byID        map[string]int
}

// Empty returns a DataSet with no points.
func Empty() *DataSet {
	ds, _ := NewBuilder().Build()
	return ds
}

// Version identifies the receiver among all DataSets built by this process.
func (ds *DataSet) Version() uint64 {
	return ds.version
}

// Len returns the number of points.  A nil DataSet is empty.
func (ds *DataSet) Len() int {
	if ds == nil {
		return 0
	}
	return len(ds.points)
}

// Point returns the i'th point.
func (ds *DataSet) Point(i int) Point {
	return ds.points[i]
}

// Points returns a copy of all points in order.
func (ds *DataSet) Points() []Point {
	return append([]Point{}, ds.points...)
}

// Lookup returns the point with the given ID.
func (ds *DataSet) Lookup(id string) (Point, bool) {
	if ds == nil {
		return Point{}, false
	}
	idx, ok := ds.byID[id]
	if !ok {
		return Point{}, false
	}
	return ds.points[idx], true
}

// Grouped returns true if the receiver's points belong to groups.
func (ds *DataSet) Grouped() bool {
	return ds != nil && len(ds.groups) > 0
}

// Groups returns the receiver's groups in order.
func (ds *DataSet) Groups() []*Group {
	if ds == nil {
		return nil
	}
	return append([]*Group{}, ds.groups...)
}

// GroupLen returns the number of points in group g.
func (ds *DataSet) GroupLen(g int) int {
	end := len(ds.points)
	if g+1 < len(ds.groupStarts) {
		end = ds.groupStarts[g+1]
	}
	return end - ds.groupStarts[g]
}

// GroupPoint returns the j'th point of group g.
func (ds *DataSet) GroupPoint(g, j int) Point {
	return ds.points[ds.groupStarts[g]+j]
}

// Extent returns the smallest and largest values, or (0, 0) if empty.
func (ds *DataSet) Extent() (min, max float64) {
	if ds.Len() == 0 {
		return 0, 0
	}
	min, max = math.Inf(1), math.Inf(-1)
	for _, p := range ds.points {
		min = math.Min(min, p.Value)
		max = math.Max(max, p.Value)
	}
	return min, max
}

// Total returns the sum of all positive values.
func (ds *DataSet) Total() float64 {
	var total float64
	if ds == nil {
		return 0
	}
	for _, p := range ds.points {
		if p.Value > 0 {
			total += p.Value
		}
	}
	return total
}

// Contains returns true if p was taken from the receiver.
func (ds *DataSet) Contains(p Point) bool {
	got, ok := ds.Lookup(p.ID)
	return ok && got.Index == p.Index && got.Value == p.Value && got.Group == p.Group
}

type pending struct {
	id, description string
	value           float64
	group           *Group
}

// Builder assembles a DataSet.  Builders are not safe for concurrent use.
type Builder struct {
	points []pending
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Point appends an ungrouped point.  An empty id is replaced by the point's
// insertion position.
func (b *Builder) Point(id string, value float64, description string) *Builder {
	b.points = append(b.points, pending{id: id, value: value, description: description})
	return b
}

// Group returns a GroupBuilder appending points to g.
func (b *Builder) Group(g *Group) *GroupBuilder {
	return &GroupBuilder{b: b, g: g}
}

// GroupBuilder appends points belonging to one Group.
type GroupBuilder struct {
	b *Builder
	g *Group
}

// Point appends a point to the receiver's group.
func (gb *GroupBuilder) Point(id string, value float64, description string) *GroupBuilder {
	gb.b.points = append(gb.b.points, pending{id: id, value: value, description: description, group: gb.g})
	return gb
}

// Build returns the assembled DataSet.  It fails on non-finite values,
// duplicate IDs, or a mix of grouped and ungrouped points.
func (b *Builder) Build() (*DataSet, error) {
	ds := &DataSet{
		version: versions.Add(1),
		points:  make([]Point, 0, len(b.points)),
		byID:    make(map[string]int, len(b.points)),
	}
	groupIdx := map[*Group]int{}
	grouped, ungrouped := false, false
	for i, p := range b.points {
		if math.IsNaN(p.value) || math.IsInf(p.value, 0) {
			return nil, fmt.Errorf("point %d (%q) has non-finite value %v", i, p.id, p.value)
		}
		if p.group == nil {
			ungrouped = true
			continue
		}
		grouped = true
		if _, ok := groupIdx[p.group]; !ok {
			groupIdx[p.group] = len(ds.groups)
			ds.groups = append(ds.groups, p.group)
		}
	}
	if grouped && ungrouped {
		return nil, ErrMixedGrouping
	}
	order := make([]int, len(b.points))
	for i := range order {
		order[i] = i
	}
	if grouped {
		sort.SliceStable(order, func(a, c int) bool {
			return groupIdx[b.points[order[a]].group] < groupIdx[b.points[order[c]].group]
		})
		ds.groupStarts = make([]int, len(ds.groups))
	}
	inGroup := make([]int, len(ds.groups))
	for _, src := range order {
		p := b.points[src]
		pt := Point{
			ID:          p.id,
			Value:       p.value,
			Description: p.description,
			Group:       p.group,
			Index:       len(ds.points),
		}
		if pt.ID == "" {
			pt.ID = fmt.Sprintf("%d", src)
		}
		if p.group != nil {
			g := groupIdx[p.group]
			if inGroup[g] == 0 {
				ds.groupStarts[g] = pt.Index
			}
			pt.GroupIndex = g
			pt.IndexInGroup = inGroup[g]
			inGroup[g]++
		}
		if _, dup := ds.byID[pt.ID]; dup {
			return nil, fmt.Errorf("duplicate point ID %q", pt.ID)
		}
		ds.byID[pt.ID] = pt.Index
		ds.points = append(ds.points, pt)
	}
	return ds, nil
}
