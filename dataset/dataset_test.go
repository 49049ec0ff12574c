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

package dataset

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	testutil "github.com/ilhamster/charttouch/test_util"
	"github.com/ilhamster/charttouch/util"
)

type placed struct {
	ID           string
	Index        int
	GroupIndex   int
	IndexInGroup int
}

func summarize(ds *DataSet) []placed {
	ret := []placed{}
	for _, p := range ds.Points() {
		ret = append(ret, placed{p.ID, p.Index, p.GroupIndex, p.IndexInGroup})
	}
	return ret
}

func TestBuild(t *testing.T) {
	europe := NewGroup("europe", "Europe", "")
	asia := NewGroup("asia", "Asia", "")
	for _, test := range []struct {
		description string
		build       func(b *Builder)
		want        []placed
		wantGroups  int
	}{{
		description: "ungrouped keeps insertion order",
		build: func(b *Builder) {
			b.Point("jan", 1, "").Point("feb", 2, "").Point("", 3, "")
		},
		want: []placed{
			{"jan", 0, 0, 0},
			{"feb", 1, 0, 0},
			{"2", 2, 0, 0},
		},
	}, {
		description: "interleaved groups are made contiguous",
		build: func(b *Builder) {
			e := b.Group(europe)
			a := b.Group(asia)
			e.Point("eu-apples", 12, "apples")
			a.Point("as-apples", 8, "apples")
			e.Point("eu-pears", 6, "pears")
			a.Point("as-pears", 14, "pears")
			e.Point("eu-plums", 3, "plums")
		},
		want: []placed{
			{"eu-apples", 0, 0, 0},
			{"eu-pears", 1, 0, 1},
			{"eu-plums", 2, 0, 2},
			{"as-apples", 3, 1, 0},
			{"as-pears", 4, 1, 1},
		},
		wantGroups: 2,
	}} {
		t.Run(test.description, func(t *testing.T) {
			b := NewBuilder()
			test.build(b)
			ds, err := b.Build()
			if err != nil {
				t.Fatalf("Build() yielded unexpected error %s", err)
			}
			if diff := cmp.Diff(test.want, summarize(ds)); diff != "" {
				t.Errorf("Got unexpected points, diff (-want +got):\n%s", diff)
			}
			if got := len(ds.Groups()); got != test.wantGroups {
				t.Errorf("Groups() has %d groups, want %d", got, test.wantGroups)
			}
			for _, p := range ds.Points() {
				if !ds.Contains(p) {
					t.Errorf("Contains(%v) = false for its own point", p.ID)
				}
			}
		})
	}
}

func TestGroupAccessors(t *testing.T) {
	b := NewBuilder()
	b.Group(NewGroup("a", "A", "")).Point("a0", 1, "").Point("a1", 2, "")
	b.Group(NewGroup("b", "B", "")).Point("b0", 3, "")
	ds, err := b.Build()
	if err != nil {
		t.Fatalf("Build() yielded unexpected error %s", err)
	}
	if ds.GroupLen(0) != 2 || ds.GroupLen(1) != 1 {
		t.Errorf("GroupLen = %d, %d; want 2, 1", ds.GroupLen(0), ds.GroupLen(1))
	}
	if got := ds.GroupPoint(1, 0).ID; got != "b0" {
		t.Errorf("GroupPoint(1, 0) = %q, want 'b0'", got)
	}
	if min, max := ds.Extent(); min != 1 || max != 3 {
		t.Errorf("Extent() = %v, %v; want 1, 3", min, max)
	}
}

func TestBuildErrors(t *testing.T) {
	for _, test := range []struct {
		description string
		build       func(b *Builder)
		wantErr     error
	}{{
		description: "duplicate ID",
		build: func(b *Builder) {
			b.Point("x", 1, "").Point("x", 2, "")
		},
	}, {
		description: "NaN value",
		build: func(b *Builder) {
			b.Point("x", math.NaN(), "")
		},
	}, {
		description: "mixed grouping",
		build: func(b *Builder) {
			b.Point("x", 1, "")
			b.Group(NewGroup("g", "G", "")).Point("y", 1, "")
		},
		wantErr: ErrMixedGrouping,
	}} {
		t.Run(test.description, func(t *testing.T) {
			b := NewBuilder()
			test.build(b)
			_, err := b.Build()
			if err == nil {
				t.Fatalf("Build() should have failed")
			}
			if test.wantErr != nil && !errors.Is(err, test.wantErr) {
				t.Errorf("Build() = %v, want %v", err, test.wantErr)
			}
		})
	}
}

func TestVersionsAndStaleness(t *testing.T) {
	first, _ := NewBuilder().Point("a", 1, "").Build()
	second, _ := NewBuilder().Point("a", 2, "").Build()
	if first.Version() == second.Version() {
		t.Errorf("distinct builds share version %d", first.Version())
	}
	if second.Contains(first.Point(0)) {
		t.Errorf("a point with a stale value should not be contained in a newer DataSet")
	}
	if Empty().Len() != 0 {
		t.Errorf("Empty() is not empty")
	}
	var nilDS *DataSet
	if nilDS.Len() != 0 || nilDS.Grouped() || nilDS.Total() != 0 {
		t.Errorf("nil DataSet should behave as empty")
	}
}

func TestDefine(t *testing.T) {
	g := NewGroup("europe", "Europe", "steelblue")
	b := NewBuilder()
	b.Group(g).Point("eu-apples", 12, "apples")
	ds, _ := b.Build()
	if msg, failed := testutil.NewUpdateComparator().
		WithTestUpdates(g.Define(), ds.Point(0).Define()).
		WithWantUpdates(
			util.StringProperty(groupIDKey, "europe"),
			util.StringProperty(groupDisplayNameKey, "Europe"),
			util.StringProperty(groupColorKey, "steelblue"),
			util.StringProperty(pointIDKey, "eu-apples"),
			util.DoubleProperty(pointValueKey, 12),
			util.StringProperty(pointDescriptionKey, "apples"),
			util.IntegerProperty(pointIndexKey, 0),
			util.IntegerProperty(pointGroupIndexKey, 0),
			util.IntegerProperty(pointIndexInGroupKey, 0),
		).
		Compare(t); failed {
		t.Fatal(msg)
	}
}
