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

package color

import (
	"testing"

	testutil "github.com/ilhamster/charttouch/test_util"
	"github.com/ilhamster/charttouch/util"
)

func TestColorDeclarations(t *testing.T) {
	groups := NewSpace("groups", "steelblue", "#C0C0C0", "firebrick")
	for _, test := range []struct {
		description string
		update      util.PropertyUpdate
		wantUpdates []util.PropertyUpdate
	}{{
		description: "space definition",
		update:      groups.Define(),
		wantUpdates: []util.PropertyUpdate{
			util.StringsProperty(colorSpaceNamePrefix+"groups", "steelblue", "#C0C0C0", "firebrick"),
		},
	}, {
		description: "primary from color space",
		update:      groups.PrimaryColor(.5),
		wantUpdates: []util.PropertyUpdate{
			util.StringProperty(primaryColorSpaceKey, colorSpaceNamePrefix+"groups"),
			util.DoubleProperty(primaryColorSpaceValueKey, .5),
		},
	}, {
		description: "fixed colors",
		update:      util.Chain(Primary("red"), Stroke("black")),
		wantUpdates: []util.PropertyUpdate{
			util.StringProperty(primaryColorKey, "red"),
			util.StringProperty(strokeColorKey, "black"),
		},
	}} {
		t.Run(test.description, func(t *testing.T) {
			if msg, failed := testutil.NewUpdateComparator().
				WithTestUpdates(test.update).
				WithWantUpdates(test.wantUpdates...).
				Compare(t); failed {
				t.Fatal(msg)
			}
		})
	}
}

func TestPosition(t *testing.T) {
	s := NewSpace("s", "a", "b")
	for _, test := range []struct {
		index, count int
		want         float64
	}{
		{0, 1, 0},
		{0, 3, 0},
		{1, 3, .5},
		{2, 3, 1},
		{5, 3, 1},
		{-1, 3, 0},
	} {
		if got := s.Position(test.index, test.count); got != test.want {
			t.Errorf("Position(%d, %d) = %v, want %v", test.index, test.count, got, test.want)
		}
	}
}
