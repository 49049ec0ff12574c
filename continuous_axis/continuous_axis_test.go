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

package continuousaxis

import (
	"testing"

	testutil "github.com/ilhamster/charttouch/test_util"
	"github.com/ilhamster/charttouch/util"
)

func TestAxis(t *testing.T) {
	for _, test := range []struct {
		description      string
		axis             *Axis
		wantMin, wantMax float64
		v, lo, hi        float64
		wantScaled       float64
	}{{
		description: "extents in any order",
		axis:        New(50, 0, 100),
		wantMin:     0,
		wantMax:     100,
		v:           25,
		lo:          0,
		hi:          200,
		wantScaled:  50,
	}, {
		description: "inverted screen range",
		axis:        New(0, 10),
		wantMin:     0,
		wantMax:     10,
		v:           10,
		lo:          100,
		hi:          0,
		wantScaled:  0,
	}, {
		description: "degenerate axis centers values",
		axis:        New(5, 5),
		wantMin:     5,
		wantMax:     5,
		v:           5,
		lo:          0,
		hi:          40,
		wantScaled:  20,
	}, {
		description: "no extents",
		axis:        New(),
		wantMin:     0,
		wantMax:     1,
		v:           1,
		lo:          0,
		hi:          10,
		wantScaled:  10,
	}} {
		t.Run(test.description, func(t *testing.T) {
			if got := test.axis.Scale(test.v, test.lo, test.hi); got != test.wantScaled {
				t.Errorf("Scale(%v, %v, %v) = %v, want %v", test.v, test.lo, test.hi, got, test.wantScaled)
			}
			if msg, failed := testutil.NewUpdateComparator().
				WithTestUpdates(test.axis.Define()).
				WithWantUpdates(
					util.DoubleProperty(axisMinKey, test.wantMin),
					util.DoubleProperty(axisMaxKey, test.wantMax),
				).
				Compare(t); failed {
				t.Fatal(msg)
			}
		})
	}
}
