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

package geometry

import (
	"math"
	"testing"
)

func TestRectContains(t *testing.T) {
	r := NewRect(10, 20, 100, 50)
	for _, test := range []struct {
		description string
		rect        Rect
		p           Point
		want        bool
	}{{
		description: "interior",
		rect:        r,
		p:           Pt(50, 40),
		want:        true,
	}, {
		description: "top-left corner",
		rect:        r,
		p:           Pt(10, 20),
		want:        true,
	}, {
		description: "bottom-right corner",
		rect:        r,
		p:           Pt(110, 70),
		want:        true,
	}, {
		description: "left of rect",
		rect:        r,
		p:           Pt(9.999, 40),
	}, {
		description: "below rect",
		rect:        r,
		p:           Pt(50, 70.001),
	}, {
		description: "zero-width rect",
		rect:        NewRect(0, 0, 0, 50),
		p:           Pt(0, 10),
	}, {
		description: "NaN point",
		rect:        r,
		p:           Pt(math.NaN(), 40),
	}, {
		description: "infinite rect",
		rect:        NewRect(0, 0, math.Inf(1), 10),
		p:           Pt(1, 1),
	}} {
		t.Run(test.description, func(t *testing.T) {
			if got := test.rect.Contains(test.p); got != test.want {
				t.Errorf("%v.Contains(%v) = %t, want %t", test.rect, test.p, got, test.want)
			}
		})
	}
}

func TestPolar(t *testing.T) {
	center := Pt(100, 100)
	for _, test := range []struct {
		description string
		p           Point
		wantRadius  float64
		wantAngle   float64
	}{{
		description: "straight up",
		p:           Pt(100, 90),
		wantRadius:  10,
		wantAngle:   0,
	}, {
		description: "right",
		p:           Pt(120, 100),
		wantRadius:  20,
		wantAngle:   math.Pi / 2,
	}, {
		description: "straight down",
		p:           Pt(100, 130),
		wantRadius:  30,
		wantAngle:   math.Pi,
	}, {
		description: "left",
		p:           Pt(60, 100),
		wantRadius:  40,
		wantAngle:   3 * math.Pi / 2,
	}} {
		t.Run(test.description, func(t *testing.T) {
			r, a := Polar(center, test.p)
			if math.Abs(r-test.wantRadius) > 1e-9 || math.Abs(a-test.wantAngle) > 1e-9 {
				t.Errorf("Polar(%v) = (%v, %v), want (%v, %v)", test.p, r, a, test.wantRadius, test.wantAngle)
			}
			back := FromPolar(center, r, a)
			if math.Abs(back.X-test.p.X) > 1e-9 || math.Abs(back.Y-test.p.Y) > 1e-9 {
				t.Errorf("FromPolar(Polar(%v)) = %v", test.p, back)
			}
		})
	}
}
