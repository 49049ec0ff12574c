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

// Package continuousaxis maps data values onto a pixel extent.  Bar and line
// layouts use it to turn a point's value into a height or a vertical
// position.
package continuousaxis

import (
	"math"

	"github.com/ilhamster/charttouch/util"
)

const (
	axisMinKey = "axis_min"
	axisMaxKey = "axis_max"
)

// Axis is a linear value axis with fixed extents.
type Axis struct {
	min, max float64
}

// New returns an Axis spanning the lowest to the highest of extents.  With no
// extents, the axis spans [0, 1].
func New(extents ...float64) *Axis {
	if len(extents) == 0 {
		return &Axis{min: 0, max: 1}
	}
	min, max := math.MaxFloat64, -math.MaxFloat64
	for _, extent := range extents {
		min = math.Min(min, extent)
		max = math.Max(max, extent)
	}
	return &Axis{min: min, max: max}
}

// Define annotates with the receiver's extents, so that a renderer can map
// marker positions back onto values.
func (a *Axis) Define() util.PropertyUpdate {
	return util.Chain(
		util.DoubleProperty(axisMinKey, a.min),
		util.DoubleProperty(axisMaxKey, a.max),
	)
}

// Fraction returns v's position along the receiver, 0 at min and 1 at max.
// A degenerate axis places every value at 0.5.
func (a *Axis) Fraction(v float64) float64 {
	span := a.max - a.min
	if span == 0 {
		return 0.5
	}
	return (v - a.min) / span
}

// Scale maps v linearly onto [lo, hi], with min at lo and max at hi.  Pass
// lo > hi to invert, as for a screen y axis.
func (a *Axis) Scale(v, lo, hi float64) float64 {
	return lo + a.Fraction(v)*(hi-lo)
}
