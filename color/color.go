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

// Package color annotates markers and chart elements with colors.
//
// An element may carry a primary and a stroke color.  For a touch marker, the
// primary color fills the highlighted bar, wedge or dot, and the stroke color
// outlines it.
//
// Colors are given either as a fixed HTML color string:
//
//	marker.With(color.Primary("steelblue"), color.Stroke("white"))
//
// or as a position along a color Space, which the renderer linearly
// interpolates:
//
//	groups := color.NewSpace("groups", "steelblue", "firebrick")
//	bar.With(groups.PrimaryColor(groups.Position(groupIndex, groupCount)))
//
// Deriving the position from the element's index in its group means every
// bar in a grouped bar chart gets its own color, however many bars a group
// holds.
package color

import "github.com/ilhamster/charttouch/util"

const (
	colorSpaceNamePrefix = "color_space_"

	primaryColorSpaceKey      = "primary_color_space"
	primaryColorSpaceValueKey = "primary_color_space_value"
	primaryColorKey           = "primary_color"

	strokeColorKey = "stroke_color"
)

// Space is a named color continuum.
type Space struct {
	name   string
	colors []string
}

// NewSpace defines a color space interpolating between colors.
func NewSpace(name string, colors ...string) *Space {
	return &Space{
		name:   name,
		colors: colors,
	}
}

// Name returns the receiver's name.
func (s *Space) Name() string {
	return s.name
}

// Colors returns the receiver's stops.
func (s *Space) Colors() []string {
	return append([]string{}, s.colors...)
}

// Define annotates with a definition of the receiver.
func (s *Space) Define() util.PropertyUpdate {
	return util.StringsProperty(colorSpaceNamePrefix+s.name, s.colors...)
}

// Position maps the index-th of count elements evenly onto [0, 1].  A lone
// element sits at 0.  Out-of-range indices are clamped.
func (s *Space) Position(index, count int) float64 {
	if count <= 1 || index <= 0 {
		return 0
	}
	if index >= count-1 {
		return 1
	}
	return float64(index) / float64(count-1)
}

// PrimaryColor annotates with a primary color at position v of the receiver.
func (s *Space) PrimaryColor(v float64) util.PropertyUpdate {
	return util.Chain(
		util.StringProperty(primaryColorSpaceKey, colorSpaceNamePrefix+s.name),
		util.DoubleProperty(primaryColorSpaceValueKey, v),
	)
}

// Primary annotates with a fixed primary color.
func Primary(c string) util.PropertyUpdate {
	return util.StringProperty(primaryColorKey, c)
}

// Stroke annotates with a fixed stroke color.
func Stroke(c string) util.PropertyUpdate {
	return util.StringProperty(strokeColorKey, c)
}
