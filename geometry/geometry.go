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

// Package geometry provides the pixel-space primitives shared by chart
// layout and touch resolution.  Coordinates follow screen convention: x grows
// rightward and y grows downward from the top-left corner.
package geometry

import "math"

// Point is a location in pixels.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Valid returns true if both coordinates are finite.
func (p Point) Valid() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect is an axis-aligned rectangle whose top-left corner is (X, Y).
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// NewRect returns the rectangle with the given origin and extent.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Center returns the midpoint of the receiver.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Empty returns true if the receiver has no area, or any non-finite
// component.  Layout transitions commonly produce such rectangles.
func (r Rect) Empty() bool {
	if !isFinite(r.X) || !isFinite(r.Y) || !isFinite(r.Width) || !isFinite(r.Height) {
		return true
	}
	return r.Width <= 0 || r.Height <= 0
}

// Contains returns true if p lies within the receiver, edges included.
func (r Rect) Contains(p Point) bool {
	if r.Empty() || !p.Valid() {
		return false
	}
	return p.X >= r.X && p.X <= r.MaxX() && p.Y >= r.Y && p.Y <= r.MaxY()
}

// Polar returns p's distance from center, and its angle in [0, 2π) measured
// clockwise from 12 o'clock.
func Polar(center, p Point) (radius, angle float64) {
	d := p.Sub(center)
	radius = math.Hypot(d.X, d.Y)
	// With y growing downward, atan2(dx, -dy) runs clockwise from straight up.
	angle = math.Atan2(d.X, -d.Y)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	if angle >= 2*math.Pi {
		angle = 0
	}
	return radius, angle
}

// FromPolar is the inverse of Polar.
func FromPolar(center Point, radius, angle float64) Point {
	return Point{
		X: center.X + radius*math.Sin(angle),
		Y: center.Y - radius*math.Cos(angle),
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
