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

// Package style carries SVG-flavored presentation attributes, such as the
// size and stroke of a marker dot, from configuration to the renderer.
//
// Attribute names should be SVG attribute names (r, stroke-width,
// stroke-dasharray, ...); each renderer decides which it honors.
package style

import (
	"fmt"
	"sort"

	"github.com/ilhamster/charttouch/util"
)

const keyPrefix = "style_"

// Common attribute names.
const (
	Radius      = "r"
	StrokeWidth = "stroke-width"
	DashArray   = "stroke-dasharray"
	Opacity     = "opacity"
)

// Style is a set of attribute name/value pairs.
type Style struct {
	attrs map[string]string
}

// New returns an empty Style.
func New() *Style {
	return &Style{attrs: map[string]string{}}
}

// With sets attr to val on the receiver.
func (s *Style) With(attr, val string) *Style {
	s.attrs[attr] = val
	return s
}

// Get returns the value of attr, if set.
func (s *Style) Get(attr string) (string, bool) {
	if s == nil {
		return "", false
	}
	val, ok := s.attrs[attr]
	return val, ok
}

// Len returns the number of attributes set.
func (s *Style) Len() int {
	if s == nil {
		return 0
	}
	return len(s.attrs)
}

// Clone returns an independent copy of the receiver.
func (s *Style) Clone() *Style {
	ret := New()
	if s != nil {
		for k, v := range s.attrs {
			ret.attrs[k] = v
		}
	}
	return ret
}

// Define annotates with the receiver's attributes.  A nil Style defines
// nothing.
func (s *Style) Define() util.PropertyUpdate {
	if s == nil {
		return util.EmptyUpdate
	}
	attrs := make([]string, 0, len(s.attrs))
	for attr := range s.attrs {
		attrs = append(attrs, attr)
	}
	sort.Strings(attrs)
	updates := make([]util.PropertyUpdate, len(attrs))
	for i, attr := range attrs {
		updates[i] = util.StringProperty(keyPrefix+attr, s.attrs[attr])
	}
	return util.Chain(updates...)
}

// Px formats a pixel length.
func Px(valPx float64) string {
	return fmt.Sprintf("%.2fpx", valPx)
}
