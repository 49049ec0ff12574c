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
	"errors"
	"fmt"

	"github.com/ilhamster/charttouch/color"
	"github.com/ilhamster/charttouch/marker"
	"golang.org/x/text/language"
)

var (
	// ErrNotFound is returned when a touch resolves to no data: it lies
	// outside the drawable rectangle, the rectangle has no area, the DataSet
	// is empty, or no element lies under the touch.  It is expected, and a
	// renderer shows no marker for it.
	ErrNotFound = errors.New("no data point at touch location")
	// ErrConfiguration matches every *ConfigurationError under errors.Is.
	ErrConfiguration = errors.New("invalid touch configuration")
)

// ConfigurationError reports a chart configuration that can't be used.  It
// is returned at setup, never while resolving touches.
type ConfigurationError struct {
	Kind marker.ChartKind
	// Option names the offending configuration option.
	Option string
	Err    error
}

func (ce *ConfigurationError) Error() string {
	return fmt.Sprintf("%s chart: bad %s: %s", ce.Kind, ce.Option, ce.Err)
}

func (ce *ConfigurationError) Unwrap() error {
	return ce.Err
}

// Is reports whether target is ErrConfiguration.
func (ce *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// HitTestMode selects the rule mapping a touch to data.
type HitTestMode int

// Hit-test modes.  Each chart kind accepts only its own modes, plus
// DefaultHitTest.
const (
	// DefaultHitTest selects the chart kind's default mode: BarFullColumn,
	// LineNearestSingle or PieWedge.
	DefaultHitTest HitTestMode = iota
	// BarFullColumn selects the bar whose column contains the touch,
	// regardless of its vertical position.
	BarFullColumn
	// BarIntersectOnly additionally requires the touch to lie on the bar.
	BarIntersectOnly
	// LineNearestSingle selects the single nearest point of any series.
	LineNearestSingle
	// LineNearestPerSeries selects the nearest point of each series.
	LineNearestPerSeries
	// PieWedge selects the wedge under the touch.
	PieWedge
)

var hitTestNames = map[HitTestMode]string{
	DefaultHitTest:       "default",
	BarFullColumn:        "full_column",
	BarIntersectOnly:     "intersect_only",
	LineNearestSingle:    "nearest_single",
	LineNearestPerSeries: "nearest_per_series",
	PieWedge:             "wedge",
}

var hitTestKinds = map[HitTestMode]marker.ChartKind{
	BarFullColumn:        marker.BarChart,
	BarIntersectOnly:     marker.BarChart,
	LineNearestSingle:    marker.LineChart,
	LineNearestPerSeries: marker.LineChart,
	PieWedge:             marker.PieChart,
}

func (m HitTestMode) String() string {
	if name, ok := hitTestNames[m]; ok {
		return name
	}
	return fmt.Sprintf("HitTestMode(%d)", int(m))
}

// ParseHitTestMode parses a mode name as returned by HitTestMode.String.
func ParseHitTestMode(name string) (HitTestMode, error) {
	for m, n := range hitTestNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown hit-test mode %q", name)
}

// Config configures touch handling for one chart.  It is fixed for the
// lifetime of a Resolver.
type Config struct {
	Kind    marker.ChartKind
	Marker  marker.Spec
	HitTest HitTestMode
	// Palette colors matched groups lacking an explicit color.  Optional.
	Palette *color.Space
	// Locale formats info box values.  The zero Tag formats in the root
	// locale.
	Locale language.Tag
}

// DefaultConfig returns kind's default configuration.
func DefaultConfig(kind marker.ChartKind) Config {
	return Config{
		Kind:   kind,
		Marker: marker.Default(kind),
	}
}

// Validate returns a *ConfigurationError if the receiver's marker or
// hit-test mode is unavailable for its chart kind.
func (c Config) Validate() error {
	if err := c.Marker.Validate(c.Kind); err != nil {
		return &ConfigurationError{Kind: c.Kind, Option: "marker", Err: err}
	}
	if c.HitTest == DefaultHitTest {
		return nil
	}
	kind, ok := hitTestKinds[c.HitTest]
	if !ok {
		return &ConfigurationError{Kind: c.Kind, Option: "hit_test", Err: fmt.Errorf("unknown mode %s", c.HitTest)}
	}
	if kind != c.Kind {
		return &ConfigurationError{
			Kind:   c.Kind,
			Option: "hit_test",
			Err:    fmt.Errorf("mode %s is only available for %s charts", c.HitTest, kind),
		}
	}
	return nil
}

func (c Config) hitTest() HitTestMode {
	if c.HitTest != DefaultHitTest {
		return c.HitTest
	}
	switch c.Kind {
	case marker.BarChart:
		return BarFullColumn
	case marker.LineChart:
		return LineNearestSingle
	default:
		return PieWedge
	}
}
