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

// Package marker defines touch-marker presentation: the closed set of marker
// styles each chart kind supports, line attachments and dots, and the
// Descriptor a renderer draws.
//
// Each chart kind has a default marker:
//
//	line: Full, attached by a line ending in the default dot
//	bar:  Full, no attachment
//	pie:  None
//
// Supported styles per kind:
//
//	style                      line  bar  pie
//	None                        x     x    x
//	Indicator                   x
//	Vertical, Full              x     x
//	{Bottom,Top}{Leading,Trailing} x  x
//	Highlight                              x
//
// Attachments apply to line charts only.
package marker

import (
	"fmt"

	"github.com/ilhamster/charttouch/color"
	"github.com/ilhamster/charttouch/style"
	"github.com/ilhamster/charttouch/util"
)

// ChartKind is a chart type.
type ChartKind int

// Chart kinds.
const (
	LineChart ChartKind = iota
	BarChart
	PieChart
)

var kindNames = map[ChartKind]string{
	LineChart: "line",
	BarChart:  "bar",
	PieChart:  "pie",
}

func (k ChartKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ChartKind(%d)", int(k))
}

// ParseChartKind parses a kind name as returned by ChartKind.String.
func ParseChartKind(name string) (ChartKind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown chart kind %q", name)
}

// Style is a marker presentation.
type Style int

// Marker styles.
const (
	// None draws no marker; the touch is still resolved.
	None Style = iota
	// Indicator draws only a dot at the point.
	Indicator
	// Vertical draws a vertical guide through the point.
	Vertical
	// Full draws a crosshair through a line point, or highlights a bar's
	// whole column.
	Full
	// The corner styles draw guides from the point to the named corner's
	// two edges.
	BottomLeading
	BottomTrailing
	TopLeading
	TopTrailing
	// Highlight emphasizes the touched pie wedge.
	Highlight
)

var styleNames = map[Style]string{
	None:           "none",
	Indicator:      "indicator",
	Vertical:       "vertical",
	Full:           "full",
	BottomLeading:  "bottom_leading",
	BottomTrailing: "bottom_trailing",
	TopLeading:     "top_leading",
	TopTrailing:    "top_trailing",
	Highlight:      "highlight",
}

func (s Style) String() string {
	if name, ok := styleNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// ParseStyle parses a style name as returned by Style.String.
func ParseStyle(name string) (Style, error) {
	for s, n := range styleNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown marker style %q", name)
}

var supported = map[ChartKind]map[Style]bool{
	LineChart: {
		None: true, Indicator: true, Vertical: true, Full: true,
		BottomLeading: true, BottomTrailing: true, TopLeading: true, TopTrailing: true,
	},
	BarChart: {
		None: true, Vertical: true, Full: true,
		BottomLeading: true, BottomTrailing: true, TopLeading: true, TopTrailing: true,
	},
	PieChart: {
		None: true, Highlight: true,
	},
}

// Supports returns true if kind can draw s.
func Supports(kind ChartKind, s Style) bool {
	return supported[kind][s]
}

// AttachmentKind says how a line marker connects to its point.
type AttachmentKind int

// Attachment kinds.
const (
	AttachNone AttachmentKind = iota
	// AttachLine draws the marker's guides to the point, optionally ending in
	// a dot.
	AttachLine
	// AttachPoint draws a dot at the point with no guides.
	AttachPoint
)

var attachmentNames = map[AttachmentKind]string{
	AttachNone:  "none",
	AttachLine:  "line",
	AttachPoint: "point",
}

func (a AttachmentKind) String() string {
	if name, ok := attachmentNames[a]; ok {
		return name
	}
	return fmt.Sprintf("AttachmentKind(%d)", int(a))
}

// ParseAttachmentKind parses an attachment name as returned by
// AttachmentKind.String.
func ParseAttachmentKind(name string) (AttachmentKind, error) {
	for a, n := range attachmentNames {
		if n == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown attachment %q", name)
}

// Dot is the point marker drawn by attachments and indicators.
type Dot struct {
	Size      float64
	Fill      string
	Stroke    string
	LineWidth float64
}

// DefaultDot returns the dot line markers use unless configured otherwise.
func DefaultDot() *Dot {
	return &Dot{
		Size:      10,
		Fill:      "white",
		Stroke:    "black",
		LineWidth: 2,
	}
}

// Define annotates with the receiver's appearance.
func (d *Dot) Define() util.PropertyUpdate {
	if d == nil {
		return util.EmptyUpdate
	}
	return util.Chain(
		style.New().
			With(style.Radius, style.Px(d.Size/2)).
			With(style.StrokeWidth, style.Px(d.LineWidth)).
			Define(),
		util.If(d.Fill != "", color.Primary(d.Fill)),
		util.If(d.Stroke != "", color.Stroke(d.Stroke)),
	)
}

// Attachment connects a line marker to its point.
type Attachment struct {
	Kind AttachmentKind
	// Dot is drawn at the point; nil draws none.  Ignored by AttachNone.
	Dot *Dot
}

// Spec is a configured marker: a style plus, for line charts, an attachment.
type Spec struct {
	Style      Style
	Attachment Attachment
}

// Default returns kind's default marker.
func Default(kind ChartKind) Spec {
	switch kind {
	case LineChart:
		return Spec{
			Style:      Full,
			Attachment: Attachment{Kind: AttachLine, Dot: DefaultDot()},
		}
	case BarChart:
		return Spec{Style: Full}
	default:
		return Spec{Style: None}
	}
}

// Validate returns an error if kind can't draw the receiver.
func (s Spec) Validate(kind ChartKind) error {
	if _, ok := supported[kind]; !ok {
		return fmt.Errorf("unknown chart kind %s", kind)
	}
	if !Supports(kind, s.Style) {
		return fmt.Errorf("marker style %s is not available for %s charts", s.Style, kind)
	}
	if _, ok := attachmentNames[s.Attachment.Kind]; !ok {
		return fmt.Errorf("unknown attachment %s", s.Attachment.Kind)
	}
	if kind != LineChart && (s.Attachment.Kind != AttachNone || s.Attachment.Dot != nil) {
		return fmt.Errorf("attachments are only available for line charts, not %s charts", kind)
	}
	if d := s.Attachment.Dot; d != nil && (d.Size < 0 || d.LineWidth < 0) {
		return fmt.Errorf("dot size and line width must not be negative")
	}
	return nil
}
