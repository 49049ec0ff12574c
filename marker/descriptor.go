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

package marker

import (
	"github.com/google/safehtml"
	chartgeometry "github.com/ilhamster/charttouch/chart_geometry"
	"github.com/ilhamster/charttouch/color"
	continuousaxis "github.com/ilhamster/charttouch/continuous_axis"
	"github.com/ilhamster/charttouch/dataset"
	"github.com/ilhamster/charttouch/geometry"
	"github.com/ilhamster/charttouch/label"
	"github.com/ilhamster/charttouch/util"
)

const (
	kindKey       = "marker_kind"
	styleKey      = "marker_style"
	attachmentKey = "marker_attachment"
	versionKey    = "dataset_version"
	labelKey      = "label"

	touchXKey = "touch_x"
	touchYKey = "touch_y"

	positionXKey = "position_x"
	positionYKey = "position_y"

	frameXKey      = "frame_x"
	frameYKey      = "frame_y"
	frameWidthKey  = "frame_width"
	frameHeightKey = "frame_height"

	wedgeStartKey = "wedge_start"
	wedgeEndKey   = "wedge_end"

	guideFromXKey = "guide_from_x"
	guideFromYKey = "guide_from_y"
	guideToXKey   = "guide_to_x"
	guideToYKey   = "guide_to_y"

	matchLabelFormat = "$(point_id): $(point_value)"
)

// Guide is a straight marker line.
type Guide struct {
	From, To geometry.Point
}

// Match is one touched point.
type Match struct {
	// Point is a copy of the touched point, taken from the DataSet the
	// Descriptor was resolved against.
	Point    dataset.Point
	Position geometry.Point
	// Frame is the highlighted extent: a bar's column for Full bar markers,
	// or its body.  Empty when nothing is highlighted.
	Frame geometry.Rect
	// Wedge is set for pie matches.
	Wedge *chartgeometry.Wedge
	// Guides are the lines the marker's style draws for this match.
	Guides []Guide
	// Dot is drawn at Position; nil draws none.
	Dot *Dot
}

// Descriptor is everything a renderer needs to draw a touch marker.
type Descriptor struct {
	Kind       ChartKind
	Style      Style
	Attachment AttachmentKind
	// Location is where the touch landed.
	Location geometry.Point
	// Rect is the drawable area the touch was resolved within.
	Rect geometry.Rect
	// Matches are in series order for per-series line markers, otherwise
	// there is exactly one.
	Matches []Match
	// Label is the info box content for the matched points.
	Label safehtml.HTML
	// DataSetVersion is the version of the DataSet the matches came from.
	DataSetVersion uint64
	// Palette colors matches whose group has no explicit color.  Optional.
	Palette *color.Space
	// Groups is the number of groups in the resolved DataSet.
	Groups int
	// Axis is the value axis the matches were placed on, if any.
	Axis *continuousaxis.Axis
}

// Decorate computes m's guides, frame and dot for spec within rect.  For line
// charts, guides pass through m.Position when the marker is attached, and
// through the touch location otherwise.  segment is the bar's column and is
// ignored for other kinds.
func Decorate(kind ChartKind, spec Spec, rect geometry.Rect, loc geometry.Point, segment chartgeometry.Segment, m *Match) {
	anchor := m.Position
	switch kind {
	case LineChart:
		if spec.Attachment.Kind == AttachNone && spec.Style != Indicator {
			anchor = loc
		}
		switch spec.Style {
		case Indicator:
			m.Dot = spec.Attachment.Dot
			if m.Dot == nil {
				m.Dot = DefaultDot()
			}
			return
		case None:
			return
		}
		m.Guides = guides(spec.Style, rect, anchor)
		if spec.Attachment.Kind == AttachLine {
			m.Dot = spec.Attachment.Dot
		}
	case BarChart:
		switch spec.Style {
		case None:
			return
		case Full:
			m.Frame = geometry.NewRect(segment.Min, rect.Y, segment.Max-segment.Min, rect.Height)
			return
		}
		m.Guides = guides(spec.Style, rect, anchor)
	}
}

func guides(s Style, rect geometry.Rect, p geometry.Point) []Guide {
	vertical := Guide{geometry.Pt(p.X, rect.Y), geometry.Pt(p.X, rect.MaxY())}
	top := Guide{p, geometry.Pt(p.X, rect.Y)}
	bottom := Guide{p, geometry.Pt(p.X, rect.MaxY())}
	leading := Guide{p, geometry.Pt(rect.X, p.Y)}
	trailing := Guide{p, geometry.Pt(rect.MaxX(), p.Y)}
	switch s {
	case Vertical:
		return []Guide{vertical}
	case Full:
		return []Guide{vertical, {geometry.Pt(rect.X, p.Y), geometry.Pt(rect.MaxX(), p.Y)}}
	case BottomLeading:
		return []Guide{bottom, leading}
	case BottomTrailing:
		return []Guide{bottom, trailing}
	case TopLeading:
		return []Guide{top, leading}
	case TopTrailing:
		return []Guide{top, trailing}
	}
	return nil
}

// Build populates db with the receiver: its own properties on db, and one
// child per match, each carrying a child per guide.  The palette and value
// axis are defined on db, so renderers can recolor or rescale the marker.
func (d *Descriptor) Build(db util.DataBuilder) {
	if d.Palette != nil {
		db.With(d.Palette.Define())
	}
	if d.Axis != nil {
		db.With(d.Axis.Define())
	}
	db.With(
		util.StringProperty(kindKey, d.Kind.String()),
		util.StringProperty(styleKey, d.Style.String()),
		util.If(d.Kind == LineChart, util.StringProperty(attachmentKey, d.Attachment.String())),
		util.IntegerProperty(versionKey, int64(d.DataSetVersion)),
		util.DoubleProperty(touchXKey, d.Location.X),
		util.DoubleProperty(touchYKey, d.Location.Y),
		frame(d.Rect),
		util.If(d.Label.String() != "", util.StringProperty(labelKey, d.Label.String())),
	)
	for _, m := range d.Matches {
		child := db.Child().With(
			m.Point.Define(),
			util.DoubleProperty(positionXKey, m.Position.X),
			util.DoubleProperty(positionYKey, m.Position.Y),
			d.colorOf(m.Point),
			m.Dot.Define(),
			label.Format(matchLabelFormat),
		)
		if !m.Frame.Empty() {
			child.With(frame(m.Frame))
		}
		if m.Wedge != nil {
			child.With(
				util.DoubleProperty(wedgeStartKey, m.Wedge.Start),
				util.DoubleProperty(wedgeEndKey, m.Wedge.End),
			)
		}
		for _, g := range m.Guides {
			child.Child().With(
				util.DoubleProperty(guideFromXKey, g.From.X),
				util.DoubleProperty(guideFromYKey, g.From.Y),
				util.DoubleProperty(guideToXKey, g.To.X),
				util.DoubleProperty(guideToYKey, g.To.Y),
			)
		}
	}
}

func (d *Descriptor) colorOf(p dataset.Point) util.PropertyUpdate {
	if p.Group == nil {
		return util.EmptyUpdate
	}
	if p.Group.Color != "" {
		return util.Chain(p.Group.Define(), color.Primary(p.Group.Color))
	}
	if d.Palette == nil {
		return p.Group.Define()
	}
	return util.Chain(
		p.Group.Define(),
		d.Palette.PrimaryColor(d.Palette.Position(p.GroupIndex, d.Groups)),
	)
}

func frame(r geometry.Rect) util.PropertyUpdate {
	return util.Chain(
		util.DoubleProperty(frameXKey, r.X),
		util.DoubleProperty(frameYKey, r.Y),
		util.DoubleProperty(frameWidthKey, r.Width),
		util.DoubleProperty(frameHeightKey, r.Height),
	)
}
