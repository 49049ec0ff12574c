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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/safehtml"
	chartgeometry "github.com/ilhamster/charttouch/chart_geometry"
	"github.com/ilhamster/charttouch/color"
	continuousaxis "github.com/ilhamster/charttouch/continuous_axis"
	"github.com/ilhamster/charttouch/dataset"
	"github.com/ilhamster/charttouch/geometry"
	"github.com/ilhamster/charttouch/label"
	"github.com/ilhamster/charttouch/style"
	testutil "github.com/ilhamster/charttouch/test_util"
	"github.com/ilhamster/charttouch/util"
)

var allStyles = []Style{
	None, Indicator, Vertical, Full,
	BottomLeading, BottomTrailing, TopLeading, TopTrailing,
	Highlight,
}

func TestSupports(t *testing.T) {
	for _, test := range []struct {
		description string
		kind        ChartKind
		want        []Style
	}{{
		description: "line",
		kind:        LineChart,
		want: []Style{
			None, Indicator, Vertical, Full,
			BottomLeading, BottomTrailing, TopLeading, TopTrailing,
		},
	}, {
		description: "bar",
		kind:        BarChart,
		want: []Style{
			None, Vertical, Full,
			BottomLeading, BottomTrailing, TopLeading, TopTrailing,
		},
	}, {
		description: "pie",
		kind:        PieChart,
		want:        []Style{None, Highlight},
	}, {
		description: "unknown kind",
		kind:        ChartKind(7),
		want:        nil,
	}} {
		t.Run(test.description, func(t *testing.T) {
			var got []Style
			for _, s := range allStyles {
				if Supports(test.kind, s) {
					got = append(got, s)
				}
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Supports(%s, ...) diff (-want +got):\n%s", test.kind, diff)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	for _, test := range []struct {
		kind ChartKind
		want Spec
	}{{
		kind: LineChart,
		want: Spec{Style: Full, Attachment: Attachment{Kind: AttachLine, Dot: DefaultDot()}},
	}, {
		kind: BarChart,
		want: Spec{Style: Full},
	}, {
		kind: PieChart,
		want: Spec{Style: None},
	}} {
		t.Run(test.kind.String(), func(t *testing.T) {
			got := Default(test.kind)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Default(%s) diff (-want +got):\n%s", test.kind, diff)
			}
			if err := got.Validate(test.kind); err != nil {
				t.Errorf("Default(%s) does not validate: %s", test.kind, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	for _, test := range []struct {
		description string
		kind        ChartKind
		spec        Spec
		wantErr     bool
	}{{
		description: "indicator on line",
		kind:        LineChart,
		spec:        Spec{Style: Indicator},
	}, {
		description: "indicator on bar",
		kind:        BarChart,
		spec:        Spec{Style: Indicator},
		wantErr:     true,
	}, {
		description: "highlight on line",
		kind:        LineChart,
		spec:        Spec{Style: Highlight},
		wantErr:     true,
	}, {
		description: "corner on pie",
		kind:        PieChart,
		spec:        Spec{Style: TopTrailing},
		wantErr:     true,
	}, {
		description: "attachment on bar",
		kind:        BarChart,
		spec:        Spec{Style: Full, Attachment: Attachment{Kind: AttachPoint}},
		wantErr:     true,
	}, {
		description: "dot on pie",
		kind:        PieChart,
		spec:        Spec{Style: Highlight, Attachment: Attachment{Dot: DefaultDot()}},
		wantErr:     true,
	}, {
		description: "negative dot",
		kind:        LineChart,
		spec:        Spec{Style: Full, Attachment: Attachment{Kind: AttachLine, Dot: &Dot{Size: -1}}},
		wantErr:     true,
	}, {
		description: "unknown style",
		kind:        LineChart,
		spec:        Spec{Style: Style(42)},
		wantErr:     true,
	}, {
		description: "unknown kind",
		kind:        ChartKind(3),
		spec:        Spec{},
		wantErr:     true,
	}} {
		t.Run(test.description, func(t *testing.T) {
			err := test.spec.Validate(test.kind)
			if (err != nil) != test.wantErr {
				t.Errorf("Validate() = %v, want error %t", err, test.wantErr)
			}
		})
	}
}

func TestParse(t *testing.T) {
	for _, s := range allStyles {
		got, err := ParseStyle(s.String())
		if err != nil || got != s {
			t.Errorf("ParseStyle(%q) = %s, %v, want %s", s.String(), got, err, s)
		}
	}
	for _, k := range []ChartKind{LineChart, BarChart, PieChart} {
		got, err := ParseChartKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseChartKind(%q) = %s, %v, want %s", k.String(), got, err, k)
		}
	}
	for _, a := range []AttachmentKind{AttachNone, AttachLine, AttachPoint} {
		got, err := ParseAttachmentKind(a.String())
		if err != nil || got != a {
			t.Errorf("ParseAttachmentKind(%q) = %s, %v, want %s", a.String(), got, err, a)
		}
	}
	if _, err := ParseStyle("sparkle"); err == nil {
		t.Errorf("ParseStyle(\"sparkle\") yielded no error")
	}
}

func TestDecorate(t *testing.T) {
	rect := geometry.NewRect(0, 0, 100, 50)
	pos := geometry.Pt(40, 20)
	loc := geometry.Pt(43, 30)
	seg := chartgeometry.Segment{Min: 25, Max: 50}
	dot := &Dot{Size: 4}
	for _, test := range []struct {
		description string
		kind        ChartKind
		spec        Spec
		want        Match
	}{{
		description: "line full attached with dot",
		kind:        LineChart,
		spec:        Spec{Style: Full, Attachment: Attachment{Kind: AttachLine, Dot: dot}},
		want: Match{
			Position: pos,
			Guides: []Guide{
				{geometry.Pt(40, 0), geometry.Pt(40, 50)},
				{geometry.Pt(0, 20), geometry.Pt(100, 20)},
			},
			Dot: dot,
		},
	}, {
		description: "line vertical attached to point",
		kind:        LineChart,
		spec:        Spec{Style: Vertical, Attachment: Attachment{Kind: AttachPoint, Dot: dot}},
		want: Match{
			Position: pos,
			Guides:   []Guide{{geometry.Pt(40, 0), geometry.Pt(40, 50)}},
		},
	}, {
		description: "line unattached follows the touch",
		kind:        LineChart,
		spec:        Spec{Style: BottomLeading},
		want: Match{
			Position: pos,
			Guides: []Guide{
				{loc, geometry.Pt(43, 50)},
				{loc, geometry.Pt(0, 30)},
			},
		},
	}, {
		description: "line indicator gets the default dot",
		kind:        LineChart,
		spec:        Spec{Style: Indicator},
		want:        Match{Position: pos, Dot: DefaultDot()},
	}, {
		description: "line none",
		kind:        LineChart,
		spec:        Spec{Style: None, Attachment: Attachment{Kind: AttachLine, Dot: dot}},
		want:        Match{Position: pos},
	}, {
		description: "bar full highlights the column",
		kind:        BarChart,
		spec:        Spec{Style: Full},
		want: Match{
			Position: pos,
			Frame:    geometry.NewRect(25, 0, 25, 50),
		},
	}, {
		description: "bar top trailing",
		kind:        BarChart,
		spec:        Spec{Style: TopTrailing},
		want: Match{
			Position: pos,
			Guides: []Guide{
				{pos, geometry.Pt(40, 0)},
				{pos, geometry.Pt(100, 20)},
			},
		},
	}, {
		description: "pie highlight is left to the wedge",
		kind:        PieChart,
		spec:        Spec{Style: Highlight},
		want:        Match{Position: pos},
	}} {
		t.Run(test.description, func(t *testing.T) {
			got := Match{Position: pos}
			Decorate(test.kind, test.spec, rect, loc, seg, &got)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Decorate() diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDotDefine(t *testing.T) {
	if msg, failed := testutil.NewUpdateComparator().
		WithTestUpdates(DefaultDot().Define()).
		WithWantUpdates(
			style.New().
				With(style.Radius, "5.00px").
				With(style.StrokeWidth, "2.00px").
				Define(),
			color.Primary("white"),
			color.Stroke("black"),
		).
		Compare(t); failed {
		t.Fatal(msg)
	}
	var nilDot *Dot
	if msg, failed := testutil.NewUpdateComparator().
		WithTestUpdates(nilDot.Define()).
		Compare(t); failed {
		t.Fatal(msg)
	}
}

func TestBuild(t *testing.T) {
	g0 := dataset.NewGroup("a", "A", "")
	g1 := dataset.NewGroup("b", "B", "red")
	b := dataset.NewBuilder()
	b.Group(g0).Point("a0", 1, "first").Point("a1", 2, "")
	b.Group(g1).Point("b0", 3, "")
	ds, err := b.Build()
	if err != nil {
		t.Fatalf("Build() yielded unexpected error %s", err)
	}
	palette := color.NewSpace("touch", "white", "blue")
	wedge := chartgeometry.Wedge{Start: 0, End: 1}
	d := &Descriptor{
		Kind:       BarChart,
		Style:      Full,
		Attachment: AttachNone,
		Location:   geometry.Pt(10, 20),
		Rect:       geometry.NewRect(0, 0, 100, 50),
		Matches: []Match{{
			Point:    ds.Point(0),
			Position: geometry.Pt(12, 30),
			Frame:    geometry.NewRect(0, 0, 25, 50),
		}, {
			Point:    ds.Point(2),
			Position: geometry.Pt(80, 10),
			Wedge:    &wedge,
			Guides:   []Guide{{geometry.Pt(80, 10), geometry.Pt(80, 0)}},
		}},
		Label:          safehtml.HTMLEscaped("a0: 1"),
		DataSetVersion: ds.Version(),
		Palette:        palette,
		Groups:         2,
		Axis:           continuousaxis.New(0, 3),
	}
	testutil.CompareResponses(t, d.Build, func(db util.DataBuilder) {
		db.With(
			palette.Define(),
			util.DoubleProperty("axis_min", 0),
			util.DoubleProperty("axis_max", 3),
			util.StringProperty(kindKey, "bar"),
			util.StringProperty(styleKey, "full"),
			util.IntegerProperty(versionKey, int64(ds.Version())),
			util.DoubleProperty(touchXKey, 10),
			util.DoubleProperty(touchYKey, 20),
			util.DoubleProperty(frameXKey, 0),
			util.DoubleProperty(frameYKey, 0),
			util.DoubleProperty(frameWidthKey, 100),
			util.DoubleProperty(frameHeightKey, 50),
			util.StringProperty(labelKey, "a0: 1"),
		)
		db.Child().With(
			ds.Point(0).Define(),
			util.DoubleProperty(positionXKey, 12),
			util.DoubleProperty(positionYKey, 30),
			g0.Define(),
			palette.PrimaryColor(0),
			label.Format(matchLabelFormat),
			util.DoubleProperty(frameXKey, 0),
			util.DoubleProperty(frameYKey, 0),
			util.DoubleProperty(frameWidthKey, 25),
			util.DoubleProperty(frameHeightKey, 50),
		)
		db.Child().With(
			ds.Point(2).Define(),
			util.DoubleProperty(positionXKey, 80),
			util.DoubleProperty(positionYKey, 10),
			g1.Define(),
			color.Primary("red"),
			label.Format(matchLabelFormat),
			util.DoubleProperty(wedgeStartKey, 0),
			util.DoubleProperty(wedgeEndKey, 1),
		).Child().With(
			util.DoubleProperty(guideFromXKey, 80),
			util.DoubleProperty(guideFromYKey, 10),
			util.DoubleProperty(guideToXKey, 80),
			util.DoubleProperty(guideToYKey, 0),
		)
	})
}
