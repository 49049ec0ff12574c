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

// Package config loads chart definitions from YAML.
//
// A definition file lists charts, each with its touch configuration, layout
// and data:
//
//	charts:
//	- name: quarterly
//	  kind: bar
//	  marker:
//	    style: top_leading
//	  hit_test: intersect_only
//	  group_spacing: 8
//	  palette: [lightblue, navy]
//	  groups:
//	  - id: q1
//	    name: Q1
//	    points:
//	    - {id: apples, value: 12, description: Apples}
//	    - {id: pears, value: 7}
//	- name: temperature
//	  kind: line
//	  points:
//	  - {value: 21.5}
//	  - {value: 23}
//
// Omitted markers take the kind's default.  Every chart is validated as it
// loads, so an unusable configuration fails the load.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	chartgeometry "github.com/ilhamster/charttouch/chart_geometry"
	"github.com/ilhamster/charttouch/color"
	"github.com/ilhamster/charttouch/dataset"
	"github.com/ilhamster/charttouch/marker"
	"github.com/ilhamster/charttouch/touch"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// File is the YAML document.
type File struct {
	Charts []ChartDef `yaml:"charts"`
}

// ChartDef is one chart's YAML definition.
type ChartDef struct {
	Name             string     `yaml:"name"`
	Kind             string     `yaml:"kind"`
	Marker           *MarkerDef `yaml:"marker,omitempty"`
	HitTest          string     `yaml:"hit_test,omitempty"`
	BarWidthFraction float64    `yaml:"bar_width_fraction,omitempty"`
	GroupSpacing     float64    `yaml:"group_spacing,omitempty"`
	DonutRatio       float64    `yaml:"donut_ratio,omitempty"`
	Palette          []string   `yaml:"palette,omitempty"`
	Locale           string     `yaml:"locale,omitempty"`
	Points           []PointDef `yaml:"points,omitempty"`
	Groups           []GroupDef `yaml:"groups,omitempty"`
}

// MarkerDef is a marker's YAML definition.
type MarkerDef struct {
	Style      string  `yaml:"style"`
	Attachment string  `yaml:"attachment,omitempty"`
	Dot        *DotDef `yaml:"dot,omitempty"`
}

// DotDef is a dot's YAML definition.
type DotDef struct {
	Size      float64 `yaml:"size"`
	Fill      string  `yaml:"fill,omitempty"`
	Stroke    string  `yaml:"stroke,omitempty"`
	LineWidth float64 `yaml:"line_width,omitempty"`
}

// GroupDef is a group's YAML definition.
type GroupDef struct {
	ID     string     `yaml:"id"`
	Name   string     `yaml:"name,omitempty"`
	Color  string     `yaml:"color,omitempty"`
	Points []PointDef `yaml:"points"`
}

// PointDef is a point's YAML definition.
type PointDef struct {
	ID          string  `yaml:"id,omitempty"`
	Value       float64 `yaml:"value"`
	Description string  `yaml:"description,omitempty"`
}

// Chart is a loaded chart.
type Chart struct {
	Name     string
	Config   touch.Config
	Geometry chartgeometry.Provider
	DataSet  *dataset.DataSet
}

// LoadFile loads the chart definitions in the named file.
func LoadFile(path string) ([]*Chart, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open chart definitions: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load loads chart definitions from r.
func Load(r io.Reader) ([]*Chart, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse chart definitions: %w", err)
	}
	names := map[string]bool{}
	ret := make([]*Chart, 0, len(file.Charts))
	for i, def := range file.Charts {
		if def.Name == "" {
			return nil, fmt.Errorf("chart %d has no name", i)
		}
		if names[def.Name] {
			return nil, fmt.Errorf("chart %q is defined more than once", def.Name)
		}
		names[def.Name] = true
		chart, err := def.Chart()
		if err != nil {
			return nil, fmt.Errorf("chart %q: %w", def.Name, err)
		}
		ret = append(ret, chart)
	}
	return ret, nil
}

// Chart builds and validates the chart the receiver defines.
func (def ChartDef) Chart() (*Chart, error) {
	kind, err := marker.ParseChartKind(def.Kind)
	if err != nil {
		return nil, err
	}
	cfg := touch.DefaultConfig(kind)
	if def.Marker != nil {
		if cfg.Marker, err = def.Marker.spec(); err != nil {
			return nil, &touch.ConfigurationError{Kind: kind, Option: "marker", Err: err}
		}
	}
	if def.HitTest != "" {
		if cfg.HitTest, err = touch.ParseHitTestMode(def.HitTest); err != nil {
			return nil, &touch.ConfigurationError{Kind: kind, Option: "hit_test", Err: err}
		}
	}
	if len(def.Palette) > 0 {
		cfg.Palette = color.NewSpace(def.Name, def.Palette...)
	}
	if def.Locale != "" {
		if cfg.Locale, err = language.Parse(def.Locale); err != nil {
			return nil, &touch.ConfigurationError{Kind: kind, Option: "locale", Err: err}
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	geo, err := def.geometry(kind)
	if err != nil {
		return nil, &touch.ConfigurationError{Kind: kind, Option: "layout", Err: err}
	}
	ds, err := def.dataSet()
	if err != nil {
		return nil, err
	}
	return &Chart{
		Name:     def.Name,
		Config:   cfg,
		Geometry: geo,
		DataSet:  ds,
	}, nil
}

func (md *MarkerDef) spec() (marker.Spec, error) {
	var ret marker.Spec
	var err error
	if ret.Style, err = marker.ParseStyle(md.Style); err != nil {
		return ret, err
	}
	if md.Attachment != "" {
		if ret.Attachment.Kind, err = marker.ParseAttachmentKind(md.Attachment); err != nil {
			return ret, err
		}
	}
	if md.Dot != nil {
		ret.Attachment.Dot = &marker.Dot{
			Size:      md.Dot.Size,
			Fill:      md.Dot.Fill,
			Stroke:    md.Dot.Stroke,
			LineWidth: md.Dot.LineWidth,
		}
	}
	return ret, nil
}

func (def ChartDef) geometry(kind marker.ChartKind) (chartgeometry.Provider, error) {
	switch kind {
	case marker.BarChart:
		rs := chartgeometry.DefaultBarRenderSettings()
		if def.BarWidthFraction != 0 {
			rs.BarWidthFraction = def.BarWidthFraction
		}
		rs.GroupSpacingPx = def.GroupSpacing
		return chartgeometry.NewBars(rs)
	case marker.PieChart:
		return chartgeometry.NewPie(def.DonutRatio)
	default:
		return chartgeometry.NewLines(), nil
	}
}

func (def ChartDef) dataSet() (*dataset.DataSet, error) {
	if len(def.Points) > 0 && len(def.Groups) > 0 {
		return nil, dataset.ErrMixedGrouping
	}
	b := dataset.NewBuilder()
	for _, p := range def.Points {
		b.Point(p.ID, p.Value, p.Description)
	}
	for _, g := range def.Groups {
		name := g.Name
		if name == "" {
			name = g.ID
		}
		gb := b.Group(dataset.NewGroup(g.ID, name, g.Color))
		for _, p := range g.Points {
			gb.Point(p.ID, p.Value, p.Description)
		}
	}
	return b.Build()
}
