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

// Package label renders the info box shown beside a touch marker, and labels
// renderable items for clients that format their own.
package label

import (
	"fmt"

	"github.com/google/safehtml"
	"github.com/google/safehtml/template"
	"github.com/ilhamster/charttouch/dataset"
	"github.com/ilhamster/charttouch/util"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	// labelFormatKey specifies the label format string used to label items.
	labelFormatKey = "label_format"
)

// Format returns a PropertyUpdate that labels with the provided label format.
// labelFormat may reference the labeled item's properties as $(key).
func Format(labelFormat string) util.PropertyUpdate {
	return util.StringProperty(labelFormatKey, labelFormat)
}

const infoBoxTemplate = `{{range .}}<div class="info-row">` +
	`{{if .Series}}<span class="info-series">{{.Series}}</span> {{end}}` +
	`<span class="info-name">{{.Name}}</span>: <span class="info-value">{{.Value}}</span>` +
	`</div>{{end}}`

var infoBox = template.Must(template.New("info_box").Parse(infoBoxTemplate))

type row struct {
	Series, Name, Value string
}

// Formatter formats point values for one locale.
type Formatter struct {
	printer *message.Printer
}

// New returns a Formatter for tag.
func New(tag language.Tag) *Formatter {
	return &Formatter{
		printer: message.NewPrinter(tag),
	}
}

// Value formats v as a localized decimal.
func (f *Formatter) Value(v float64) string {
	return f.printer.Sprint(number.Decimal(v))
}

// InfoBox renders one row per point: its group's display name if any, its
// description (or ID, if it has none), and its value.
func (f *Formatter) InfoBox(points []dataset.Point) (safehtml.HTML, error) {
	if len(points) == 0 {
		return safehtml.HTML{}, nil
	}
	rows := make([]row, len(points))
	for i, p := range points {
		rows[i] = row{
			Name:  p.ID,
			Value: f.Value(p.Value),
		}
		if p.Description != "" {
			rows[i].Name = p.Description
		}
		if p.Group != nil {
			rows[i].Series = p.Group.DisplayName
		}
	}
	ret, err := infoBox.ExecuteToHTML(rows)
	if err != nil {
		return safehtml.HTML{}, fmt.Errorf("failed to render info box: %w", err)
	}
	return ret, nil
}
