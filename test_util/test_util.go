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

// Package testutil provides helpers for testing code that emits
// util.PropertyUpdates, such as marker descriptors and chart decorations.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ilhamster/charttouch/util"
)

// UpdateComparator checks that a set of PropertyUpdates under test produces
// the same Datum as a set of wanted PropertyUpdates.
type UpdateComparator struct {
	got  []util.PropertyUpdate
	want []util.PropertyUpdate
}

// NewUpdateComparator returns an empty UpdateComparator.
func NewUpdateComparator() *UpdateComparator {
	return &UpdateComparator{}
}

// WithTestUpdates sets the PropertyUpdates under test.
func (uc *UpdateComparator) WithTestUpdates(got ...util.PropertyUpdate) *UpdateComparator {
	uc.got = got
	return uc
}

// WithWantUpdates sets the expected PropertyUpdates.
func (uc *UpdateComparator) WithWantUpdates(want ...util.PropertyUpdate) *UpdateComparator {
	uc.want = want
	return uc
}

// Compare applies both sets to sibling Datums and returns a diff message and
// true if they differ.  String-table order is not significant.
func (uc *UpdateComparator) Compare(t *testing.T) (string, bool) {
	t.Helper()
	drb := util.NewDataResponseBuilder()
	series := drb.DataSeries(&util.DataSeriesRequest{})
	series.Child().With(uc.got...)
	series.Child().With(uc.want...)
	data, err := drb.Data()
	if err != nil {
		t.Fatalf("failed to build comparison response: %s", err)
	}
	children := data.DataSeries[0].Root.Children
	got := children[0].PrettyPrint("", data.StringTable)
	want := children[1].PrettyPrint("", data.StringTable)
	if diff := cmp.Diff(want, got); diff != "" {
		return fmt.Sprintf("Got datum\n%s\ndiff (-want +got):\n%s", got, diff), true
	}
	return "", false
}

// CompareResponses builds two single-series responses with the provided
// callbacks and reports any difference on t.
func CompareResponses(t *testing.T, buildGot, buildWant func(util.DataBuilder)) {
	t.Helper()
	build := func(fn func(util.DataBuilder)) string {
		drb := util.NewDataResponseBuilder()
		fn(drb.DataSeries(&util.DataSeriesRequest{}))
		data, err := drb.Data()
		if err != nil {
			t.Fatalf("failed to build response: %s", err)
		}
		return data.PrettyPrint()
	}
	if diff := cmp.Diff(build(buildWant), build(buildGot)); diff != "" {
		t.Errorf("Got unexpected response, diff (-want +got):\n%s", diff)
	}
}
