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

package util

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// DataSeriesRequest asks for one named query's result.
type DataSeriesRequest struct {
	QueryName  string
	SeriesName string
	Options    map[string]*V
}

// DataSeries is the result of one DataSeriesRequest.
type DataSeries struct {
	SeriesName string
	Root       *Datum
}

// PrettyPrint renders the receiver deterministically.  Only for use in tests.
func (ds *DataSeries) PrettyPrint(indent string, st []string) string {
	return strings.Join([]string{
		fmt.Sprintf("%sSeries %s", indent, ds.SeriesName),
		indent + "  Root:",
		ds.Root.PrettyPrint(indent+"    ", st),
	}, "\n")
}

// DataRequest is a batch of DataSeriesRequests sharing GlobalFilters.
type DataRequest struct {
	GlobalFilters  map[string]*V
	SeriesRequests []*DataSeriesRequest
}

// DataRequestFromJSON decodes a DataRequest.
func DataRequestFromJSON(j []byte) (*DataRequest, error) {
	ret := &DataRequest{}
	if err := json.Unmarshal(j, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// Data is a complete response.
type Data struct {
	StringTable []string
	DataSeries  []*DataSeries
}

// PrettyPrint renders the receiver deterministically.  Only for use in tests.
func (d *Data) PrettyPrint() string {
	lines := []string{"Data:"}
	for _, series := range d.DataSeries {
		lines = append(lines, series.PrettyPrint("  ", d.StringTable))
	}
	return strings.Join(lines, "\n")
}

// stringTable interns strings.  It is safe for concurrent use.
type stringTable struct {
	mu      sync.RWMutex
	indices map[string]int64
	strs    []string
}

func newStringTable(strs ...string) *stringTable {
	st := &stringTable{indices: map[string]int64{}}
	for _, str := range strs {
		st.index(str)
	}
	return st
}

// index returns str's index, interning it if needed.
func (st *stringTable) index(str string) int64 {
	st.mu.RLock()
	idx, ok := st.indices[str]
	st.mu.RUnlock()
	if ok {
		return idx
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	if idx, ok := st.indices[str]; ok {
		return idx
	}
	idx = int64(len(st.strs))
	st.strs = append(st.strs, str)
	st.indices[str] = idx
	return idx
}

func (st *stringTable) snapshot() []string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return append([]string{}, st.strs...)
}

type errors struct {
	mu   sync.Mutex
	errs []error
}

func (errs *errors) add(err error) {
	errs.mu.Lock()
	defer errs.mu.Unlock()
	errs.errs = append(errs.errs, err)
}

func (errs *errors) failed() bool {
	errs.mu.Lock()
	defer errs.mu.Unlock()
	return len(errs.errs) > 0
}

func (errs *errors) toError() error {
	errs.mu.Lock()
	defer errs.mu.Unlock()
	if len(errs.errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs.errs))
	for i, err := range errs.errs {
		msgs[i] = err.Error()
	}
	return fmt.Errorf("%s", strings.Join(msgs, ", "))
}

// DataResponseBuilder assembles a Data response from concurrently-built
// series.
type DataResponseBuilder struct {
	st   *stringTable
	errs *errors
	mu   sync.Mutex
	d    *Data
}

// NewDataResponseBuilder returns an empty DataResponseBuilder.
func NewDataResponseBuilder() *DataResponseBuilder {
	return &DataResponseBuilder{
		st:   newStringTable(),
		errs: &errors{},
		d: &Data{
			StringTable: []string{},
			DataSeries:  []*DataSeries{},
		},
	}
}

// DataSeries starts a new series answering req.  It is safe for concurrent
// use.
func (drb *DataResponseBuilder) DataSeries(req *DataSeriesRequest) DataBuilder {
	db := newDatumBuilder(drb.errs, drb.st)
	drb.mu.Lock()
	drb.d.DataSeries = append(drb.d.DataSeries, &DataSeries{
		SeriesName: req.SeriesName,
		Root:       db.d,
	})
	drb.mu.Unlock()
	return db
}

// Data returns the finished response, or the first error any update raised.
func (drb *DataResponseBuilder) Data() (*Data, error) {
	if err := drb.errs.toError(); err != nil {
		return nil, err
	}
	drb.d.StringTable = drb.st.snapshot()
	return drb.d, nil
}
