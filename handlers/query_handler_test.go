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

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	querydispatcher "github.com/ilhamster/charttouch/query_dispatcher"
	"github.com/ilhamster/charttouch/util"
)

type echoSource struct{}

func (echoSource) SupportedDataSeriesQueries() []string {
	return []string{"touch.echo"}
}

func (echoSource) HandleDataSeriesRequests(ctx context.Context, globalFilters map[string]*util.V, drb *util.DataResponseBuilder, reqs []*util.DataSeriesRequest) error {
	if req, err := RequestOf(ctx); err != nil || req == nil {
		return errors.New("no HTTP request in context")
	}
	chartName, err := util.ExpectStringValue(globalFilters["chart_name"])
	if err != nil {
		return err
	}
	for _, req := range reqs {
		drb.DataSeries(req).With(util.StringProperty("chart_name", chartName))
	}
	return nil
}

const echoRequest = `{
	"GlobalFilters": {"chart_name": [1, "sales"]},
	"SeriesRequests": [{"QueryName": "touch.echo", "SeriesName": "1"}]
}`

func TestTouchHandler(t *testing.T) {
	qd, err := querydispatcher.New(echoSource{})
	if err != nil {
		t.Fatalf("querydispatcher.New() yielded unexpected error %s", err)
	}
	wrapped := 0
	handler := NewQueryHandler(qd, nil).Wrap(func(next HandlerFunc) HandlerFunc {
		return func(w http.ResponseWriter, req *http.Request) {
			wrapped++
			next(w, req)
		}
	}).HandlersByPath()[touchMethod]
	if handler == nil {
		t.Fatalf("no handler for %s", touchMethod)
	}
	for _, test := range []struct {
		description string
		req         *http.Request
		wantStatus  int
		wantSeries  []string
	}{{
		description: "JSON body",
		req: func() *http.Request {
			req := httptest.NewRequest(http.MethodPost, touchMethod, strings.NewReader(echoRequest))
			req.Header.Set("Content-Type", "application/json")
			return req
		}(),
		wantStatus: http.StatusOK,
		wantSeries: []string{"1"},
	}, {
		description: "JSON body with charset",
		req: func() *http.Request {
			req := httptest.NewRequest(http.MethodPost, touchMethod, strings.NewReader(echoRequest))
			req.Header.Set("Content-Type", "application/json; charset=utf-8")
			return req
		}(),
		wantStatus: http.StatusOK,
		wantSeries: []string{"1"},
	}, {
		description: "form value",
		req:         httptest.NewRequest(http.MethodGet, touchMethod+"?req="+url.QueryEscape(echoRequest), nil),
		wantStatus:  http.StatusOK,
		wantSeries:  []string{"1"},
	}, {
		description: "malformed request",
		req:         httptest.NewRequest(http.MethodGet, touchMethod+"?req=%7Bnope", nil),
		wantStatus:  http.StatusBadRequest,
	}, {
		description: "unknown query",
		req: httptest.NewRequest(http.MethodGet, touchMethod+"?req="+url.QueryEscape(
			`{"GlobalFilters": {}, "SeriesRequests": [{"QueryName": "touch.twirl", "SeriesName": "1"}]}`,
		), nil),
		wantStatus: http.StatusInternalServerError,
	}} {
		t.Run(test.description, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler(rec, test.req)
			if rec.Code != test.wantStatus {
				t.Fatalf("handler returned status %d (%s), want %d", rec.Code, rec.Body.String(), test.wantStatus)
			}
			if test.wantStatus != http.StatusOK {
				return
			}
			if got := rec.Header().Get("Content-Type"); got != "application/json" {
				t.Errorf("handler returned Content-Type %q, want application/json", got)
			}
			data := &util.Data{}
			if err := json.Unmarshal(rec.Body.Bytes(), data); err != nil {
				t.Fatalf("failed to decode response: %s", err)
			}
			gotSeries := []string{}
			for _, ds := range data.DataSeries {
				gotSeries = append(gotSeries, ds.SeriesName)
			}
			if diff := cmp.Diff(test.wantSeries, gotSeries); diff != "" {
				t.Errorf("handler returned series diff (-want +got):\n%s", diff)
			}
		})
	}
	if wrapped != 5 {
		t.Errorf("wrapper ran %d times, want 5", wrapped)
	}
}

func TestRequestOf(t *testing.T) {
	if req, err := RequestOf(context.Background()); req != nil || err != nil {
		t.Errorf("RequestOf(empty) = %v, %v; want nil, nil", req, err)
	}
	ctx := context.WithValue(context.Background(), httpReqKey, "not a request")
	if _, err := RequestOf(ctx); err == nil {
		t.Errorf("RequestOf(bad) yielded no error")
	}
}
