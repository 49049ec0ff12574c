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

// Package handlers serves touch queries over HTTP.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/charmbracelet/log"
	querydispatcher "github.com/ilhamster/charttouch/query_dispatcher"
	"github.com/ilhamster/charttouch/util"
)

// HandlerFunc is a HTTP handler function.
type HandlerFunc func(http.ResponseWriter, *http.Request)

// WrapFunc is a function that rewrites a HandlerFunc.
type WrapFunc func(HandlerFunc) HandlerFunc

// Handler describes an HTTP handler serving one or more paths.
type Handler interface {
	HandlersByPath() map[string]func(http.ResponseWriter, *http.Request)
}

// QueryHandler is a Handler for data queries.  It supports a Wrap method that
// wraps all handlers, e.g. adding cookies.
type QueryHandler interface {
	Handler
	Wrap(...WrapFunc) Handler
}

// sendHTTPResponse serializes resp as JSON and sends it along w.
func sendHTTPResponse(resp *util.Data, w http.ResponseWriter) {
	respStr, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Failed to marshal response: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	fmt.Fprint(w, string(respStr))
}

type queryHandler struct {
	qd       *querydispatcher.QueryDispatcher
	logger   *log.Logger
	wrappers []WrapFunc
}

// NewQueryHandler returns a new Handler serving touch queries with the
// provided QueryDispatcher.  A nil logger discards logs.
func NewQueryHandler(qd *querydispatcher.QueryDispatcher, logger *log.Logger) QueryHandler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &queryHandler{
		qd:     qd,
		logger: logger,
	}
}

const (
	touchMethod = "/Touch"
	// Requests may carry the DataRequest as this form value, or as a JSON
	// POST body.
	requestFormKey = "req"
)

type contextKey string

var (
	httpReqKey contextKey = "charttouch_http_req"
)

// RequestOf returns the http Request attached to the provided Context, or nil
// if no Request is attached.  Returns an error if something other than a
// Request is stored in the Context.
func RequestOf(ctx context.Context) (*http.Request, error) {
	reqIf := ctx.Value(httpReqKey)
	if reqIf == nil {
		return nil, nil
	}
	req, ok := reqIf.(*http.Request)
	if !ok {
		return nil, fmt.Errorf("expected *http.Request to be stored in context, but got something else")
	}
	return req, nil
}

func (qh *queryHandler) Wrap(wrappers ...WrapFunc) Handler {
	qh.wrappers = append(qh.wrappers, wrappers...)
	return qh
}

// HandlersByPath returns a mapping of HTTP request path to HTTP handler for
// this Handler.
func (qh *queryHandler) HandlersByPath() map[string]func(http.ResponseWriter, *http.Request) {
	var th HandlerFunc = qh.touchHandler
	for _, wrapper := range qh.wrappers {
		th = wrapper(th)
	}
	return map[string]func(http.ResponseWriter, *http.Request){
		touchMethod: th,
	}
}

func readDataRequest(req *http.Request) ([]byte, error) {
	if req.Method == http.MethodPost {
		if mediaType, _, err := mime.ParseMediaType(req.Header.Get("Content-Type")); err == nil && mediaType == "application/json" {
			return io.ReadAll(req.Body)
		}
	}
	if err := req.ParseForm(); err != nil {
		return nil, err
	}
	return []byte(req.Form.Get(requestFormKey)), nil
}

func (qh *queryHandler) touchHandler(w http.ResponseWriter, req *http.Request) {
	body, err := readDataRequest(req)
	if err != nil {
		http.Error(w, "Failed to read request: "+err.Error(), http.StatusBadRequest)
		return
	}
	dataReq, err := util.DataRequestFromJSON(body)
	if err != nil {
		http.Error(w, "Failed to parse DataRequest: "+err.Error(), http.StatusBadRequest)
		return
	}
	resp, err := qh.qd.HandleDataRequest(context.WithValue(req.Context(), httpReqKey, req), dataReq)
	if err != nil {
		qh.logger.Error("Touch request failed", "remote", req.RemoteAddr, "error", err)
		http.Error(w, "DataRequest failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendHTTPResponse(resp, w)
}
