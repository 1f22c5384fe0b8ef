// Copyright (c) 2026 Snowflake Computing Inc. All rights reserved.

package gohive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

const (
	headerContentTypeApplicationJSON = "application/json"
	headerHiveSession                = "X-Hive-Session"
	requestIDKey                     = "requestId"

	// maxErrorBodySize bounds how much of a non-200 response is kept in the error.
	maxErrorBodySize = 4096
)

const (
	openMethod             = "open"
	closeMethod            = "close"
	executeMethod          = "execute"
	fetchOneMethod         = "fetchOne"
	fetchNMethod           = "fetchN"
	fetchAllMethod         = "fetchAll"
	getSchemaMethod        = "getSchema"
	getQueryPlanMethod     = "getQueryPlan"
	getClusterStatusMethod = "getClusterStatus"
)

// hiveRestful is the Client of a JSON-over-HTTP Hive gateway. Every RPC is a POST to {base}/{method}.
type hiveRestful struct {
	baseURL        string
	client         *http.Client
	requestTimeout time.Duration
	// session is the handle returned by open, sent back on every later call.
	session string
}

var (
	_ Client                = (*hiveRestful)(nil)
	_ Transport             = (*hiveRestful)(nil)
	_ QueryPlanner          = (*hiveRestful)(nil)
	_ ClusterStatusReporter = (*hiveRestful)(nil)
)

type executeRequest struct {
	Query string `json:"query"`
}

type fetchNRequest struct {
	N int `json:"n"`
}

type gatewayError struct {
	Message   string `json:"message"`
	SQLState  string `json:"sqlState"`
	ErrorCode int    `json:"errorCode"`
}

type gatewayResponse struct {
	Error     *gatewayError  `json:"error,omitempty"`
	Session   string         `json:"session,omitempty"`
	Row       string         `json:"row,omitempty"`
	Exhausted bool           `json:"exhausted,omitempty"`
	Rows      []string       `json:"rows,omitempty"`
	Plan      string         `json:"plan,omitempty"`
	Status    *ClusterStatus `json:"status,omitempty"`
	Schema
}

func newRestfulClient(cfg *Config) *hiveRestful {
	return &hiveRestful{
		baseURL:        cfg.baseURL(),
		client:         &http.Client{Transport: newHTTPTransport(cfg)},
		requestTimeout: cfg.RequestTimeout,
	}
}

func (sr *hiveRestful) post(ctx context.Context, method string, body interface{}) (*gatewayResponse, error) {
	if body == nil {
		body = struct{}{}
	}
	reqBody, err := json.Marshal(body)
	if err != nil {
		return nil, newTransportError(err)
	}
	if sr.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, sr.requestTimeout)
		defer cancel()
	}

	requestID := uuid.NewString()
	params := &url.Values{}
	params.Add(requestIDKey, requestID)
	fullURL := fmt.Sprintf("%s/%s?%s", sr.baseURL, method, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, newTransportError(err)
	}
	req.Header.Set("Content-Type", headerContentTypeApplicationJSON)
	req.Header.Set("Accept", headerContentTypeApplicationJSON)
	req.Header.Set("User-Agent", userAgent)
	if sr.session != "" {
		req.Header.Set(headerHiveSession, sr.session)
	}

	logger.WithContext(ctx).Tracef("POST %v", method)
	resp, err := sr.client.Do(req)
	if err != nil {
		return nil, newTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		logger.WithContext(ctx).Errorf("failed to %v. HTTP: %v, URL: %v, Body: %s", method, resp.StatusCode, fullURL, b)
		return nil, newTransportError(fmt.Errorf("HTTP %v: %s", resp.StatusCode, bytes.TrimSpace(b)))
	}
	var respd gatewayResponse
	if err = json.NewDecoder(resp.Body).Decode(&respd); err != nil {
		return nil, newTransportError(err)
	}
	if respd.Error != nil {
		message := respd.Error.Message
		if respd.Error.ErrorCode != 0 {
			message = fmt.Sprintf("%v (error code %v)", message, respd.Error.ErrorCode)
		}
		he := newServiceError(respd.Error.SQLState, message)
		he.QueryID = requestID
		return nil, he
	}
	return &respd, nil
}

func (sr *hiveRestful) Open(ctx context.Context) error {
	respd, err := sr.post(ctx, openMethod, nil)
	if err != nil {
		return err
	}
	sr.session = respd.Session
	return nil
}

// Close ends the gateway session and releases idle connections.
func (sr *hiveRestful) Close() error {
	defer sr.client.CloseIdleConnections()
	if sr.session == "" {
		return nil
	}
	_, err := sr.post(context.Background(), closeMethod, nil)
	sr.session = ""
	return err
}

func (sr *hiveRestful) Execute(ctx context.Context, query string) error {
	_, err := sr.post(ctx, executeMethod, executeRequest{Query: query})
	return err
}

func (sr *hiveRestful) FetchOne(ctx context.Context) (string, error) {
	respd, err := sr.post(ctx, fetchOneMethod, nil)
	if err != nil {
		return "", err
	}
	if respd.Exhausted {
		return "", io.EOF
	}
	return respd.Row, nil
}

func (sr *hiveRestful) FetchN(ctx context.Context, n int) ([]string, error) {
	respd, err := sr.post(ctx, fetchNMethod, fetchNRequest{N: n})
	if err != nil {
		return nil, err
	}
	return respd.Rows, nil
}

func (sr *hiveRestful) FetchAll(ctx context.Context) ([]string, error) {
	respd, err := sr.post(ctx, fetchAllMethod, nil)
	if err != nil {
		return nil, err
	}
	return respd.Rows, nil
}

func (sr *hiveRestful) GetSchema(ctx context.Context) (*Schema, error) {
	respd, err := sr.post(ctx, getSchemaMethod, nil)
	if err != nil {
		return nil, err
	}
	return &respd.Schema, nil
}

func (sr *hiveRestful) GetQueryPlan(ctx context.Context) (string, error) {
	respd, err := sr.post(ctx, getQueryPlanMethod, nil)
	if err != nil {
		return "", err
	}
	return respd.Plan, nil
}

func (sr *hiveRestful) GetClusterStatus(ctx context.Context) (*ClusterStatus, error) {
	respd, err := sr.post(ctx, getClusterStatusMethod, nil)
	if err != nil {
		return nil, err
	}
	if respd.Status == nil {
		return &ClusterStatus{}, nil
	}
	return respd.Status, nil
}
