// Copyright 2025 Siyadah
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package runtime talks to the automation runtime that hosts compiled
// flows. The compiler itself never calls it; it exists for the CLI and
// embedding services to hand a finished rendering over.
package runtime

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/siyadah/flowgen/pkg/errors"
	"github.com/siyadah/flowgen/pkg/flow"
)

// ImportedFlow is the runtime's record of a hosted flow.
type ImportedFlow struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Status      string `json:"status"`
}

// Client is the runtime surface the compiler's callers need.
type Client interface {
	// ImportFlow submits a rendered flow and returns the hosted record.
	ImportFlow(ctx context.Context, rendered *flow.Rendered) (*ImportedFlow, error)

	// GetFlow fetches a hosted flow by id.
	GetFlow(ctx context.Context, id string) (*ImportedFlow, error)

	// EnableFlow starts a hosted flow.
	EnableFlow(ctx context.Context, id string) error

	// DisableFlow stops a hosted flow.
	DisableFlow(ctx context.Context, id string) error

	// DeleteFlow removes a hosted flow.
	DeleteFlow(ctx context.Context, id string) error
}

// HTTPClient is the production Client over the runtime's REST API.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// HTTPOption configures an HTTPClient.
type HTTPOption func(*HTTPClient)

// WithTimeout sets the request timeout. Default 30s.
func WithTimeout(d time.Duration) HTTPOption {
	return func(c *HTTPClient) { c.client.Timeout = d }
}

// WithHTTPClient swaps the underlying http.Client.
func WithHTTPClient(hc *http.Client) HTTPOption {
	return func(c *HTTPClient) { c.client = hc }
}

// NewHTTPClient creates a runtime client for the given base URL and
// API key.
func NewHTTPClient(baseURL, apiKey string, opts ...HTTPOption) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ImportFlow submits the rendered flow to the runtime.
func (c *HTTPClient) ImportFlow(ctx context.Context, rendered *flow.Rendered) (*ImportedFlow, error) {
	if rendered == nil {
		return nil, &errors.ValidationError{Field: "rendered", Message: "nothing to import"}
	}
	var out ImportedFlow
	if err := c.do(ctx, http.MethodPost, "/v1/flows", rendered, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetFlow fetches a hosted flow.
func (c *HTTPClient) GetFlow(ctx context.Context, id string) (*ImportedFlow, error) {
	var out ImportedFlow
	if err := c.do(ctx, http.MethodGet, "/v1/flows/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EnableFlow starts a hosted flow.
func (c *HTTPClient) EnableFlow(ctx context.Context, id string) error {
	body := map[string]string{"status": "ENABLED"}
	return c.do(ctx, http.MethodPost, "/v1/flows/"+id+"/status", body, nil)
}

// DisableFlow stops a hosted flow.
func (c *HTTPClient) DisableFlow(ctx context.Context, id string) error {
	body := map[string]string{"status": "DISABLED"}
	return c.do(ctx, http.MethodPost, "/v1/flows/"+id+"/status", body, nil)
}

// DeleteFlow removes a hosted flow.
func (c *HTTPClient) DeleteFlow(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/flows/"+id, nil, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "encoding request")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &errors.RuntimeError{Operation: method + " " + path, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &errors.NotFoundError{Resource: "flow", ID: path}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &errors.RuntimeError{
			Operation:  method + " " + path,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(data)),
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrap(err, "decoding response")
		}
	}
	return nil
}

// MockClient is an in-memory Client for tests and dry runs.
type MockClient struct {
	flows  map[string]*ImportedFlow
	nextID int

	// ImportErr, when set, fails the next ImportFlow call
	ImportErr error
}

// NewMockClient creates an empty mock runtime.
func NewMockClient() *MockClient {
	return &MockClient{flows: make(map[string]*ImportedFlow)}
}

// ImportFlow stores the rendering under a generated id.
func (m *MockClient) ImportFlow(_ context.Context, rendered *flow.Rendered) (*ImportedFlow, error) {
	if m.ImportErr != nil {
		return nil, m.ImportErr
	}
	if rendered == nil {
		return nil, &errors.ValidationError{Field: "rendered", Message: "nothing to import"}
	}
	m.nextID++
	f := &ImportedFlow{
		ID:          fmt.Sprintf("mock-%d", m.nextID),
		DisplayName: rendered.DisplayName,
		Status:      "DISABLED",
	}
	m.flows[f.ID] = f
	return f, nil
}

// GetFlow returns the stored record.
func (m *MockClient) GetFlow(_ context.Context, id string) (*ImportedFlow, error) {
	f, ok := m.flows[id]
	if !ok {
		return nil, &errors.NotFoundError{Resource: "flow", ID: id}
	}
	return f, nil
}

// EnableFlow flips the stored record to enabled.
func (m *MockClient) EnableFlow(_ context.Context, id string) error {
	return m.setStatus(id, "ENABLED")
}

// DisableFlow flips the stored record to disabled.
func (m *MockClient) DisableFlow(_ context.Context, id string) error {
	return m.setStatus(id, "DISABLED")
}

// DeleteFlow removes the stored record.
func (m *MockClient) DeleteFlow(_ context.Context, id string) error {
	if _, ok := m.flows[id]; !ok {
		return &errors.NotFoundError{Resource: "flow", ID: id}
	}
	delete(m.flows, id)
	return nil
}

func (m *MockClient) setStatus(id, status string) error {
	f, ok := m.flows[id]
	if !ok {
		return &errors.NotFoundError{Resource: "flow", ID: id}
	}
	f.Status = status
	return nil
}
