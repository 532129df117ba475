// Package testutil provides common test utilities for handler and transport
// tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"pinboard/pkg/apiresult"
)

// NewJSONRequest creates an HTTP request with a JSON body marshaled from
// body.
func NewJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewRequest creates a simple HTTP request without a body.
func NewRequest(t *testing.T, method, path string) *http.Request {
	t.Helper()
	return httptest.NewRequest(method, path, nil)
}

// DoRequest executes a request against a handler and returns the recorder.
func DoRequest(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// DecodeEnvelope parses the standard response envelope from a recorder.
func DecodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) apiresult.Envelope {
	t.Helper()
	var env apiresult.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "response was not a valid envelope")
	return env
}
