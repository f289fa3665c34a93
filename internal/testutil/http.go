package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// Serve issues method and path against h.
func Serve(h http.Handler, method, path string, body io.Reader) *httptest.ResponseRecorder {
	return ServeRequest(h, httptest.NewRequest(method, path, body))
}

// ServeRequest issues req against h.
func ServeRequest(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// AssertStatus fails the test with the response body when the status differs.
func AssertStatus(t testing.TB, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rr.Code, "body: %s", rr.Body.String())
}

// DecodeJSON decodes the response body into dest.
func DecodeJSON(t testing.TB, rr *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rr.Body).Decode(dest), "body: %s", rr.Body.String())
}

// ErrorCode returns the machine-readable code of a JSON error response.
func ErrorCode(t testing.TB, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	DecodeJSON(t, rr, &body)
	return body.Code
}
