//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorBody struct {
	Error string `json:"error"`
}

// AssertSuccessResponse verifies status and decodes the JSON body into target.
func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target any) {
	t.Helper()
	require.Equal(t, expectedStatus, w.Code, "Unexpected status code. Body: %s", w.Body.String())
	if target != nil {
		require.NoError(t, json.NewDecoder(w.Body).Decode(target), "Failed to decode success response")
	}
}

// AssertErrorResponse verifies status and that the error message contains the
// expected fragment.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, msgContains string) {
	t.Helper()
	require.Equal(t, expectedStatus, w.Code, "Unexpected status code. Body: %s", w.Body.String())

	var body errorBody
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body), "Failed to decode error response")
	if msgContains != "" {
		assert.Contains(t, body.Error, msgContains, "Error message mismatch")
	}
}
