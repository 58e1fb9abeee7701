package httpserver_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"moviecast/pkg/config"

	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{AllowOrigins: "*"}
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body), "response body should be JSON")
	return body
}
