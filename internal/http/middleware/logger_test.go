package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loggedRequest(t *testing.T, status int, target string) map[string]any {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(Logger(log))
	r.GET("/ping", func(c *gin.Context) {
		c.String(status, "pong")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	r.ServeHTTP(w, req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestLoggerRecordsRequestFields(t *testing.T) {
	entry := loggedRequest(t, http.StatusOK, "/ping?verbose=1")

	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "request completed", entry["msg"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/ping?verbose=1", entry["path"])
	assert.InDelta(t, http.StatusOK, entry["status"], 0.001)
	assert.Contains(t, entry, "latency_ms")
	assert.Contains(t, entry, "bytes")
	assert.Contains(t, entry, "ip")
}

func TestLoggerWarnsOnClientError(t *testing.T) {
	entry := loggedRequest(t, http.StatusNotFound, "/ping")

	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "request rejected", entry["msg"])
}

func TestLoggerErrorsOnServerError(t *testing.T) {
	entry := loggedRequest(t, http.StatusInternalServerError, "/ping")

	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "request failed", entry["msg"])
}
