package logging

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(buf *bytes.Buffer) *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))}
}

func TestRequestLoggerStoresLoggerInContext(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf)

	var fromCtx *Logger
	h := middleware.RequestID(RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = GetLoggerFromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/books", nil))

	require.NotNil(t, fromCtx)
	assert.Equal(t, http.StatusTeapot, rec.Code)

	out := buf.String()
	assert.Contains(t, out, `"msg":"request completed"`)
	assert.Contains(t, out, `"status":418`)
	assert.Contains(t, out, `"level":"WARN"`)
	assert.Contains(t, out, `"path":"/books"`)
	assert.Contains(t, out, `"request_id"`)
}

func TestRequestLoggerLevelForServerErrors(t *testing.T) {
	var buf bytes.Buffer
	h := RequestLogger(newBufferLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/users", nil))

	assert.True(t, strings.Contains(buf.String(), `"level":"ERROR"`), buf.String())
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	newBufferLogger(&buf).WithFields(map[string]any{"phone": "+15551234567"}).Info("otp issued")

	assert.Contains(t, buf.String(), `"phone":"+15551234567"`)
}

func TestGetLoggerFromContextFallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.NotNil(t, GetLoggerFromContext(req.Context()))
}
