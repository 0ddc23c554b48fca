package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"prequal/pkg/requestcontext"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type echoHandler struct {
	gotRequestID string
	gotUserAgent string
}

func (h *echoHandler) Register(r chi.Router) {
	r.Get("/echo", func(w http.ResponseWriter, r *http.Request) {
		h.gotRequestID = requestcontext.RequestID(r.Context())
		h.gotUserAgent = requestcontext.UserAgent(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestRequestScopeMiddleware(t *testing.T) {
	echo := &echoHandler{}
	router := NewRouter(testLogger(), nil, echo)

	req := httptest.NewRequest(http.MethodGet, "/echo", nil)
	req.Header.Set("User-Agent", "test-agent/1.0")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.NotEmpty(t, echo.gotRequestID)
	require.Equal(t, echo.gotRequestID, rec.Header().Get("X-Request-ID"))
	require.Equal(t, "test-agent/1.0", echo.gotUserAgent)
}

func TestRequestIDPassthrough(t *testing.T) {
	echo := &echoHandler{}
	router := NewRouter(testLogger(), nil, echo)

	req := httptest.NewRequest(http.MethodGet, "/echo", nil)
	req.Header.Set("X-Request-ID", "caller-supplied")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, "caller-supplied", echo.gotRequestID)
}

func TestHealthzReportsBackends(t *testing.T) {
	router := NewRouter(testLogger(), map[string]HealthChecker{
		"redis":    func(*http.Request) error { return nil },
		"postgres": func(*http.Request) error { return errors.New("connection refused") },
	})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), "degraded")
	require.Contains(t, rec.Body.String(), "connection refused")
}

func TestHealthzOK(t *testing.T) {
	router := NewRouter(testLogger(), nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"ok"`)
}
