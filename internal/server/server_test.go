package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gamestore/config"
	"gamestore/internal/app"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *AppServer {
	t.Helper()
	application, err := app.NewWithConfig(config.Config{
		GeneralVersion:    "test",
		Environment:       "test",
		ServerPort:        8280,
		CorsAllowOrigins:  "http://localhost:3000",
		SessionSecret:     "test-secret",
		SessionTTLMinutes: 60,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })

	server, err := New(application)
	require.NoError(t, err)
	return server
}

func TestServer_SecurityHeaders(t *testing.T) {
	server := newTestServer(t)

	resp, err := server.FiberApp.Test(httptest.NewRequest(fiber.MethodGet, "/api/health", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "APIServer/test", resp.Header.Get("Server"))
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
}

func TestServer_UnknownRouteIsJSON(t *testing.T) {
	server := newTestServer(t)

	resp, err := server.FiberApp.Test(httptest.NewRequest(fiber.MethodGet, "/api/nowhere", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	payload := map[string]string{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.NotEmpty(t, payload["error"])
}

func TestServer_ListenRejectsZeroPort(t *testing.T) {
	server := newTestServer(t)

	assert.Error(t, server.Listen(0))
}
