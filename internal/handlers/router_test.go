package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gamestore/config"
	"gamestore/internal/app"
	. "gamestore/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *fiber.App {
	t.Helper()
	application, err := app.NewWithConfig(config.Config{
		GeneralVersion:    "test",
		Environment:       "test",
		ServerPort:        8280,
		SessionSecret:     "test-secret",
		SessionTTLMinutes: 60,
		SeedDefaults:      true,
		SeedRandom:        1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })

	server := fiber.New()
	require.NoError(t, Router(server, application))
	return server
}

func call(t *testing.T, server *fiber.App, method, path, token, body string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := server.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	payload := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &payload), string(raw))
	}
	return resp.StatusCode, payload
}

func login(t *testing.T, server *fiber.App, path, username string) string {
	t.Helper()
	status, payload := call(t, server, fiber.MethodPost, path, "",
		`{"username":"`+username+`","password":"password"}`)
	require.Equal(t, http.StatusOK, status, payload)
	return payload["token"].(string)
}

func titles(t *testing.T, payload map[string]any) []string {
	t.Helper()
	games, ok := payload["games"].([]any)
	require.True(t, ok, payload)
	result := make([]string, 0, len(games))
	for _, game := range games {
		result = append(result, game.(map[string]any)["title"].(string))
	}
	return result
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{ErrInvalidArgument, http.StatusBadRequest},
		{ErrUnauthenticated, http.StatusUnauthorized},
		{ErrPermissionDenied, http.StatusForbidden},
		{ErrNotFound, http.StatusNotFound},
		{ErrConflict, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.expected, errorStatus(tt.err))
		})
	}
}

func TestRouter_Health(t *testing.T) {
	server := newTestServer(t)

	status, payload := call(t, server, fiber.MethodGet, "/api/health", "", "")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", payload["status"])
	assert.Equal(t, "test", payload["version"])
}

func TestRouter_BrowseAsGuest(t *testing.T) {
	server := newTestServer(t)

	status, payload := call(t, server, fiber.MethodGet, "/api/games?title=Game%201", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"Game 1", "Game 10"}, titles(t, payload))

	status, payload = call(t, server, fiber.MethodGet, "/api/games?rating=e", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"Game 5", "Game 10"}, titles(t, payload))

	status, payload = call(t, server, fiber.MethodGet, "/api/games?q=Genre%207", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"Game 7"}, titles(t, payload))

	status, payload = call(t, server, fiber.MethodGet, "/api/games/sale", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"Game 1", "Game 2", "Game 3"}, titles(t, payload))

	status, payload = call(t, server, fiber.MethodGet, "/api/games/4/reviews", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, payload["reviews"], 2)

	status, _ = call(t, server, fiber.MethodGet, "/api/games?min=cheap", "", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, server, fiber.MethodGet, "/api/games/99", "", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = call(t, server, fiber.MethodGet, "/api/games/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, payload = call(t, server, fiber.MethodGet, "/api/posts", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, payload["posts"], 3)
}

func TestRouter_CustomerFlow(t *testing.T) {
	server := newTestServer(t)

	status, _ := call(t, server, fiber.MethodPost, "/api/library/4", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	token := login(t, server, "/api/auth/login", "customer1")

	status, payload := call(t, server, fiber.MethodGet, "/api/auth/me", token, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, payload["authenticated"])

	status, _ = call(t, server, fiber.MethodPost, "/api/wishlist/4", token, "")
	assert.Equal(t, http.StatusOK, status)

	status, payload = call(t, server, fiber.MethodPost, "/api/games/4/reviews", token, `{"text":"Early","stars":4}`)
	assert.Equal(t, http.StatusForbidden, status, payload)

	status, payload = call(t, server, fiber.MethodPost, "/api/library/4", token, "")
	require.Equal(t, http.StatusCreated, status, payload)

	status, _ = call(t, server, fiber.MethodPost, "/api/library/4", token, "")
	assert.Equal(t, http.StatusConflict, status)

	status, payload = call(t, server, fiber.MethodGet, "/api/wishlist", token, "")
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, payload["games"])

	status, payload = call(t, server, fiber.MethodPost, "/api/library/4/launch", token, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Game started successfully", payload["result"])

	status, payload = call(t, server, fiber.MethodPost, "/api/games/4/reviews", token, `{"text":"Solid","stars":4}`)
	require.Equal(t, http.StatusCreated, status, payload)

	status, _ = call(t, server, fiber.MethodPost, "/api/games", token, `{"title":"Mine","price":"1","rating":"e"}`)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = call(t, server, fiber.MethodGet, "/api/reports/sales", token, "")
	assert.Equal(t, http.StatusForbidden, status)

	status, payload = call(t, server, fiber.MethodPost, "/api/posts", token, `{"content":"Bought Game 4"}`)
	require.Equal(t, http.StatusCreated, status, payload)
}

func TestRouter_Registration(t *testing.T) {
	server := newTestServer(t)

	status, payload := call(t, server, fiber.MethodPost, "/api/users", "",
		`{"username":"newbie","email":"newbie@example.com","password":"pw"}`)
	require.Equal(t, http.StatusCreated, status, payload)
	assert.Equal(t, "Customer", payload["user"].(map[string]any)["role"])
	assert.NotContains(t, payload["user"], "password")

	status, _ = call(t, server, fiber.MethodPost, "/api/users", "", `{"username":"newbie","password":"pw"}`)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = call(t, server, fiber.MethodPost, "/api/users", "", `{"username":"boss","password":"pw","role":"Administrator"}`)
	assert.Equal(t, http.StatusForbidden, status)

	login(t, server, "/api/auth/login", "newbie")

	status, _ = call(t, server, fiber.MethodPost, "/api/auth/login", "", `{"username":"newbie","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRouter_DeveloperAndManager(t *testing.T) {
	server := newTestServer(t)
	developer := login(t, server, "/api/auth/login", "developer1")
	manager := login(t, server, "/api/auth/login", "manager1")

	status, payload := call(t, server, fiber.MethodPost, "/api/games", developer,
		`{"title":"Space Farm","description":"Cows in orbit","price":"9.99","genre":"Sim","rating":"e10"}`)
	require.Equal(t, http.StatusCreated, status, payload)
	game := payload["game"].(map[string]any)
	assert.Equal(t, "developer1", game["developer"])

	status, payload = call(t, server, fiber.MethodPut, "/api/games/11/price", developer, `{"price":"7.49"}`)
	require.Equal(t, http.StatusOK, status, payload)

	status, _ = call(t, server, fiber.MethodPut, "/api/games/11/price", developer, `{"price":"oops"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, payload = call(t, server, fiber.MethodGet, "/api/users", manager, "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, payload["users"], 6)

	status, payload = call(t, server, fiber.MethodGet, "/api/reports/sales", manager, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), payload["units"])
}

func TestRouter_Administrator(t *testing.T) {
	server := newTestServer(t)
	customer := login(t, server, "/api/auth/login", "customer1")
	admin := login(t, server, "/api/auth/admin/login", "admin2")

	status, _ := call(t, server, fiber.MethodGet, "/api/admin/catalog", customer, "")
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = call(t, server, fiber.MethodGet, "/api/admin/catalog", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, payload := call(t, server, fiber.MethodPost, "/api/admin/catalog/8", admin, "")
	require.Equal(t, http.StatusOK, status, payload)
	assert.Equal(t, []string{"Game 8"}, titles(t, payload))

	status, payload = call(t, server, fiber.MethodPost, "/api/admin/catalog/8/sale", admin, `{"percent":"50"}`)
	require.Equal(t, http.StatusOK, status, payload)
	assert.Equal(t, true, payload["applied"])

	status, payload = call(t, server, fiber.MethodPost, "/api/admin/catalog/9/sale", admin, `{"percent":"50"}`)
	require.Equal(t, http.StatusOK, status, payload)
	assert.Equal(t, false, payload["applied"])

	status, payload = call(t, server, fiber.MethodGet, "/api/games/sale", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"Game 1", "Game 2", "Game 3", "Game 8"}, titles(t, payload))

	status, payload = call(t, server, fiber.MethodPost, "/api/admin/sales/end", admin, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(4), payload["restored"])

	status, payload = call(t, server, fiber.MethodDelete, "/api/admin/catalog/8", admin, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, payload["removed"])

	status, payload = call(t, server, fiber.MethodPost, "/api/auth/admin/register", admin, `{"username":"admin3","password":"pw"}`)
	require.Equal(t, http.StatusCreated, status, payload)
	login(t, server, "/api/auth/admin/login", "admin3")
}
