package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"gamestore/internal/app"
	"gamestore/internal/handlers/middleware"
	. "gamestore/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func Router(router fiber.Router, app *app.App) (err error) {
	setupWebSocketRoute(router, app)

	api := router.Group("/api", app.Middleware.TraceID(), app.Middleware.Authenticate())
	HealthHandler(api, app.Config)
	NewAuthHandler(*app, api).Register()
	NewUserHandler(*app, api).Register()
	NewGamesHandler(*app, api).Register()
	NewLibraryHandler(*app, api).Register()
	NewCommunityHandler(*app, api).Register()
	NewAdminHandler(*app, api).Register()
	NewReportsHandler(*app, api).Register()

	return nil
}

func setupWebSocketRoute(router fiber.Router, app *app.App) {
	router.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	router.Get("/ws", websocket.New(func(c *websocket.Conn) {
		app.Websocket.HandleWebSocket(c)
	}))
}

// errorStatus maps storefront errors onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) handleError(c *fiber.Ctx, msg string, err error) error {
	log := h.log.TraceFromContext(c.UserContext())

	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Er(msg, err)
		return c.Status(status).JSON(fiber.Map{
			"error": msg,
		})
	}

	log.Info(msg, "status", status, "error", err.Error())
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (h *Handler) badRequest(c *fiber.Ctx, err error) error {
	h.log.TraceFromContext(c.UserContext()).Warn("Invalid request body", "error", err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "Invalid request body",
		"details": err.Error(),
	})
}

func parseID(c *fiber.Ctx) (int, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", ErrInvalidArgument, c.Params("id"))
	}
	return id, nil
}
