package handlers

import (
	"gamestore/internal/app"
	authController "gamestore/internal/controllers/auth"
	"gamestore/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Handler
	authController authController.AuthControllerInterface
}

func NewAuthHandler(app app.App, router fiber.Router) *AuthHandler {
	log := logger.New("handlers").File("auth_handler")
	return &AuthHandler{
		authController: app.Controllers.Auth,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AuthHandler) Register() {
	auth := h.router.Group("/auth")

	auth.Post("/login", h.login)
	auth.Post("/admin/login", h.adminLogin)
	auth.Get("/me", h.getCurrentPrincipal)
	auth.Post("/admin/register", h.middleware.RequireAdmin(), h.registerAdministrator)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var req authController.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return h.badRequest(c, err)
	}

	response, err := h.authController.Login(c.UserContext(), req)
	if err != nil {
		return h.handleError(c, "Login failed", err)
	}

	return c.JSON(response)
}

func (h *AuthHandler) adminLogin(c *fiber.Ctx) error {
	var req authController.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return h.badRequest(c, err)
	}

	response, err := h.authController.AdminLogin(c.UserContext(), req)
	if err != nil {
		return h.handleError(c, "Administrator login failed", err)
	}

	return c.JSON(response)
}

// getCurrentPrincipal reports who the caller is and what they may do. Guests are answered too.
func (h *AuthHandler) getCurrentPrincipal(c *fiber.Ctx) error {
	principal := middleware.GetPrincipal(c)

	return c.JSON(fiber.Map{
		"principal":     principal,
		"authenticated": principal.Authenticated(),
		"permissions":   h.authController.Permissions(principal),
	})
}

func (h *AuthHandler) registerAdministrator(c *fiber.Ctx) error {
	var req authController.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return h.badRequest(c, err)
	}

	admin, err := h.authController.RegisterAdministrator(c.UserContext(), middleware.GetPrincipal(c), req)
	if err != nil {
		return h.handleError(c, "Failed to register administrator", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"administrator": admin,
	})
}
