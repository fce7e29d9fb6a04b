package handlers

import (
	"gamestore/internal/app"
	authController "gamestore/internal/controllers/auth"
	reportsController "gamestore/internal/controllers/reports"
	"gamestore/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	Handler
	authController    authController.AuthControllerInterface
	reportsController reportsController.ReportsControllerInterface
}

func NewUserHandler(app app.App, router fiber.Router) *UserHandler {
	log := logger.New("handlers").File("user_handler")
	return &UserHandler{
		authController:    app.Controllers.Auth,
		reportsController: app.Controllers.Reports,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *UserHandler) Register() {
	users := h.router.Group("/users")

	users.Post("/", h.register)
	users.Get("/", h.middleware.RequireAuth(), h.getUsers)
}

func (h *UserHandler) register(c *fiber.Ctx) error {
	var req authController.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return h.badRequest(c, err)
	}

	user, err := h.authController.Register(c.UserContext(), middleware.GetPrincipal(c), req)
	if err != nil {
		return h.handleError(c, "Registration failed", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user": user,
	})
}

func (h *UserHandler) getUsers(c *fiber.Ctx) error {
	users, err := h.reportsController.Users(c.UserContext(), middleware.GetPrincipal(c))
	if err != nil {
		return h.handleError(c, "Failed to list users", err)
	}

	return c.JSON(fiber.Map{
		"users": users,
	})
}
