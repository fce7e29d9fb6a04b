package handlers

import (
	"gamestore/internal/app"
	adminController "gamestore/internal/controllers/admin"
	"gamestore/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Handler
	adminController adminController.AdminControllerInterface
}

func NewAdminHandler(app app.App, router fiber.Router) *AdminHandler {
	log := logger.New("handlers").File("admin_handler")
	return &AdminHandler{
		adminController: app.Controllers.Admin,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AdminHandler) Register() {
	admin := h.router.Group("/admin", h.middleware.RequireAdmin())

	catalog := admin.Group("/catalog")
	catalog.Get("/", h.getCatalog)
	catalog.Post("/:id", h.addToCatalog)
	catalog.Delete("/:id", h.removeFromCatalog)
	catalog.Post("/:id/sale", h.setWeeklySale)

	admin.Post("/sales/end", h.endSales)
}

func (h *AdminHandler) getCatalog(c *fiber.Ctx) error {
	games, err := h.adminController.Catalog(c.UserContext(), middleware.GetPrincipal(c))
	if err != nil {
		return h.handleError(c, "Failed to get catalog", err)
	}

	return c.JSON(fiber.Map{"games": games})
}

func (h *AdminHandler) addToCatalog(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return h.handleError(c, "Invalid game id", err)
	}

	games, err := h.adminController.AddToCatalog(c.UserContext(), middleware.GetPrincipal(c), id)
	if err != nil {
		return h.handleError(c, "Failed to add game to catalog", err)
	}

	return c.JSON(fiber.Map{"games": games})
}

func (h *AdminHandler) removeFromCatalog(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return h.handleError(c, "Invalid game id", err)
	}

	removed, err := h.adminController.RemoveFromCatalog(c.UserContext(), middleware.GetPrincipal(c), id)
	if err != nil {
		return h.handleError(c, "Failed to remove game from catalog", err)
	}

	return c.JSON(fiber.Map{"removed": removed})
}

func (h *AdminHandler) setWeeklySale(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return h.handleError(c, "Invalid game id", err)
	}

	var req adminController.WeeklySaleRequest
	if err := c.BodyParser(&req); err != nil {
		return h.badRequest(c, err)
	}

	response, err := h.adminController.WeeklySale(c.UserContext(), middleware.GetPrincipal(c), id, req)
	if err != nil {
		return h.handleError(c, "Failed to set weekly sale", err)
	}

	return c.JSON(response)
}

func (h *AdminHandler) endSales(c *fiber.Ctx) error {
	restored, err := h.adminController.EndSales(c.UserContext(), middleware.GetPrincipal(c))
	if err != nil {
		return h.handleError(c, "Failed to end sales", err)
	}

	return c.JSON(fiber.Map{"restored": restored})
}
