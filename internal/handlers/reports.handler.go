package handlers

import (
	"gamestore/internal/app"
	reportsController "gamestore/internal/controllers/reports"
	"gamestore/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type ReportsHandler struct {
	Handler
	reportsController reportsController.ReportsControllerInterface
}

func NewReportsHandler(app app.App, router fiber.Router) *ReportsHandler {
	log := logger.New("handlers").File("reports_handler")
	return &ReportsHandler{
		reportsController: app.Controllers.Reports,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ReportsHandler) Register() {
	reports := h.router.Group("/reports", h.middleware.RequireAuth())
	reports.Get("/sales", h.getSalesReport)
}

func (h *ReportsHandler) getSalesReport(c *fiber.Ctx) error {
	report, err := h.reportsController.SalesReport(c.UserContext(), middleware.GetPrincipal(c))
	if err != nil {
		return h.handleError(c, "Failed to build sales report", err)
	}

	return c.JSON(report)
}
