package handlers

import (
	"gamestore/internal/app"
	libraryController "gamestore/internal/controllers/library"
	"gamestore/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type LibraryHandler struct {
	Handler
	libraryController libraryController.LibraryControllerInterface
}

func NewLibraryHandler(app app.App, router fiber.Router) *LibraryHandler {
	log := logger.New("handlers").File("library_handler")
	return &LibraryHandler{
		libraryController: app.Controllers.Library,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *LibraryHandler) Register() {
	library := h.router.Group("/library", h.middleware.RequireAuth())
	library.Get("/", h.getLibrary)
	library.Post("/:id", h.purchaseGame)
	library.Post("/:id/launch", h.launchGame)

	wishlist := h.router.Group("/wishlist", h.middleware.RequireAuth())
	wishlist.Get("/", h.getWishlist)
	wishlist.Post("/:id", h.addToWishlist)
	wishlist.Delete("/:id", h.removeFromWishlist)
}

func (h *LibraryHandler) getLibrary(c *fiber.Ctx) error {
	games, err := h.libraryController.Library(c.UserContext(), middleware.GetPrincipal(c))
	if err != nil {
		return h.handleError(c, "Failed to get library", err)
	}

	return c.JSON(fiber.Map{"games": games})
}

func (h *LibraryHandler) purchaseGame(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return h.handleError(c, "Invalid game id", err)
	}

	purchase, err := h.libraryController.Purchase(c.UserContext(), middleware.GetPrincipal(c), id)
	if err != nil {
		return h.handleError(c, "Failed to purchase game", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"purchase": purchase})
}

func (h *LibraryHandler) launchGame(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return h.handleError(c, "Invalid game id", err)
	}

	result, err := h.libraryController.Launch(c.UserContext(), middleware.GetPrincipal(c), id)
	if err != nil {
		return h.handleError(c, "Failed to launch game", err)
	}

	return c.JSON(fiber.Map{"result": result})
}

func (h *LibraryHandler) getWishlist(c *fiber.Ctx) error {
	games, err := h.libraryController.Wishlist(c.UserContext(), middleware.GetPrincipal(c))
	if err != nil {
		return h.handleError(c, "Failed to get wishlist", err)
	}

	return c.JSON(fiber.Map{"games": games})
}

func (h *LibraryHandler) addToWishlist(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return h.handleError(c, "Invalid game id", err)
	}

	added, err := h.libraryController.AddToWishlist(c.UserContext(), middleware.GetPrincipal(c), id)
	if err != nil {
		return h.handleError(c, "Failed to add to wishlist", err)
	}

	return c.JSON(fiber.Map{"added": added})
}

func (h *LibraryHandler) removeFromWishlist(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return h.handleError(c, "Invalid game id", err)
	}

	removed, err := h.libraryController.RemoveFromWishlist(c.UserContext(), middleware.GetPrincipal(c), id)
	if err != nil {
		return h.handleError(c, "Failed to remove from wishlist", err)
	}

	return c.JSON(fiber.Map{"removed": removed})
}
