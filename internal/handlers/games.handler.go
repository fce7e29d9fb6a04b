package handlers

import (
	"gamestore/internal/app"
	gamesController "gamestore/internal/controllers/games"
	libraryController "gamestore/internal/controllers/library"
	"gamestore/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type GamesHandler struct {
	Handler
	gamesController   gamesController.GamesControllerInterface
	libraryController libraryController.LibraryControllerInterface
}

func NewGamesHandler(app app.App, router fiber.Router) *GamesHandler {
	log := logger.New("handlers").File("games_handler")
	return &GamesHandler{
		gamesController:   app.Controllers.Games,
		libraryController: app.Controllers.Library,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *GamesHandler) Register() {
	games := h.router.Group("/games")

	games.Get("/", h.searchGames)
	games.Get("/sale", h.getGamesOnSale)
	games.Get("/:id", h.getGame)
	games.Get("/:id/reviews", h.getReviews)

	games.Post("/", h.middleware.RequireAuth(), h.createGame)
	games.Post("/:id/reviews", h.middleware.RequireAuth(), h.reviewGame)
	games.Put("/:id/price", h.middleware.RequireAuth(), h.updatePrice)
}

// searchGames runs the multi-criteria search, or the title/genre quick search when q is set.
func (h *GamesHandler) searchGames(c *fiber.Ctx) error {
	principal := middleware.GetPrincipal(c)

	if query := c.Query("q"); query != "" {
		games, err := h.gamesController.QuickSearch(c.UserContext(), principal, query)
		if err != nil {
			return h.handleError(c, "Quick search failed", err)
		}
		return c.JSON(fiber.Map{"games": games})
	}

	var req gamesController.SearchRequest
	if err := c.QueryParser(&req); err != nil {
		return h.badRequest(c, err)
	}

	games, err := h.gamesController.Search(c.UserContext(), principal, req)
	if err != nil {
		return h.handleError(c, "Search failed", err)
	}

	return c.JSON(fiber.Map{"games": games})
}

func (h *GamesHandler) getGamesOnSale(c *fiber.Ctx) error {
	games, err := h.gamesController.OnSale(c.UserContext(), middleware.GetPrincipal(c))
	if err != nil {
		return h.handleError(c, "Failed to list games on sale", err)
	}

	return c.JSON(fiber.Map{"games": games})
}

func (h *GamesHandler) getGame(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return h.handleError(c, "Invalid game id", err)
	}

	game, err := h.gamesController.Get(c.UserContext(), middleware.GetPrincipal(c), id)
	if err != nil {
		return h.handleError(c, "Failed to get game", err)
	}

	return c.JSON(fiber.Map{"game": game})
}

func (h *GamesHandler) getReviews(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return h.handleError(c, "Invalid game id", err)
	}

	reviews, err := h.gamesController.Reviews(c.UserContext(), middleware.GetPrincipal(c), id)
	if err != nil {
		return h.handleError(c, "Failed to get reviews", err)
	}

	return c.JSON(fiber.Map{"reviews": reviews})
}

func (h *GamesHandler) createGame(c *fiber.Ctx) error {
	var req gamesController.CreateGameRequest
	if err := c.BodyParser(&req); err != nil {
		return h.badRequest(c, err)
	}

	game, err := h.gamesController.Create(c.UserContext(), middleware.GetPrincipal(c), req)
	if err != nil {
		return h.handleError(c, "Failed to create game", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"game": game})
}

func (h *GamesHandler) reviewGame(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return h.handleError(c, "Invalid game id", err)
	}

	var req libraryController.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return h.badRequest(c, err)
	}

	game, err := h.libraryController.Review(c.UserContext(), middleware.GetPrincipal(c), id, req)
	if err != nil {
		return h.handleError(c, "Failed to review game", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"game": game})
}

func (h *GamesHandler) updatePrice(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return h.handleError(c, "Invalid game id", err)
	}

	var req gamesController.UpdatePriceRequest
	if err := c.BodyParser(&req); err != nil {
		return h.badRequest(c, err)
	}

	game, err := h.gamesController.UpdatePrice(c.UserContext(), middleware.GetPrincipal(c), id, req)
	if err != nil {
		return h.handleError(c, "Failed to update price", err)
	}

	return c.JSON(fiber.Map{"game": game})
}
