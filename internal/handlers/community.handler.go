package handlers

import (
	"gamestore/internal/app"
	communityController "gamestore/internal/controllers/community"
	"gamestore/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type CommunityHandler struct {
	Handler
	communityController communityController.CommunityControllerInterface
}

func NewCommunityHandler(app app.App, router fiber.Router) *CommunityHandler {
	log := logger.New("handlers").File("community_handler")
	return &CommunityHandler{
		communityController: app.Controllers.Community,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *CommunityHandler) Register() {
	posts := h.router.Group("/posts")
	posts.Get("/", h.getPosts)
	posts.Post("/", h.middleware.RequireAuth(), h.createPost)
}

func (h *CommunityHandler) getPosts(c *fiber.Ctx) error {
	posts, err := h.communityController.Posts(c.UserContext(), middleware.GetPrincipal(c))
	if err != nil {
		return h.handleError(c, "Failed to list posts", err)
	}

	return c.JSON(fiber.Map{"posts": posts})
}

func (h *CommunityHandler) createPost(c *fiber.Ctx) error {
	var req communityController.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return h.badRequest(c, err)
	}

	post, err := h.communityController.CreatePost(c.UserContext(), middleware.GetPrincipal(c), req)
	if err != nil {
		return h.handleError(c, "Failed to create post", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"post": post})
}
