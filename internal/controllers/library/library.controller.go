package libraryController

import (
	"context"

	. "gamestore/internal/models"
	"gamestore/internal/services"
	"gamestore/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
)

type LibraryController struct {
	catalog *services.CatalogService
	policy  *services.PolicyService
	log     logger.Logger
}

type LibraryControllerInterface interface {
	Library(ctx context.Context, caller services.Principal) ([]*Game, error)
	Purchase(ctx context.Context, caller services.Principal, gameID int) (*Purchase, error)
	Launch(ctx context.Context, caller services.Principal, gameID int) (services.LaunchResult, error)
	Wishlist(ctx context.Context, caller services.Principal) ([]*Game, error)
	AddToWishlist(ctx context.Context, caller services.Principal, gameID int) (bool, error)
	RemoveFromWishlist(ctx context.Context, caller services.Principal, gameID int) (bool, error)
	Review(ctx context.Context, caller services.Principal, gameID int, req ReviewRequest) (*Game, error)
}

type ReviewRequest struct {
	Text  string `json:"text"`
	Stars int    `json:"stars"`
}

func New(service services.Service) LibraryControllerInterface {
	return &LibraryController{
		catalog: service.Catalog,
		policy:  service.Policy,
		log:     logger.New("libraryController"),
	}
}

func (c *LibraryController) Library(ctx context.Context, caller services.Principal) ([]*Game, error) {
	if err := c.policy.AuthorizeUser(caller, services.PermGamesRead); err != nil {
		return nil, err
	}
	return c.catalog.Library(caller.ID)
}

func (c *LibraryController) Purchase(
	ctx context.Context,
	caller services.Principal,
	gameID int,
) (*Purchase, error) {
	if err := c.policy.AuthorizeUser(caller, services.PermLibraryWrite); err != nil {
		return nil, err
	}
	return c.catalog.PurchaseGame(caller.ID, gameID)
}

func (c *LibraryController) Launch(
	ctx context.Context,
	caller services.Principal,
	gameID int,
) (services.LaunchResult, error) {
	if err := c.policy.AuthorizeUser(caller, services.PermGamesRead); err != nil {
		return "", err
	}
	return c.catalog.LaunchGame(caller.ID, gameID)
}

func (c *LibraryController) Wishlist(ctx context.Context, caller services.Principal) ([]*Game, error) {
	if err := c.policy.AuthorizeUser(caller, services.PermGamesRead); err != nil {
		return nil, err
	}
	return c.catalog.Wishlist(caller.ID)
}

func (c *LibraryController) AddToWishlist(
	ctx context.Context,
	caller services.Principal,
	gameID int,
) (bool, error) {
	if err := c.policy.AuthorizeUser(caller, services.PermLibraryWrite); err != nil {
		return false, err
	}
	return c.catalog.AddToWishlist(caller.ID, gameID)
}

func (c *LibraryController) RemoveFromWishlist(
	ctx context.Context,
	caller services.Principal,
	gameID int,
) (bool, error) {
	if err := c.policy.AuthorizeUser(caller, services.PermLibraryWrite); err != nil {
		return false, err
	}
	return c.catalog.RemoveFromWishlist(caller.ID, gameID)
}

func (c *LibraryController) Review(
	ctx context.Context,
	caller services.Principal,
	gameID int,
	req ReviewRequest,
) (*Game, error) {
	log := c.log.TraceFromContext(ctx).Function("Review")

	if err := c.policy.AuthorizeUser(caller, services.PermReviewsWrite); err != nil {
		return nil, err
	}

	text, cleaned := utils.CleanUTF8(req.Text)
	if cleaned {
		log.Warn("Review text contained invalid characters", "userID", caller.ID, "gameID", gameID)
	}

	return c.catalog.ReviewGame(caller.ID, gameID, text, req.Stars)
}
