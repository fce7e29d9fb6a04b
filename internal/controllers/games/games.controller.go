package gamesController

import (
	"context"
	"fmt"
	"strings"
	"time"

	. "gamestore/internal/models"
	"gamestore/internal/services"
	"gamestore/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/shopspring/decimal"
)

type GamesController struct {
	catalog *services.CatalogService
	policy  *services.PolicyService
	log     logger.Logger
}

type GamesControllerInterface interface {
	Search(ctx context.Context, caller services.Principal, req SearchRequest) ([]*Game, error)
	QuickSearch(ctx context.Context, caller services.Principal, query string) ([]*Game, error)
	Get(ctx context.Context, caller services.Principal, gameID int) (*Game, error)
	OnSale(ctx context.Context, caller services.Principal) ([]*Game, error)
	Reviews(ctx context.Context, caller services.Principal, gameID int) ([]Review, error)
	Create(ctx context.Context, caller services.Principal, req CreateGameRequest) (*Game, error)
	UpdatePrice(
		ctx context.Context,
		caller services.Principal,
		gameID int,
		req UpdatePriceRequest,
	) (*Game, error)
}

// SearchRequest holds raw search criteria. Empty fields are not filtered on.
type SearchRequest struct {
	Title    string `query:"title"`
	Genre    string `query:"genre"`
	MinPrice string `query:"min"`
	MaxPrice string `query:"max"`
	Rating   string `query:"rating"`
	After    string `query:"after"`
	Before   string `query:"before"`
}

type CreateGameRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Genre       string `json:"genre"`
	Rating      string `json:"rating"`
	Developer   string `json:"developer"`
}

type UpdatePriceRequest struct {
	Price string `json:"price"`
}

func New(service services.Service) GamesControllerInterface {
	return &GamesController{
		catalog: service.Catalog,
		policy:  service.Policy,
		log:     logger.New("gamesController"),
	}
}

func (c *GamesController) Search(
	ctx context.Context,
	caller services.Principal,
	req SearchRequest,
) ([]*Game, error) {
	log := c.log.TraceFromContext(ctx).Function("Search")

	if err := c.policy.AuthorizePrincipal(caller, services.PermGamesRead); err != nil {
		return nil, err
	}

	filter, err := req.Filter()
	if err != nil {
		log.Warn("Invalid search criteria", "error", err)
		return nil, err
	}

	return c.catalog.SearchGames(filter), nil
}

func (c *GamesController) QuickSearch(
	ctx context.Context,
	caller services.Principal,
	query string,
) ([]*Game, error) {
	if err := c.policy.AuthorizePrincipal(caller, services.PermGamesRead); err != nil {
		return nil, err
	}
	return c.catalog.QuickSearch(query), nil
}

func (c *GamesController) Get(ctx context.Context, caller services.Principal, gameID int) (*Game, error) {
	if err := c.policy.AuthorizePrincipal(caller, services.PermGamesRead); err != nil {
		return nil, err
	}
	return c.catalog.Game(gameID)
}

func (c *GamesController) OnSale(ctx context.Context, caller services.Principal) ([]*Game, error) {
	if err := c.policy.AuthorizePrincipal(caller, services.PermGamesRead); err != nil {
		return nil, err
	}
	return c.catalog.GamesOnSale(), nil
}

func (c *GamesController) Reviews(
	ctx context.Context,
	caller services.Principal,
	gameID int,
) ([]Review, error) {
	game, err := c.Get(ctx, caller, gameID)
	if err != nil {
		return nil, err
	}
	return game.Reviews, nil
}

// Create adds a game to the catalog. Developers always publish under their own name;
// managers and administrators name the developer explicitly.
func (c *GamesController) Create(
	ctx context.Context,
	caller services.Principal,
	req CreateGameRequest,
) (*Game, error) {
	log := c.log.TraceFromContext(ctx).Function("Create")

	if err := c.policy.AuthorizePrincipal(caller, services.PermGamesCreate); err != nil {
		return nil, err
	}

	price, err := parsePrice(req.Price)
	if err != nil {
		return nil, err
	}

	rating, err := ParseGameRating(req.Rating)
	if err != nil {
		return nil, err
	}

	developer := strings.TrimSpace(req.Developer)
	if caller.Role == UserRoleDeveloper || developer == "" {
		developer = caller.Username
	}

	title, cleaned := utils.CleanUTF8(strings.TrimSpace(req.Title))
	if cleaned {
		log.Warn("Title contained invalid characters", "title", title)
	}
	description, _ := utils.CleanUTF8(req.Description)

	return c.catalog.CreateGame(title, description, price, req.Genre, rating, developer)
}

// UpdatePrice changes a game's list price. A developer may only reprice their own games.
func (c *GamesController) UpdatePrice(
	ctx context.Context,
	caller services.Principal,
	gameID int,
	req UpdatePriceRequest,
) (*Game, error) {
	log := c.log.TraceFromContext(ctx).Function("UpdatePrice")

	if err := c.policy.AuthorizePrincipal(caller, services.PermGamesPrice); err != nil {
		return nil, err
	}

	price, err := parsePrice(req.Price)
	if err != nil {
		return nil, err
	}

	if caller.Role == UserRoleDeveloper {
		game, err := c.catalog.Game(gameID)
		if err != nil {
			return nil, err
		}
		if game.Developer != caller.Username {
			log.Warn("Developer attempted to reprice another developer's game",
				"gameID", gameID, "developer", caller.Username)
			return nil, fmt.Errorf("%w: %s does not develop %q", ErrPermissionDenied, caller.Username, game.Title)
		}
	}

	return c.catalog.UpdateGamePrice(gameID, price)
}

// Filter converts the raw criteria into a catalog filter.
func (r SearchRequest) Filter() (GameFilter, error) {
	filter := GameFilter{
		Title: r.Title,
		Genre: r.Genre,
	}

	if r.MinPrice != "" {
		minPrice, err := parsePrice(r.MinPrice)
		if err != nil {
			return GameFilter{}, err
		}
		filter.MinPrice = &minPrice
	}
	if r.MaxPrice != "" {
		maxPrice, err := parsePrice(r.MaxPrice)
		if err != nil {
			return GameFilter{}, err
		}
		filter.MaxPrice = &maxPrice
	}

	if r.Rating != "" {
		rating, err := ParseGameRating(r.Rating)
		if err != nil {
			return GameFilter{}, err
		}
		filter.Rating = &rating
	}

	if r.After != "" {
		after, err := utils.ParseDate(r.After)
		if err != nil {
			return GameFilter{}, err
		}
		filter.ReleasedAfter = &after
	}
	if r.Before != "" {
		before, err := utils.ParseDate(r.Before)
		if err != nil {
			return GameFilter{}, err
		}
		filter.ReleasedBefore = &before
	}

	if filter.ReleasedAfter != nil && filter.ReleasedBefore != nil &&
		filter.ReleasedBefore.Before(*filter.ReleasedAfter) {
		return GameFilter{}, fmt.Errorf(
			"%w: release window ends before it starts (%s > %s)",
			ErrInvalidArgument,
			filter.ReleasedAfter.Format(time.DateOnly),
			filter.ReleasedBefore.Format(time.DateOnly),
		)
	}

	return filter, nil
}

func parsePrice(value string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: invalid price %q", ErrInvalidArgument, value)
	}
	if price.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: price cannot be negative", ErrInvalidArgument)
	}
	return price, nil
}
