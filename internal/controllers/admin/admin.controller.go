package adminController

import (
	"context"
	"fmt"
	"strings"

	. "gamestore/internal/models"
	"gamestore/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/shopspring/decimal"
)

type AdminController struct {
	catalog *services.CatalogService
	policy  *services.PolicyService
	log     logger.Logger
}

type AdminControllerInterface interface {
	Catalog(ctx context.Context, caller services.Principal) ([]*Game, error)
	AddToCatalog(ctx context.Context, caller services.Principal, gameID int) ([]*Game, error)
	RemoveFromCatalog(ctx context.Context, caller services.Principal, gameID int) (bool, error)
	WeeklySale(
		ctx context.Context,
		caller services.Principal,
		gameID int,
		req WeeklySaleRequest,
	) (*WeeklySaleResponse, error)
	EndSales(ctx context.Context, caller services.Principal) (int, error)
}

type WeeklySaleRequest struct {
	Percent string `json:"percent"`
}

type WeeklySaleResponse struct {
	Applied bool  `json:"applied"`
	Game    *Game `json:"game,omitempty"`
}

func New(service services.Service) AdminControllerInterface {
	return &AdminController{
		catalog: service.Catalog,
		policy:  service.Policy,
		log:     logger.New("adminController"),
	}
}

func (c *AdminController) Catalog(ctx context.Context, caller services.Principal) ([]*Game, error) {
	if err := c.policy.AuthorizeAdministrator(caller, services.PermCatalogWrite); err != nil {
		return nil, err
	}
	return c.catalog.AdministratorCatalog(caller.ID)
}

// AddToCatalog puts a game in the caller's managed index and returns the updated index.
func (c *AdminController) AddToCatalog(
	ctx context.Context,
	caller services.Principal,
	gameID int,
) ([]*Game, error) {
	if err := c.policy.AuthorizeAdministrator(caller, services.PermCatalogWrite); err != nil {
		return nil, err
	}
	if err := c.catalog.AddToAdministratorCatalog(caller.ID, gameID); err != nil {
		return nil, err
	}
	return c.catalog.AdministratorCatalog(caller.ID)
}

func (c *AdminController) RemoveFromCatalog(
	ctx context.Context,
	caller services.Principal,
	gameID int,
) (bool, error) {
	if err := c.policy.AuthorizeAdministrator(caller, services.PermCatalogWrite); err != nil {
		return false, err
	}
	return c.catalog.RemoveFromAdministratorCatalog(caller.ID, gameID)
}

// WeeklySale discounts a game in the caller's index by a percentage of its current price.
func (c *AdminController) WeeklySale(
	ctx context.Context,
	caller services.Principal,
	gameID int,
	req WeeklySaleRequest,
) (*WeeklySaleResponse, error) {
	log := c.log.TraceFromContext(ctx).Function("WeeklySale")

	if err := c.policy.AuthorizeAdministrator(caller, services.PermSalesWrite); err != nil {
		return nil, err
	}

	percent, err := decimal.NewFromString(strings.TrimSuffix(strings.TrimSpace(req.Percent), "%"))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid discount %q", ErrInvalidArgument, req.Percent)
	}
	if percent.IsNegative() {
		return nil, fmt.Errorf("%w: discount cannot be negative", ErrInvalidArgument)
	}

	applied, err := c.catalog.SetWeeklySale(caller.ID, gameID, percent)
	if err != nil {
		return nil, err
	}

	response := &WeeklySaleResponse{Applied: applied}
	if !applied {
		log.Info("Game outside administrator index, sale not applied", "adminID", caller.ID, "gameID", gameID)
		return response, nil
	}

	response.Game, err = c.catalog.Game(gameID)
	if err != nil {
		return nil, err
	}
	return response, nil
}

func (c *AdminController) EndSales(ctx context.Context, caller services.Principal) (int, error) {
	log := c.log.TraceFromContext(ctx).Function("EndSales")

	if err := c.policy.AuthorizeAdministrator(caller, services.PermSalesWrite); err != nil {
		return 0, err
	}

	restored := c.catalog.EndSales()
	log.Info("Sales ended by administrator", "adminID", caller.ID, "restored", restored)
	return restored, nil
}
