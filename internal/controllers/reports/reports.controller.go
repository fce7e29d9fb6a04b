package reportsController

import (
	"context"

	. "gamestore/internal/models"
	"gamestore/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/shopspring/decimal"
)

type ReportsController struct {
	catalog *services.CatalogService
	policy  *services.PolicyService
	log     logger.Logger
}

type ReportsControllerInterface interface {
	SalesReport(ctx context.Context, caller services.Principal) (*SalesReportResponse, error)
	Users(ctx context.Context, caller services.Principal) ([]*User, error)
}

type SalesReportResponse struct {
	Developers []DeveloperSales `json:"developers"`
	Units      int              `json:"units"`
	Revenue    decimal.Decimal  `json:"revenue"`
}

func New(service services.Service) ReportsControllerInterface {
	return &ReportsController{
		catalog: service.Catalog,
		policy:  service.Policy,
		log:     logger.New("reportsController"),
	}
}

// SalesReport totals purchases per developer, plus store-wide totals.
func (c *ReportsController) SalesReport(
	ctx context.Context,
	caller services.Principal,
) (*SalesReportResponse, error) {
	log := c.log.TraceFromContext(ctx).Function("SalesReport")

	if err := c.policy.AuthorizePrincipal(caller, services.PermReportsRead); err != nil {
		return nil, err
	}

	response := &SalesReportResponse{
		Developers: c.catalog.SalesReport(),
		Revenue:    decimal.Zero,
	}
	for _, sales := range response.Developers {
		response.Units += sales.Units
		response.Revenue = response.Revenue.Add(sales.Revenue)
	}

	log.Debug("Sales report built", "developers", len(response.Developers), "units", response.Units)
	return response, nil
}

func (c *ReportsController) Users(ctx context.Context, caller services.Principal) ([]*User, error) {
	if err := c.policy.AuthorizePrincipal(caller, services.PermUsersRead); err != nil {
		return nil, err
	}
	return c.catalog.Users(), nil
}
