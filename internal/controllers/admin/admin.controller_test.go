package adminController

import (
	"context"
	"testing"

	"gamestore/config"
	"gamestore/internal/database"
	. "gamestore/internal/models"
	"gamestore/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin1   = services.Principal{Kind: services.PrincipalAdmin, ID: 1, Username: "admin1", Role: UserRoleAdministrator}
	admin2   = services.Principal{Kind: services.PrincipalAdmin, ID: 2, Username: "admin2", Role: UserRoleAdministrator}
	trusted  = services.Principal{Kind: services.PrincipalUser, ID: 7, Username: "trusted", Role: UserRoleAdministrator}
	customer = services.Principal{Kind: services.PrincipalUser, ID: 1, Username: "customer1", Role: UserRoleCustomer}
)

func newTestController(t *testing.T) (AdminControllerInterface, services.Service) {
	t.Helper()
	service, err := services.New(
		database.NewInMemory(),
		config.Config{SessionSecret: "test-secret", SessionTTLMinutes: 60, SeedRandom: 1},
		nil,
	)
	require.NoError(t, err)
	require.NoError(t, service.Seed.Seed())
	return New(service), service
}

func ids(games []*Game) []int {
	result := make([]int, 0, len(games))
	for _, game := range games {
		result = append(result, game.ID)
	}
	return result
}

func TestAdminController_Catalog(t *testing.T) {
	controller, _ := newTestController(t)
	ctx := context.Background()

	games, err := controller.Catalog(ctx, admin1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, ids(games))

	games, err = controller.AddToCatalog(ctx, admin2, 7)
	require.NoError(t, err)
	assert.Equal(t, []int{7}, ids(games))

	games, err = controller.AddToCatalog(ctx, admin2, 7)
	require.NoError(t, err)
	assert.Equal(t, []int{7}, ids(games), "adding twice keeps one entry")

	_, err = controller.AddToCatalog(ctx, admin2, 77)
	assert.ErrorIs(t, err, ErrNotFound)

	removed, err := controller.RemoveFromCatalog(ctx, admin2, 9)
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = controller.RemoveFromCatalog(ctx, admin2, 7)
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestAdminController_WeeklySale(t *testing.T) {
	controller, service := newTestController(t)
	ctx := context.Background()

	_, err := controller.AddToCatalog(ctx, admin2, 9)
	require.NoError(t, err)

	tests := []struct {
		name          string
		caller        services.Principal
		gameID        int
		percent       string
		expectApplied bool
		expectPrice   string
		expectErr     error
	}{
		{name: "Managed game", caller: admin2, gameID: 9, percent: "10%", expectApplied: true, expectPrice: "26.091"},
		{name: "Outside index", caller: admin2, gameID: 8, percent: "10"},
		{name: "Over one hundred percent", caller: admin1, gameID: 1, percent: "150", expectErr: ErrInvalidArgument},
		{name: "Not a number", caller: admin1, gameID: 1, percent: "lots", expectErr: ErrInvalidArgument},
		{name: "Negative discount", caller: admin1, gameID: 1, percent: "-5", expectErr: ErrInvalidArgument},
		{name: "Customer refused", caller: customer, gameID: 1, percent: "10", expectErr: ErrPermissionDenied},
		{name: "Administrator-role user is not an administrator", caller: trusted, gameID: 1, percent: "10", expectErr: ErrPermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response, err := controller.WeeklySale(ctx, tt.caller, tt.gameID, WeeklySaleRequest{Percent: tt.percent})
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectApplied, response.Applied)
			if tt.expectApplied {
				assert.Equal(t, tt.expectPrice, response.Game.Price.String())
			} else {
				assert.Nil(t, response.Game)
			}
		})
	}

	game, err := service.Catalog.Game(8)
	require.NoError(t, err)
	assert.False(t, game.OnSale())
}

func TestAdminController_EndSales(t *testing.T) {
	controller, service := newTestController(t)
	ctx := context.Background()

	_, err := controller.EndSales(ctx, customer)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	restored, err := controller.EndSales(ctx, admin1)
	require.NoError(t, err)
	assert.Equal(t, 3, restored)
	assert.Empty(t, service.Catalog.GamesOnSale())
}
