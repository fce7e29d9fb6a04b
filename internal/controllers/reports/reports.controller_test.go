package reportsController

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
	manager  = services.Principal{Kind: services.PrincipalUser, ID: 5, Username: "manager1", Role: UserRoleManager}
	customer = services.Principal{Kind: services.PrincipalUser, ID: 1, Username: "customer1", Role: UserRoleCustomer}
)

func newTestController(t *testing.T) (ReportsControllerInterface, services.Service) {
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

func TestReportsController_SalesReport(t *testing.T) {
	controller, service := newTestController(t)
	ctx := context.Background()

	empty, err := controller.SalesReport(ctx, manager)
	require.NoError(t, err)
	assert.Empty(t, empty.Developers)
	assert.True(t, empty.Revenue.IsZero())

	for _, purchase := range []struct{ userID, gameID int }{{1, 4}, {2, 4}, {1, 6}} {
		_, err := service.Catalog.PurchaseGame(purchase.userID, purchase.gameID)
		require.NoError(t, err)
	}

	report, err := controller.SalesReport(ctx, manager)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Units)
	assert.Equal(t, "73.97", report.Revenue.String())

	units := 0
	for _, sales := range report.Developers {
		assert.Contains(t, []string{"developer1", "developer2"}, sales.Developer)
		units += sales.Units
	}
	assert.Equal(t, 3, units)
}

func TestReportsController_Access(t *testing.T) {
	controller, _ := newTestController(t)
	ctx := context.Background()

	_, err := controller.SalesReport(ctx, customer)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = controller.Users(ctx, services.Principal{})
	assert.ErrorIs(t, err, ErrUnauthenticated)

	users, err := controller.Users(ctx, manager)
	require.NoError(t, err)
	assert.Len(t, users, 6)
}
