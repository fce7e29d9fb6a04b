package libraryController

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
	customer = services.Principal{Kind: services.PrincipalUser, ID: 1, Username: "customer1", Role: UserRoleCustomer}
	admin    = services.Principal{Kind: services.PrincipalAdmin, ID: 1, Username: "admin1", Role: UserRoleAdministrator}
)

func newTestController(t *testing.T) LibraryControllerInterface {
	t.Helper()
	service, err := services.New(
		database.NewInMemory(),
		config.Config{SessionSecret: "test-secret", SessionTTLMinutes: 60, SeedRandom: 1},
		nil,
	)
	require.NoError(t, err)
	require.NoError(t, service.Seed.Seed())
	return New(service)
}

func ids(games []*Game) []int {
	result := make([]int, 0, len(games))
	for _, game := range games {
		result = append(result, game.ID)
	}
	return result
}

func TestLibraryController_WishlistThenPurchase(t *testing.T) {
	controller := newTestController(t)
	ctx := context.Background()

	added, err := controller.AddToWishlist(ctx, customer, 4)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = controller.AddToWishlist(ctx, customer, 4)
	require.NoError(t, err)
	assert.False(t, added, "duplicate wishlist entries are ignored")

	wishlist, err := controller.Wishlist(ctx, customer)
	require.NoError(t, err)
	assert.Equal(t, []int{4}, ids(wishlist))

	purchase, err := controller.Purchase(ctx, customer, 4)
	require.NoError(t, err)
	assert.Equal(t, "23.99", purchase.Price.String())

	library, err := controller.Library(ctx, customer)
	require.NoError(t, err)
	assert.Equal(t, []int{4}, ids(library))

	wishlist, err = controller.Wishlist(ctx, customer)
	require.NoError(t, err)
	assert.Empty(t, wishlist)

	_, err = controller.Purchase(ctx, customer, 4)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = controller.Purchase(ctx, customer, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLibraryController_SalePriceAtPurchase(t *testing.T) {
	controller := newTestController(t)

	purchase, err := controller.Purchase(context.Background(), customer, 1)

	require.NoError(t, err)
	assert.Equal(t, "15.7425", purchase.Price.String())
}

func TestLibraryController_RemoveFromWishlist(t *testing.T) {
	controller := newTestController(t)
	ctx := context.Background()

	removed, err := controller.RemoveFromWishlist(ctx, customer, 3)
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = controller.AddToWishlist(ctx, customer, 3)
	require.NoError(t, err)
	removed, err = controller.RemoveFromWishlist(ctx, customer, 3)
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestLibraryController_Launch(t *testing.T) {
	controller := newTestController(t)
	ctx := context.Background()

	result, err := controller.Launch(ctx, customer, 2)
	require.NoError(t, err)
	assert.Equal(t, services.GameNotInstalled, result)

	_, err = controller.Purchase(ctx, customer, 2)
	require.NoError(t, err)

	result, err = controller.Launch(ctx, customer, 2)
	require.NoError(t, err)
	assert.Equal(t, services.GameStarted, result)
}

func TestLibraryController_Review(t *testing.T) {
	controller := newTestController(t)
	ctx := context.Background()

	_, err := controller.Review(ctx, customer, 3, ReviewRequest{Text: "Great", Stars: 5})
	assert.ErrorIs(t, err, ErrPermissionDenied, "unowned games cannot be reviewed")

	_, err = controller.Purchase(ctx, customer, 3)
	require.NoError(t, err)

	_, err = controller.Review(ctx, customer, 3, ReviewRequest{Text: "Too many", Stars: 6})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	game, err := controller.Review(ctx, customer, 3, ReviewRequest{Text: "Great\x00", Stars: 5})
	require.NoError(t, err)
	require.Len(t, game.Reviews, 1)
	assert.Equal(t, "Great", game.Reviews[0].Text)
	assert.InDelta(t, 5.0, game.AverageRating, 1e-9)
}

func TestLibraryController_RequiresUserAccount(t *testing.T) {
	controller := newTestController(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		caller    services.Principal
		expectErr error
	}{
		{name: "Guest", caller: services.Principal{}, expectErr: ErrUnauthenticated},
		{name: "Administrator", caller: admin, expectErr: ErrPermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := controller.Library(ctx, tt.caller)
			assert.ErrorIs(t, err, tt.expectErr)

			_, err = controller.Purchase(ctx, tt.caller, 1)
			assert.ErrorIs(t, err, tt.expectErr)
		})
	}
}
