package services

import (
	"testing"

	"gamestore/internal/database"
	. "gamestore/internal/models"
	"gamestore/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeededCatalog(t *testing.T, randomSeed int64) *CatalogService {
	t.Helper()
	db := database.NewInMemory()
	repos := repositories.New(db)
	transaction := NewTransactionService(db)
	catalog := NewCatalogService(repos, transaction, nil)
	require.NoError(t, NewSeedService(catalog, repos, transaction, randomSeed).Seed())
	return catalog
}

func TestSeedService_Users(t *testing.T) {
	catalog := newSeededCatalog(t, 1)

	users := catalog.Users()
	require.Len(t, users, 6)
	usernames := []string{}
	for _, user := range users {
		usernames = append(usernames, user.Username)
		assert.Equal(t, user.Username+"@example.com", user.Email)
	}
	assert.Equal(t, []string{
		"customer1", "customer2", "developer1", "developer2", "manager1", "manager2",
	}, usernames)

	manager, err := catalog.Authenticate("manager2", SeedPassword)
	require.NoError(t, err)
	assert.Equal(t, UserRoleManager, manager.Role)

	assert.Len(t, catalog.Administrators(), 2)
}

func TestSeedService_Games(t *testing.T) {
	catalog := newSeededCatalog(t, 1)

	games := catalog.Games()
	require.Len(t, games, SeedGameCount)

	for i, game := range games {
		n := i + 1
		t.Run(game.Title, func(t *testing.T) {
			assert.Equal(t, n, game.ID)
			assert.Equal(t, GameRatings[n%5], game.Rating)
			assert.Contains(t, []string{"developer1", "developer2"}, game.Developer)
			if n%2 == 0 {
				assert.Equal(t, n/2, game.ReviewCount())
			} else {
				assert.Equal(t, 0, game.ReviewCount())
			}
		})
	}

	game4, err := catalog.GameByTitle("Game 4")
	require.NoError(t, err)
	assert.Equal(t, "23.99", game4.Price.String())
	assert.Equal(t, "Review 1", game4.Reviews[0].Text)
	assert.Equal(t, 2, game4.Reviews[0].Stars)
	assert.InDelta(t, 2.5, game4.AverageRating, 1e-9)
}

func TestSeedService_SearchByTitlePrefix(t *testing.T) {
	catalog := newSeededCatalog(t, 1)

	results := catalog.SearchGames(GameFilter{Title: "Game 1"})

	require.Len(t, results, 2)
	assert.Equal(t, "Game 1", results[0].Title)
	assert.Equal(t, "Game 10", results[1].Title)
}

func TestSeedService_SalesAndPosts(t *testing.T) {
	catalog := newSeededCatalog(t, 1)

	onSale := catalog.GamesOnSale()
	require.Len(t, onSale, SeedSaleGameCount)
	assert.Equal(t, "Game 1", onSale[0].Title)
	assert.True(t, price("15.7425").Equal(onSale[0].Price))
	assert.Equal(t, "20.99", onSale[0].ListPrice.String())

	admin, err := catalog.AdministratorByUsername("admin1")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, admin.Catalog)

	posts := catalog.Posts()
	require.Len(t, posts, 3)
	assert.Equal(t, "user3", posts[2].AuthorID)
	assert.Equal(t, "sigma", posts[2].Content)
}

func TestSeedService_DeterministicDevelopers(t *testing.T) {
	first := newSeededCatalog(t, 7)
	second := newSeededCatalog(t, 7)

	for i, game := range first.Games() {
		assert.Equal(t, game.Developer, second.Games()[i].Developer)
	}
}

func TestSeedService_SeedTwiceIsNoop(t *testing.T) {
	db := database.NewInMemory()
	repos := repositories.New(db)
	transaction := NewTransactionService(db)
	catalog := NewCatalogService(repos, transaction, nil)
	seed := NewSeedService(catalog, repos, transaction, 1)

	require.NoError(t, seed.Seed())
	require.NoError(t, seed.Seed())

	assert.Len(t, catalog.Games(), SeedGameCount)
}
