package services

import (
	"fmt"
	"math/rand"

	. "gamestore/internal/models"
	"gamestore/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/shopspring/decimal"
)

const (
	SeedPassword       = "password"
	SeedGameCount      = 10
	SeedSaleGameCount  = 3
	SeedSaleDiscount   = 25
	seedBasePrice      = "19.99"
	seedEmailDomain    = "example.com"
	seedDeveloperOne   = "developer1"
	seedDeveloperTwo   = "developer2"
	seedAdministrator1 = "admin1"
)

var seedUsers = []struct {
	username string
	role     UserRole
}{
	{username: "customer1", role: UserRoleCustomer},
	{username: "customer2", role: UserRoleCustomer},
	{username: seedDeveloperOne, role: UserRoleDeveloper},
	{username: seedDeveloperTwo, role: UserRoleDeveloper},
	{username: "manager1", role: UserRoleManager},
	{username: "manager2", role: UserRoleManager},
}

var seedAdministrators = []string{seedAdministrator1, "admin2"}

var seedPosts = []struct {
	author  string
	content string
}{
	{author: "customer1", content: "This game is awesome!"},
	{author: "customer2", content: "Anyone want to play?"},
	{author: "user3", content: "sigma"},
}

// SeedService loads the default storefront data.
type SeedService struct {
	catalog     *CatalogService
	repos       repositories.Repository
	transaction *TransactionService
	random      *rand.Rand
	log         logger.Logger
}

// NewSeedService picks seeded developers from a rand source seeded with randomSeed, so a
// given seed always yields the same catalog.
func NewSeedService(
	catalog *CatalogService,
	repos repositories.Repository,
	transaction *TransactionService,
	randomSeed int64,
) *SeedService {
	return &SeedService{
		catalog:     catalog,
		repos:       repos,
		transaction: transaction,
		random:      rand.New(rand.NewSource(randomSeed)),
		log:         logger.New("seedService"),
	}
}

// Seed is a no-op when the store already holds users.
func (s *SeedService) Seed() error {
	log := s.log.Function("Seed")

	if len(s.catalog.Users()) > 0 {
		log.Info("Store already seeded, skipping")
		return nil
	}

	for _, seed := range seedUsers {
		email := fmt.Sprintf("%s@%s", seed.username, seedEmailDomain)
		if _, err := s.catalog.RegisterUser(seed.username, email, SeedPassword, seed.role); err != nil {
			return log.Err("failed to seed user", err, "username", seed.username)
		}
	}

	for _, username := range seedAdministrators {
		if _, err := s.catalog.RegisterAdministrator(username, SeedPassword); err != nil {
			return log.Err("failed to seed administrator", err, "username", username)
		}
	}

	gameIDs := make([]int, 0, SeedGameCount)
	basePrice := decimal.RequireFromString(seedBasePrice)
	for i := 1; i <= SeedGameCount; i++ {
		game, err := s.catalog.CreateGame(
			fmt.Sprintf("Game %d", i),
			fmt.Sprintf("Description %d", i),
			basePrice.Add(decimal.NewFromInt(int64(i))),
			fmt.Sprintf("Genre %d", i),
			GameRatings[i%len(GameRatings)],
			s.randomDeveloper(),
		)
		if err != nil {
			return log.Err("failed to seed game", err, "index", i)
		}
		gameIDs = append(gameIDs, game.ID)

		if i%2 == 0 {
			if err := s.seedReviews(game.ID, i/2); err != nil {
				return log.Err("failed to seed reviews", err, "gameID", game.ID)
			}
		}
	}

	for _, seed := range seedPosts {
		if _, err := s.catalog.CreatePost(seed.author, seed.content); err != nil {
			return log.Err("failed to seed post", err, "author", seed.author)
		}
	}

	admin, err := s.catalog.AdministratorByUsername(seedAdministrator1)
	if err != nil {
		return log.Err("failed to find seeded administrator", err)
	}
	discount := decimal.NewFromInt(SeedSaleDiscount)
	for _, gameID := range gameIDs[:SeedSaleGameCount] {
		if err := s.catalog.AddToAdministratorCatalog(admin.ID, gameID); err != nil {
			return log.Err("failed to seed administrator catalog", err, "gameID", gameID)
		}
		if _, err := s.catalog.SetWeeklySale(admin.ID, gameID, discount); err != nil {
			return log.Err("failed to seed weekly sale", err, "gameID", gameID)
		}
	}

	log.Info(
		"Store seeded",
		"users", len(seedUsers),
		"administrators", len(seedAdministrators),
		"games", SeedGameCount,
		"posts", len(seedPosts),
	)
	return nil
}

func (s *SeedService) randomDeveloper() string {
	if s.random.Intn(2) == 0 {
		return seedDeveloperOne
	}
	return seedDeveloperTwo
}

// seedReviews adds anonymous reviews "Review 1".."Review n" with stars cycling 2,3,4,5,1.
func (s *SeedService) seedReviews(gameID, count int) error {
	return s.transaction.Execute(func() error {
		game, err := s.repos.Game.GetByID(gameID)
		if err != nil {
			return err
		}
		for j := 1; j <= count; j++ {
			if err := game.AddReview(fmt.Sprintf("Review %d", j), j%MaxStars+1); err != nil {
				return err
			}
		}
		return nil
	})
}
