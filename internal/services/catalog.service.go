package services

import (
	"errors"
	"fmt"

	"gamestore/internal/events"
	. "gamestore/internal/models"
	"gamestore/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/shopspring/decimal"
)

type LaunchResult string

const (
	GameNotInstalled LaunchResult = "Game not installed"
	GameStarted      LaunchResult = "Game started successfully"
)

// Publisher receives catalog and community events after the change is committed.
type Publisher interface {
	Publish(channel events.Channel, event events.Event) error
}

// CatalogService is the storefront core. Every operation runs inside the store lock and
// returns copies, so callers never hold a reference into the store.
type CatalogService struct {
	repos       repositories.Repository
	transaction *TransactionService
	publisher   Publisher
	log         logger.Logger
}

func NewCatalogService(
	repos repositories.Repository,
	transaction *TransactionService,
	publisher Publisher,
) *CatalogService {
	return &CatalogService{
		repos:       repos,
		transaction: transaction,
		publisher:   publisher,
		log:         logger.New("catalogService"),
	}
}

func (s *CatalogService) RegisterUser(
	username, email, password string,
	role UserRole,
) (*User, error) {
	log := s.log.Function("RegisterUser")

	var registered *User
	err := s.transaction.Execute(func() error {
		if _, err := s.repos.User.GetByUsername(username); err == nil {
			return fmt.Errorf("%w: username %q is taken", ErrConflict, username)
		}

		user, err := NewUser(s.repos.User.NextID(), username, email, password, role)
		if err != nil {
			return err
		}
		if err := s.repos.User.Create(user); err != nil {
			return err
		}

		registered = user.Clone()
		return nil
	})
	if err != nil {
		return nil, s.fail(log, "failed to register user", err, "username", username)
	}

	log.Info("User registered", "userID", registered.ID, "role", registered.Role)
	return registered, nil
}

func (s *CatalogService) RegisterAdministrator(username, password string) (*Administrator, error) {
	log := s.log.Function("RegisterAdministrator")

	var registered *Administrator
	err := s.transaction.Execute(func() error {
		if _, err := s.repos.Administrator.GetByUsername(username); err == nil {
			return fmt.Errorf("%w: administrator %q is taken", ErrConflict, username)
		}

		admin, err := NewAdministrator(s.repos.Administrator.NextID(), username, password)
		if err != nil {
			return err
		}
		if err := s.repos.Administrator.Create(admin); err != nil {
			return err
		}

		registered = admin.Clone()
		return nil
	})
	if err != nil {
		return nil, s.fail(log, "failed to register administrator", err, "username", username)
	}

	return registered, nil
}

func (s *CatalogService) Authenticate(username, password string) (*User, error) {
	var authenticated *User
	err := s.transaction.Query(func() error {
		user, err := s.repos.User.GetByUsername(username)
		if err != nil || !user.Login(password) {
			return fmt.Errorf("%w: invalid username or password", ErrUnauthenticated)
		}
		authenticated = user.Clone()
		return nil
	})
	if err != nil {
		return nil, s.fail(s.log.Function("Authenticate"), "login rejected", err, "username", username)
	}
	return authenticated, nil
}

func (s *CatalogService) AuthenticateAdministrator(username, password string) (*Administrator, error) {
	var authenticated *Administrator
	err := s.transaction.Query(func() error {
		admin, err := s.repos.Administrator.GetByUsername(username)
		if err != nil || !admin.Login(password) {
			return fmt.Errorf("%w: invalid username or password", ErrUnauthenticated)
		}
		authenticated = admin.Clone()
		return nil
	})
	if err != nil {
		return nil, s.fail(
			s.log.Function("AuthenticateAdministrator"),
			"administrator login rejected",
			err,
			"username",
			username,
		)
	}
	return authenticated, nil
}

func (s *CatalogService) CreateGame(
	title, description string,
	price decimal.Decimal,
	genre string,
	rating GameRating,
	developer string,
) (*Game, error) {
	log := s.log.Function("CreateGame")

	var created *Game
	err := s.transaction.Execute(func() error {
		game, err := NewGame(
			s.repos.Game.NextID(),
			title,
			description,
			price,
			genre,
			rating,
			developer,
		)
		if err != nil {
			return err
		}
		if err := s.repos.Game.Create(game); err != nil {
			return err
		}

		created = game.Clone()
		return nil
	})
	if err != nil {
		return nil, s.fail(log, "failed to create game", err, "title", title)
	}

	log.Info("Game created", "gameID", created.ID, "title", created.Title)
	s.publish(events.CATALOG_CHANNEL, events.GAME_CREATED, nil, gameEventData(created))
	return created, nil
}

// SearchGames returns, in catalog order, the games matching every supplied criterion.
func (s *CatalogService) SearchGames(filter GameFilter) []*Game {
	var results []*Game
	_ = s.transaction.Query(func() error {
		results = cloneGames(s.repos.Game.Search(filter))
		return nil
	})
	return results
}

// QuickSearch matches the query against title or genre.
func (s *CatalogService) QuickSearch(query string) []*Game {
	var results []*Game
	_ = s.transaction.Query(func() error {
		results = cloneGames(s.repos.Game.SearchText(query))
		return nil
	})
	return results
}

func (s *CatalogService) Game(id int) (*Game, error) {
	var found *Game
	err := s.transaction.Query(func() error {
		game, err := s.repos.Game.GetByID(id)
		if err != nil {
			return err
		}
		found = game.Clone()
		return nil
	})
	return found, err
}

func (s *CatalogService) GameByTitle(title string) (*Game, error) {
	var found *Game
	err := s.transaction.Query(func() error {
		game, err := s.repos.Game.GetByTitle(title)
		if err != nil {
			return err
		}
		found = game.Clone()
		return nil
	})
	return found, err
}

func (s *CatalogService) Games() []*Game {
	var games []*Game
	_ = s.transaction.Query(func() error {
		games = cloneGames(s.repos.Game.GetAll())
		return nil
	})
	return games
}

func (s *CatalogService) User(id int) (*User, error) {
	var found *User
	err := s.transaction.Query(func() error {
		user, err := s.repos.User.GetByID(id)
		if err != nil {
			return err
		}
		found = user.Clone()
		return nil
	})
	return found, err
}

func (s *CatalogService) UserByUsername(username string) (*User, error) {
	var found *User
	err := s.transaction.Query(func() error {
		user, err := s.repos.User.GetByUsername(username)
		if err != nil {
			return err
		}
		found = user.Clone()
		return nil
	})
	return found, err
}

func (s *CatalogService) Users() []*User {
	var users []*User
	_ = s.transaction.Query(func() error {
		all := s.repos.User.GetAll()
		users = make([]*User, 0, len(all))
		for _, user := range all {
			users = append(users, user.Clone())
		}
		return nil
	})
	return users
}

func (s *CatalogService) Administrator(id int) (*Administrator, error) {
	var found *Administrator
	err := s.transaction.Query(func() error {
		admin, err := s.repos.Administrator.GetByID(id)
		if err != nil {
			return err
		}
		found = admin.Clone()
		return nil
	})
	return found, err
}

func (s *CatalogService) AdministratorByUsername(username string) (*Administrator, error) {
	var found *Administrator
	err := s.transaction.Query(func() error {
		admin, err := s.repos.Administrator.GetByUsername(username)
		if err != nil {
			return err
		}
		found = admin.Clone()
		return nil
	})
	return found, err
}

func (s *CatalogService) Administrators() []*Administrator {
	var admins []*Administrator
	_ = s.transaction.Query(func() error {
		all := s.repos.Administrator.GetAll()
		admins = make([]*Administrator, 0, len(all))
		for _, admin := range all {
			admins = append(admins, admin.Clone())
		}
		return nil
	})
	return admins
}

// AddToWishlist reports false when the game was already on the wishlist.
func (s *CatalogService) AddToWishlist(userID, gameID int) (bool, error) {
	var added bool
	err := s.transaction.Execute(func() error {
		user, game, err := s.userAndGame(userID, gameID)
		if err != nil {
			return err
		}
		added = user.AddToWishlist(game.ID)
		return nil
	})
	if err != nil {
		return false, s.fail(s.log.Function("AddToWishlist"), "failed to add to wishlist", err,
			"userID", userID, "gameID", gameID)
	}
	return added, nil
}

// RemoveFromWishlist is a silent no-op for games not on the wishlist.
func (s *CatalogService) RemoveFromWishlist(userID, gameID int) (bool, error) {
	var removed bool
	err := s.transaction.Execute(func() error {
		user, err := s.repos.User.GetByID(userID)
		if err != nil {
			return err
		}
		removed = user.RemoveFromWishlist(gameID)
		return nil
	})
	return removed, err
}

func (s *CatalogService) Library(userID int) ([]*Game, error) {
	var games []*Game
	err := s.transaction.Query(func() error {
		user, err := s.repos.User.GetByID(userID)
		if err != nil {
			return err
		}
		games = cloneGames(s.repos.Game.GetByIDs(user.Library))
		return nil
	})
	return games, err
}

func (s *CatalogService) Wishlist(userID int) ([]*Game, error) {
	var games []*Game
	err := s.transaction.Query(func() error {
		user, err := s.repos.User.GetByID(userID)
		if err != nil {
			return err
		}
		games = cloneGames(s.repos.Game.GetByIDs(user.Wishlist))
		return nil
	})
	return games, err
}

// PurchaseGame moves a game into the user's library at its current price and takes it
// off the wishlist.
func (s *CatalogService) PurchaseGame(userID, gameID int) (*Purchase, error) {
	log := s.log.Function("PurchaseGame")

	var recorded Purchase
	err := s.transaction.Execute(func() error {
		user, game, err := s.userAndGame(userID, gameID)
		if err != nil {
			return err
		}
		if user.OwnsGame(game.ID) {
			return fmt.Errorf("%w: %s already owns %q", ErrConflict, user.Username, game.Title)
		}

		purchase := NewPurchase(s.repos.Purchase.NextID(), user, game)
		if err := s.repos.Purchase.Create(purchase); err != nil {
			return err
		}
		user.AddToLibrary(game.ID)
		user.RemoveFromWishlist(game.ID)

		recorded = *purchase
		return nil
	})
	if err != nil {
		return nil, s.fail(log, "failed to purchase game", err, "userID", userID, "gameID", gameID)
	}

	log.Info("Game purchased", "userID", userID, "gameID", gameID, "price", recorded.Price.String())
	s.publish(events.CATALOG_CHANNEL, events.GAME_PURCHASED, &userID, map[string]any{
		"gameId":    recorded.GameID,
		"price":     recorded.Price.StringFixed(2),
		"developer": recorded.Developer,
	})
	return &recorded, nil
}

// ReviewGame is limited to games in the user's library.
func (s *CatalogService) ReviewGame(userID, gameID int, text string, stars int) (*Game, error) {
	log := s.log.Function("ReviewGame")

	var reviewed *Game
	err := s.transaction.Execute(func() error {
		user, game, err := s.userAndGame(userID, gameID)
		if err != nil {
			return err
		}
		if err := user.ReviewGame(game, text, stars); err != nil {
			return err
		}
		reviewed = game.Clone()
		return nil
	})
	if err != nil {
		return nil, s.fail(log, "failed to review game", err, "userID", userID, "gameID", gameID)
	}

	s.publish(events.CATALOG_CHANNEL, events.GAME_REVIEWED, &userID, map[string]any{
		"gameId":        reviewed.ID,
		"stars":         stars,
		"averageRating": reviewed.AverageRating,
	})
	return reviewed, nil
}

func (s *CatalogService) LaunchGame(userID, gameID int) (LaunchResult, error) {
	var result LaunchResult
	err := s.transaction.Query(func() error {
		user, game, err := s.userAndGame(userID, gameID)
		if err != nil {
			return err
		}
		if !user.OwnsGame(game.ID) {
			result = GameNotInstalled
			return nil
		}
		result = GameStarted
		return nil
	})
	return result, err
}

func (s *CatalogService) UpdateGamePrice(gameID int, price decimal.Decimal) (*Game, error) {
	log := s.log.Function("UpdateGamePrice")

	var updated *Game
	err := s.transaction.Execute(func() error {
		game, err := s.repos.Game.GetByID(gameID)
		if err != nil {
			return err
		}
		if err := game.Reprice(price); err != nil {
			return err
		}
		updated = game.Clone()
		return nil
	})
	if err != nil {
		return nil, s.fail(log, "failed to update price", err, "gameID", gameID)
	}

	s.publish(events.CATALOG_CHANNEL, events.GAME_PRICE_CHANGED, nil, gameEventData(updated))
	return updated, nil
}

func (s *CatalogService) AddToAdministratorCatalog(adminID, gameID int) error {
	err := s.transaction.Execute(func() error {
		admin, err := s.repos.Administrator.GetByID(adminID)
		if err != nil {
			return err
		}
		game, err := s.repos.Game.GetByID(gameID)
		if err != nil {
			return err
		}
		admin.AddGameToCatalog(game)
		return nil
	})
	if err != nil {
		return s.fail(s.log.Function("AddToAdministratorCatalog"), "failed to add to catalog", err,
			"adminID", adminID, "gameID", gameID)
	}
	return nil
}

// RemoveFromAdministratorCatalog is a silent no-op for games outside the index.
func (s *CatalogService) RemoveFromAdministratorCatalog(adminID, gameID int) (bool, error) {
	var removed bool
	err := s.transaction.Execute(func() error {
		admin, err := s.repos.Administrator.GetByID(adminID)
		if err != nil {
			return err
		}
		removed = admin.RemoveGameFromCatalog(gameID)
		return nil
	})
	return removed, err
}

func (s *CatalogService) AdministratorCatalog(adminID int) ([]*Game, error) {
	var games []*Game
	err := s.transaction.Query(func() error {
		admin, err := s.repos.Administrator.GetByID(adminID)
		if err != nil {
			return err
		}
		games = cloneGames(s.repos.Game.GetByIDs(admin.Catalog))
		return nil
	})
	return games, err
}

// SetWeeklySale discounts a game in the administrator's index. Games outside the index
// are left alone and reported as not applied.
func (s *CatalogService) SetWeeklySale(
	adminID, gameID int,
	discountPercent decimal.Decimal,
) (bool, error) {
	log := s.log.Function("SetWeeklySale")

	var applied bool
	var discounted *Game
	err := s.transaction.Execute(func() error {
		admin, err := s.repos.Administrator.GetByID(adminID)
		if err != nil {
			return err
		}
		if !admin.Manages(gameID) {
			return nil
		}

		game, err := s.repos.Game.GetByID(gameID)
		if err != nil {
			return err
		}
		applied, err = admin.SetWeeklySale(game, discountPercent)
		if err != nil {
			return err
		}
		if applied {
			discounted = game.Clone()
		}
		return nil
	})
	if err != nil {
		return false, s.fail(log, "failed to set weekly sale", err,
			"adminID", adminID, "gameID", gameID, "discount", discountPercent.String())
	}

	if applied {
		log.Info("Weekly sale applied", "gameID", gameID, "price", discounted.Price.String())
		s.publish(events.CATALOG_CHANNEL, events.GAME_PRICE_CHANGED, nil, gameEventData(discounted))
	}
	return applied, nil
}

// GamesOnSale lists games currently priced below their list price.
func (s *CatalogService) GamesOnSale() []*Game {
	var games []*Game
	_ = s.transaction.Query(func() error {
		games = cloneGames(s.repos.Game.GetAll())
		return nil
	})

	onSale := make([]*Game, 0, len(games))
	for _, game := range games {
		if game.OnSale() {
			onSale = append(onSale, game)
		}
	}
	return onSale
}

// EndSales puts every game back at its list price and reports how many changed.
func (s *CatalogService) EndSales() int {
	log := s.log.Function("EndSales")

	restored := 0
	_ = s.transaction.Execute(func() error {
		for _, game := range s.repos.Game.GetAll() {
			if game.RestorePrice() {
				restored++
			}
		}
		return nil
	})

	log.Info("Sales ended", "restored", restored)
	if restored > 0 {
		s.publish(events.CATALOG_CHANNEL, events.SALES_ENDED, nil, map[string]any{
			"restored": restored,
		})
	}
	return restored
}

func (s *CatalogService) CreatePost(authorID, content string) (*Post, error) {
	log := s.log.Function("CreatePost")

	var created *Post
	err := s.transaction.Execute(func() error {
		post, err := NewPost(s.repos.Post.NextID(), authorID, content)
		if err != nil {
			return err
		}
		if err := s.repos.Post.Create(post); err != nil {
			return err
		}
		created = post.Clone()
		return nil
	})
	if err != nil {
		return nil, s.fail(log, "failed to create post", err, "authorID", authorID)
	}

	s.publish(events.COMMUNITY_CHANNEL, events.POST_CREATED, nil, map[string]any{
		"postId":    created.ID,
		"authorId":  created.AuthorID,
		"content":   created.Content,
		"createdAt": created.CreatedAt,
	})
	return created, nil
}

func (s *CatalogService) Posts() []*Post {
	var posts []*Post
	_ = s.transaction.Query(func() error {
		all := s.repos.Post.GetAll()
		posts = make([]*Post, 0, len(all))
		for _, post := range all {
			posts = append(posts, post.Clone())
		}
		return nil
	})
	return posts
}

func (s *CatalogService) SalesReport() []DeveloperSales {
	var report []DeveloperSales
	_ = s.transaction.Query(func() error {
		report = s.repos.Purchase.SalesByDeveloper()
		return nil
	})
	return report
}

func (s *CatalogService) Purchases() []Purchase {
	var purchases []Purchase
	_ = s.transaction.Query(func() error {
		all := s.repos.Purchase.GetAll()
		purchases = make([]Purchase, 0, len(all))
		for _, purchase := range all {
			purchases = append(purchases, *purchase)
		}
		return nil
	})
	return purchases
}

func (s *CatalogService) userAndGame(userID, gameID int) (*User, *Game, error) {
	user, err := s.repos.User.GetByID(userID)
	if err != nil {
		return nil, nil, err
	}
	game, err := s.repos.Game.GetByID(gameID)
	if err != nil {
		return nil, nil, err
	}
	return user, game, nil
}

// fail logs caller mistakes as warnings and anything else as an error, returning err as is.
func (s *CatalogService) fail(log logger.Logger, msg string, err error, args ...any) error {
	if errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrUnauthenticated) {
		log.Warn(msg, append([]any{"error", err}, args...)...)
		return err
	}
	log.Er(msg, err, args...)
	return err
}

func (s *CatalogService) publish(
	channel events.Channel,
	messageType events.MessageType,
	userID *int,
	data map[string]any,
) {
	if s.publisher == nil {
		return
	}

	err := s.publisher.Publish(channel, events.Event{
		Type:   messageType,
		UserID: userID,
		Data:   data,
	})
	if err != nil {
		s.log.Function("publish").Er("failed to publish event", err, "type", messageType)
	}
}

func gameEventData(game *Game) map[string]any {
	return map[string]any{
		"gameId":    game.ID,
		"title":     game.Title,
		"price":     game.Price.StringFixed(2),
		"listPrice": game.ListPrice.StringFixed(2),
	}
}

func cloneGames(games []*Game) []*Game {
	clones := make([]*Game, 0, len(games))
	for _, game := range games {
		clones = append(clones, game.Clone())
	}
	return clones
}
