package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	adminController "gamestore/internal/controllers/admin"
	authController "gamestore/internal/controllers/auth"
	communityController "gamestore/internal/controllers/community"
	gamesController "gamestore/internal/controllers/games"
	libraryController "gamestore/internal/controllers/library"
	. "gamestore/internal/models"
	"gamestore/internal/services"
)

var (
	searchKeys     = []string{"title", "genre", "min", "max", "rating", "after", "before"}
	createGameKeys = []string{"title", "description", "price", "genre", "rating", "developer"}
)

func permission(p services.Permission) *services.Permission {
	return &p
}

func (c *Console) registerCommands() {
	c.register(command{name: "help", usage: "help", summary: "List the commands available to you", run: c.help})

	c.register(command{name: "login", usage: "login <username> <password>", summary: "Log in as a user", minArgs: 2, run: c.login})
	c.register(command{name: "admin-login", usage: "admin-login <username> <password>", summary: "Log in as an administrator", minArgs: 2, run: c.adminLogin})
	c.register(command{name: "logout", usage: "logout", summary: "End the current session", run: c.logout})
	c.register(command{name: "whoami", usage: "whoami", summary: "Show the current session", run: c.whoami})
	c.register(command{name: "register", usage: "register <username> <email> <password> [role]", summary: "Create an account", minArgs: 3, run: c.registerUser})

	c.register(command{name: "games", usage: "games", summary: "List every game", permission: permission(services.PermGamesRead), run: c.games})
	c.register(command{name: "game", usage: "game <id>", summary: "Show game details", minArgs: 1, permission: permission(services.PermGamesRead), run: c.game})
	c.register(command{name: "search", usage: "search key=value... (keys: " + strings.Join(searchKeys, ", ") + ")", summary: "Search the catalog", permission: permission(services.PermGamesRead), run: c.search})
	c.register(command{name: "find", usage: "find <query>", summary: "Match a title or genre", minArgs: 1, permission: permission(services.PermGamesRead), run: c.find})
	c.register(command{name: "sale", usage: "sale", summary: "List games on sale", permission: permission(services.PermGamesRead), run: c.sale})
	c.register(command{name: "reviews", usage: "reviews <id>", summary: "Show a game's reviews", minArgs: 1, permission: permission(services.PermGamesRead), run: c.reviews})

	c.register(command{name: "buy", usage: "buy <id>", summary: "Purchase a game", minArgs: 1, permission: permission(services.PermLibraryWrite), run: c.buy})
	c.register(command{name: "review", usage: "review <id> <stars> <text>", summary: "Review a game you own", minArgs: 3, permission: permission(services.PermReviewsWrite), run: c.review})
	c.register(command{name: "library", usage: "library", summary: "List your games", permission: permission(services.PermLibraryWrite), run: c.library})
	c.register(command{name: "wishlist", usage: "wishlist", summary: "List your wishlist", permission: permission(services.PermLibraryWrite), run: c.wishlist})
	c.register(command{name: "wish", usage: "wish <id>", summary: "Add a game to your wishlist", minArgs: 1, permission: permission(services.PermLibraryWrite), run: c.wish})
	c.register(command{name: "unwish", usage: "unwish <id>", summary: "Remove a game from your wishlist", minArgs: 1, permission: permission(services.PermLibraryWrite), run: c.unwish})
	c.register(command{name: "launch", usage: "launch <id>", summary: "Start a game you own", minArgs: 1, permission: permission(services.PermLibraryWrite), run: c.launch})

	c.register(command{name: "posts", usage: "posts", summary: "Read the community feed", permission: permission(services.PermPostsRead), run: c.posts})
	c.register(command{name: "post", usage: "post <text>", summary: "Write to the community feed", minArgs: 1, permission: permission(services.PermPostsWrite), run: c.post})

	c.register(command{name: "create-game", usage: "create-game key=value... (keys: " + strings.Join(createGameKeys, ", ") + ")", summary: "Publish a new game", minArgs: 1, permission: permission(services.PermGamesCreate), run: c.createGame})
	c.register(command{name: "price", usage: "price <id> <price>", summary: "Change a game's price", minArgs: 2, permission: permission(services.PermGamesPrice), run: c.price})

	c.register(command{name: "catalog", usage: "catalog", summary: "List the games you manage", permission: permission(services.PermCatalogWrite), run: c.catalog})
	c.register(command{name: "catalog-add", usage: "catalog-add <id>", summary: "Manage a game", minArgs: 1, permission: permission(services.PermCatalogWrite), run: c.catalogAdd})
	c.register(command{name: "catalog-remove", usage: "catalog-remove <id>", summary: "Stop managing a game", minArgs: 1, permission: permission(services.PermCatalogWrite), run: c.catalogRemove})
	c.register(command{name: "weekly-sale", usage: "weekly-sale <id> <percent>", summary: "Discount a managed game", minArgs: 2, permission: permission(services.PermSalesWrite), run: c.weeklySale})
	c.register(command{name: "end-sales", usage: "end-sales", summary: "Restore every game to its list price", permission: permission(services.PermSalesWrite), run: c.endSales})

	c.register(command{name: "report", usage: "report", summary: "Show sales per developer", permission: permission(services.PermReportsRead), run: c.report})
	c.register(command{name: "users", usage: "users", summary: "List user accounts", permission: permission(services.PermUsersRead), run: c.users})
}

func (c *Console) help(ctx context.Context, args []string) error {
	c.println("Commands:")
	for _, name := range c.order {
		cmd := c.commands[name]
		if cmd.permission != nil && !c.policy.Can(c.session.Principal.Role, cmd.permission.Object, cmd.permission.Action) {
			continue
		}
		c.printf("  %-40s %s\n", cmd.usage, cmd.summary)
	}
	c.printf("  %-40s %s\n", "quit", "Leave the store")
	return nil
}

func (c *Console) login(ctx context.Context, args []string) error {
	response, err := c.controllers.Auth.Login(ctx, authController.LoginRequest{Username: args[0], Password: args[1]})
	if err != nil {
		return err
	}
	c.startSession(response)
	return nil
}

func (c *Console) adminLogin(ctx context.Context, args []string) error {
	response, err := c.controllers.Auth.AdminLogin(ctx, authController.LoginRequest{Username: args[0], Password: args[1]})
	if err != nil {
		return err
	}
	c.startSession(response)
	return nil
}

func (c *Console) startSession(response *authController.SessionResponse) {
	c.session = Session{Principal: response.Principal, Token: response.Token}
	c.println("Login successful!")
	c.println(describeSession(c.session))
}

func (c *Console) logout(ctx context.Context, args []string) error {
	if !c.session.LoggedIn() {
		c.println("You are not logged in.")
		return nil
	}
	c.session = Session{}
	c.println("Logged out successfully.")
	return nil
}

func (c *Console) whoami(ctx context.Context, args []string) error {
	c.println(describeSession(c.session))
	return nil
}

func (c *Console) registerUser(ctx context.Context, args []string) error {
	req := authController.RegisterRequest{Username: args[0], Email: args[1], Password: args[2]}
	if len(args) > 3 {
		req.Role = args[3]
	}

	user, err := c.controllers.Auth.Register(ctx, c.session.Principal, req)
	if err != nil {
		return err
	}
	c.printf("Registered %s (%s).\n", user.Username, user.Role)
	return nil
}

func (c *Console) games(ctx context.Context, args []string) error {
	games, err := c.controllers.Games.Search(ctx, c.session.Principal, gamesController.SearchRequest{})
	if err != nil {
		return err
	}
	c.printGames(games, "The catalog is empty.")
	return nil
}

func (c *Console) game(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	game, err := c.controllers.Games.Get(ctx, c.session.Principal, id)
	if err != nil {
		return err
	}
	c.printGameDetails(game)
	return nil
}

func (c *Console) search(ctx context.Context, args []string) error {
	values, err := parseKeyValues(args, searchKeys)
	if err != nil {
		return err
	}

	games, err := c.controllers.Games.Search(ctx, c.session.Principal, gamesController.SearchRequest{
		Title:    values["title"],
		Genre:    values["genre"],
		MinPrice: values["min"],
		MaxPrice: values["max"],
		Rating:   values["rating"],
		After:    values["after"],
		Before:   values["before"],
	})
	if err != nil {
		return err
	}
	c.printSearchResults(games)
	return nil
}

func (c *Console) find(ctx context.Context, args []string) error {
	games, err := c.controllers.Games.QuickSearch(ctx, c.session.Principal, strings.Join(args, " "))
	if err != nil {
		return err
	}
	c.printSearchResults(games)
	return nil
}

func (c *Console) sale(ctx context.Context, args []string) error {
	games, err := c.controllers.Games.OnSale(ctx, c.session.Principal)
	if err != nil {
		return err
	}
	c.printGames(games, "No games are on sale right now.")
	return nil
}

func (c *Console) reviews(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	game, err := c.controllers.Games.Get(ctx, c.session.Principal, id)
	if err != nil {
		return err
	}
	c.printReviews(game)
	return nil
}

func (c *Console) buy(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	purchase, err := c.controllers.Library.Purchase(ctx, c.session.Principal, id)
	if err != nil {
		return err
	}

	game, err := c.controllers.Games.Get(ctx, c.session.Principal, purchase.GameID)
	if err != nil {
		return err
	}
	c.printf("Purchased %s for $%s.\n", game.Title, purchase.Price.StringFixed(2))
	return nil
}

func (c *Console) review(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	stars, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%w: stars must be a whole number, got %q", ErrInvalidArgument, args[1])
	}

	game, err := c.controllers.Library.Review(ctx, c.session.Principal, id, libraryController.ReviewRequest{
		Text:  strings.Join(args[2:], " "),
		Stars: stars,
	})
	if err != nil {
		return err
	}
	c.printf("Review added. Average rating: %.1f stars\n", game.AverageRating)
	return nil
}

func (c *Console) library(ctx context.Context, args []string) error {
	games, err := c.controllers.Library.Library(ctx, c.session.Principal)
	if err != nil {
		return err
	}
	c.println("Library:")
	c.printTitles(games, "Your library is empty.")
	return nil
}

func (c *Console) wishlist(ctx context.Context, args []string) error {
	games, err := c.controllers.Library.Wishlist(ctx, c.session.Principal)
	if err != nil {
		return err
	}
	c.println("Wishlist:")
	c.printTitles(games, "Your wishlist is empty.")
	return nil
}

func (c *Console) wish(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	added, err := c.controllers.Library.AddToWishlist(ctx, c.session.Principal, id)
	if err != nil {
		return err
	}

	game, err := c.controllers.Games.Get(ctx, c.session.Principal, id)
	if err != nil {
		return err
	}
	if !added {
		c.printf("%s is already on your wishlist.\n", game.Title)
		return nil
	}
	c.printf("%s added to wishlist.\n", game.Title)
	return nil
}

func (c *Console) unwish(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	removed, err := c.controllers.Library.RemoveFromWishlist(ctx, c.session.Principal, id)
	if err != nil {
		return err
	}
	if !removed {
		c.println("That game was not on your wishlist.")
		return nil
	}
	c.println("Removed from wishlist.")
	return nil
}

func (c *Console) launch(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	c.printf("Starting game with ID: %d\n", id)
	result, err := c.controllers.Library.Launch(ctx, c.session.Principal, id)
	if err != nil {
		return err
	}
	c.println(string(result))
	return nil
}

func (c *Console) posts(ctx context.Context, args []string) error {
	posts, err := c.controllers.Community.Posts(ctx, c.session.Principal)
	if err != nil {
		return err
	}

	c.println("Community:")
	if len(posts) == 0 {
		c.println("Nobody has posted yet.")
		return nil
	}
	for _, post := range posts {
		c.printf("%s: %s\n", post.AuthorID, post.Content)
	}
	return nil
}

func (c *Console) post(ctx context.Context, args []string) error {
	post, err := c.controllers.Community.CreatePost(ctx, c.session.Principal, communityController.CreatePostRequest{
		Content: strings.Join(args, " "),
	})
	if err != nil {
		return err
	}
	c.printf("Posted as %s.\n", post.AuthorID)
	return nil
}

func (c *Console) createGame(ctx context.Context, args []string) error {
	values, err := parseKeyValues(args, createGameKeys)
	if err != nil {
		return err
	}

	game, err := c.controllers.Games.Create(ctx, c.session.Principal, gamesController.CreateGameRequest{
		Title:       values["title"],
		Description: values["description"],
		Price:       values["price"],
		Genre:       values["genre"],
		Rating:      values["rating"],
		Developer:   values["developer"],
	})
	if err != nil {
		return err
	}
	c.printf("Created game %d: %s by %s.\n", game.ID, game.Title, game.Developer)
	return nil
}

func (c *Console) price(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	game, err := c.controllers.Games.UpdatePrice(ctx, c.session.Principal, id, gamesController.UpdatePriceRequest{
		Price: args[1],
	})
	if err != nil {
		return err
	}
	c.printf("%s now costs $%s.\n", game.Title, game.Price.StringFixed(2))
	return nil
}

func (c *Console) catalog(ctx context.Context, args []string) error {
	games, err := c.controllers.Admin.Catalog(ctx, c.session.Principal)
	if err != nil {
		return err
	}
	c.println("Managed games:")
	c.printGames(games, "You do not manage any games.")
	return nil
}

func (c *Console) catalogAdd(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	games, err := c.controllers.Admin.AddToCatalog(ctx, c.session.Principal, id)
	if err != nil {
		return err
	}
	c.printf("You now manage %d games.\n", len(games))
	return nil
}

func (c *Console) catalogRemove(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	removed, err := c.controllers.Admin.RemoveFromCatalog(ctx, c.session.Principal, id)
	if err != nil {
		return err
	}
	if !removed {
		c.println("That game was not in your catalog.")
		return nil
	}
	c.println("Removed from catalog.")
	return nil
}

func (c *Console) weeklySale(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	response, err := c.controllers.Admin.WeeklySale(ctx, c.session.Principal, id, adminController.WeeklySaleRequest{
		Percent: args[1],
	})
	if err != nil {
		return err
	}
	if !response.Applied {
		c.printf("Game %d is not in your catalog, no sale applied.\n", id)
		return nil
	}
	c.printf("Weekly sale applied: %s now costs $%s (list $%s).\n",
		response.Game.Title, response.Game.Price.StringFixed(2), response.Game.ListPrice.StringFixed(2))
	return nil
}

func (c *Console) endSales(ctx context.Context, args []string) error {
	restored, err := c.controllers.Admin.EndSales(ctx, c.session.Principal)
	if err != nil {
		return err
	}
	c.printf("Sales ended, %d games back at list price.\n", restored)
	return nil
}

func (c *Console) report(ctx context.Context, args []string) error {
	report, err := c.controllers.Reports.SalesReport(ctx, c.session.Principal)
	if err != nil {
		return err
	}

	c.println("Sales Report:")
	if len(report.Developers) == 0 {
		c.println("No sales yet.")
		return nil
	}
	for _, sales := range report.Developers {
		c.printf("%s: %d sold, $%s\n", sales.Developer, sales.Units, sales.Revenue.StringFixed(2))
	}
	c.printf("Total: %d sold, $%s\n", report.Units, report.Revenue.StringFixed(2))
	return nil
}

func (c *Console) users(ctx context.Context, args []string) error {
	users, err := c.controllers.Reports.Users(ctx, c.session.Principal)
	if err != nil {
		return err
	}

	c.println("Users:")
	for _, user := range users {
		c.printf("%d. %s <%s> %s\n", user.ID, user.Username, user.Email, user.Role)
	}
	return nil
}

func parseID(value string) (int, error) {
	id, err := strconv.Atoi(value)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", ErrInvalidArgument, value)
	}
	return id, nil
}

// parseKeyValues reads key=value fields, rejecting keys outside allowed.
func parseKeyValues(args []string, allowed []string) (map[string]string, error) {
	values := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("%w: expected key=value, got %q", ErrInvalidArgument, arg)
		}

		key = strings.ToLower(key)
		known := false
		for _, candidate := range allowed {
			if key == candidate {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("%w: unknown key %q (keys: %s)", ErrInvalidArgument, key, strings.Join(allowed, ", "))
		}
		values[key] = value
	}
	return values, nil
}
