package console

import (
	"fmt"

	. "gamestore/internal/models"
	"gamestore/internal/services"
)

func describeSession(session Session) string {
	principal := session.Principal
	switch {
	case !principal.Authenticated():
		return "Not logged in. Browsing as a guest."
	case principal.Kind == services.PrincipalAdmin:
		return fmt.Sprintf("Logged in as: %s (Administrator)", principal.Username)
	default:
		return fmt.Sprintf("Logged in as: %s (%s)", principal.Username, principal.Role)
	}
}

func (c *Console) printGames(games []*Game, empty string) {
	if len(games) == 0 {
		c.println(empty)
		return
	}
	for _, game := range games {
		c.printGameLine(game)
	}
}

func (c *Console) printSearchResults(games []*Game) {
	if len(games) == 0 {
		c.println("No games found matching your query.")
		return
	}
	c.println("Search results:")
	for _, game := range games {
		c.printGameLine(game)
	}
}

func (c *Console) printGameLine(game *Game) {
	line := fmt.Sprintf("%d. %s  $%s", game.ID, game.Title, game.Price.StringFixed(2))
	if game.OnSale() {
		line += fmt.Sprintf(" (was $%s)", game.ListPrice.StringFixed(2))
	}
	c.printf("%s  [%s, %s]\n", line, game.Genre, game.Rating)
}

func (c *Console) printTitles(games []*Game, empty string) {
	if len(games) == 0 {
		c.println(empty)
		return
	}
	for _, game := range games {
		c.printf("%d. %s\n", game.ID, game.Title)
	}
}

func (c *Console) printGameDetails(game *Game) {
	c.printf("Title: %s\n", game.Title)
	c.printf("Description: %s\n", game.Description)
	c.printf("Developer: %s\n", game.Developer)
	c.printf("Genre: %s\n", game.Genre)
	c.printf("Rating: %s\n", game.Rating)
	c.printf("Released: %s\n", game.ReleasedAt.Format("2006-01-02"))
	if game.OnSale() {
		c.printf("Price: $%s (on sale, list $%s)\n", game.Price.StringFixed(2), game.ListPrice.StringFixed(2))
	} else {
		c.printf("Price: $%s\n", game.Price.StringFixed(2))
	}
	c.printReviews(game)
}

func (c *Console) printReviews(game *Game) {
	if len(game.Reviews) == 0 {
		c.println("There are no reviews for this game yet.")
		return
	}
	c.println("Reviews:")
	for _, review := range game.Reviews {
		c.printf("%s - %d stars\n", review.Text, review.Stars)
	}
	c.printf("Average rating: %.1f stars\n", game.AverageRating)
}
