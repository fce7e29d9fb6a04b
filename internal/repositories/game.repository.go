package repositories

import (
	"fmt"
	"strings"

	"gamestore/internal/database"
	. "gamestore/internal/models"
)

// GameRepository reads and writes the canonical game table. Callers hold the store
// lock through TransactionService.
type GameRepository interface {
	NextID() int
	Create(game *Game) error
	GetByID(id int) (*Game, error)
	GetByTitle(title string) (*Game, error)
	GetByIDs(ids []int) []*Game
	GetAll() []*Game
	Search(filter GameFilter) []*Game
	SearchText(query string) []*Game
	Count() int
}

type gameRepository struct {
	store *database.Store
}

func NewGameRepository(db database.DB) GameRepository {
	return &gameRepository{store: db.Store}
}

func (r *gameRepository) NextID() int {
	return r.store.Games.NextID()
}

func (r *gameRepository) Create(game *Game) error {
	if err := r.store.Games.Insert(game.ID, game); err != nil {
		return fmt.Errorf("%w: game %d already exists", ErrConflict, game.ID)
	}
	return nil
}

func (r *gameRepository) GetByID(id int) (*Game, error) {
	game, ok := r.store.Games.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: game %d", ErrNotFound, id)
	}
	return game, nil
}

// GetByTitle returns the first game, in catalog order, with exactly this title.
func (r *gameRepository) GetByTitle(title string) (*Game, error) {
	game, ok := r.store.Games.First(func(g *Game) bool { return g.Title == title })
	if !ok {
		return nil, fmt.Errorf("%w: game %q", ErrNotFound, title)
	}
	return game, nil
}

// GetByIDs resolves ids in the given order, skipping any that no longer resolve.
func (r *gameRepository) GetByIDs(ids []int) []*Game {
	games := make([]*Game, 0, len(ids))
	for _, id := range ids {
		if game, ok := r.store.Games.Get(id); ok {
			games = append(games, game)
		}
	}
	return games
}

func (r *gameRepository) GetAll() []*Game {
	return r.store.Games.All()
}

func (r *gameRepository) Search(filter GameFilter) []*Game {
	return r.store.Games.Filter(filter.Matches)
}

// SearchText matches the query against title or genre.
func (r *gameRepository) SearchText(query string) []*Game {
	return r.store.Games.Filter(func(g *Game) bool {
		return strings.Contains(g.Title, query) || strings.Contains(g.Genre, query)
	})
}

func (r *gameRepository) Count() int {
	return r.store.Games.Len()
}
