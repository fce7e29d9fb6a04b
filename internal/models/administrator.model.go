package models

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Administrator curates its own index of games. The index holds ids only; removing an
// entry never touches the game itself.
type Administrator struct {
	BaseModel
	Username string `json:"username"`
	Password string `json:"-"`
	Catalog  []int  `json:"catalog"`
}

func NewAdministrator(id int, username, password string) (*Administrator, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidArgument)
	}

	return &Administrator{
		BaseModel: BaseModel{ID: id, CreatedAt: time.Now()},
		Username:  username,
		Password:  password,
		Catalog:   make([]int, 0),
	}, nil
}

func (a *Administrator) Login(password string) bool {
	return a.Password == password
}

func (a *Administrator) Manages(gameID int) bool {
	return slices.Contains(a.Catalog, gameID)
}

func (a *Administrator) AddGameToCatalog(game *Game) {
	if game == nil || a.Manages(game.ID) {
		return
	}
	a.Catalog = append(a.Catalog, game.ID)
}

// RemoveGameFromCatalog is a no-op for ids outside the index.
func (a *Administrator) RemoveGameFromCatalog(gameID int) bool {
	var removed bool
	a.Catalog, removed = removeID(a.Catalog, gameID)
	return removed
}

// SetWeeklySale discounts a game this administrator manages. Games outside the index are
// left alone and reported as not applied. A discount above 100% produces a negative price
// which the game rejects.
func (a *Administrator) SetWeeklySale(
	game *Game,
	discountPercent decimal.Decimal,
) (bool, error) {
	if game == nil || !a.Manages(game.ID) {
		return false, nil
	}

	if err := game.UpdatePrice(DiscountedPrice(game.Price, discountPercent)); err != nil {
		return false, err
	}

	return true, nil
}

func (a *Administrator) Clone() *Administrator {
	clone := *a
	clone.Catalog = append(make([]int, 0, len(a.Catalog)), a.Catalog...)
	return &clone
}
