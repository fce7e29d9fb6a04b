package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Purchase struct {
	BaseModel
	UserID    int             `json:"userId"`
	GameID    int             `json:"gameId"`
	Developer string          `json:"developer"`
	Price     decimal.Decimal `json:"price"`
}

func NewPurchase(id int, user *User, game *Game) *Purchase {
	return &Purchase{
		BaseModel: BaseModel{ID: id, CreatedAt: time.Now()},
		UserID:    user.ID,
		GameID:    game.ID,
		Developer: game.Developer,
		Price:     game.Price,
	}
}

// DeveloperSales aggregates purchases attributed to one developer name.
type DeveloperSales struct {
	Developer string          `json:"developer"`
	Units     int             `json:"units"`
	Revenue   decimal.Decimal `json:"revenue"`
}
