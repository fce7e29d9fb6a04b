package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type GameRating string

const (
	GameRatingEveryone   GameRating = "Everyone"
	GameRatingEveryone10 GameRating = "Everyone10+"
	GameRatingTeen       GameRating = "Teen"
	GameRatingMature     GameRating = "Mature"
	GameRatingAdultsOnly GameRating = "AdultsOnly"
)

// GameRatings lists every maturity rating in enum order.
var GameRatings = []GameRating{
	GameRatingEveryone,
	GameRatingEveryone10,
	GameRatingTeen,
	GameRatingMature,
	GameRatingAdultsOnly,
}

var gameRatingCodes = map[string]GameRating{
	"e":   GameRatingEveryone,
	"e10": GameRatingEveryone10,
	"t":   GameRatingTeen,
	"m":   GameRatingMature,
	"ao":  GameRatingAdultsOnly,
}

// ParseGameRating accepts a display value or a short code, case-insensitively.
func ParseGameRating(value string) (GameRating, error) {
	value = strings.TrimSpace(value)
	for _, rating := range GameRatings {
		if strings.EqualFold(string(rating), value) {
			return rating, nil
		}
	}

	if rating, ok := gameRatingCodes[strings.ToLower(value)]; ok {
		return rating, nil
	}

	return "", fmt.Errorf("%w: unknown game rating %q", ErrInvalidArgument, value)
}

const (
	MinStars = 1
	MaxStars = 5
)

type Review struct {
	Text      string    `json:"text"`
	Stars     int       `json:"stars"`
	AuthorID  int       `json:"authorId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Game struct {
	BaseModel
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	ListPrice     decimal.Decimal `json:"listPrice"`
	Genre         string          `json:"genre"`
	Rating        GameRating      `json:"rating"`
	ReleasedAt    time.Time       `json:"releasedAt"`
	Developer     string          `json:"developer"`
	AverageRating float64         `json:"averageRating"`
	Reviews       []Review        `json:"reviews"`
}

// NewGame builds a catalog entry released now. The list price is the creation price.
func NewGame(
	id int,
	title, description string,
	price decimal.Decimal,
	genre string,
	rating GameRating,
	developer string,
) (*Game, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidArgument)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrInvalidArgument)
	}

	now := time.Now()
	return &Game{
		BaseModel:   BaseModel{ID: id, CreatedAt: now},
		Title:       title,
		Description: description,
		Price:       price,
		ListPrice:   price,
		Genre:       genre,
		Rating:      rating,
		ReleasedAt:  now,
		Developer:   developer,
		Reviews:     make([]Review, 0),
	}, nil
}

func (g *Game) AddReview(text string, stars int) error {
	return g.addReview(Review{Text: text, Stars: stars})
}

func (g *Game) addReview(review Review) error {
	if review.Stars < MinStars || review.Stars > MaxStars {
		return fmt.Errorf(
			"%w: rating must be between %d and %d, got %d",
			ErrInvalidArgument,
			MinStars,
			MaxStars,
			review.Stars,
		)
	}

	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
	g.Reviews = append(g.Reviews, review)

	total := 0
	for _, r := range g.Reviews {
		total += r.Stars
	}
	g.AverageRating = float64(total) / float64(len(g.Reviews))

	return nil
}

func (g *Game) ReviewCount() int {
	return len(g.Reviews)
}

func (g *Game) UpdatePrice(newPrice decimal.Decimal) error {
	if newPrice.IsNegative() {
		return fmt.Errorf(
			"%w: price cannot be negative, got %s",
			ErrInvalidArgument,
			newPrice.String(),
		)
	}

	g.Price = newPrice
	return nil
}

// RestorePrice puts the game back at its list price and reports whether anything changed.
func (g *Game) RestorePrice() bool {
	if g.Price.Equal(g.ListPrice) {
		return false
	}
	g.Price = g.ListPrice
	return true
}

func (g *Game) OnSale() bool {
	return g.Price.LessThan(g.ListPrice)
}

// DiscountPercent is how far below list price the game currently sells, 0 when not on sale.
func (g *Game) DiscountPercent() decimal.Decimal {
	if !g.OnSale() || g.ListPrice.IsZero() {
		return decimal.Zero
	}

	hundred := decimal.NewFromInt(100)
	return g.ListPrice.Sub(g.Price).Div(g.ListPrice).Mul(hundred).Round(2)
}

// DiscountedPrice applies a percentage discount without touching the game.
func DiscountedPrice(price, discountPercent decimal.Decimal) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	return price.Mul(decimal.NewFromInt(1).Sub(discountPercent.Div(hundred)))
}

// GameFilter is the multi-criteria search. Unset fields do not filter.
type GameFilter struct {
	Title          string
	Genre          string
	MinPrice       *decimal.Decimal
	MaxPrice       *decimal.Decimal
	Rating         *GameRating
	ReleasedAfter  *time.Time
	ReleasedBefore *time.Time
}

func (f GameFilter) Matches(g *Game) bool {
	if f.Title != "" && !strings.Contains(g.Title, f.Title) {
		return false
	}
	if f.Genre != "" && !strings.Contains(g.Genre, f.Genre) {
		return false
	}
	if f.MinPrice != nil && g.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && g.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	if f.Rating != nil && g.Rating != *f.Rating {
		return false
	}
	if f.ReleasedAfter != nil && g.ReleasedAt.Before(*f.ReleasedAfter) {
		return false
	}
	if f.ReleasedBefore != nil && g.ReleasedAt.After(*f.ReleasedBefore) {
		return false
	}
	return true
}

// Clone returns a copy that shares nothing mutable with g.
func (g *Game) Clone() *Game {
	clone := *g
	clone.Reviews = append(make([]Review, 0, len(g.Reviews)), g.Reviews...)
	return &clone
}

// Reprice sets a new regular price. Any running sale ends because the list price moves too.
func (g *Game) Reprice(newPrice decimal.Decimal) error {
	if err := g.UpdatePrice(newPrice); err != nil {
		return err
	}
	g.ListPrice = newPrice
	return nil
}
