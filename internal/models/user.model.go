package models

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

type UserRole string

const (
	UserRoleCustomer      UserRole = "Customer"
	UserRoleDeveloper     UserRole = "Developer"
	UserRoleManager       UserRole = "Manager"
	UserRoleAdministrator UserRole = "Administrator"
)

var UserRoles = []UserRole{
	UserRoleCustomer,
	UserRoleDeveloper,
	UserRoleManager,
	UserRoleAdministrator,
}

func ParseUserRole(value string) (UserRole, error) {
	value = strings.TrimSpace(value)
	for _, role := range UserRoles {
		if strings.EqualFold(string(role), value) {
			return role, nil
		}
	}
	if strings.EqualFold(value, "admin") {
		return UserRoleAdministrator, nil
	}
	return "", fmt.Errorf("%w: unknown user role %q", ErrInvalidArgument, value)
}

type User struct {
	BaseModel
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Password string   `json:"-"`
	Role     UserRole `json:"role"`
	Library  []int    `json:"library"`
	Wishlist []int    `json:"wishlist"`
}

func NewUser(id int, username, email, password string, role UserRole) (*User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidArgument)
	}

	return &User{
		BaseModel: BaseModel{ID: id, CreatedAt: time.Now()},
		Username:  username,
		Email:     email,
		Password:  password,
		Role:      role,
		Library:   make([]int, 0),
		Wishlist:  make([]int, 0),
	}, nil
}

// Login compares the stored password verbatim.
func (u *User) Login(password string) bool {
	return u.Password == password
}

func (u *User) OwnsGame(gameID int) bool {
	return slices.Contains(u.Library, gameID)
}

func (u *User) WantsGame(gameID int) bool {
	return slices.Contains(u.Wishlist, gameID)
}

// AddToLibrary returns false when the game is already owned.
func (u *User) AddToLibrary(gameID int) bool {
	if u.OwnsGame(gameID) {
		return false
	}
	u.Library = append(u.Library, gameID)
	return true
}

// AddToWishlist returns false when the game is already wished for.
func (u *User) AddToWishlist(gameID int) bool {
	if u.WantsGame(gameID) {
		return false
	}
	u.Wishlist = append(u.Wishlist, gameID)
	return true
}

func (u *User) RemoveFromLibrary(gameID int) bool {
	var removed bool
	u.Library, removed = removeID(u.Library, gameID)
	return removed
}

func (u *User) RemoveFromWishlist(gameID int) bool {
	var removed bool
	u.Wishlist, removed = removeID(u.Wishlist, gameID)
	return removed
}

// ReviewGame is restricted to games in the user's library.
func (u *User) ReviewGame(game *Game, text string, stars int) error {
	if game == nil || !u.OwnsGame(game.ID) {
		return fmt.Errorf("%w: reviews restricted to owned games", ErrPermissionDenied)
	}

	return game.addReview(Review{Text: text, Stars: stars, AuthorID: u.ID})
}

func removeID(ids []int, id int) ([]int, bool) {
	index := slices.Index(ids, id)
	if index < 0 {
		return ids, false
	}
	return slices.Delete(ids, index, index+1), true
}

func (u *User) Clone() *User {
	clone := *u
	clone.Library = append(make([]int, 0, len(u.Library)), u.Library...)
	clone.Wishlist = append(make([]int, 0, len(u.Wishlist)), u.Wishlist...)
	return &clone
}
