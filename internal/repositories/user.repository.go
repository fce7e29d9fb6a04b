package repositories

import (
	"fmt"

	"gamestore/internal/database"
	. "gamestore/internal/models"
)

type UserRepository interface {
	NextID() int
	Create(user *User) error
	GetByID(id int) (*User, error)
	GetByUsername(username string) (*User, error)
	GetAll() []*User
	GetByRole(role UserRole) []*User
	Count() int
}

type userRepository struct {
	store *database.Store
}

func NewUserRepository(db database.DB) UserRepository {
	return &userRepository{store: db.Store}
}

func (r *userRepository) NextID() int {
	return r.store.Users.NextID()
}

// Create rejects a username that is already taken; usernames are the login key.
func (r *userRepository) Create(user *User) error {
	if _, err := r.GetByUsername(user.Username); err == nil {
		return fmt.Errorf("%w: username %q is taken", ErrConflict, user.Username)
	}
	if err := r.store.Users.Insert(user.ID, user); err != nil {
		return fmt.Errorf("%w: user %d already exists", ErrConflict, user.ID)
	}
	return nil
}

func (r *userRepository) GetByID(id int) (*User, error) {
	user, ok := r.store.Users.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	return user, nil
}

func (r *userRepository) GetByUsername(username string) (*User, error) {
	user, ok := r.store.Users.First(func(u *User) bool { return u.Username == username })
	if !ok {
		return nil, fmt.Errorf("%w: user %q", ErrNotFound, username)
	}
	return user, nil
}

func (r *userRepository) GetAll() []*User {
	return r.store.Users.All()
}

func (r *userRepository) GetByRole(role UserRole) []*User {
	return r.store.Users.Filter(func(u *User) bool { return u.Role == role })
}

func (r *userRepository) Count() int {
	return r.store.Users.Len()
}
