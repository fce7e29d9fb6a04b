package repositories

import (
	"fmt"

	"gamestore/internal/database"
	. "gamestore/internal/models"
)

type AdministratorRepository interface {
	NextID() int
	Create(admin *Administrator) error
	GetByID(id int) (*Administrator, error)
	GetByUsername(username string) (*Administrator, error)
	GetAll() []*Administrator
}

type administratorRepository struct {
	store *database.Store
}

func NewAdministratorRepository(db database.DB) AdministratorRepository {
	return &administratorRepository{store: db.Store}
}

func (r *administratorRepository) NextID() int {
	return r.store.Administrators.NextID()
}

func (r *administratorRepository) Create(admin *Administrator) error {
	if _, err := r.GetByUsername(admin.Username); err == nil {
		return fmt.Errorf("%w: administrator %q is taken", ErrConflict, admin.Username)
	}
	if err := r.store.Administrators.Insert(admin.ID, admin); err != nil {
		return fmt.Errorf("%w: administrator %d already exists", ErrConflict, admin.ID)
	}
	return nil
}

func (r *administratorRepository) GetByID(id int) (*Administrator, error) {
	admin, ok := r.store.Administrators.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: administrator %d", ErrNotFound, id)
	}
	return admin, nil
}

func (r *administratorRepository) GetByUsername(username string) (*Administrator, error) {
	admin, ok := r.store.Administrators.First(func(a *Administrator) bool {
		return a.Username == username
	})
	if !ok {
		return nil, fmt.Errorf("%w: administrator %q", ErrNotFound, username)
	}
	return admin, nil
}

func (r *administratorRepository) GetAll() []*Administrator {
	return r.store.Administrators.All()
}
