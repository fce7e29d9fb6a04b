package repositories

import (
	"gamestore/internal/database"
)

type Repository struct {
	Game          GameRepository
	User          UserRepository
	Administrator AdministratorRepository
	Post          PostRepository
	Purchase      PurchaseRepository
}

func New(db database.DB) Repository {
	return Repository{
		Game:          NewGameRepository(db),
		User:          NewUserRepository(db),
		Administrator: NewAdministratorRepository(db),
		Post:          NewPostRepository(db),
		Purchase:      NewPurchaseRepository(db),
	}
}
