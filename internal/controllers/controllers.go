package controllers

import (
	"gamestore/internal/services"

	adminController "gamestore/internal/controllers/admin"
	authController "gamestore/internal/controllers/auth"
	communityController "gamestore/internal/controllers/community"
	gamesController "gamestore/internal/controllers/games"
	libraryController "gamestore/internal/controllers/library"
	reportsController "gamestore/internal/controllers/reports"
)

type Controllers struct {
	Auth      authController.AuthControllerInterface
	Games     gamesController.GamesControllerInterface
	Library   libraryController.LibraryControllerInterface
	Community communityController.CommunityControllerInterface
	Admin     adminController.AdminControllerInterface
	Reports   reportsController.ReportsControllerInterface
}

func New(service services.Service) Controllers {
	return Controllers{
		Auth:      authController.New(service),
		Games:     gamesController.New(service),
		Library:   libraryController.New(service),
		Community: communityController.New(service),
		Admin:     adminController.New(service),
		Reports:   reportsController.New(service),
	}
}
