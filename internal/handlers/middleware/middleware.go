package middleware

import (
	"gamestore/config"
	"gamestore/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type Middleware struct {
	sessions *services.SessionService
	Config   config.Config
	log      logger.Logger
}

func New(service services.Service, config config.Config) Middleware {
	log := logger.New("middleware")

	return Middleware{
		sessions: service.Session,
		Config:   config,
		log:      log,
	}
}
