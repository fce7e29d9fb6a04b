package app

import (
	"context"

	"gamestore/config"
	"gamestore/internal/controllers"
	"gamestore/internal/database"
	"gamestore/internal/events"
	"gamestore/internal/handlers/middleware"
	"gamestore/internal/jobs"
	"gamestore/internal/services"
	"gamestore/internal/websockets"

	logger "github.com/Bparsons0904/goLogger"
)

type App struct {
	Database    database.DB
	Middleware  middleware.Middleware
	Websocket   *websockets.Manager
	EventBus    *events.EventBus
	Config      config.Config
	Services    services.Service
	Controllers controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.New()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	return NewWithConfig(config)
}

// NewWithConfig wires the storefront from an already loaded config.
func NewWithConfig(config config.Config) (*App, error) {
	log := logger.New("app").Function("NewWithConfig")

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	eventBus := events.New(db.Cache.Events)

	service, err := services.New(db, config, eventBus)
	if err != nil {
		return &App{}, log.Err("failed to create services", err)
	}

	if config.SeedDefaults {
		if err := service.Seed.Seed(); err != nil {
			return &App{}, log.Err("failed to seed default data", err)
		}
	}

	if err := jobs.RegisterAllJobs(service.Scheduler, config, service); err != nil {
		return &App{}, log.Err("failed to register jobs", err)
	}

	websocket, err := websockets.New(eventBus, service.Session)
	if err != nil {
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	app := &App{
		Database:    db,
		Config:      config,
		EventBus:    eventBus,
		Services:    service,
		Middleware:  middleware.New(service, config),
		Controllers: controllers.New(service),
		Websocket:   websocket,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

// Start launches background work. The scheduler stays idle when no jobs are registered.
func (a *App) Start(ctx context.Context) error {
	return a.Services.Scheduler.Start(ctx)
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.Store == nil {
		return log.ErrMsg("database store is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Websocket,
		a.EventBus,
		a.Services.Transaction,
		a.Services.Catalog,
		a.Services.Policy,
		a.Services.Session,
		a.Services.Scheduler,
		a.Services.Seed,
		a.Controllers.Auth,
		a.Controllers.Games,
		a.Controllers.Library,
		a.Controllers.Community,
		a.Controllers.Admin,
		a.Controllers.Reports,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.Websocket != nil {
		a.Websocket.Close()
	}

	if a.Services.Scheduler != nil {
		if closeErr := a.Services.Scheduler.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
