package services

import (
	"gamestore/config"
	"gamestore/internal/database"
	"gamestore/internal/events"
	"gamestore/internal/repositories"
)

type Service struct {
	Transaction *TransactionService
	Catalog     *CatalogService
	Policy      *PolicyService
	Session     *SessionService
	Scheduler   *SchedulerService
	Seed        *SeedService
}

func New(db database.DB, config config.Config, eventBus *events.EventBus) (Service, error) {
	transactionService := NewTransactionService(db)
	repos := repositories.New(db)

	var publisher Publisher
	if eventBus != nil {
		publisher = eventBus
	}

	catalogService := NewCatalogService(repos, transactionService, publisher)

	policyService, err := NewPolicyService()
	if err != nil {
		return Service{}, err
	}

	return Service{
		Transaction: transactionService,
		Catalog:     catalogService,
		Policy:      policyService,
		Session:     NewSessionService(config),
		Scheduler:   NewSchedulerService(),
		Seed:        NewSeedService(catalogService, repos, transactionService, config.SeedRandom),
	}, nil
}
