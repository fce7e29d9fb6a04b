package jobs

import (
	"gamestore/config"
	"gamestore/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

const (
	Hourly = services.Hourly
	Daily  = services.Daily
	Weekly = services.Weekly
)

func RegisterAllJobs(
	schedulerService *services.SchedulerService,
	config config.Config,
	services services.Service,
) error {
	log := logger.New("jobs").Function("RegisterAllJobs")

	if !config.SchedulerEnabled {
		log.Info("Scheduler disabled, skipping job registration")
		return nil
	}

	saleExpiryJob := NewSaleExpiryJob(services.Catalog, Weekly)
	if err := schedulerService.AddJob(saleExpiryJob); err != nil {
		return log.Err("failed to register sale expiry job", err)
	}
	log.Info("Registered sale expiry job", "schedule", "weekly")

	return nil
}
