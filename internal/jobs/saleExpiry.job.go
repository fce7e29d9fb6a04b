package jobs

import (
	"context"

	"gamestore/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

// SalesEnder is the slice of the catalog the expiry job needs.
type SalesEnder interface {
	EndSales() int
}

// SaleExpiryJob ends every weekly sale so the next week starts at list prices.
type SaleExpiryJob struct {
	catalog  SalesEnder
	log      logger.Logger
	schedule services.Schedule
}

func NewSaleExpiryJob(catalog SalesEnder, schedule services.Schedule) *SaleExpiryJob {
	log := logger.New("saleExpiryJob")
	log.Info("Creating new sale expiry job", "schedule", schedule)

	return &SaleExpiryJob{
		catalog:  catalog,
		log:      log,
		schedule: schedule,
	}
}

func (j *SaleExpiryJob) Name() string {
	return "WeeklySaleExpiry"
}

func (j *SaleExpiryJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	if err := ctx.Err(); err != nil {
		return log.Err("sale expiry cancelled", err)
	}

	restored := j.catalog.EndSales()
	log.Info("Weekly sales expired", "restored", restored)
	return nil
}

func (j *SaleExpiryJob) Schedule() services.Schedule {
	return j.schedule
}
