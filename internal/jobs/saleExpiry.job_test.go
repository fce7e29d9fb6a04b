package jobs

import (
	"context"
	"testing"

	"gamestore/config"
	"gamestore/internal/database"
	"gamestore/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCatalog struct {
	calls int
}

func (c *countingCatalog) EndSales() int {
	c.calls++
	return 2
}

func TestSaleExpiryJob_Execute(t *testing.T) {
	catalog := &countingCatalog{}
	job := NewSaleExpiryJob(catalog, Weekly)

	require.NoError(t, job.Execute(context.Background()))

	assert.Equal(t, 1, catalog.calls)
	assert.Equal(t, "WeeklySaleExpiry", job.Name())
	assert.Equal(t, services.Weekly, job.Schedule())
}

func TestSaleExpiryJob_CancelledContext(t *testing.T) {
	catalog := &countingCatalog{}
	job := NewSaleExpiryJob(catalog, Weekly)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, job.Execute(ctx))
	assert.Equal(t, 0, catalog.calls)
}

func TestSaleExpiryJob_RestoresSeededSales(t *testing.T) {
	cfg := config.Config{SessionSecret: "secret", SessionTTLMinutes: 60, SeedRandom: 1}
	svc, err := services.New(database.NewInMemory(), cfg, nil)
	require.NoError(t, err)
	require.NoError(t, svc.Seed.Seed())
	require.Len(t, svc.Catalog.GamesOnSale(), 3)

	job := NewSaleExpiryJob(svc.Catalog, Weekly)
	require.NoError(t, job.Execute(context.Background()))

	assert.Empty(t, svc.Catalog.GamesOnSale())
	game, err := svc.Catalog.GameByTitle("Game 1")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("20.99").Equal(game.Price))
}

func TestRegisterAllJobs(t *testing.T) {
	cfg := config.Config{SessionSecret: "secret", SessionTTLMinutes: 60}
	svc, err := services.New(database.NewInMemory(), cfg, nil)
	require.NoError(t, err)

	t.Run("Disabled scheduler registers nothing", func(t *testing.T) {
		scheduler := services.NewSchedulerService()
		require.NoError(t, RegisterAllJobs(scheduler, cfg, svc))
		assert.Equal(t, 0, scheduler.GetJobCount())
	})

	t.Run("Enabled scheduler registers the sale expiry job", func(t *testing.T) {
		enabled := cfg
		enabled.SchedulerEnabled = true
		scheduler := services.NewSchedulerService()
		require.NoError(t, RegisterAllJobs(scheduler, enabled, svc))
		assert.Equal(t, 1, scheduler.GetJobCount())
		require.NoError(t, scheduler.TriggerJobByName(context.Background(), "WeeklySaleExpiry"))
	})
}
