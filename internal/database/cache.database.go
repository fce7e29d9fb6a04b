package database

import (
	"fmt"
	"gamestore/config"

	"github.com/valkey-io/valkey-go"
)

const (
	GENERAL_CACHE_INDEX = iota
	// EVENTS_CACHE_INDEX (DB 1) - catalog and community event fan-out
	EVENTS_CACHE_INDEX
)

func (s *DB) initializeCacheDB(config config.Config) error {
	log := s.log.Function("initializeCacheDB")

	address := config.EventsCacheAddress
	port := config.EventsCachePort
	if address == "" {
		log.Info("No events cache configured, events stay in-process")
		return nil
	}
	if port == 0 {
		return log.Errorf("failed to initialize cache database", "port is empty")
	}

	log.Info("initializing cache database", "address", address, "port", port)
	client, err := valkey.NewClient(
		valkey.ClientOption{
			InitAddress: []string{fmt.Sprintf("%s:%d", address, port)},
			SelectDB:    EVENTS_CACHE_INDEX,
		},
	)
	if err != nil {
		return log.Err("failed to create events valkey client", err)
	}

	s.Cache.Events = client
	return nil
}
