package database

import (
	"gamestore/config"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/valkey-io/valkey-go"
)

type CacheClient valkey.Client

// Cache holds the optional valkey connections. A nil client means the feature runs
// in-process only.
type Cache struct {
	Events CacheClient
}

// DB is the storefront's storage: the in-memory arena that owns every record plus
// whatever cache connections are configured.
type DB struct {
	Store *Store
	Cache Cache
	log   logger.Logger
}

func New(config config.Config) (DB, error) {
	log := logger.New("database").Function("New")

	log.Info("Initializing database")
	db := &DB{
		Store: NewStore(),
		log:   log,
	}

	if err := db.initializeCacheDB(config); err != nil {
		return DB{}, log.Err("failed to initialize cache database", err)
	}

	return *db, nil
}

// NewInMemory builds a DB without any cache connection.
func NewInMemory() DB {
	return DB{
		Store: NewStore(),
		log:   logger.New("database"),
	}
}

func (s *DB) Close() (err error) {
	if s.Cache.Events != nil {
		s.Cache.Events.Close()
		s.Cache.Events = nil
	}

	return err
}
