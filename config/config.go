package config

import (
	"os"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/spf13/viper"
)

type Config struct {
	GeneralVersion     string `mapstructure:"GENERAL_VERSION"`
	Environment        string `mapstructure:"ENVIRONMENT"`
	ServerPort         int    `mapstructure:"SERVER_PORT"`
	CorsAllowOrigins   string `mapstructure:"CORS_ALLOW_ORIGINS"`
	SessionSecret      string `mapstructure:"SESSION_SECRET"`
	SessionTTLMinutes  int    `mapstructure:"SESSION_TTL_MINUTES"`
	SeedDefaults       bool   `mapstructure:"SEED_DEFAULTS"`
	SeedRandom         int64  `mapstructure:"SEED_RANDOM"`
	SchedulerEnabled   bool   `mapstructure:"SCHEDULER_ENABLED"`
	EventsCacheAddress string `mapstructure:"EVENTS_CACHE_ADDRESS"`
	EventsCachePort    int    `mapstructure:"EVENTS_CACHE_PORT"`
}

var ConfigInstance Config

var envVars = []string{
	"GENERAL_VERSION", "ENVIRONMENT", "SERVER_PORT", "CORS_ALLOW_ORIGINS",
	"SESSION_SECRET", "SESSION_TTL_MINUTES",
	"SEED_DEFAULTS", "SEED_RANDOM", "SCHEDULER_ENABLED",
	"EVENTS_CACHE_ADDRESS", "EVENTS_CACHE_PORT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("GENERAL_VERSION", "dev")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("SERVER_PORT", 8280)
	v.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:3000")
	v.SetDefault("SESSION_SECRET", "gamestore-development-secret")
	v.SetDefault("SESSION_TTL_MINUTES", 60)
	v.SetDefault("SEED_DEFAULTS", true)
	v.SetDefault("SEED_RANDOM", 1)
	v.SetDefault("SCHEDULER_ENABLED", false)
	v.SetDefault("EVENTS_CACHE_ADDRESS", "")
	v.SetDefault("EVENTS_CACHE_PORT", 0)
}

func New() (Config, error) {
	log := logger.New("config").Function("New")
	log.Info("Initializing config")

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	for _, env := range envVars {
		if err := v.BindEnv(env); err != nil {
			log.Warn("Failed to bind environment variable", "env", env, "error", err)
		}
	}

	_, portSet := os.LookupEnv("SERVER_PORT")
	_, secretSet := os.LookupEnv("SESSION_SECRET")

	if portSet && secretSet {
		log.Info("Environment variables detected, skipping file loading")
	} else {
		log.Info("Environment variables not found, attempting to load from files")

		v.SetConfigFile(".env")
		v.SetConfigType("env")

		if err := v.ReadInConfig(); err != nil {
			log.Debug("Could not find .env file", "error", err)
		} else {
			log.Info("Loaded .env file")
		}

		v.SetConfigFile(".env.local")
		if err := v.MergeInConfig(); err != nil {
			log.Debug("No .env.local file found", "error", err)
		} else {
			log.Info("Loaded .env.local overrides")
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, log.Err("Fatal error: could not unmarshal config", err)
	}

	if err := validateConfig(config, log); err != nil {
		return Config{}, err
	}

	log.Info(
		"Successfully initialized config",
		"environment", config.Environment,
		"port", config.ServerPort,
		"seed", config.SeedDefaults,
		"scheduler", config.SchedulerEnabled,
	)
	return ConfigInstance, nil
}

func GetConfig() Config {
	return ConfigInstance
}

func validateConfig(config Config, log logger.Logger) error {
	if config.ServerPort <= 0 {
		return log.Error(
			"Fatal error: invalid server port",
			"port", config.ServerPort,
		)
	}

	if config.SessionSecret == "" {
		return log.ErrMsg("Fatal error: SESSION_SECRET is required")
	}

	if config.SessionTTLMinutes <= 0 {
		return log.Error(
			"Fatal error: invalid session ttl",
			"minutes", config.SessionTTLMinutes,
		)
	}

	if config.EventsCacheAddress != "" && config.EventsCachePort <= 0 {
		return log.ErrMsg("Fatal error: EVENTS_CACHE_PORT required when EVENTS_CACHE_ADDRESS is set")
	}

	ConfigInstance = config
	return nil
}
