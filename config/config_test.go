package config

import (
	"testing"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("SESSION_TTL_MINUTES", "15")
	t.Setenv("SEED_DEFAULTS", "false")
	t.Setenv("SCHEDULER_ENABLED", "true")

	config, err := New()

	require.NoError(t, err)
	assert.Equal(t, 9090, config.ServerPort)
	assert.Equal(t, "test-secret", config.SessionSecret)
	assert.Equal(t, 15, config.SessionTTLMinutes)
	assert.False(t, config.SeedDefaults)
	assert.True(t, config.SchedulerEnabled)
	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, config, GetConfig())
}

func TestNew_InvalidPort(t *testing.T) {
	t.Setenv("SERVER_PORT", "-1")
	t.Setenv("SESSION_SECRET", "test-secret")

	_, err := New()

	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	valid := Config{ServerPort: 8280, SessionSecret: "secret", SessionTTLMinutes: 60}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "Valid config", mutate: func(c *Config) {}},
		{
			name:    "Missing secret",
			mutate:  func(c *Config) { c.SessionSecret = "" },
			wantErr: "Fatal error: SESSION_SECRET is required",
		},
		{
			name:    "Zero ttl",
			mutate:  func(c *Config) { c.SessionTTLMinutes = 0 },
			wantErr: "Fatal error: invalid session ttl",
		},
		{
			name:    "Cache address without port",
			mutate:  func(c *Config) { c.EventsCacheAddress = "localhost" },
			wantErr: "Fatal error: EVENTS_CACHE_PORT required when EVENTS_CACHE_ADDRESS is set",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid
			tt.mutate(&config)

			err := validateConfig(config, logger.New("config_test"))

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
