// Package testutil provides in-memory fakes and a minimal server container
// for handler, service and router tests.
package testutil

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/deppfellow/userapi/internal/config"
	"github.com/deppfellow/userapi/internal/server"
)

// NewTestConfig returns a valid config that needs no external services.
func NewTestConfig() *config.Config {
	obs := config.DefaultObservabilityConfig()
	obs.Environment = "test"

	return &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "0",
			ReadTimeout:        5,
			WriteTimeout:       5,
			IdleTimeout:        5,
			CORSAllowedOrigins: []string{"http://localhost:3000"},
		},
		Database: config.DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			Password:        "postgres",
			Name:            "userapi_test",
			SSLMode:         "disable",
			MaxOpenConns:    5,
			MaxIdleConns:    1,
			ConnMaxLifetime: 60,
			ConnMaxIdleTime: 60,
		},
		Redis: config.RedisConfig{Address: "localhost:6379"},
		LLM: config.LLMConfig{
			Model:  config.DefaultLLMModel,
			Prompt: config.DefaultLLMPrompt,
		},
		Observability: obs,
	}
}

// NewTestServer returns a server container without database, Redis, job
// queue or New Relic. Logs go to t.Log when verbose.
func NewTestServer(t *testing.T) *server.Server {
	t.Helper()

	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.WarnLevel)

	return &server.Server{
		Config: NewTestConfig(),
		Logger: &logger,
	}
}
