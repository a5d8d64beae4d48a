// Package config manages environment variables.
//
// It reads variables from the process environment (and the `.env` file,
// if one exists), loads them into structured Go types, and validates that
// required values are present so they can be reused across the application
// runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (observability, LLM).
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	// Side-effect import: if a `.env` file exists, it gets loaded into the
	// process env before any config is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the prefix USERAPI_. The prefix is trimmed, the
	rest is lowercased, and "." is the nesting delimiter:

		USERAPI_SERVER.PORT          -> server.port          -> Config.Server.Port
		USERAPI_DATABASE.SSL_MODE    -> database.ssl_mode    -> Config.Database.SSLMode
		USERAPI_LLM.API_KEY          -> llm.api_key          -> Config.LLM.APIKey

	Underscores are NOT converted to dots, so nested keys must use ".".
*/

// EnvPrefix is the prefix every configuration variable must carry.
const EnvPrefix = "USERAPI_"

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration"`
	LLM           LLMConfig            `koanf:"llm"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
// Used to tag logs/traces and switch behavior (e.g. SQL logging in "local").
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// RateLimit is the allowed requests per second per client IP.
	// Zero disables the limiter.
	RateLimit      float64 `koanf:"rate_limit" validate:"min=0"`
	RateLimitBurst int     `koanf:"rate_limit_burst" validate:"min=0"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
//
// ConnMaxLifetime and ConnMaxIdleTime are seconds.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details.
// Address is "host:port". Redis backs the background job queue.
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// IntegrationConfig stores third-party API credentials.
//
// An empty ResendAPIKey disables welcome emails.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	EmailFrom    string `koanf:"email_from"`
}

// LoadConfig loads configuration from environment variables, unmarshals it
// into Config, validates it, applies defaults and returns the result.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load initial env variables: %w", err)
	}

	mainConfig := &Config{}
	// The default decoder does not split strings, so list values such as
	// CORS_ALLOWED_ORIGINS are comma separated explicitly.
	err = k.UnmarshalWithConf("", mainConfig, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			Result:           mainConfig,
			WeaklyTypedInput: true,
			TagName:          "koanf",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment are forced so telemetry naming stays consistent.
	mainConfig.Observability.ServiceName = "userapi"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	mainConfig.LLM.applyDefaults()
	if mainConfig.Integration.EmailFrom == "" {
		mainConfig.Integration.EmailFrom = "Userapi <onboarding@resend.dev>"
	}

	return mainConfig, nil
}

// DSN builds the postgres connection URL for pgx.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		// URL-encode credentials so characters like "@" or ":" don't break the DSN.
		urlEscape(c.User),
		urlEscape(c.Password),
		joinHostPort(c.Host, c.Port),
		c.Name,
		c.SSLMode,
	)
}

func urlEscape(s string) string {
	return url.QueryEscape(s)
}

// joinHostPort handles IPv6 hosts correctly (adds brackets when needed).
func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
