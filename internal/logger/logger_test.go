package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/userapi/internal/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("nonsense"))
}

func TestGetPgxTraceLogLevel(t *testing.T) {
	assert.Equal(t, tracelog.LogLevelDebug, GetPgxTraceLogLevel(zerolog.DebugLevel))
	assert.Equal(t, tracelog.LogLevelInfo, GetPgxTraceLogLevel(zerolog.InfoLevel))
	assert.Equal(t, tracelog.LogLevelError, GetPgxTraceLogLevel(zerolog.ErrorLevel))
	assert.Equal(t, tracelog.LogLevelNone, GetPgxTraceLogLevel(zerolog.Disabled))
}

func TestNewLogger_ProductionWritesJSON(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Environment = "production"

	var buf bytes.Buffer
	log := newLogger(cfg, nil, &buf)
	log.Info().Str("user_id", "user123444").Msg("created")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "created", line["message"])
	assert.Equal(t, "userapi", line["service"])
	assert.Equal(t, "production", line["environment"])
	assert.Equal(t, "user123444", line["user_id"])
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Environment = "production"
	cfg.Logging.Level = "error"

	var buf bytes.Buffer
	log := newLogger(cfg, nil, &buf)
	log.Info().Msg("dropped")

	assert.Empty(t, buf.String())
}

func TestLoggerService_Disabled(t *testing.T) {
	svc := NewLoggerService(config.DefaultObservabilityConfig())
	assert.Nil(t, svc.GetApplication())

	var nilSvc *LoggerService
	assert.Nil(t, nilSvc.GetApplication())

	// WithTraceContext is a no-op without a transaction.
	base := zerolog.Nop()
	assert.Equal(t, base, WithTraceContext(base, nil))

	svc.Shutdown()
}
