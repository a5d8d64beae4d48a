package database

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/deppfellow/userapi/internal/config"
)

type recordingTracer struct {
	starts, ends int
}

func (r *recordingTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, _ pgx.TraceQueryStartData) context.Context {
	r.starts++
	return ctx
}

func (r *recordingTracer) TraceQueryEnd(context.Context, *pgx.Conn, pgx.TraceQueryEndData) {
	r.ends++
}

func TestMultiTracer_CallsEveryTracer(t *testing.T) {
	a, b := &recordingTracer{}, &recordingTracer{}
	mt := &multiTracer{tracers: []pgx.QueryTracer{a, b}}

	ctx := mt.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	mt.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})

	assert.Equal(t, 1, a.starts)
	assert.Equal(t, 1, a.ends)
	assert.Equal(t, 1, b.starts)
	assert.Equal(t, 1, b.ends)
}

func newTestSlowTracer(buf *bytes.Buffer, elapsed time.Duration) *slowQueryTracer {
	logger := zerolog.New(buf)
	tracer := newSlowQueryTracer(&logger, 100*time.Millisecond)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	tracer.now = func() time.Time {
		calls++
		if calls == 1 {
			return base
		}
		return base.Add(elapsed)
	}
	return tracer
}

func TestSlowQueryTracer_LogsSlowQueries(t *testing.T) {
	var buf bytes.Buffer
	tracer := newTestSlowTracer(&buf, 250*time.Millisecond)

	ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT * FROM users"})
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{CommandTag: pgconn.NewCommandTag("SELECT 3")})

	assert.Contains(t, buf.String(), `"message":"slow query"`)
	assert.Contains(t, buf.String(), "SELECT * FROM users")
}

func TestSlowQueryTracer_IgnoresFastQueries(t *testing.T) {
	var buf bytes.Buffer
	tracer := newTestSlowTracer(&buf, 5*time.Millisecond)

	ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})

	assert.Empty(t, buf.String())
}

func TestBuildTracer(t *testing.T) {
	logger := zerolog.Nop()

	cfg := &config.Config{Primary: config.Primary{Env: "production"}, Observability: config.DefaultObservabilityConfig()}
	cfg.Observability.Logging.SlowQueryThreshold = 0
	assert.Nil(t, buildTracer(cfg, &logger, nil))

	cfg.Observability.Logging.SlowQueryThreshold = time.Second
	assert.IsType(t, &slowQueryTracer{}, buildTracer(cfg, &logger, nil))

	cfg.Primary.Env = "local"
	assert.IsType(t, &multiTracer{}, buildTracer(cfg, &logger, nil))
}
