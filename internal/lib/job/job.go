// Package job runs background work on Asynq, a Redis-backed task queue.
//
// The API enqueues tasks through JobService.Client; the embedded worker
// server consumes them.
package job

import (
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/userapi/internal/config"
)

// JobService holds the Asynq client (enqueue) and server (workers).
type JobService struct {
	Client *asynq.Client

	server *asynq.Server
	logger *zerolog.Logger
	mailer WelcomeMailer
}

// NewJobService builds the client and worker server on cfg.Redis.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger:   newAsynqLogger(logger),
			LogLevel: asynq.WarnLevel,
		},
	)

	return &JobService{
		Client: asynq.NewClient(redisOpt),
		server: server,
		logger: logger,
	}
}

// Mux routes task types to their handlers.
func (j *JobService) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcome, j.handleWelcomeEmailTask)
	return mux
}

// Start launches the workers in the background. It does not block.
func (j *JobService) Start() error {
	j.logger.Info().Msg("starting background job server")
	return j.server.Start(j.Mux())
}

// Stop waits for running tasks, then closes the client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}
