// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives validated
// requests, performs existence checks, calls the repositories and maps
// their failures to client-facing errors.
package service

import (
	"context"

	"github.com/deppfellow/userapi/internal/lib/llm"
	"github.com/deppfellow/userapi/internal/repository"
	"github.com/deppfellow/userapi/internal/server"
)

type Services struct {
	User   *UserService
	System *SystemService
}

// NewServices wires the services to the repositories and the job queue.
//
// The LLM client is optional: without credentials /LLM answers 500.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var jobs WelcomeEnqueuer
	if s.Job != nil {
		jobs = s.Job
	}

	var generator ContentGenerator
	if s.Config.LLM.Enabled() {
		client, err := llm.NewClient(context.Background(), s.Config.LLM)
		if err != nil {
			return nil, err
		}
		generator = client
		s.Logger.Info().Str("model", client.Model()).Msg("llm client configured")
	} else {
		s.Logger.Warn().Msg("llm api key not provided, /LLM is disabled")
	}

	return &Services{
		User:   NewUserService(repos.User, jobs),
		System: NewSystemService(repos.System, generator),
	}, nil
}
