package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/userapi/internal/config"
	"github.com/deppfellow/userapi/internal/lib/email"
)

// WelcomeMailer delivers the welcome email. *email.Client implements it.
type WelcomeMailer interface {
	SendWelcomeEmail(ctx context.Context, to, name, userID string, remainingChats int) error
}

// InitHandlers wires the dependencies of the task handlers.
//
// Without a Resend API key no mailer is set and welcome emails are skipped.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	if cfg.Integration.ResendAPIKey == "" {
		logger.Warn().Msg("resend API key not provided, welcome emails disabled")
		return
	}
	j.SetMailer(email.NewClient(cfg, logger))
}

// SetMailer replaces the mailer used by the welcome email handler.
func (j *JobService) SetMailer(m WelcomeMailer) {
	j.mailer = m
}

// handleWelcomeEmailTask sends one welcome email. Returning an error makes
// Asynq retry the task.
func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %w: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("type", "welcome").
		Str("user_id", p.UserID).
		Logger()

	if j.mailer == nil {
		log.Warn().Msg("no mailer configured, dropping welcome email task")
		return nil
	}

	log.Info().Msg("processing welcome email task")

	if err := j.mailer.SendWelcomeEmail(ctx, p.To, p.Name, p.UserID, p.RemainingChats); err != nil {
		log.Error().Err(err).Msg("failed to send welcome email")
		return err
	}

	log.Info().Msg("successfully sent welcome email")
	return nil
}
