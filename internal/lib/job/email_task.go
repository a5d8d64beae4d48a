package job

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"github.com/deppfellow/userapi/internal/model/user"
)

const (
	// TaskWelcome is the task type of the welcome email.
	TaskWelcome = "email:welcome"
)

// WelcomeEmailPayload is the JSON payload of TaskWelcome.
type WelcomeEmailPayload struct {
	To             string `json:"to"`
	Name           string `json:"name"`
	UserID         string `json:"user_id"`
	RemainingChats int    `json:"remaining_chats"`
}

// NewWelcomeEmailTask builds the welcome email task for u.
func NewWelcomeEmailTask(u *user.User) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{
		To:             u.Email,
		Name:           u.Name,
		UserID:         u.UserID,
		RemainingChats: u.RemainingChats,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// EnqueueWelcomeEmail schedules the welcome email for a newly created user.
//
// It is a no-op when email delivery is not configured.
func (j *JobService) EnqueueWelcomeEmail(ctx context.Context, u *user.User) error {
	if j.mailer == nil {
		j.logger.Debug().Str("user_id", u.UserID).Msg("email delivery not configured, skipping welcome email")
		return nil
	}

	task, err := NewWelcomeEmailTask(u)
	if err != nil {
		return err
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return err
	}

	j.logger.Info().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Str("user_id", u.UserID).
		Msg("enqueued welcome email")
	return nil
}
