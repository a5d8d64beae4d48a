package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/userapi/internal/config"
	"github.com/deppfellow/userapi/internal/model/user"
)

type fakeMailer struct {
	calls []WelcomeEmailPayload
	err   error
}

func (f *fakeMailer) SendWelcomeEmail(_ context.Context, to, name, userID string, remainingChats int) error {
	f.calls = append(f.calls, WelcomeEmailPayload{To: to, Name: name, UserID: userID, RemainingChats: remainingChats})
	return f.err
}

func newTestJobService(t *testing.T) *JobService {
	t.Helper()
	logger := zerolog.Nop()
	cfg := &config.Config{Redis: config.RedisConfig{Address: "127.0.0.1:0"}}
	svc := NewJobService(&logger, cfg)
	t.Cleanup(func() { _ = svc.Client.Close() })
	return svc
}

func testUser() *user.User {
	return &user.User{
		UserID:         "user123444",
		Name:           "Ann",
		Email:          "ann@x.io",
		PhoneNumber:    "5551234567",
		RemainingChats: user.DefaultRemainingChats,
	}
}

func TestNewWelcomeEmailTask(t *testing.T) {
	task, err := NewWelcomeEmailTask(testUser())
	require.NoError(t, err)
	assert.Equal(t, TaskWelcome, task.Type())

	var p WelcomeEmailPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, WelcomeEmailPayload{To: "ann@x.io", Name: "Ann", UserID: "user123444", RemainingChats: 5}, p)
}

func TestHandleWelcomeEmailTask_SendsEmail(t *testing.T) {
	svc := newTestJobService(t)
	mailer := &fakeMailer{}
	svc.SetMailer(mailer)

	task, err := NewWelcomeEmailTask(testUser())
	require.NoError(t, err)

	require.NoError(t, svc.Mux().ProcessTask(context.Background(), task))
	require.Len(t, mailer.calls, 1)
	assert.Equal(t, "ann@x.io", mailer.calls[0].To)
}

func TestHandleWelcomeEmailTask_ReturnsSendError(t *testing.T) {
	svc := newTestJobService(t)
	svc.SetMailer(&fakeMailer{err: errors.New("provider down")})

	task, err := NewWelcomeEmailTask(testUser())
	require.NoError(t, err)

	assert.EqualError(t, svc.handleWelcomeEmailTask(context.Background(), task), "provider down")
}

func TestHandleWelcomeEmailTask_BadPayloadSkipsRetry(t *testing.T) {
	svc := newTestJobService(t)
	svc.SetMailer(&fakeMailer{})

	err := svc.handleWelcomeEmailTask(context.Background(), asynq.NewTask(TaskWelcome, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestEnqueueWelcomeEmail_SkippedWithoutMailer(t *testing.T) {
	svc := newTestJobService(t)
	assert.NoError(t, svc.EnqueueWelcomeEmail(context.Background(), testUser()))
}

func TestInitHandlers_RequiresAPIKey(t *testing.T) {
	svc := newTestJobService(t)
	logger := zerolog.Nop()

	svc.InitHandlers(&config.Config{}, &logger)
	assert.Nil(t, svc.mailer)

	svc.InitHandlers(&config.Config{Integration: config.IntegrationConfig{ResendAPIKey: "re_test", EmailFrom: "a@b.co"}}, &logger)
	assert.NotNil(t, svc.mailer)
}
