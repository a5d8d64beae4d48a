package testutil

import (
	"context"
	"sync"

	"google.golang.org/genai"

	"github.com/deppfellow/userapi/internal/model/user"
)

// FakeTableLister returns fixed tables or a fixed error.
type FakeTableLister struct {
	Tables []string
	Err    error
}

func (f *FakeTableLister) ListTables(context.Context) ([]string, error) {
	return f.Tables, f.Err
}

// FakeGenerator returns a fixed response or a fixed error.
type FakeGenerator struct {
	Response *genai.GenerateContentResponse
	Err      error
}

func (f *FakeGenerator) GenerateContent(context.Context) (*genai.GenerateContentResponse, error) {
	return f.Response, f.Err
}

// TextResponse builds a single-candidate response carrying text.
func TextResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: genai.NewContentFromText(text, genai.RoleModel)},
		},
	}
}

// RecordingEnqueuer records welcome emails instead of queueing them.
type RecordingEnqueuer struct {
	mu    sync.Mutex
	Users []user.User
	Err   error
}

func (r *RecordingEnqueuer) EnqueueWelcomeEmail(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Users = append(r.Users, *u)
	return r.Err
}
