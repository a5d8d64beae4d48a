package service

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/userapi/internal/testutil"
)

func TestSystemService_ListTables(t *testing.T) {
	tables := &testutil.FakeTableLister{Tables: []string{"chats", "users"}}
	svc := NewSystemService(tables, nil)

	got, err := svc.ListTables(newContext())
	require.NoError(t, err)
	assert.Equal(t, []string{"chats", "users"}, got)

	dbErr := errors.New("connection refused")
	tables.Err = dbErr
	_, err = svc.ListTables(newContext())
	assert.ErrorIs(t, err, dbErr)
}

func TestSystemService_GenerateContent(t *testing.T) {
	generator := &testutil.FakeGenerator{Response: testutil.TextResponse("Cloudflare is a CDN.")}
	svc := NewSystemService(&testutil.FakeTableLister{}, generator)

	raw, err := svc.GenerateContent(newContext())
	require.NoError(t, err)

	var body struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Len(t, body.Candidates, 1)
	require.Len(t, body.Candidates[0].Content.Parts, 1)
	assert.Equal(t, "Cloudflare is a CDN.", body.Candidates[0].Content.Parts[0].Text)
}

func TestSystemService_GenerateContent_Failures(t *testing.T) {
	t.Run("provider error", func(t *testing.T) {
		generator := &testutil.FakeGenerator{Err: errors.New("quota exceeded")}
		svc := NewSystemService(&testutil.FakeTableLister{}, generator)

		_, err := svc.GenerateContent(newContext())
		requireHTTPError(t, err, http.StatusInternalServerError, MsgFailedGenerate)
	})

	t.Run("not configured", func(t *testing.T) {
		svc := NewSystemService(&testutil.FakeTableLister{}, nil)

		_, err := svc.GenerateContent(newContext())
		requireHTTPError(t, err, http.StatusInternalServerError, MsgFailedGenerate)
	})
}
