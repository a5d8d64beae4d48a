package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/labstack/echo/v4"
	"google.golang.org/genai"

	"github.com/deppfellow/userapi/internal/errs"
	"github.com/deppfellow/userapi/internal/middleware"
)

// TableLister lists the tables of the connected database.
// *repository.SystemRepository implements it.
type TableLister interface {
	ListTables(ctx context.Context) ([]string, error)
}

// ContentGenerator produces content from the configured model.
// *llm.Client implements it.
type ContentGenerator interface {
	GenerateContent(ctx context.Context) (*genai.GenerateContentResponse, error)
}

const MsgFailedGenerate = "Failed to generate content"

// ErrLLMDisabled is returned when no LLM credentials are configured.
var ErrLLMDisabled = errors.New("llm is not configured")

type SystemService struct {
	tables    TableLister
	generator ContentGenerator
}

// NewSystemService builds the service. generator may be nil.
func NewSystemService(tables TableLister, generator ContentGenerator) *SystemService {
	return &SystemService{
		tables:    tables,
		generator: generator,
	}
}

// ListTables probes the database by listing its tables.
// The raw error is returned; callers decide how to report it.
func (s *SystemService) ListTables(c echo.Context) ([]string, error) {
	tables, err := s.tables.ListTables(c.Request().Context())
	if err != nil {
		middleware.GetLogger(c).Error().Err(err).Msg("database connectivity probe failed")
		return nil, err
	}
	return tables, nil
}

// GenerateContent calls the model and returns the provider response as
// JSON. Any failure becomes a 500 with a fixed message.
func (s *SystemService) GenerateContent(c echo.Context) (json.RawMessage, error) {
	logger := middleware.GetLogger(c)

	if s.generator == nil {
		logger.Error().Err(ErrLLMDisabled).Msg("content generation requested without credentials")
		return nil, errs.NewInternalServerErrorWithMessage(MsgFailedGenerate)
	}

	resp, err := s.generator.GenerateContent(c.Request().Context())
	if err != nil {
		logger.Error().Err(err).Msg("content generation failed")
		return nil, errs.NewInternalServerErrorWithMessage(MsgFailedGenerate)
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		logger.Error().Err(err).Msg("failed to encode provider response")
		return nil, errs.NewInternalServerErrorWithMessage(MsgFailedGenerate)
	}

	return raw, nil
}
