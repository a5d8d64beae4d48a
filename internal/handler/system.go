package handler

import (
	"encoding/json"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/userapi/internal/model"
	"github.com/deppfellow/userapi/internal/server"
	"github.com/deppfellow/userapi/internal/service"
)

const (
	Greeting          = "Hello from userapi!"
	MsgDBConnectError = "Error connecting to database"
)

type SystemHandler struct {
	Handler
	systemService *service.SystemService
}

func NewSystemHandler(s *server.Server, systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{
		Handler:       NewHandler(s),
		systemService: systemService,
	}
}

// Root answers GET / with a plain-text greeting.
func (h *SystemHandler) Root(c echo.Context, _ *model.EmptyRequest) (string, error) {
	return Greeting, nil
}

// CheckDBConn always answers 200; the envelope's success flag carries the
// outcome. An empty table list counts as a failure.
func (h *SystemHandler) CheckDBConn(c echo.Context, _ *model.EmptyRequest) (model.Response, error) {
	tables, err := h.systemService.ListTables(c)
	if err != nil {
		return model.Fail(MsgDBConnectError), nil
	}
	if len(tables) == 0 {
		return model.Response{Success: false, Message: []string{}}, nil
	}
	return model.OK(tables), nil
}

// GenerateContent answers GET /LLM with the provider's response body.
// The header is set first so error responses carry it too.
func (h *SystemHandler) GenerateContent(c echo.Context, _ *model.EmptyRequest) (json.RawMessage, error) {
	c.Response().Header().Set(echo.HeaderAccessControlAllowOrigin, "*")
	return h.systemService.GenerateContent(c)
}
