package handler

import (
	"github.com/deppfellow/userapi/internal/server"
	"github.com/deppfellow/userapi/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	User    *UserHandler
	System  *SystemHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		User:    NewUserHandler(s, services.User),
		System:  NewSystemHandler(s, services.System),
	}
}
