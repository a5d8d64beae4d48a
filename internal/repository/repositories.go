package repository

import (
	"github.com/deppfellow/userapi/internal/server"
)

// Repositories groups every repository so services receive one value.
type Repositories struct {
	User   *UserRepository
	System *SystemRepository
}

func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		User:   NewUserRepository(s),
		System: NewSystemRepository(s),
	}
}
