package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/userapi/internal/errs"
	"github.com/deppfellow/userapi/internal/middleware"
	"github.com/deppfellow/userapi/internal/model/user"
	"github.com/deppfellow/userapi/internal/sqlerr"
)

// UserStore is the persistence the user operations need.
// *repository.UserRepository implements it.
type UserStore interface {
	CreateUser(ctx context.Context, u *user.User) (*user.User, error)
	GetUserByID(ctx context.Context, userID string) (*user.User, error)
	ListUsers(ctx context.Context) ([]user.User, error)
	UpdateUser(ctx context.Context, req *user.UpdateUserRequest) (*user.User, error)
	DeleteUser(ctx context.Context, userID string) (int64, error)
}

// WelcomeEnqueuer schedules the welcome email. *job.JobService implements it.
type WelcomeEnqueuer interface {
	EnqueueWelcomeEmail(ctx context.Context, u *user.User) error
}

// Client-facing messages of the user operations.
const (
	MsgUserNotFound     = "User not found"
	MsgEmailTaken       = "Email already exists"
	MsgUserIDTaken      = "UserID already exists"
	MsgFailedCreateUser = "Failed to create user"
	MsgFailedFetchUser  = "Failed to fetch user"
	MsgFailedFetchUsers = "Failed to fetch users"
	MsgFailedUpdateUser = "Failed to update user"
	MsgFailedDeleteUser = "Failed to delete user"
)

const (
	codeEmailTaken   = "EMAIL_ALREADY_EXISTS"
	codeUserIDTaken  = "USER_ID_ALREADY_EXISTS"
	codeUserNotFound = "USER_NOT_FOUND"
)

type UserService struct {
	store UserStore
	jobs  WelcomeEnqueuer
}

// NewUserService builds the service. jobs may be nil.
func NewUserService(store UserStore, jobs WelcomeEnqueuer) *UserService {
	return &UserService{
		store: store,
		jobs:  jobs,
	}
}

func (s *UserService) CreateUser(c echo.Context, req *user.CreateUserRequest) (*user.User, error) {
	logger := middleware.GetLogger(c)

	created, err := s.store.CreateUser(c.Request().Context(), req.ToUser())
	if err != nil {
		if conflict := uniqueConflict(err); conflict != nil {
			logger.Warn().Err(err).Str("user_id", req.UserID).Msg("user already exists")
			return nil, conflict
		}
		logger.Error().Err(err).Str("user_id", req.UserID).Msg("failed to create user")
		return nil, errs.NewInternalServerErrorWithMessage(MsgFailedCreateUser)
	}

	s.enqueueWelcome(c, created)

	logger.Info().
		Str("event", "user_created").
		Str("user_id", created.UserID).
		Msg("user created successfully")

	return created, nil
}

// enqueueWelcome is best effort: a queue failure never fails the create.
func (s *UserService) enqueueWelcome(c echo.Context, u *user.User) {
	if s.jobs == nil {
		return
	}
	if err := s.jobs.EnqueueWelcomeEmail(c.Request().Context(), u); err != nil {
		middleware.GetLogger(c).Error().
			Err(err).
			Str("user_id", u.UserID).
			Msg("failed to enqueue welcome email")
	}
}

func (s *UserService) GetUser(c echo.Context, userID string) (*user.User, error) {
	u, err := s.store.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound()
		}
		middleware.GetLogger(c).Error().Err(err).Str("user_id", userID).Msg("failed to fetch user")
		return nil, errs.NewInternalServerErrorWithMessage(MsgFailedFetchUser)
	}
	return u, nil
}

func (s *UserService) ListUsers(c echo.Context) ([]user.User, error) {
	users, err := s.store.ListUsers(c.Request().Context())
	if err != nil {
		middleware.GetLogger(c).Error().Err(err).Msg("failed to fetch users")
		return nil, errs.NewInternalServerErrorWithMessage(MsgFailedFetchUsers)
	}
	return users, nil
}

// UpdateUser checks the user exists, then writes the supplied fields.
func (s *UserService) UpdateUser(c echo.Context, req *user.UpdateUserRequest) (*user.User, error) {
	logger := middleware.GetLogger(c)
	ctx := c.Request().Context()

	if _, err := s.store.GetUserByID(ctx, req.UserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound()
		}
		logger.Error().Err(err).Str("user_id", req.UserID).Msg("failed to look up user for update")
		return nil, errs.NewInternalServerErrorWithMessage(MsgFailedUpdateUser)
	}

	updated, err := s.store.UpdateUser(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, notFound()
		case uniqueConflict(err) != nil:
			logger.Warn().Err(err).Str("user_id", req.UserID).Msg("update collides with an existing user")
			return nil, uniqueConflict(err)
		}
		logger.Error().Err(err).Str("user_id", req.UserID).Msg("failed to update user")
		return nil, errs.NewInternalServerErrorWithMessage(MsgFailedUpdateUser)
	}

	logger.Info().
		Str("event", "user_updated").
		Str("user_id", updated.UserID).
		Msg("user updated successfully")

	return updated, nil
}

// DeleteUser checks the user exists, then removes it permanently.
//
// A delete that removes nothing after a successful check (a concurrent
// delete won) is reported as not found.
func (s *UserService) DeleteUser(c echo.Context, userID string) error {
	logger := middleware.GetLogger(c)
	ctx := c.Request().Context()

	if _, err := s.store.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notFound()
		}
		logger.Error().Err(err).Str("user_id", userID).Msg("failed to look up user for delete")
		return errs.NewInternalServerErrorWithMessage(MsgFailedDeleteUser)
	}

	affected, err := s.store.DeleteUser(ctx, userID)
	if err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("failed to delete user")
		return errs.NewInternalServerErrorWithMessage(MsgFailedDeleteUser)
	}
	if affected == 0 {
		return notFound()
	}

	logger.Info().
		Str("event", "user_deleted").
		Str("user_id", userID).
		Msg("user deleted successfully")

	return nil
}

func notFound() *errs.HTTPError {
	code := codeUserNotFound
	return errs.NewNotFoundError(MsgUserNotFound, true, &code)
}

// uniqueConflict maps a unique violation to a 409 naming the taken field,
// or returns nil for any other error.
func uniqueConflict(err error) *errs.HTTPError {
	var sqlErr *sqlerr.Error
	if !errors.As(err, &sqlErr) || sqlErr.Code != sqlerr.UniqueViolation {
		return nil
	}

	switch sqlErr.ColumnName {
	case "email":
		code := codeEmailTaken
		return errs.NewConflictError(MsgEmailTaken, true, &code)
	case "user_id":
		code := codeUserIDTaken
		return errs.NewConflictError(MsgUserIDTaken, true, &code)
	default:
		return errs.NewConflictError("User already exists", true, nil)
	}
}
