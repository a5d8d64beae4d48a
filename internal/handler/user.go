package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/userapi/internal/model"
	"github.com/deppfellow/userapi/internal/model/user"
	"github.com/deppfellow/userapi/internal/server"
	"github.com/deppfellow/userapi/internal/service"
)

const (
	MsgUserCreated = "User created successfully"
	MsgUserAdded   = "User added successfully"
	MsgUserUpdated = "User updated successfully"
	MsgUserDeleted = "User deleted successfully"
)

type UserHandler struct {
	Handler
	userService *service.UserService
}

func NewUserHandler(s *server.Server, userService *service.UserService) *UserHandler {
	return &UserHandler{
		Handler:     NewHandler(s),
		userService: userService,
	}
}

// CreateUser backs POST /api/users/create.
func (h *UserHandler) CreateUser(c echo.Context, req *user.CreateUserRequest) (model.Response, error) {
	return h.create(c, req, MsgUserCreated)
}

// AddUser backs the legacy POST /addUser, which differs only in wording.
func (h *UserHandler) AddUser(c echo.Context, req *user.CreateUserRequest) (model.Response, error) {
	return h.create(c, req, MsgUserAdded)
}

func (h *UserHandler) create(c echo.Context, req *user.CreateUserRequest, message string) (model.Response, error) {
	if _, err := h.userService.CreateUser(c, req); err != nil {
		return model.Response{}, err
	}
	return model.OK(message), nil
}

// ListUsers answers {success, message: [users]}.
func (h *UserHandler) ListUsers(c echo.Context, _ *user.ListUsersRequest) (model.Response, error) {
	users, err := h.userService.ListUsers(c)
	if err != nil {
		return model.Response{}, err
	}
	return model.OK(users), nil
}

// ListUsersLegacy answers {success, result: [users]} for GET /getAllUser.
func (h *UserHandler) ListUsersLegacy(c echo.Context, _ *user.ListUsersRequest) (model.ResultResponse, error) {
	users, err := h.userService.ListUsers(c)
	if err != nil {
		return model.ResultResponse{}, err
	}
	return model.ResultResponse{Success: true, Result: users}, nil
}

func (h *UserHandler) GetUser(c echo.Context, req *user.GetUserRequest) (model.Response, error) {
	u, err := h.userService.GetUser(c, req.UserID)
	if err != nil {
		return model.Response{}, err
	}
	return model.OK(u), nil
}

func (h *UserHandler) UpdateUser(c echo.Context, req *user.UpdateUserRequest) (model.Response, error) {
	if _, err := h.userService.UpdateUser(c, req); err != nil {
		return model.Response{}, err
	}
	return model.OK(MsgUserUpdated), nil
}

func (h *UserHandler) DeleteUser(c echo.Context, req *user.DeleteUserRequest) (model.Response, error) {
	if err := h.userService.DeleteUser(c, req.UserID); err != nil {
		return model.Response{}, err
	}
	return model.OK(MsgUserDeleted), nil
}
