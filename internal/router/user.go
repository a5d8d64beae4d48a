package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/userapi/internal/handler"
)

// registerUserRoutes registers the user CRUD routes under /api/users and
// the legacy top-level aliases kept for older clients.
func registerUserRoutes(r *echo.Echo, h *handler.Handlers) {
	u := h.User
	base := u.Handler

	users := r.Group("/api/users")
	users.POST("/create", handler.Handle(base, u.CreateUser, http.StatusCreated))
	users.GET("/all", handler.Handle(base, u.ListUsers, http.StatusOK))
	users.PATCH("/update", handler.Handle(base, u.UpdateUser, http.StatusOK))
	users.DELETE("/delete", handler.Handle(base, u.DeleteUser, http.StatusOK))
	users.GET("/:userID", handler.Handle(base, u.GetUser, http.StatusOK))

	r.POST("/addUser", handler.Handle(base, u.AddUser, http.StatusOK))
	r.GET("/getAllUser", handler.Handle(base, u.ListUsersLegacy, http.StatusOK))
	r.POST("/updateUser", handler.Handle(base, u.UpdateUser, http.StatusOK))
	r.POST("/deleteUser", handler.Handle(base, u.DeleteUser, http.StatusOK))
}
