package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/algo/shoe-inventory/internal/core/ports"
)

type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// CurrentUser returns the account behind the bearer token.
//
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.UserView
// @Failure      401  {object}  api.errorResponse
// @Failure      404  {object}  api.errorResponse
// @Router       /authorized/user [get]
func (h *UserHandler) CurrentUser(c echo.Context) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}
	user, err := h.users.CurrentUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// ListUsers returns every account. Admin only.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  usersResponse
// @Failure      401  {object}  api.errorResponse
// @Failure      403  {object}  api.errorResponse
// @Router       /authorized/admin/users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, usersResponse{Users: users})
}

// UpdateAccountState enables, disables, locks or unlocks an account.
//
// @Summary      Change account state
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string               true  "Username"
// @Param        body      body      accountStateRequest  true  "New state"
// @Success      200       {object}  ports.UserView
// @Failure      400       {object}  api.errorResponse
// @Failure      401       {object}  api.errorResponse
// @Failure      403       {object}  api.errorResponse
// @Failure      404       {object}  api.errorResponse
// @Router       /authorized/admin/users/{username} [patch]
func (h *UserHandler) UpdateAccountState(c echo.Context) error {
	var req accountStateRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	user, err := h.users.SetAccountState(c.Request().Context(), ports.AccountStateInput{
		Username: c.Param("username"),
		Enabled:  req.Enabled,
		Locked:   req.Locked,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
