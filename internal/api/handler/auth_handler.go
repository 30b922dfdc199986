package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/algo/shoe-inventory/internal/api/metrics"
	"github.com/algo/shoe-inventory/internal/core/domain"
	"github.com/algo/shoe-inventory/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account with ROLE_USER.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  api.errorResponse
// @Failure      500   {object}  api.errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(registrationOutcome(err)).Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, registerResponse{
		Message: "user registered successfully",
		User: ports.UserView{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     string(user.Role),
			Enabled:  user.Enabled,
			Locked:   user.Locked,
		},
	})
}

// Login checks credentials and returns a signed session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  api.errorResponse
// @Failure      401   {object}  api.errorResponse
// @Failure      403   {object}  api.errorResponse
// @Failure      429   {object}  api.errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("bad_request").Inc()
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), ports.LoginInput{
		Username: req.Username,
		Password: req.Password,
		ClientIP: c.RealIP(),
	})
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(loginOutcome(err)).Inc()
		return err
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

	roles := make([]string, 0, len(res.User.Roles()))
	for _, r := range res.User.Roles() {
		roles = append(roles, string(r))
	}
	return c.JSON(http.StatusOK, loginResponse{
		Token:       res.Token.Token,
		Expiry:      res.Token.ExpiresAt,
		ExpiresInMs: res.Token.ExpiresAt.Sub(res.Token.IssuedAt).Milliseconds(),
		Username:    res.User.Username,
		Roles:       roles,
	})
}

func loginOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrAccountDisabled):
		return "disabled"
	case errors.Is(err, domain.ErrAccountLocked):
		return "locked"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return "throttled"
	default:
		return "error"
	}
}

func registrationOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrUserExists):
		return "duplicate"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	default:
		return "error"
	}
}
