package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/base-platform/account-api/internal/api/metrics"
	"github.com/base-platform/account-api/internal/api/middleware"
	"github.com/base-platform/account-api/internal/core/domain"
	"github.com/base-platform/account-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// authResponse is the envelope for register and login. Token and Username
// are null on failure.
type authResponse struct {
	Token    *string `json:"token"`
	Username *string `json:"username"`
	IsAdmin  bool    `json:"isAdmin"`
	Message  string  `json:"message"`
}

type statusResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

func authSuccess(token, username string, isAdmin bool, message string) authResponse {
	return authResponse{Token: &token, Username: &username, IsAdmin: isAdmin, Message: message}
}

func authFailure(message string) authResponse {
	return authResponse{Message: message}
}

// Register creates a new account with the default USER role.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  authResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, authFailure("invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, authFailure(err.Error()))
	}

	tkn, user, err := h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) || errors.Is(err, domain.ErrEmailTaken) {
			return c.JSON(http.StatusBadRequest, authFailure(err.Error()))
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("self").Inc()
	return c.JSON(http.StatusOK, authSuccess(tkn, user.Username, false, "Registration successful"))
}

// Login authenticates credentials and returns a bearer token. All failures
// share one generic message so the caller cannot tell which field was wrong.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  authResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, authFailure("invalid payload"))
	}

	tkn, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return c.JSON(http.StatusBadRequest, authFailure(domain.ErrInvalidCredentials.Error()))
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authSuccess(tkn, user.Username, user.IsAdmin(), "Login successful"))
}

// Logout clears the caller's server-side activity entry and best-effort
// revokes the presented token. Always succeeds; an unauthenticated call has
// nothing to clear.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statusResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if identity, ok := c.Get(middleware.IdentityKey).(domain.Identity); ok {
		h.authService.Logout(c.Request().Context(), identity, rawToken(c))
	}
	return c.JSON(http.StatusOK, statusResponse{Message: "Logout successful", Status: "success"})
}
