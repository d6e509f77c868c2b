package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/base-platform/account-api/internal/api/metrics"
	"github.com/base-platform/account-api/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
	authService ports.AuthService
	tracker     ports.ActivityTracker
}

func NewUserHandler(userService ports.UserService, authService ports.AuthService, tracker ports.ActivityTracker) *UserHandler {
	return &UserHandler{userService: userService, authService: authService, tracker: tracker}
}

type adminRegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	IsAdmin  bool   `json:"isAdmin"`
}

type updateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password"` // optional: empty keeps the current one
	IsAdmin  bool   `json:"isAdmin"`
}

type countResponse struct {
	Count int `json:"count"`
}

func statusError(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, statusResponse{Message: err.Error(), Status: "error"})
}

func statusSuccess(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, statusResponse{Message: message, Status: "success"})
}

// Me returns the caller's own account.
//
// @Summary      Current account
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Info
// @Failure      401  {object}  map[string]string
// @Router       /user/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	info, err := h.userService.CurrentUser(c.Request().Context(), identity.Username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, info)
}

// All lists every account. Admin only.
//
// @Summary      List all accounts
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Info
// @Failure      403  {object}  map[string]string
// @Router       /user/all [get]
func (h *UserHandler) All(c echo.Context) error {
	infos, err := h.userService.AllUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, infos)
}

// Register creates an account with an explicit role. Admin only.
//
// @Summary      Admin-driven account creation
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      adminRegisterRequest  true  "Account details"
// @Success      200   {object}  statusResponse
// @Failure      400   {object}  statusResponse
// @Router       /user/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req adminRegisterRequest
	if err := c.Bind(&req); err != nil {
		return statusError(c, errors.New("invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return statusError(c, err)
	}

	if _, err := h.authService.RegisterByAdmin(c.Request().Context(), req.Username, req.Email, req.Password, req.IsAdmin); err != nil {
		return statusError(c, err)
	}

	metrics.RegistrationsTotal.WithLabelValues("admin").Inc()
	return statusSuccess(c, "User registered successfully")
}

// UpdateMe updates the caller's own profile. The role is never touched.
//
// @Summary      Update own profile
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateUserRequest  true  "Profile update"
// @Success      200   {object}  statusResponse
// @Failure      400   {object}  statusResponse
// @Router       /user/me [put]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return statusError(c, errors.New("invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return statusError(c, err)
	}

	err = h.userService.UpdateCurrentUser(c.Request().Context(), identity.Username, ports.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return statusError(c, err)
	}
	return statusSuccess(c, "User updated successfully")
}

// Update updates an arbitrary account by id, including its role. Admin only.
//
// @Summary      Update an account
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Account id"
// @Param        body  body      updateUserRequest  true  "Account update"
// @Success      200   {object}  statusResponse
// @Failure      400   {object}  statusResponse
// @Router       /user/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return statusError(c, errors.New("invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return statusError(c, err)
	}

	err := h.userService.UpdateUser(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		return statusError(c, err)
	}
	return statusSuccess(c, "User updated successfully")
}

// Delete removes an account by id, rejecting self-deletion. Admin only.
//
// @Summary      Delete an account
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Account id"
// @Success      200  {object}  statusResponse
// @Failure      400  {object}  statusResponse
// @Router       /user/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	if err := h.userService.DeleteUser(c.Request().Context(), c.Param("id"), identity); err != nil {
		return statusError(c, err)
	}
	return statusSuccess(c, "User deleted successfully")
}

// Active lists the accounts seen within the inactivity window. Admin only.
//
// @Summary      List active users
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Info
// @Failure      403  {object}  map[string]string
// @Router       /user/active [get]
func (h *UserHandler) Active(c echo.Context) error {
	infos, err := h.tracker.ListActive(c.Request().Context())
	if err != nil {
		return err
	}
	metrics.ActiveUsers.Set(float64(len(infos)))
	return c.JSON(http.StatusOK, infos)
}

// ActiveCount returns the number of active sessions. Admin only.
//
// @Summary      Count active users
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  countResponse
// @Failure      403  {object}  map[string]string
// @Router       /user/active/count [get]
func (h *UserHandler) ActiveCount(c echo.Context) error {
	count := h.tracker.CountActive()
	metrics.ActiveUsers.Set(float64(count))
	return c.JSON(http.StatusOK, countResponse{Count: count})
}
