package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/authshell/authshell/internal/core/domain"
	"github.com/authshell/authshell/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup validates the form and registers a new user.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Signup form"
// @Success      201   {object}  domain.AuthResult
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  domain.AuthResult
// @Failure      500   {object}  domain.AuthResult
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(err)
	}

	res := h.authService.Signup(c.Request().Context(), strings.TrimSpace(req.Name), strings.TrimSpace(req.Email), req.Password)
	if !res.Success {
		status := http.StatusInternalServerError
		if errors.Is(domain.ErrorForMessage(res.Error), domain.ErrUserExists) {
			status = http.StatusConflict
		}
		return c.JSON(status, res)
	}

	return c.JSON(http.StatusCreated, res)
}

// Login authenticates an existing user.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login form"
// @Success      200   {object}  domain.AuthResult
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  domain.AuthResult
// @Failure      404   {object}  domain.AuthResult
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(err)
	}

	res := h.authService.Login(c.Request().Context(), strings.TrimSpace(req.Email), req.Password)
	if !res.Success {
		status := http.StatusInternalServerError
		switch domain.ErrorForMessage(res.Error) {
		case domain.ErrInvalidPassword:
			status = http.StatusUnauthorized
		case domain.ErrUserNotFound:
			status = http.StatusNotFound
		}
		return c.JSON(status, res)
	}

	return c.JSON(http.StatusOK, res)
}

// Logout ends the current session. It always succeeds.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.authService.Logout(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

// Session reports the state the UI shell renders from.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	st := h.authService.State()
	return c.JSON(http.StatusOK, sessionResponse{
		User:      st.User,
		IsLoading: st.IsLoading,
		Stack:     st.Stack(),
	})
}

var errInvalidPayload = echo.NewHTTPError(http.StatusBadRequest, "invalid payload")

// validationFailed hands field errors to the HTTP error handler, which
// renders them as a 400 with per-field messages.
func validationFailed(err error) error {
	var fields FieldErrors
	if errors.As(err, &fields) {
		return fields
	}
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}
