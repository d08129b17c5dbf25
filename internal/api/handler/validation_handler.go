package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/authshell/authshell/internal/core/validation"
)

// ValidationHandler exposes the validation engine for live form feedback.
type ValidationHandler struct{}

func NewValidationHandler() *ValidationHandler {
	return &ValidationHandler{}
}

// Validate classifies whichever of email, name and password are present.
// A password also gets a strength score.
//
// @Summary      Validate form fields
// @Tags         validation
// @Accept       json
// @Produce      json
// @Param        body  body      validateRequest  true  "Fields to check"
// @Success      200   {object}  validateResponse
// @Failure      400   {object}  ErrorResponse
// @Router       /validate [post]
func (h *ValidationHandler) Validate(c echo.Context) error {
	var req validateRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload
	}

	var resp validateResponse
	if req.Email != nil {
		resp.Email = toFieldResult(validation.ValidateEmail(*req.Email))
	}
	if req.Name != nil {
		resp.Name = toFieldResult(validation.ValidateName(*req.Name))
	}
	if req.Password != nil {
		resp.Password = toFieldResult(validation.ValidatePassword(*req.Password, req.RequireStrong))
		resp.Strength = toStrength(validation.ValidatePasswordStrength(*req.Password))
	}

	return c.JSON(http.StatusOK, resp)
}

// PasswordStrength scores a password.
//
// @Summary      Password strength
// @Tags         validation
// @Accept       json
// @Produce      json
// @Param        body  body      strengthRequest  true  "Password"
// @Success      200   {object}  strengthResponse
// @Failure      400   {object}  ErrorResponse
// @Router       /validate/password-strength [post]
func (h *ValidationHandler) PasswordStrength(c echo.Context) error {
	var req strengthRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload
	}
	return c.JSON(http.StatusOK, toStrength(validation.ValidatePasswordStrength(req.Password)))
}

func toFieldResult(r validation.Result) *fieldResult {
	return &fieldResult{IsValid: r.Valid, Message: r.Message}
}

func toStrength(s validation.Strength) *strengthResponse {
	return &strengthResponse{
		Score:    s.Score,
		Label:    validation.StrengthLabel(s.Score),
		Feedback: s.Feedback,
	}
}
