package handler

import "github.com/authshell/authshell/internal/core/domain"

// ErrorResponse is the standard error envelope returned on 4xx/5xx responses.
type ErrorResponse struct {
	Error  string      `json:"error"`
	Fields FieldErrors `json:"fields,omitempty"`
}

// --- Auth ---

type signupRequest struct {
	Name            string `json:"name"             validate:"user_name"`
	Email           string `json:"email"            validate:"user_email"`
	Password        string `json:"password"         validate:"strong_password"`
	ConfirmPassword string `json:"confirm_password" validate:"eqfield=Password"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"user_email"`
	Password string `json:"password" validate:"password"`
}

type sessionResponse struct {
	User      *domain.User       `json:"user"`
	IsLoading bool               `json:"is_loading"`
	Stack     domain.ScreenStack `json:"stack"`
}

// --- Validation ---

type validateRequest struct {
	Email         *string `json:"email,omitempty"`
	Name          *string `json:"name,omitempty"`
	Password      *string `json:"password,omitempty"`
	RequireStrong bool    `json:"require_strong"`
}

type fieldResult struct {
	IsValid bool   `json:"is_valid"`
	Message string `json:"message,omitempty"`
}

type validateResponse struct {
	Email    *fieldResult      `json:"email,omitempty"`
	Name     *fieldResult      `json:"name,omitempty"`
	Password *fieldResult      `json:"password,omitempty"`
	Strength *strengthResponse `json:"strength,omitempty"`
}

type strengthRequest struct {
	Password string `json:"password"`
}

type strengthResponse struct {
	Score    int      `json:"score"`
	Label    string   `json:"label"`
	Feedback []string `json:"feedback"`
}
