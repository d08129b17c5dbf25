// Package validation classifies raw form input (email, name, password) and
// scores password strength.
//
// Every function is pure and returns a value; nothing here panics or returns
// an error. Rules are ASCII-only on purpose: accented letters are rejected by
// ValidateName even though they are letters.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxEmailLength    = 254
	minNameLength     = 2
	maxNameLength     = 50
	minPasswordLength = 6
	maxPasswordLength = 128
	strongMinLength   = 8
)

// Messages returned in Result.Message.
const (
	MsgEmailRequired    = "Email is required"
	MsgEmailInvalid     = "Please enter a valid email address"
	MsgEmailTooLong     = "Email address is too long"
	MsgNameRequired     = "Name is required"
	MsgNameTooShort     = "Name must be at least 2 characters long"
	MsgNameTooLong      = "Name must be less than 50 characters"
	MsgNameInvalid      = "Name can only contain letters, spaces, hyphens, and apostrophes"
	MsgPasswordRequired = "Password is required"
	MsgPasswordTooShort = "Password must be at least 6 characters long"
	MsgPasswordTooLong  = "Password is too long"
	MsgPasswordWeak     = "Password must contain at least 8 characters, 1 uppercase letter, 1 lowercase letter, 1 number, and 1 special character (@$!%*?&)"
	MsgPasswordMismatch = "Passwords do not match"
	MsgPhoneRequired    = "Phone number is required"
	MsgPhoneInvalid     = "Please enter a valid phone number"
	MsgUsernameRequired = "Username is required"
	MsgUsernameInvalid  = "Username must be 3-20 characters: letters, numbers, and underscores"
)

// Feedback entries produced by ValidatePasswordStrength, in check order.
const (
	FeedbackLength  = "At least 8 characters"
	FeedbackLower   = "One lowercase letter"
	FeedbackUpper   = "One uppercase letter"
	FeedbackDigit   = "One number"
	FeedbackSpecial = "One special character (@$!%*?&)"
)

const (
	emailLocal = "[A-Za-z0-9.!#$%&'*+/=?^_`{|}~-]+"
	emailLabel = `[A-Za-z0-9](?:[A-Za-z0-9-]{0,61}[A-Za-z0-9])?`
)

var (
	emailRegex = regexp.MustCompile(`^` + emailLocal + `@` + emailLabel + `(?:\.` + emailLabel + `)*$`)

	// Letters, apostrophes, hyphens and any Unicode space.
	nameRegex = regexp.MustCompile(`^[A-Za-z\t\n\v\f\r\p{Z}\x{FEFF}'-]+$`)

	strongCharsetRegex = regexp.MustCompile(`^[A-Za-z0-9@$!%*?&]+$`)
	basicPasswordRegex = regexp.MustCompile(`^.{6,}$`)

	lowerRegex   = regexp.MustCompile(`[a-z]`)
	upperRegex   = regexp.MustCompile(`[A-Z]`)
	digitRegex   = regexp.MustCompile(`[0-9]`)
	specialRegex = regexp.MustCompile(`[@$!%*?&]`)

	phoneRegex    = regexp.MustCompile(`^\+?[1-9][0-9]{0,15}$`)
	usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)
)

// Result is a pass/fail outcome with an optional reason.
type Result struct {
	Valid   bool   `json:"is_valid"`
	Message string `json:"message,omitempty"`
}

func ok() Result { return Result{Valid: true} }

func fail(msg string) Result { return Result{Valid: false, Message: msg} }

// ValidateEmail checks presence, format and length, in that order. The
// length limit applies to the untrimmed input.
func ValidateEmail(email string) Result {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return fail(MsgEmailRequired)
	}
	if !emailRegex.MatchString(trimmed) || strings.Contains(trimmed, "..") {
		return fail(MsgEmailInvalid)
	}
	if utf8.RuneCountInString(email) > maxEmailLength {
		return fail(MsgEmailTooLong)
	}
	return ok()
}

// ValidateName checks a display name after trimming.
func ValidateName(name string) Result {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fail(MsgNameRequired)
	}

	n := utf8.RuneCountInString(trimmed)
	if n < minNameLength {
		return fail(MsgNameTooShort)
	}
	if n > maxNameLength {
		return fail(MsgNameTooLong)
	}
	if !nameRegex.MatchString(trimmed) {
		return fail(MsgNameInvalid)
	}
	return ok()
}

// ValidatePassword checks length bounds and, when requireStrong is set, the
// strong-password rule. The password is never trimmed.
func ValidatePassword(password string, requireStrong bool) Result {
	if password == "" {
		return fail(MsgPasswordRequired)
	}

	n := utf8.RuneCountInString(password)
	if n < minPasswordLength {
		return fail(MsgPasswordTooShort)
	}
	if n > maxPasswordLength {
		return fail(MsgPasswordTooLong)
	}

	if requireStrong {
		if !IsStrongPassword(password) {
			return fail(MsgPasswordWeak)
		}
		return ok()
	}

	// '.' does not match newlines, so a password spanning lines fails here.
	if !basicPasswordRegex.MatchString(password) {
		return fail(MsgPasswordTooShort)
	}
	return ok()
}

// IsStrongPassword reports whether password has at least 8 characters drawn
// only from letters, digits and @$!%*?&, with at least one of each class.
func IsStrongPassword(password string) bool {
	return utf8.RuneCountInString(password) >= strongMinLength &&
		strongCharsetRegex.MatchString(password) &&
		lowerRegex.MatchString(password) &&
		upperRegex.MatchString(password) &&
		digitRegex.MatchString(password) &&
		specialRegex.MatchString(password)
}

// ValidatePasswordConfirmation fails when the two entries differ.
func ValidatePasswordConfirmation(password, confirm string) Result {
	if password != confirm {
		return fail(MsgPasswordMismatch)
	}
	return ok()
}

// ValidatePhone checks an optional international phone number.
func ValidatePhone(phone string) Result {
	trimmed := strings.TrimSpace(phone)
	if trimmed == "" {
		return fail(MsgPhoneRequired)
	}
	if !phoneRegex.MatchString(trimmed) {
		return fail(MsgPhoneInvalid)
	}
	return ok()
}

// ValidateUsername checks a 3-20 character handle.
func ValidateUsername(username string) Result {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" {
		return fail(MsgUsernameRequired)
	}
	if !usernameRegex.MatchString(trimmed) {
		return fail(MsgUsernameInvalid)
	}
	return ok()
}
