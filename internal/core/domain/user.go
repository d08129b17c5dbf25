package domain

// User models one registered identity. Fields never change after signup.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResult is what Login and Signup hand back to the UI shell. Failures
// are carried in Error instead of being returned as Go errors.
type AuthResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	User    *User  `json:"user,omitempty"`
}

// Failure messages surfaced through AuthResult.Error.
const (
	MsgUserNotFound    = "User not found"
	MsgUserExists      = "User already exists"
	MsgInvalidPassword = "Invalid password"
	MsgLoginFailed     = "Login failed"
	MsgSignupFailed    = "Signup failed"
)

// Failed builds an unsuccessful AuthResult.
func Failed(msg string) AuthResult {
	return AuthResult{Success: false, Error: msg}
}

// Succeeded builds a successful AuthResult carrying a copy of u.
func Succeeded(u *User) AuthResult {
	clone := *u
	return AuthResult{Success: true, User: &clone}
}
