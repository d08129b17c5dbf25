package domain

// ScreenStack names the set of screens the UI shell should render.
type ScreenStack string

const (
	StackLoading ScreenStack = "loading"
	StackAuth    ScreenStack = "auth"
	StackApp     ScreenStack = "app"
)

// SessionState is the observable auth state: loading, authenticated (User
// set) or unauthenticated (User nil).
type SessionState struct {
	User      *User `json:"user"`
	IsLoading bool  `json:"is_loading"`
}

// Authenticated reports whether a user is logged in.
func (s SessionState) Authenticated() bool {
	return !s.IsLoading && s.User != nil
}

// Stack decides which screen stack to render. Loading wins over everything.
func (s SessionState) Stack() ScreenStack {
	switch {
	case s.IsLoading:
		return StackLoading
	case s.User != nil:
		return StackApp
	default:
		return StackAuth
	}
}
