package domain

import "testing"

func TestSessionState_Stack(t *testing.T) {
	u := &User{ID: "1", Name: "Jane", Email: "jane@example.com"}

	cases := []struct {
		name  string
		state SessionState
		want  ScreenStack
		auth  bool
	}{
		{"loading", SessionState{IsLoading: true}, StackLoading, false},
		{"loading with stale user", SessionState{IsLoading: true, User: u}, StackLoading, false},
		{"authenticated", SessionState{User: u}, StackApp, true},
		{"unauthenticated", SessionState{}, StackAuth, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.state.Stack(); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
			if got := tc.state.Authenticated(); got != tc.auth {
				t.Fatalf("expected authenticated=%v, got %v", tc.auth, got)
			}
		})
	}
}

func TestSucceeded_CopiesUser(t *testing.T) {
	u := &User{ID: "1", Name: "Jane", Email: "jane@example.com"}
	res := Succeeded(u)
	u.Name = "changed"

	if !res.Success || res.Error != "" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.User.Name != "Jane" {
		t.Fatalf("expected copy to be isolated, got %q", res.User.Name)
	}
}

func TestErrorForMessage(t *testing.T) {
	if ErrorForMessage(MsgUserExists) != ErrUserExists {
		t.Fatalf("expected ErrUserExists")
	}
	if ErrorForMessage(MsgUserNotFound) != ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound")
	}
	if ErrorForMessage(MsgInvalidPassword) != ErrInvalidPassword {
		t.Fatalf("expected ErrInvalidPassword")
	}
	if ErrorForMessage(MsgLoginFailed) != nil {
		t.Fatalf("expected nil for generic failure")
	}
}
