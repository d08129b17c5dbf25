package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/authshell/authshell/internal/api/handler"
	"github.com/authshell/authshell/internal/core/domain"
	"github.com/authshell/authshell/internal/core/ports"
	"github.com/authshell/authshell/internal/core/validation"
)

type stubAuthService struct {
	mu      sync.Mutex
	logouts int
}

func (s *stubAuthService) Login(context.Context, string, string) domain.AuthResult {
	return domain.Failed(domain.MsgUserNotFound)
}

func (s *stubAuthService) Signup(_ context.Context, name, email, _ string) domain.AuthResult {
	return domain.Succeeded(&domain.User{ID: "1", Name: name, Email: email})
}

func (s *stubAuthService) Logout(context.Context) {
	s.mu.Lock()
	s.logouts++
	s.mu.Unlock()
}

func (s *stubAuthService) State() domain.SessionState { return domain.SessionState{} }

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

// The prometheus middleware registers collectors globally, so the router is
// built once per test binary.
var (
	routerOnce sync.Once
	testRouter *echo.Echo
	testStub   = &stubAuthService{}
)

func router() *echo.Echo {
	routerOnce.Do(func() {
		testRouter = NewRouter(testStub, map[string]ports.Pinger{"storage": okPinger{}}, zerolog.Nop())
	})
	return testRouter
}

func serve(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	router().ServeHTTP(rec, req)
	return rec
}

func TestRouter_Routes(t *testing.T) {
	cases := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/health/ready", "", http.StatusOK},
		{http.MethodGet, "/auth/session", "", http.StatusOK},
		{http.MethodPost, "/auth/login", `{"email":"a@b.co","password":"secret1"}`, http.StatusNotFound},
		{http.MethodPost, "/auth/signup", `{"name":"Jane","email":"a@b.co","password":"Abcdef1!","confirm_password":"Abcdef1!"}`, http.StatusCreated},
		{http.MethodPost, "/validate", `{"name":"Jane"}`, http.StatusOK},
		{http.MethodPost, "/validate/password-strength", `{"password":"x"}`, http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodGet, "/does-not-exist", "", http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := serve(tc.method, tc.path, tc.body)
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRouter_Logout(t *testing.T) {
	rec := serve(http.MethodPost, "/auth/logout", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	testStub.mu.Lock()
	defer testStub.mu.Unlock()
	if testStub.logouts == 0 {
		t.Fatal("expected logout to reach the service")
	}
}

func TestRouter_UnknownRouteUsesErrorEnvelope(t *testing.T) {
	rec := serve(http.MethodGet, "/nope", "")
	if !strings.Contains(rec.Body.String(), `"error"`) {
		t.Fatalf("expected JSON error envelope, got %s", rec.Body.String())
	}
}

func TestRouter_ValidationFailureRendersFields(t *testing.T) {
	rec := serve(http.MethodPost, "/auth/signup", `{"name":"Jane","email":"jane@example.com","password":"weak","confirm_password":"weak"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp handler.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Error != "validation failed" || resp.Fields["password"] != validation.MsgPasswordTooShort {
		t.Fatalf("unexpected body: %+v", resp)
	}
	if _, ok := resp.Fields["email"]; ok {
		t.Fatalf("valid field reported as failing: %+v", resp.Fields)
	}
}

func TestRouter_InvalidPayload(t *testing.T) {
	rec := serve(http.MethodPost, "/auth/login", "not-json")
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "invalid payload") {
		t.Fatalf("expected 400 invalid payload, got %d %s", rec.Code, rec.Body.String())
	}
}
