package auth

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newAuthServiceForTests(t *testing.T) *Service {
	t.Helper()
	repo, err := NewFileRepo(t.TempDir())
	if err != nil {
		t.Fatalf("new auth repo: %v", err)
	}
	return NewService(repo, log.New(io.Discard, "", 0))
}

func newSessionCookie(name, token string) *http.Cookie {
	return &http.Cookie{Name: name, Value: token}
}

func TestService_SignupValidation(t *testing.T) {
	svc := newAuthServiceForTests(t)
	now := time.Date(2026, 2, 7, 9, 0, 0, 0, time.UTC)

	if _, _, _, err := svc.Signup("not-an-email", "", "longenough", now); err != ErrInvalidEmail {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	if _, _, _, err := svc.Signup("tester@example.com", "", "short", now); err != ErrPasswordTooShort {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}

	u, _, _, err := svc.Signup("tester@example.com", "", "longenough", now)
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if u.DisplayName != "tester" {
		t.Fatalf("expected display name from email local part, got %q", u.DisplayName)
	}
	if u.PasswordHash == "longenough" {
		t.Fatalf("password must never be stored in the clear")
	}

	if _, _, _, err := svc.Signup("Tester@Example.com", "", "longenough", now); err != ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken for same email in other case, got %v", err)
	}
}

func TestService_LoginChecksPassword(t *testing.T) {
	svc := newAuthServiceForTests(t)
	now := time.Date(2026, 2, 7, 9, 0, 0, 0, time.UTC)

	if _, _, _, err := svc.Signup("tester@example.com", "Tess", "correct horse", now); err != nil {
		t.Fatalf("signup: %v", err)
	}

	if _, _, _, err := svc.Login("tester@example.com", "wrong horse", now); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, _, _, err := svc.Login("nobody@example.com", "correct horse", now); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}

	u, token, _, err := svc.Login("tester@example.com", "correct horse", now)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if u.DisplayName != "Tess" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if token == "" {
		t.Fatalf("expected a session token")
	}
}

func TestService_AuthenticateRequest_ExpiredSessionIsRejected(t *testing.T) {
	svc := newAuthServiceForTests(t)
	now := time.Date(2026, 2, 7, 10, 0, 0, 0, time.UTC)

	if _, _, _, err := svc.Signup("expired@example.com", "", "longenough", now); err != nil {
		t.Fatalf("signup: %v", err)
	}
	u, token, exp, err := svc.Login("expired@example.com", "longenough", now)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if u.Email != "expired@example.com" {
		t.Fatalf("unexpected user: %+v", u)
	}

	req := httptest.NewRequest("GET", "/api/auth/session", nil)
	req.AddCookie(newSessionCookie(svc.cookieName, token))

	if _, _, ok := svc.AuthenticateRequest(req, exp.Add(time.Second)); ok {
		t.Fatalf("expected expired session to be rejected")
	}
	if _, _, ok := svc.AuthenticateRequest(req, now.Add(time.Minute)); ok {
		t.Fatalf("expired session must be deleted, not just ignored")
	}
}

func TestService_LogoutRevokesSession(t *testing.T) {
	svc := newAuthServiceForTests(t)
	now := time.Date(2026, 2, 7, 11, 0, 0, 0, time.UTC)

	if _, _, _, err := svc.Signup("bye@example.com", "", "longenough", now); err != nil {
		t.Fatalf("signup: %v", err)
	}
	_, token, _, err := svc.Login("bye@example.com", "longenough", now)
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/auth/logout", nil)
	req.AddCookie(newSessionCookie(svc.cookieName, token))

	if _, _, ok := svc.AuthenticateRequest(req, now); !ok {
		t.Fatalf("expected live session before logout")
	}
	svc.RevokeSessionForRequest(req)
	if _, _, ok := svc.AuthenticateRequest(req, now); ok {
		t.Fatalf("expected revoked session to be rejected")
	}
}
