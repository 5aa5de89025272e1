package echo_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	accountapp "github.com/arkenix/client-portal/internal/application/account"
	leadapp "github.com/arkenix/client-portal/internal/application/lead"
	"github.com/arkenix/client-portal/internal/domain/account"
	"github.com/arkenix/client-portal/internal/domain/lead"
	httpecho "github.com/arkenix/client-portal/internal/interfaces/http/echo"
)

type fakeAccounts struct{}

func (fakeAccounts) FindByUsername(_ context.Context, username string) (*account.Account, error) {
	if username != "acme" {
		return nil, account.ErrAccountNotFound
	}
	return &account.Account{ClientID: "client-a", Username: "acme", Password: "open-sesame"}, nil
}

type fakeSubmitContact struct{ err error }

func (f fakeSubmitContact) Execute(context.Context, leadapp.SubmitContactInput) error { return f.err }

type fakeJoinWaitlist struct{ err error }

func (f fakeJoinWaitlist) Execute(context.Context, leadapp.JoinWaitlistInput) error { return f.err }

func newAuthServer(t *testing.T) (*echo.Echo, *accountapp.TokenIssuer) {
	t.Helper()

	tokens, err := accountapp.NewTokenIssuer("auth-secret", time.Hour)
	if err != nil {
		t.Fatalf("token issuer: %v", err)
	}

	e := echo.New()
	httpecho.RegisterRoutes(e, httpecho.Handlers{
		Auth: httpecho.NewAuthHandler(accountapp.NewLogin(fakeAccounts{}, tokens), zap.NewNop()),
	}, httpecho.RouteConfig{Sessions: tokens})
	return e, tokens
}

func TestLoginHandler(t *testing.T) {
	t.Parallel()

	e, tokens := newAuthServer(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/v1/auth/login", `{"username":"acme","password":"open-sesame"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	data := decodeData(t, rec.Body.Bytes())
	token, _ := data["token"].(string)
	session, err := tokens.Parse(token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if session.ClientID != "client-a" {
		t.Fatalf("unexpected session: %+v", session)
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodGet, "/api/v1/auth/session", nil), token))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from session, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/v1/auth/login", `{"username":"acme","password":"nope"}`))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLeadHandlers(t *testing.T) {
	t.Parallel()

	e := echo.New()
	httpecho.RegisterRoutes(e, httpecho.Handlers{
		Leads: httpecho.NewLeadHandler(
			fakeSubmitContact{},
			fakeJoinWaitlist{err: leadapp.ErrSaveSubmission},
			nil,
		),
	}, httpecho.RouteConfig{})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/v1/contact", `{"name":"Ada","email":"ada@example.com","message":"hi"}`))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/v1/waitlist", `{"name":"Ada"}`))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 when saving fails, got %d", rec.Code)
	}

	e = echo.New()
	httpecho.RegisterRoutes(e, httpecho.Handlers{
		Leads: httpecho.NewLeadHandler(
			fakeSubmitContact{err: errors.Join(leadapp.ErrInvalidSubmission, lead.ErrInvalidEmail)},
			fakeJoinWaitlist{},
			nil,
		),
	}, httpecho.RouteConfig{})

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/v1/contact", `{"name":"Ada","email":"nope","message":"hi"}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
