package echo

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/arkenix/client-portal/internal/domain/account"
)

type SessionParser interface {
	Parse(token string) (account.Session, error)
}

// RequireSession resolves the bearer token into a Session on the request context.
// Browsers cannot set headers on an EventSource, so access_token in the query string
// is accepted as a fallback.
func RequireSession(sessions SessionParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				token = c.QueryParam("access_token")
			}
			if strings.TrimSpace(token) == "" {
				return respondError(c, http.StatusUnauthorized, "unauthorized", "missing session token")
			}

			s, err := sessions.Parse(strings.TrimSpace(token))
			if err != nil {
				return respondError(c, http.StatusUnauthorized, "unauthorized", "invalid or expired session")
			}

			c.SetRequest(c.Request().WithContext(account.WithSession(c.Request().Context(), s)))
			return next(c)
		}
	}
}

func sessionFrom(c echo.Context) (account.Session, bool) {
	return account.SessionFrom(c.Request().Context())
}
