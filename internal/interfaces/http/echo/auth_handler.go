package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	accountapp "github.com/arkenix/client-portal/internal/application/account"
)

type AuthHandler struct {
	login  accountapp.Login
	logger *zap.Logger
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func NewAuthHandler(login accountapp.Login, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{login: login, logger: logger}
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "bad_request", "invalid request body")
	}

	out, err := h.login.Execute(c.Request().Context(), accountapp.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, accountapp.ErrInvalidCredentials) {
			return respondError(c, http.StatusUnauthorized, "invalid_credentials", "invalid username or password")
		}
		h.logger.Error("login", zap.String("username", req.Username), zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "internal_error", "failed to log in")
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

// Session echoes the authenticated caller, letting the portal check a stored token.
func (h *AuthHandler) Session(c echo.Context) error {
	s, ok := sessionFrom(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized", "missing session")
	}
	return c.JSON(http.StatusOK, apiResponse{Data: s})
}
