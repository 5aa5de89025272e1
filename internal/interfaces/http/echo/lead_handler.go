package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	leadapp "github.com/arkenix/client-portal/internal/application/lead"
	"github.com/arkenix/client-portal/internal/domain/lead"
)

type LeadHandler struct {
	submit   leadapp.SubmitContact
	waitlist leadapp.JoinWaitlist
	logger   *zap.Logger
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Message string `json:"message"`
	Source  string `json:"source"`
}

type waitlistRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func NewLeadHandler(submit leadapp.SubmitContact, waitlist leadapp.JoinWaitlist, logger *zap.Logger) *LeadHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeadHandler{submit: submit, waitlist: waitlist, logger: logger}
}

func (h *LeadHandler) SubmitContact(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "bad_request", "invalid request body")
	}

	err := h.submit.Execute(c.Request().Context(), leadapp.SubmitContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Message: req.Message,
		Source:  req.Source,
	})
	if err != nil {
		return h.leadError(c, "submit contact", err)
	}

	return c.JSON(http.StatusCreated, apiResponse{Data: map[string]string{"status": "received"}})
}

func (h *LeadHandler) JoinWaitlist(c echo.Context) error {
	var req waitlistRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "bad_request", "invalid request body")
	}

	err := h.waitlist.Execute(c.Request().Context(), leadapp.JoinWaitlistInput{Name: req.Name, Email: req.Email})
	if err != nil {
		return h.leadError(c, "join waitlist", err)
	}

	return c.JSON(http.StatusCreated, apiResponse{Data: map[string]string{"status": "joined"}})
}

func (h *LeadHandler) leadError(c echo.Context, op string, err error) error {
	switch {
	case errors.Is(err, lead.ErrInvalidEmail):
		return respondError(c, http.StatusBadRequest, "invalid_email", "a valid email address is required")
	case errors.Is(err, lead.ErrNameRequired):
		return respondError(c, http.StatusBadRequest, "name_required", "name is required")
	case errors.Is(err, lead.ErrMessageRequired):
		return respondError(c, http.StatusBadRequest, "message_required", "message is required")
	case errors.Is(err, leadapp.ErrInvalidSubmission):
		return respondError(c, http.StatusBadRequest, "invalid_submission", err.Error())
	}

	h.logger.Error(op, zap.Error(err))
	return respondError(c, http.StatusInternalServerError, "internal_error", "failed to save submission")
}
