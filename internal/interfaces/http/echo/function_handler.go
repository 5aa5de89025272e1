package echo

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	contactapp "github.com/arkenix/client-portal/internal/application/contact"
	"github.com/arkenix/client-portal/internal/application/importer"
	"github.com/arkenix/client-portal/internal/domain/contact"
)

const functionImportSource = "functions/import_client_users"

// FunctionHandler keeps the request and response shapes of the legacy serverless
// functions: a flat {status, message, ...} body instead of the portal envelope, and
// client_id taken from the request body.
type FunctionHandler struct {
	commit importer.CommitImport
	add    contactapp.AddRecord
	update contactapp.UpdateRecord
	remove contactapp.DeleteRecords
	logger *zap.Logger
}

type functionResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// deleteResponse always carries deleted and deleted_ids, empty when nothing matched.
type deleteResponse struct {
	Status     string   `json:"status"`
	Message    string   `json:"message"`
	Deleted    int      `json:"deleted"`
	DeletedIDs []string `json:"deleted_ids"`
}

type importRowsRequest struct {
	ClientID any `json:"client_id"`
	Rows     any `json:"rows"`
}

type deleteUsersRequest struct {
	ClientID any `json:"client_id"`
	UserIDs  any `json:"user_ids"`
}

type updateUserRequest struct {
	ClientID any `json:"client_id"`
	UserID   any `json:"user_id"`
	UserData any `json:"user_data"`
}

type addUserRequest struct {
	ClientID any `json:"client_id"`
	UserData any `json:"user_data"`
}

func NewFunctionHandler(
	commit importer.CommitImport,
	add contactapp.AddRecord,
	update contactapp.UpdateRecord,
	remove contactapp.DeleteRecords,
	logger *zap.Logger,
) *FunctionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FunctionHandler{commit: commit, add: add, update: update, remove: remove, logger: logger}
}

func functionError(c echo.Context, status int, message string) error {
	return c.JSON(status, functionResponse{Status: "error", Message: message})
}

func clientIDFrom(raw any) (string, bool) {
	s, ok := raw.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

func (h *FunctionHandler) ImportClientUsers(c echo.Context) error {
	var req importRowsRequest
	if err := c.Bind(&req); err != nil {
		return functionError(c, http.StatusBadRequest, "invalid request body")
	}

	clientID, ok := clientIDFrom(req.ClientID)
	if !ok {
		return functionError(c, http.StatusBadRequest, "client_id is required and must be a string")
	}
	items, ok := req.Rows.([]any)
	if !ok {
		return functionError(c, http.StatusBadRequest, "rows must be an array")
	}
	if len(items) == 0 {
		return functionError(c, http.StatusBadRequest, "rows array cannot be empty")
	}

	rows := make([]contact.NormalizedRow, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return functionError(c, http.StatusBadRequest, fmt.Sprintf("rows[%d] must be an object", i))
		}
		rows = append(rows, contact.RowFromMap(obj))
	}

	result, err := h.commit.Execute(c.Request().Context(), importer.CommitImportInput{
		ClientID: clientID,
		Source:   functionImportSource,
		Rows:     rows,
	})
	if err != nil {
		var invalid *importer.InvalidRowsError
		switch {
		case errors.As(err, &invalid):
			return c.JSON(http.StatusBadRequest, functionResponse{Status: "error", Message: err.Error(), Data: invalid.Errors})
		case errors.Is(err, importer.ErrMissingClientID) || errors.Is(err, importer.ErrNoRows):
			return functionError(c, http.StatusBadRequest, err.Error())
		}
		h.logger.Error("import client users", zap.String("client_id", clientID), zap.Error(err))
		return functionError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}

	status := http.StatusOK
	if result.Status == importer.StatusError {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, result)
}

func (h *FunctionHandler) DeleteClientUsers(c echo.Context) error {
	var req deleteUsersRequest
	if err := c.Bind(&req); err != nil {
		return functionError(c, http.StatusBadRequest, "invalid request body")
	}

	clientID, ok := clientIDFrom(req.ClientID)
	if !ok {
		return functionError(c, http.StatusBadRequest, "client_id is required and must be a string")
	}
	rawIDs, ok := req.UserIDs.([]any)
	if !ok || len(rawIDs) == 0 {
		return functionError(c, http.StatusBadRequest, "user_ids is required and must be a non-empty array")
	}

	ids := idStrings(rawIDs)
	if len(ids) == 0 {
		return functionError(c, http.StatusBadRequest, "No valid user_ids provided")
	}

	out, err := h.remove.Execute(c.Request().Context(), contactapp.DeleteRecordsInput{ClientID: clientID, IDs: ids})
	if err != nil {
		if errors.Is(err, contactapp.ErrNoIDs) {
			return functionError(c, http.StatusBadRequest, "No valid user_ids provided")
		}
		h.logger.Error("delete client users", zap.String("client_id", clientID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, deleteResponse{
			Status:     "error",
			Message:    fmt.Sprintf("Failed to delete users: %v", err),
			DeletedIDs: []string{},
		})
	}

	deletedIDs := out.DeletedIDs
	if deletedIDs == nil {
		deletedIDs = []string{}
	}
	return c.JSON(http.StatusOK, deleteResponse{
		Status:     "success",
		Message:    fmt.Sprintf("Successfully deleted %d user(s)", out.Deleted),
		Deleted:    out.Deleted,
		DeletedIDs: deletedIDs,
	})
}

func (h *FunctionHandler) UpdateClientUser(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return functionError(c, http.StatusBadRequest, "invalid request body")
	}

	clientID, ok := clientIDFrom(req.ClientID)
	if !ok {
		return functionError(c, http.StatusBadRequest, "client_id is required and must be a string")
	}
	userID, ok := idString(req.UserID)
	if !ok {
		return functionError(c, http.StatusBadRequest, "user_id is required and must be a string or number")
	}
	data, ok := req.UserData.(map[string]any)
	if !ok {
		return functionError(c, http.StatusBadRequest, "user_data is required and must be an object")
	}

	rec, err := h.update.Execute(c.Request().Context(), contactapp.UpdateRecordInput{ClientID: clientID, ID: userID, Data: data})
	if err != nil {
		return h.mutationError(c, "update client user", clientID, err, "Failed to update user")
	}

	return c.JSON(http.StatusOK, functionResponse{Status: "success", Message: "User updated successfully", Data: rec})
}

func (h *FunctionHandler) AddClientUser(c echo.Context) error {
	var req addUserRequest
	if err := c.Bind(&req); err != nil {
		return functionError(c, http.StatusBadRequest, "invalid request body")
	}

	clientID, ok := clientIDFrom(req.ClientID)
	if !ok {
		return functionError(c, http.StatusBadRequest, "client_id is required and must be a string")
	}
	data, ok := req.UserData.(map[string]any)
	if !ok {
		return functionError(c, http.StatusBadRequest, "user_data is required and must be an object")
	}

	rec, err := h.add.Execute(c.Request().Context(), contactapp.AddRecordInput{ClientID: clientID, Data: data})
	if err != nil {
		return h.mutationError(c, "add client user", clientID, err, "Failed to add user")
	}

	return c.JSON(http.StatusOK, functionResponse{Status: "success", Message: "User added successfully", Data: rec})
}

func (h *FunctionHandler) mutationError(c echo.Context, op, clientID string, err error, failure string) error {
	var invalid *contactapp.InvalidRecordError
	switch {
	case errors.Is(err, contactapp.ErrNoUpdatableFields):
		return functionError(c, http.StatusBadRequest, "No valid fields to update")
	case errors.As(err, &invalid):
		return c.JSON(http.StatusBadRequest, functionResponse{Status: "error", Message: err.Error(), Data: invalid.Errors})
	case errors.Is(err, contactapp.ErrRecordNotFound):
		return functionError(c, http.StatusNotFound, "User not found or you do not have permission to update this user")
	}

	h.logger.Error(op, zap.String("client_id", clientID), zap.Error(err))
	return functionError(c, http.StatusInternalServerError, fmt.Sprintf("%s: %v", failure, err))
}

// idString accepts the string or numeric ids the functions have always taken.
func idString(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return "", false
		}
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}

func idStrings(raw []any) []string {
	ids := make([]string, 0, len(raw))
	for _, item := range raw {
		if id, ok := idString(item); ok {
			ids = append(ids, id)
		}
	}
	return ids
}
