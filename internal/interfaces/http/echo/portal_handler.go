package echo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	contactapp "github.com/arkenix/client-portal/internal/application/contact"
	"github.com/arkenix/client-portal/internal/application/importer"
	"github.com/arkenix/client-portal/internal/domain/contact"
)

const (
	sampleFileName    = "sample_data_upload.xlsx"
	xlsxContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	portalImportLabel = "portal upload"
	eventsKeepAlive   = 25 * time.Second
	filterParamPrefix = "filter."
)

type PortalUseCases struct {
	List      contactapp.ListRecords
	Add       contactapp.AddRecord
	Update    contactapp.UpdateRecord
	Delete    contactapp.DeleteRecords
	Dashboard contactapp.Dashboard
	Preview   importer.PreviewUpload
	Commit    importer.CommitImport
	History   importer.ListImportRuns
}

type ChangeSubscriber interface {
	Subscribe(clientID string) (<-chan struct{}, func())
}

type SampleWriter func(w io.Writer) error

// PortalHandler serves the authenticated client portal. The client id always comes
// from the session, never from the request body.
type PortalHandler struct {
	uc        PortalUseCases
	events    ChangeSubscriber
	sample    SampleWriter
	keepAlive time.Duration
	logger    *zap.Logger
}

type deleteRecordsRequest struct {
	IDs []any `json:"ids"`
}

type commitUploadRequest struct {
	FileName string                  `json:"file_name"`
	Rows     []contact.NormalizedRow `json:"rows"`
}

type commitUploadResponse struct {
	Status   importer.ImportStatus `json:"status"`
	Inserted int64                 `json:"inserted"`
	Message  string                `json:"message"`
	Errors   []string              `json:"errors,omitempty"`
}

func NewPortalHandler(uc PortalUseCases, events ChangeSubscriber, sample SampleWriter, logger *zap.Logger) *PortalHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PortalHandler{uc: uc, events: events, sample: sample, keepAlive: eventsKeepAlive, logger: logger}
}

func (h *PortalHandler) ListRecords(c echo.Context) error {
	s, ok := sessionFrom(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized", "missing session")
	}

	in, err := listInputFrom(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid_query", err.Error())
	}
	in.ClientID = s.ClientID

	out, err := h.uc.List.Execute(c.Request().Context(), in)
	if err != nil {
		if errors.Is(err, contactapp.ErrInvalidQuery) {
			return respondError(c, http.StatusBadRequest, "invalid_query", err.Error())
		}
		h.logger.Error("list records", zap.String("client_id", s.ClientID), zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "internal_error", "failed to load records")
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func listInputFrom(c echo.Context) (contactapp.ListRecordsInput, error) {
	in := contactapp.ListRecordsInput{
		Search:   c.QueryParam("q"),
		UserType: c.QueryParam("user_type"),
		From:     c.QueryParam("from"),
		To:       c.QueryParam("to"),
		SortDesc: strings.EqualFold(c.QueryParam("order"), "desc"),
	}
	in.SortColumn = c.QueryParam("sort")

	if cols := strings.TrimSpace(c.QueryParam("columns")); cols != "" {
		for _, col := range strings.Split(cols, ",") {
			if col = strings.TrimSpace(col); col != "" {
				in.SearchColumns = append(in.SearchColumns, col)
			}
		}
	}

	for key, values := range c.QueryParams() {
		col, ok := strings.CutPrefix(key, filterParamPrefix)
		if !ok || col == "" {
			continue
		}
		if in.ColumnFilters == nil {
			in.ColumnFilters = make(map[string][]string)
		}
		in.ColumnFilters[col] = append(in.ColumnFilters[col], values...)
	}

	var err error
	if in.Page, err = optionalInt(c.QueryParam("page")); err != nil {
		return in, fmt.Errorf("page must be a number")
	}
	if in.PageSize, err = optionalInt(c.QueryParam("page_size")); err != nil {
		return in, fmt.Errorf("page_size must be a number")
	}
	return in, nil
}

func optionalInt(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func (h *PortalHandler) AddRecord(c echo.Context) error {
	s, ok := sessionFrom(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized", "missing session")
	}

	data, err := decodeObject(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "bad_request", "request body must be a JSON object")
	}

	rec, err := h.uc.Add.Execute(c.Request().Context(), contactapp.AddRecordInput{ClientID: s.ClientID, Data: data})
	if err != nil {
		return h.recordError(c, "add record", s.ClientID, err)
	}
	return c.JSON(http.StatusCreated, apiResponse{Data: rec})
}

func (h *PortalHandler) UpdateRecord(c echo.Context) error {
	s, ok := sessionFrom(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized", "missing session")
	}

	data, err := decodeObject(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "bad_request", "request body must be a JSON object")
	}

	rec, err := h.uc.Update.Execute(c.Request().Context(), contactapp.UpdateRecordInput{
		ClientID: s.ClientID,
		ID:       c.Param("id"),
		Data:     data,
	})
	if err != nil {
		return h.recordError(c, "update record", s.ClientID, err)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: rec})
}

func (h *PortalHandler) DeleteRecords(c echo.Context) error {
	s, ok := sessionFrom(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized", "missing session")
	}

	var req deleteRecordsRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "bad_request", "invalid request body")
	}

	out, err := h.uc.Delete.Execute(c.Request().Context(), contactapp.DeleteRecordsInput{
		ClientID: s.ClientID,
		IDs:      idStrings(req.IDs),
	})
	if err != nil {
		return h.recordError(c, "delete records", s.ClientID, err)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

// decodeObject reads the body as a loosely typed JSON object. Field filtering happens
// in the use case.
func decodeObject(c echo.Context) (map[string]any, error) {
	var data map[string]any
	if err := json.NewDecoder(c.Request().Body).Decode(&data); err != nil {
		return nil, err
	}
	return data, nil
}

func (h *PortalHandler) recordError(c echo.Context, op, clientID string, err error) error {
	var invalid *contactapp.InvalidRecordError
	switch {
	case errors.As(err, &invalid):
		return c.JSON(http.StatusUnprocessableEntity, apiResponse{Error: &errorBody{
			Code:    "invalid_record",
			Message: "record failed validation",
			Details: invalid.Errors,
		}})
	case errors.Is(err, contactapp.ErrNoUpdatableFields):
		return respondError(c, http.StatusBadRequest, "no_fields", "no valid fields provided")
	case errors.Is(err, contactapp.ErrNoIDs):
		return respondError(c, http.StatusBadRequest, "no_ids", "no valid ids provided")
	case errors.Is(err, contactapp.ErrRecordNotFound):
		return respondError(c, http.StatusNotFound, "not_found", "record not found")
	}

	h.logger.Error(op, zap.String("client_id", clientID), zap.Error(err))
	return respondError(c, http.StatusInternalServerError, "internal_error", "failed to save changes")
}

func (h *PortalHandler) Dashboard(c echo.Context) error {
	s, ok := sessionFrom(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized", "missing session")
	}

	out, err := h.uc.Dashboard.Execute(c.Request().Context(), s.ClientID)
	if err != nil {
		h.logger.Error("dashboard", zap.String("client_id", s.ClientID), zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "internal_error", "failed to load dashboard")
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *PortalHandler) PreviewUpload(c echo.Context) error {
	if _, ok := sessionFrom(c); !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized", "missing session")
	}

	header, err := c.FormFile("file")
	if err != nil {
		return respondError(c, http.StatusBadRequest, "missing_file", "multipart field \"file\" is required")
	}
	body, err := header.Open()
	if err != nil {
		return respondError(c, http.StatusBadRequest, "unreadable_file", "failed to read uploaded file")
	}
	defer body.Close()

	out, err := h.uc.Preview.Execute(c.Request().Context(), importer.PreviewUploadInput{
		FileName: header.Filename,
		Body:     body,
	})
	if err != nil {
		switch {
		case errors.Is(err, importer.ErrUnsupportedFile):
			return respondError(c, http.StatusUnsupportedMediaType, "unsupported_file", "Please upload a CSV or Excel (.xlsx) file")
		case errors.Is(err, importer.ErrTooManyRows):
			return respondError(c, http.StatusRequestEntityTooLarge, "too_many_rows", err.Error())
		case errors.Is(err, importer.ErrEmptyFile):
			return respondError(c, http.StatusBadRequest, "empty_file", "The uploaded file contains no data rows")
		case errors.Is(err, importer.ErrNoValidHeaders):
			return respondError(c, http.StatusBadRequest, "no_valid_headers",
				"No valid headers found. Allowed headers: "+contact.AllowedFieldNames())
		case errors.Is(err, importer.ErrUnreadableFile):
			return respondError(c, http.StatusBadRequest, "unreadable_file", "Failed to parse file")
		}
		h.logger.Error("preview upload", zap.String("file", header.Filename), zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "internal_error", "failed to process file")
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *PortalHandler) CommitUpload(c echo.Context) error {
	s, ok := sessionFrom(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized", "missing session")
	}

	var req commitUploadRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "bad_request", "invalid request body")
	}

	source := strings.TrimSpace(req.FileName)
	if source == "" {
		source = portalImportLabel
	}

	result, err := h.uc.Commit.Execute(c.Request().Context(), importer.CommitImportInput{
		ClientID: s.ClientID,
		Source:   source,
		Rows:     req.Rows,
	})
	if err != nil {
		var invalid *importer.InvalidRowsError
		switch {
		case errors.As(err, &invalid):
			return c.JSON(http.StatusUnprocessableEntity, apiResponse{Error: &errorBody{
				Code:    "invalid_rows",
				Message: "rows failed validation",
				Details: invalid.Errors,
			}})
		case errors.Is(err, importer.ErrNoRows):
			return respondError(c, http.StatusBadRequest, "no_rows", "No valid rows to upload")
		}
		h.logger.Error("commit upload", zap.String("client_id", s.ClientID), zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "internal_error", "failed to import rows")
	}

	resp := commitUploadResponse{
		Status:   result.Status,
		Inserted: result.Inserted,
		Message:  result.Message,
		Errors:   result.Errors,
	}
	if result.Status == importer.StatusError {
		return c.JSON(http.StatusInternalServerError, apiResponse{
			Data:  resp,
			Error: &errorBody{Code: "import_failed", Message: result.Message},
		})
	}
	return c.JSON(http.StatusOK, apiResponse{Data: resp})
}

func (h *PortalHandler) UploadHistory(c echo.Context) error {
	s, ok := sessionFrom(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized", "missing session")
	}

	runs, err := h.uc.History.Execute(c.Request().Context(), s.ClientID)
	if err != nil {
		h.logger.Error("upload history", zap.String("client_id", s.ClientID), zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "internal_error", "failed to load upload history")
	}
	return c.JSON(http.StatusOK, apiResponse{Data: runs})
}

func (h *PortalHandler) DownloadSample(c echo.Context) error {
	var buf bytes.Buffer
	if err := h.sample(&buf); err != nil {
		h.logger.Error("write sample workbook", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "internal_error", "failed to build sample file")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", sampleFileName))
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Events streams a payload-free "refresh" event whenever the session's client data
// changes. The stream ends when the client disconnects.
func (h *PortalHandler) Events(c echo.Context) error {
	s, ok := sessionFrom(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized", "missing session")
	}

	signals, cancel := h.events.Subscribe(s.ClientID)
	defer cancel()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)

	if _, err := io.WriteString(res, ": connected\n\n"); err != nil {
		return nil
	}
	res.Flush()

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, open := <-signals:
			if !open {
				return nil
			}
			if _, err := io.WriteString(res, "event: refresh\ndata: {}\n\n"); err != nil {
				return nil
			}
			res.Flush()
		case <-ticker.C:
			if _, err := io.WriteString(res, ": ping\n\n"); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}
