package importer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/arkenix/client-portal/internal/domain/contact"
)

const (
	DefaultMaxRows     = 10000
	DefaultPreviewRows = 5
)

type SpreadsheetParser interface {
	Parse(ctx context.Context, format contact.FileFormat, body io.Reader, maxRows int) (contact.Sheet, error)
}

type PreviewUploadInput struct {
	FileName string
	Body     io.Reader
}

// PreviewUploadOutput is what the portal shows before the user confirms an import.
// ErrorCount counts data rows with at least one error; header problems only appear
// in Errors.
type PreviewUploadOutput struct {
	FileName   string                    `json:"file_name"`
	Headers    []contact.Field           `json:"headers"`
	TotalRows  int                       `json:"total_rows"`
	ValidCount int                       `json:"valid_count"`
	ErrorCount int                       `json:"error_count"`
	EmptyRows  int                       `json:"empty_rows"`
	Preview    []contact.NormalizedRow   `json:"preview"`
	ValidRows  []contact.NormalizedRow   `json:"valid_rows"`
	Errors     []contact.ValidationError `json:"errors"`
}

type PreviewUpload interface {
	Execute(ctx context.Context, in PreviewUploadInput) (PreviewUploadOutput, error)
}

type PipelineConfig struct {
	MaxRows     int
	PreviewRows int
}

type previewUpload struct {
	parser SpreadsheetParser
	cfg    PipelineConfig
}

func NewPreviewUpload(parser SpreadsheetParser, cfg PipelineConfig) PreviewUpload {
	if cfg.MaxRows <= 0 {
		cfg.MaxRows = DefaultMaxRows
	}
	if cfg.PreviewRows <= 0 {
		cfg.PreviewRows = DefaultPreviewRows
	}
	return &previewUpload{parser: parser, cfg: cfg}
}

func (uc *previewUpload) Execute(ctx context.Context, in PreviewUploadInput) (PreviewUploadOutput, error) {
	format, ok := contact.DetectFormat(in.FileName)
	if !ok {
		return PreviewUploadOutput{}, ErrUnsupportedFile
	}
	if in.Body == nil {
		return PreviewUploadOutput{}, ErrUnreadableFile
	}

	sheet, err := uc.parser.Parse(ctx, format, in.Body, uc.cfg.MaxRows)
	if err != nil {
		if errors.Is(err, contact.ErrRowLimitExceeded) {
			return PreviewUploadOutput{}, fmt.Errorf("%w: file contains more than %d rows", ErrTooManyRows, uc.cfg.MaxRows)
		}
		return PreviewUploadOutput{}, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}

	if len(sheet.Rows) == 0 {
		return PreviewUploadOutput{}, ErrEmptyFile
	}

	batch, err := Validate(sheet)
	if err != nil {
		return PreviewUploadOutput{}, err
	}

	preview := batch.Valid
	if len(preview) > uc.cfg.PreviewRows {
		preview = preview[:uc.cfg.PreviewRows]
	}

	return PreviewUploadOutput{
		FileName:   in.FileName,
		Headers:    batch.Headers,
		TotalRows:  batch.TotalRows,
		ValidCount: len(batch.Valid),
		ErrorCount: batch.InvalidRows(),
		EmptyRows:  batch.EmptyRows,
		Preview:    preview,
		ValidRows:  batch.Valid,
		Errors:     batch.Errors,
	}, nil
}

// Validate normalizes the sheet headers and splits the rows into valid rows and
// collected errors. Only an empty normalized header set is fatal.
func Validate(sheet contact.Sheet) (contact.ValidatedBatch, error) {
	headers := NormalizeHeaders(sheet.Headers)
	if len(headers.Normalized) == 0 {
		return contact.ValidatedBatch{}, ErrNoValidHeaders
	}

	batch := contact.ValidatedBatch{
		Headers:   headers.Normalized,
		Valid:     make([]contact.NormalizedRow, 0, len(sheet.Rows)),
		Errors:    append([]contact.ValidationError(nil), headers.Errors...),
		TotalRows: len(sheet.Rows),
	}

	for _, uploaded := range sheet.Rows {
		row := NormalizeRow(uploaded, headers)
		res := ValidateRow(&row, uploaded.Line, headers.Normalized)
		switch {
		case res.Empty:
			batch.EmptyRows++
		case res.IsValid:
			batch.Valid = append(batch.Valid, row)
		default:
			batch.Errors = append(batch.Errors, res.Errors...)
		}
	}

	return batch, nil
}
