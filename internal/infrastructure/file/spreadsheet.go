package file

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/arkenix/client-portal/internal/domain/contact"
)

const utf8BOM = "\ufeff"

// SpreadsheetParser reads the first worksheet of a CSV or XLSX upload. Rows are read
// one at a time so an oversized file is abandoned as soon as it crosses the limit.
type SpreadsheetParser struct{}

func NewSpreadsheetParser() *SpreadsheetParser {
	return &SpreadsheetParser{}
}

func (p *SpreadsheetParser) Parse(ctx context.Context, format contact.FileFormat, body io.Reader, maxRows int) (contact.Sheet, error) {
	switch format {
	case contact.FormatCSV:
		return parseCSV(ctx, body, maxRows)
	case contact.FormatXLSX:
		return parseXLSX(ctx, body, maxRows)
	default:
		return contact.Sheet{}, fmt.Errorf("%w: unsupported format %q", contact.ErrMalformedSheet, format)
	}
}

type sheetBuilder struct {
	sheet   contact.Sheet
	maxRows int
}

func (b *sheetBuilder) setHeaders(cells []string) {
	headers := make([]string, len(cells))
	copy(headers, cells)
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], utf8BOM)
	}
	b.sheet.Headers = headers
}

// addRow numbers rows by their position among non-blank data rows, so the row of a
// validation error matches the preview's row count.
func (b *sheetBuilder) addRow(cells []string) error {
	if blank(cells) {
		return nil
	}
	if b.maxRows > 0 && len(b.sheet.Rows) >= b.maxRows {
		return fmt.Errorf("%w: more than %d rows", contact.ErrRowLimitExceeded, b.maxRows)
	}

	values := make(map[string]string, len(b.sheet.Headers))
	for idx, header := range b.sheet.Headers {
		if strings.TrimSpace(header) == "" {
			continue
		}
		if _, taken := values[header]; taken {
			continue
		}
		values[header] = cell(cells, idx)
	}

	b.sheet.Rows = append(b.sheet.Rows, contact.UploadedRow{Line: len(b.sheet.Rows) + 1, Values: values})
	return nil
}

func parseCSV(ctx context.Context, body io.Reader, maxRows int) (contact.Sheet, error) {
	reader := csv.NewReader(body)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	b := &sheetBuilder{maxRows: maxRows}

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return contact.Sheet{}, nil
	}
	if err != nil {
		return contact.Sheet{}, fmt.Errorf("%w: read csv header: %v", contact.ErrMalformedSheet, err)
	}
	b.setHeaders(header)

	for {
		if err := ctx.Err(); err != nil {
			return contact.Sheet{}, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return contact.Sheet{}, fmt.Errorf("%w: read csv: %v", contact.ErrMalformedSheet, err)
		}
		if err := b.addRow(record); err != nil {
			return contact.Sheet{}, err
		}
	}

	return b.sheet, nil
}

func parseXLSX(ctx context.Context, body io.Reader, maxRows int) (contact.Sheet, error) {
	wb, err := excelize.OpenReader(body)
	if err != nil {
		return contact.Sheet{}, fmt.Errorf("%w: open workbook: %v", contact.ErrMalformedSheet, err)
	}
	defer func() { _ = wb.Close() }()

	sheetName := wb.GetSheetName(0)
	if sheetName == "" {
		return contact.Sheet{}, fmt.Errorf("%w: no worksheet found", contact.ErrMalformedSheet)
	}

	rows, err := wb.Rows(sheetName)
	if err != nil {
		return contact.Sheet{}, fmt.Errorf("%w: read worksheet %q: %v", contact.ErrMalformedSheet, sheetName, err)
	}
	defer func() { _ = rows.Close() }()

	b := &sheetBuilder{maxRows: maxRows}
	headerSeen := false

	for rows.Next() {
		if err := ctx.Err(); err != nil {
			return contact.Sheet{}, err
		}

		cells, err := rows.Columns()
		if err != nil {
			return contact.Sheet{}, fmt.Errorf("%w: read worksheet row: %v", contact.ErrMalformedSheet, err)
		}

		if !headerSeen {
			if blank(cells) {
				continue
			}
			b.setHeaders(cells)
			headerSeen = true
			continue
		}

		if err := b.addRow(cells); err != nil {
			return contact.Sheet{}, err
		}
	}
	if err := rows.Error(); err != nil {
		return contact.Sheet{}, fmt.Errorf("%w: %v", contact.ErrMalformedSheet, err)
	}

	return b.sheet, nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func cell(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}
