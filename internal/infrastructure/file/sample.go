package file

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/arkenix/client-portal/internal/domain/contact"
)

const (
	SampleSheetName = "Sample Data"
	SampleFileName  = "sample_data_upload.xlsx"
)

var sampleRows = [][]string{
	{"John", "Doe", "Marketing Manager", "john.doe@example.com", "+1234567890", "Acme Corp", "Technology", "lead"},
	{"Jane", "Smith", "Sales Director", "jane.smith@example.com", "+1987654321", "Tech Solutions", "Software", "prospect"},
	{"Bob", "Johnson", "CEO", "bob.johnson@example.com", "+1555123456", "Innovation Labs", "Consulting", "user"},
}

// SampleWorkbook builds the downloadable template: the canonical header row followed
// by three example contacts.
func SampleWorkbook() (*excelize.File, error) {
	wb := excelize.NewFile()
	if err := wb.SetSheetName("Sheet1", SampleSheetName); err != nil {
		return nil, fmt.Errorf("rename sample sheet: %w", err)
	}

	header := make([]any, 0, len(contact.AllowedFields))
	for _, f := range contact.AllowedFields {
		header = append(header, string(f))
	}
	if err := wb.SetSheetRow(SampleSheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write sample header: %w", err)
	}

	for i, row := range sampleRows {
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := wb.SetSheetRow(SampleSheetName, cellName, &values); err != nil {
			return nil, fmt.Errorf("write sample row %d: %w", i+1, err)
		}
	}

	bold, err := wb.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	lastCell, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return nil, err
	}
	if err := wb.SetCellStyle(SampleSheetName, "A1", lastCell, bold); err != nil {
		return nil, fmt.Errorf("style sample header: %w", err)
	}
	if err := wb.SetColWidth(SampleSheetName, "A", "H", 22); err != nil {
		return nil, fmt.Errorf("size sample columns: %w", err)
	}

	return wb, nil
}

func WriteSample(w io.Writer) error {
	wb, err := SampleWorkbook()
	if err != nil {
		return err
	}
	defer func() { _ = wb.Close() }()

	if _, err := wb.WriteTo(w); err != nil {
		return fmt.Errorf("write sample workbook: %w", err)
	}
	return nil
}
