package contact

import (
	"path/filepath"
	"strings"
)

type FileFormat string

const (
	FormatCSV  FileFormat = "csv"
	FormatXLSX FileFormat = "xlsx"
)

// DetectFormat accepts only .csv and .xlsx names, case-insensitively.
func DetectFormat(fileName string) (FileFormat, bool) {
	switch strings.ToLower(filepath.Ext(strings.TrimSpace(fileName))) {
	case ".csv":
		return FormatCSV, true
	case ".xlsx":
		return FormatXLSX, true
	default:
		return "", false
	}
}

// Sheet is the first worksheet of an upload: its header row and the non-blank data rows.
type Sheet struct {
	Headers []string
	Rows    []UploadedRow
}
