package contact

import (
	"fmt"
	"strconv"
)

// UploadedRow is one data row of a parsed spreadsheet keyed by the raw header text.
// Line is the 1-based position among non-blank data rows. The header row and blank
// rows are not counted.
type UploadedRow struct {
	Line   int
	Values map[string]string
}

// NormalizedRow holds only the canonical fields, so an unrecognized column has
// nowhere to go.
type NormalizedRow struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Title         string `json:"title"`
	OfficialEmail string `json:"official_email"`
	MobileNumber  string `json:"mobile_number"`
	Company       string `json:"company"`
	Industry      string `json:"industry"`
	UserType      string `json:"user_type"`
}

func (r NormalizedRow) Get(f Field) string {
	switch f {
	case FieldFirstName:
		return r.FirstName
	case FieldLastName:
		return r.LastName
	case FieldTitle:
		return r.Title
	case FieldOfficialEmail:
		return r.OfficialEmail
	case FieldMobileNumber:
		return r.MobileNumber
	case FieldCompany:
		return r.Company
	case FieldIndustry:
		return r.Industry
	case FieldUserType:
		return r.UserType
	default:
		return ""
	}
}

func (r *NormalizedRow) Set(f Field, value string) {
	switch f {
	case FieldFirstName:
		r.FirstName = value
	case FieldLastName:
		r.LastName = value
	case FieldTitle:
		r.Title = value
	case FieldOfficialEmail:
		r.OfficialEmail = value
	case FieldMobileNumber:
		r.MobileNumber = value
	case FieldCompany:
		r.Company = value
	case FieldIndustry:
		r.Industry = value
	case FieldUserType:
		r.UserType = value
	}
}

// Apply copies every field of the patch onto the row.
func (r *NormalizedRow) Apply(p Patch) {
	for f, v := range p {
		r.Set(f, v)
	}
}

// Patch is a partial set of field values, used by single-record add and update.
type Patch map[Field]string

// PatchFromMap keeps the allowed fields of a loosely typed payload and drops the rest,
// including any id or client_id keys. Scalars are rendered as text; nil becomes "".
func PatchFromMap(raw map[string]any) Patch {
	patch := make(Patch, len(raw))
	for key, value := range raw {
		f, ok := ParseField(key)
		if !ok {
			continue
		}
		patch[f] = stringify(value)
	}
	return patch
}

// RowFromMap builds a NormalizedRow from a loosely typed payload.
func RowFromMap(raw map[string]any) NormalizedRow {
	var row NormalizedRow
	row.Apply(PatchFromMap(raw))
	return row
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// ValidationError reports one offending field. Row 0 marks header-level problems.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidatedBatch is the outcome of validating every row of one upload.
type ValidatedBatch struct {
	Headers   []Field
	Valid     []NormalizedRow
	Errors    []ValidationError
	TotalRows int
	EmptyRows int
}

// InvalidRows counts distinct data rows that produced at least one error.
func (b ValidatedBatch) InvalidRows() int {
	seen := make(map[int]struct{})
	for _, e := range b.Errors {
		if e.Row > 0 {
			seen[e.Row] = struct{}{}
		}
	}
	return len(seen)
}
