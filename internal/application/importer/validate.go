package importer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/arkenix/client-portal/internal/domain/contact"
)

const MaxFieldLength = 255

// RE2's \s is ASCII only. space also covers Unicode separators such as NBSP and the BOM.
const space = `\s\p{Z}\x{FEFF}`

var (
	emailPattern  = regexp.MustCompile(`^[^` + space + `@]+@[^` + space + `@]+\.[^` + space + `@]+$`)
	mobilePattern = regexp.MustCompile(`^\+?\d{7,15}$`)
	whitespace    = regexp.MustCompile(`[` + space + `]+`)
)

// RowResult is the verdict for one row. Empty rows carry no errors and are neither
// valid nor invalid.
type RowResult struct {
	IsValid bool
	Empty   bool
	Errors  []contact.ValidationError
}

// ValidateRow trims every active field in place and checks it. rowIndex is 1-based.
func ValidateRow(row *contact.NormalizedRow, rowIndex int, headers []contact.Field) RowResult {
	if isEmptyRow(*row, headers) {
		return RowResult{Empty: true}
	}

	var errs []contact.ValidationError
	emailChecked := false

	for _, field := range headers {
		value := strings.TrimSpace(row.Get(field))
		row.Set(field, value)

		errs = append(errs, checkField(rowIndex, field, value)...)
		if field == contact.FieldOfficialEmail {
			emailChecked = true
		}
	}

	if !emailChecked {
		errs = append(errs, checkField(rowIndex, contact.FieldOfficialEmail, strings.TrimSpace(row.OfficialEmail))...)
	}

	return RowResult{IsValid: len(errs) == 0, Errors: errs}
}

// ValidatePatch applies the field rules to the fields present in a partial update,
// trimming the values in place. official_email is only required when it is present.
func ValidatePatch(patch contact.Patch, rowIndex int) []contact.ValidationError {
	var errs []contact.ValidationError
	for _, field := range contact.AllowedFields {
		value, ok := patch[field]
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		patch[field] = value
		errs = append(errs, checkField(rowIndex, field, value)...)
	}
	return errs
}

func checkField(rowIndex int, field contact.Field, value string) []contact.ValidationError {
	var errs []contact.ValidationError
	fail := func(msg string) {
		errs = append(errs, contact.ValidationError{Row: rowIndex, Field: string(field), Message: msg})
	}

	if len([]rune(value)) > MaxFieldLength {
		fail(fmt.Sprintf("Value exceeds maximum length of %d characters", MaxFieldLength))
	}

	switch field {
	case contact.FieldOfficialEmail:
		if value == "" {
			fail("Email is required")
		} else if !ValidEmail(value) {
			fail("Invalid email format")
		}
	case contact.FieldMobileNumber:
		if value != "" && !ValidMobile(value) {
			fail("Invalid mobile number format. Must be 7-15 digits with optional + prefix")
		}
	}

	return errs
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// ValidMobile accepts an optional leading + and 7 to 15 digits once whitespace is removed.
func ValidMobile(mobile string) bool {
	return mobilePattern.MatchString(whitespace.ReplaceAllString(mobile, ""))
}

func isEmptyRow(row contact.NormalizedRow, headers []contact.Field) bool {
	for _, field := range headers {
		if strings.TrimSpace(row.Get(field)) != "" {
			return false
		}
	}
	return true
}
