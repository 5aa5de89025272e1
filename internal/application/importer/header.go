package importer

import (
	"fmt"
	"strings"

	"github.com/arkenix/client-portal/internal/domain/contact"
)

var headerSynonyms = map[string]contact.Field{
	"firstname":     contact.FieldFirstName,
	"first name":    contact.FieldFirstName,
	"lastname":      contact.FieldLastName,
	"last name":     contact.FieldLastName,
	"email":         contact.FieldOfficialEmail,
	"e-mail":        contact.FieldOfficialEmail,
	"mobile":        contact.FieldMobileNumber,
	"mobile number": contact.FieldMobileNumber,
	"phone":         contact.FieldMobileNumber,
	"phonenumber":   contact.FieldMobileNumber,
	"phone number":  contact.FieldMobileNumber,
}

// HeaderResult pairs every accepted canonical field with the raw header it came from.
type HeaderResult struct {
	Normalized []contact.Field
	Sources    []string
	Errors     []contact.ValidationError
}

func resolveHeader(raw string) (contact.Field, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if f, ok := headerSynonyms[key]; ok {
		return f, true
	}
	return contact.ParseField(key)
}

// NormalizeHeaders maps raw spreadsheet headers onto the canonical field set. The first
// header resolving to a field wins; later ones are reported and dropped. Blank header
// cells are skipped.
func NormalizeHeaders(headers []string) HeaderResult {
	var res HeaderResult
	seen := make(map[contact.Field]struct{}, len(contact.AllowedFields))

	for _, header := range headers {
		if strings.TrimSpace(header) == "" {
			continue
		}

		field, ok := resolveHeader(header)
		if !ok {
			res.Errors = append(res.Errors, contact.ValidationError{
				Row:     0,
				Field:   header,
				Message: fmt.Sprintf("Unknown header: %q. Allowed headers: %s", header, contact.AllowedFieldNames()),
			})
			continue
		}

		if _, dup := seen[field]; dup {
			res.Errors = append(res.Errors, contact.ValidationError{
				Row:     0,
				Field:   header,
				Message: fmt.Sprintf("Duplicate header: %q (normalized to %q)", header, field),
			})
			continue
		}

		seen[field] = struct{}{}
		res.Normalized = append(res.Normalized, field)
		res.Sources = append(res.Sources, header)
	}

	if _, ok := seen[contact.FieldOfficialEmail]; !ok && len(res.Normalized) > 0 {
		res.Errors = append(res.Errors, contact.ValidationError{
			Row:     0,
			Field:   string(contact.FieldOfficialEmail),
			Message: "Missing required header: official_email",
		})
	}

	return res
}

// NormalizeRow copies the cells of the accepted headers into a NormalizedRow.
func NormalizeRow(row contact.UploadedRow, headers HeaderResult) contact.NormalizedRow {
	var out contact.NormalizedRow
	for i, field := range headers.Normalized {
		out.Set(field, row.Values[headers.Sources[i]])
	}
	return out
}
