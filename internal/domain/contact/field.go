package contact

import "strings"

type Field string

const (
	FieldFirstName     Field = "first_name"
	FieldLastName      Field = "last_name"
	FieldTitle         Field = "title"
	FieldOfficialEmail Field = "official_email"
	FieldMobileNumber  Field = "mobile_number"
	FieldCompany       Field = "company"
	FieldIndustry      Field = "industry"
	FieldUserType      Field = "user_type"
)

// AllowedFields is the fixed schema of a client record, in template column order.
var AllowedFields = []Field{
	FieldFirstName,
	FieldLastName,
	FieldTitle,
	FieldOfficialEmail,
	FieldMobileNumber,
	FieldCompany,
	FieldIndustry,
	FieldUserType,
}

func ParseField(name string) (Field, bool) {
	for _, f := range AllowedFields {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

func AllowedFieldNames() string {
	names := make([]string, 0, len(AllowedFields))
	for _, f := range AllowedFields {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}
