package profile

import "strings"

// UnboundedSalary is the sentinel magnitude meaning "no maximum" for the
// desired_salary_max field. Callers must test with IsUnboundedSalary rather
// than comparing the literal.
const UnboundedSalary = 999_999_999

// IsUnboundedSalary reports whether n encodes "no maximum".
func IsUnboundedSalary(n int) bool {
	return n >= UnboundedSalary
}

// EncodeTagList joins tags into the delimited wire form of desired_job_type.
// An empty list encodes to ""; callers omit the field in that case rather
// than sending an empty string.
func EncodeTagList(tags []string) string {
	return strings.Join(tags, ", ")
}

// DecodeTagList splits a delimited wire value into tags, trimming whitespace
// and dropping empty tokens. An empty or absent value decodes to nil.
func DecodeTagList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var tags []string
	for _, tok := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(tok); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}
