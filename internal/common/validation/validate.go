// Package validation holds the shared field validators used by the
// communication workers. Document-level validation (knowledge pack,
// response playbook) lives in internal/knowledge and uses JSON Schema.
package validation

import "regexp"

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-\(\)]{10,}$`)
)

// ValidateEmail validates email format.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePhone validates basic phone number format.
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
