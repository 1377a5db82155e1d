package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/portfolio-content-api/internal/models"
)

// local@domain.tld, unanchored
var emailRegex = regexp.MustCompile(`\S+@\S+\.\S+`)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is a set of per-field validation failures
type Errors []ValidationError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, v := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields maps each failing field to its message
func (e Errors) Fields() map[string]string {
	out := make(map[string]string, len(e))
	for _, v := range e {
		if _, ok := out[v.Field]; !ok {
			out[v.Field] = v.Message
		}
	}
	return out
}

// ValidateContact checks a contact form. Every field is required and the
// email must look like an address.
func ValidateContact(req *models.ContactRequest) Errors {
	var errors Errors

	if strings.TrimSpace(req.FirstName) == "" {
		errors = append(errors, ValidationError{Field: "firstName", Message: "First name is required"})
	}
	if strings.TrimSpace(req.LastName) == "" {
		errors = append(errors, ValidationError{Field: "lastName", Message: "Last name is required"})
	}

	// Validate email
	if strings.TrimSpace(req.Email) == "" {
		errors = append(errors, ValidationError{Field: "email", Message: "Email is required"})
	} else if !emailRegex.MatchString(req.Email) {
		errors = append(errors, ValidationError{Field: "email", Message: "Email is invalid"})
	}

	if strings.TrimSpace(req.Subject) == "" {
		errors = append(errors, ValidationError{Field: "subject", Message: "Subject is required"})
	}
	if strings.TrimSpace(req.Message) == "" {
		errors = append(errors, ValidationError{Field: "message", Message: "Message is required"})
	}

	return errors
}
