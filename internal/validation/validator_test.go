package validation

import (
	"strings"
	"testing"

	"github.com/portfolio-content-api/internal/models"
)

func validRequest() models.ContactRequest {
	return models.ContactRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Subject:   "Hello",
		Message:   "I liked your projects.",
	}
}

func TestValidateContact(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(r *models.ContactRequest)
		wantErrors int
		wantFields map[string]string
	}{
		{
			name:       "valid request",
			mutate:     func(r *models.ContactRequest) {},
			wantErrors: 0,
		},
		{
			name:       "blank first name",
			mutate:     func(r *models.ContactRequest) { r.FirstName = "   " },
			wantErrors: 1,
			wantFields: map[string]string{"firstName": "First name is required"},
		},
		{
			name:       "missing email",
			mutate:     func(r *models.ContactRequest) { r.Email = "" },
			wantErrors: 1,
			wantFields: map[string]string{"email": "Email is required"},
		},
		{
			name:       "email without domain dot",
			mutate:     func(r *models.ContactRequest) { r.Email = "ada@example" },
			wantErrors: 1,
			wantFields: map[string]string{"email": "Email is invalid"},
		},
		{
			name:       "email without at sign",
			mutate:     func(r *models.ContactRequest) { r.Email = "ada.example.com" },
			wantErrors: 1,
			wantFields: map[string]string{"email": "Email is invalid"},
		},
		{
			name:       "loose email accepted",
			mutate:     func(r *models.ContactRequest) { r.Email = "a@b.c" },
			wantErrors: 0,
		},
		{
			name: "everything blank",
			mutate: func(r *models.ContactRequest) {
				*r = models.ContactRequest{}
			},
			wantErrors: 5,
			wantFields: map[string]string{
				"firstName": "First name is required",
				"lastName":  "Last name is required",
				"email":     "Email is required",
				"subject":   "Subject is required",
				"message":   "Message is required",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			errs := ValidateContact(&req)
			if len(errs) != tt.wantErrors {
				t.Fatalf("Expected %d errors, got %d: %v", tt.wantErrors, len(errs), errs)
			}

			fields := errs.Fields()
			for field, msg := range tt.wantFields {
				if fields[field] != msg {
					t.Errorf("Expected %s error %q, got %q", field, msg, fields[field])
				}
			}
		})
	}
}

func TestErrors_Error(t *testing.T) {
	errs := Errors{
		{Field: "email", Message: "Email is invalid"},
		{Field: "subject", Message: "Subject is required"},
	}

	msg := errs.Error()
	if !strings.Contains(msg, "email: Email is invalid") || !strings.Contains(msg, "subject: Subject is required") {
		t.Errorf("Unexpected error text %q", msg)
	}
}
