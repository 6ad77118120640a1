package contact

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ContactCreateRequest represents the request payload for a contact form
// submission. Id, timestamps and sync state are system-assigned; any such
// fields sent by the client are ignored.
type ContactCreateRequest struct {
	Name          string `json:"name" validate:"required,min=2,max=255"`
	Phone         string `json:"phone" validate:"required,min=10,max=50"`
	Email         string `json:"email" validate:"required,email"`
	Service       string `json:"service" validate:"required,max=100"`
	Vehicle       string `json:"vehicle" validate:"required,max=255"`
	Message       string `json:"message" validate:"omitempty"`
	InsuranceHelp bool   `json:"insuranceHelp"`
}

// Validate checks every field and returns all failures joined into one
// message, or "" when the payload is valid.
func (r ContactCreateRequest) Validate() string {
	var errs []string

	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	} else if utf8.RuneCountInString(strings.TrimSpace(r.Name)) < 2 {
		errs = append(errs, "name must be at least 2 characters")
	}

	if strings.TrimSpace(r.Phone) == "" {
		errs = append(errs, "phone is required")
	} else if utf8.RuneCountInString(strings.TrimSpace(r.Phone)) < 10 {
		errs = append(errs, "phone must be at least 10 characters")
	}

	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, "email is required")
	} else if !emailPattern.MatchString(r.Email) {
		errs = append(errs, "email must be a valid address")
	}

	if strings.TrimSpace(r.Service) == "" {
		errs = append(errs, "service is required")
	}

	if strings.TrimSpace(r.Vehicle) == "" {
		errs = append(errs, "vehicle is required")
	}

	return strings.Join(errs, "; ")
}
