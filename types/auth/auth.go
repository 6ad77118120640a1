package auth

import (
	"strings"
)

// RegisterRequest represents the request payload for creating a local user
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=255"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents the request payload for a local login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r RegisterRequest) Validate() string {
	var errs []string
	if strings.TrimSpace(r.Username) == "" {
		errs = append(errs, "username is required")
	} else if len(strings.TrimSpace(r.Username)) < 3 {
		errs = append(errs, "username must be at least 3 characters")
	}
	if r.Password == "" {
		errs = append(errs, "password is required")
	} else if len(r.Password) < 6 {
		errs = append(errs, "password must be at least 6 characters")
	}
	return strings.Join(errs, "; ")
}

func (r LoginRequest) Validate() string {
	var errs []string
	if strings.TrimSpace(r.Username) == "" {
		errs = append(errs, "username is required")
	}
	if r.Password == "" {
		errs = append(errs, "password is required")
	}
	return strings.Join(errs, "; ")
}
