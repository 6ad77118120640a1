package httpServices

import (
	"encoding/json"
	"strings"
	"time"

	"auto-repair-site/models/appointment"
)

// LeadPayload is the shape the main system expects for a website lead.
type LeadPayload struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Service       string `json:"service"`
	Vehicle       string `json:"vehicle"`
	Message       string `json:"message"`
	InsuranceHelp bool   `json:"insuranceHelp"`
	CreatedAt     string `json:"createdAt"`
	Source        string `json:"source"`
}

// LeadResponse is the main system's acknowledgement of a posted lead.
type LeadResponse struct {
	ID string `json:"id"`
}

// RemoteCustomer is the nested customer block on a remote appointment.
type RemoteCustomer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// RemoteAppointment is one element of the main system's /appointments
// response.
type RemoteAppointment struct {
	ID          string          `json:"id"`
	Customer    RemoteCustomer  `json:"customer"`
	Date        string          `json:"date"`
	ServiceType string          `json:"serviceType"`
	Vehicle     json.RawMessage `json:"vehicle"`
	Notes       string          `json:"notes"`
	Status      string          `json:"status"`
}

// Validate checks the fields the sync service depends on and returns a
// descriptive error on shape mismatch, so a malformed element fails fast
// instead of surfacing as a crash mid-loop.
func (a RemoteAppointment) Validate() error {
	var missing []string
	if strings.TrimSpace(a.ID) == "" {
		missing = append(missing, "id")
	}
	if strings.TrimSpace(a.Customer.Name) == "" {
		missing = append(missing, "customer.name")
	}
	if strings.TrimSpace(a.Customer.Phone) == "" {
		missing = append(missing, "customer.phone")
	}
	if strings.TrimSpace(a.ServiceType) == "" {
		missing = append(missing, "serviceType")
	}
	if _, err := a.ParsedDate(); err != nil {
		missing = append(missing, "date")
	}
	// An absent status is defaulted to pending by the caller; anything else
	// must be one of the known status values.
	if a.Status != "" && !appointment.AppointmentStatus(a.Status).IsValid() {
		missing = append(missing, "status")
	}
	if len(missing) > 0 {
		return &ShapeError{Endpoint: "/appointments", Fields: missing}
	}
	return nil
}

// ParsedDate parses the appointment date, accepting RFC 3339 with or
// without fractional seconds.
func (a RemoteAppointment) ParsedDate() (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, a.Date); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05.000Z", a.Date)
}

// AuthRequest is the credential payload for the main system's /auth
// endpoint.
type AuthRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	ApplicationID string `json:"applicationId"`
}

// AuthResponse carries the issued main-system token. ExpiresAt is epoch
// milliseconds.
type AuthResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	ExpiresAt    int64  `json:"expiresAt"`
}

// ExpiryTime converts ExpiresAt into a time.Time.
func (r AuthResponse) ExpiryTime() time.Time {
	return time.UnixMilli(r.ExpiresAt)
}
