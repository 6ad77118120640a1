package storage

import (
	"errors"

	"auto-repair-site/models/appointment"
	"auto-repair-site/models/contact"
	"auto-repair-site/models/user"

	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateUsername is returned when a username is already taken.
var ErrDuplicateUsername = errors.New("username already exists")

// Storage is the persistence contract shared by the HTTP layer and the
// Banadir Main sync service. MemStorage and DatabaseStorage are behaviorally
// interchangeable: ids ascend from 1 and are never reused, and listings are
// ordered by creation time ascending.
type Storage interface {
	// User methods
	GetUser(id uint) (*user.User, error)
	GetUserByUsername(username string) (*user.User, error)
	CreateUser(u *user.User) (*user.User, error)
	// LinkUserToMainSystem stores the remote account linkage returned by the
	// main system's /auth endpoint.
	LinkUserToMainSystem(id uint, mainUserID, token string, expiry time.Time) (*user.User, error)

	// Contact submission methods
	CreateContactSubmission(sub *contact.ContactSubmission) (*contact.ContactSubmission, error)
	GetContactSubmissions() ([]contact.ContactSubmission, error)
	GetContactSubmissionByID(id uint) (*contact.ContactSubmission, error)

	// Sync-side contact operations. Claim atomically moves an unsynced,
	// unclaimed submission in flight; it reports false when another sync
	// pass already holds the record or the record is already synced.
	GetUnsyncedContactSubmissions(limit int) ([]contact.ContactSubmission, error)
	ClaimContactSubmission(id uint) (bool, error)
	ReleaseContactSubmission(id uint) error
	MarkContactSubmissionSynced(id uint, mainSystemID string) error

	// Main appointment cache
	GetMainAppointmentByRemoteID(remoteID string) (*appointment.MainAppointment, error)
	UpsertMainAppointment(appt *appointment.MainAppointment) error
	ListMainAppointments() ([]appointment.MainAppointment, error)

	// Integration key/value config. GetConfig returns "" (no error) for a
	// key that has never been written.
	GetConfig(key string) (string, error)
	SetConfig(key, value string) error
}
