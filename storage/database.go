package storage

import (
	"errors"
	"strings"
	"time"

	"auto-repair-site/models/appointment"
	"auto-repair-site/models/config"
	"auto-repair-site/models/contact"
	"auto-repair-site/models/user"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DatabaseStorage is the PostgreSQL-backed implementation of Storage.
type DatabaseStorage struct {
	db *gorm.DB
}

// NewDatabaseStorage wraps an open GORM connection.
func NewDatabaseStorage(db *gorm.DB) *DatabaseStorage {
	return &DatabaseStorage{db: db}
}

// User methods

func (s *DatabaseStorage) GetUser(id uint) (*user.User, error) {
	var u user.User
	if err := s.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *DatabaseStorage) GetUserByUsername(username string) (*user.User, error) {
	var u user.User
	if err := s.db.Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *DatabaseStorage) CreateUser(u *user.User) (*user.User, error) {
	created := *u
	created.ID = 0
	if err := s.db.Create(&created).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key") {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}
	return &created, nil
}

func (s *DatabaseStorage) LinkUserToMainSystem(id uint, mainUserID, token string, expiry time.Time) (*user.User, error) {
	res := s.db.Model(&user.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"main_user_id":             mainUserID,
		"main_system_token":        token,
		"main_system_token_expiry": expiry,
		"is_main_system_linked":    true,
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetUser(id)
}

// Contact submission methods

func (s *DatabaseStorage) CreateContactSubmission(sub *contact.ContactSubmission) (*contact.ContactSubmission, error) {
	created := *sub
	created.ID = 0
	created.CreatedAt = time.Now()
	created.SyncedWithMain = false
	created.MainSystemID = nil
	created.SyncInFlight = false
	if err := s.db.Create(&created).Error; err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *DatabaseStorage) GetContactSubmissions() ([]contact.ContactSubmission, error) {
	var subs []contact.ContactSubmission
	if err := s.db.Order("created_at ASC, id ASC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *DatabaseStorage) GetContactSubmissionByID(id uint) (*contact.ContactSubmission, error) {
	var sub contact.ContactSubmission
	if err := s.db.First(&sub, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (s *DatabaseStorage) GetUnsyncedContactSubmissions(limit int) ([]contact.ContactSubmission, error) {
	var subs []contact.ContactSubmission
	q := s.db.
		Where("synced_with_main = ? AND sync_in_flight = ?", false, false).
		Order("created_at ASC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// ClaimContactSubmission flips sync_in_flight in a single guarded UPDATE so
// two concurrent sync passes can never both claim the same row.
func (s *DatabaseStorage) ClaimContactSubmission(id uint) (bool, error) {
	res := s.db.Model(&contact.ContactSubmission{}).
		Where("id = ? AND synced_with_main = ? AND sync_in_flight = ?", id, false, false).
		Update("sync_in_flight", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *DatabaseStorage) ReleaseContactSubmission(id uint) error {
	return s.db.Model(&contact.ContactSubmission{}).
		Where("id = ?", id).
		Update("sync_in_flight", false).Error
}

func (s *DatabaseStorage) MarkContactSubmissionSynced(id uint, mainSystemID string) error {
	return s.db.Model(&contact.ContactSubmission{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"synced_with_main": true,
			"main_system_id":   mainSystemID,
			"sync_in_flight":   false,
		}).Error
}

// Main appointment cache

func (s *DatabaseStorage) GetMainAppointmentByRemoteID(remoteID string) (*appointment.MainAppointment, error) {
	var appt appointment.MainAppointment
	if err := s.db.Where("main_appointment_id = ?", remoteID).First(&appt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &appt, nil
}

// UpsertMainAppointment inserts the row or fully overwrites the cached copy
// keyed by the remote appointment id. No field-level merge.
func (s *DatabaseStorage) UpsertMainAppointment(appt *appointment.MainAppointment) error {
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "main_appointment_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"customer_name",
			"customer_phone",
			"appointment_date",
			"service_type",
			"vehicle_info",
			"notes",
			"status",
			"last_synced",
		}),
	}).Create(appt).Error
}

func (s *DatabaseStorage) ListMainAppointments() ([]appointment.MainAppointment, error) {
	var appts []appointment.MainAppointment
	if err := s.db.Order("appointment_date ASC, id ASC").Find(&appts).Error; err != nil {
		return nil, err
	}
	return appts, nil
}

// Integration config

func (s *DatabaseStorage) GetConfig(key string) (string, error) {
	var row config.SystemConfig
	if err := s.db.Where("config_key = ?", key).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return row.ConfigValue, nil
}

func (s *DatabaseStorage) SetConfig(key, value string) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "config_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"config_value": value,
			"last_updated": time.Now(),
		}),
	}).Create(&config.SystemConfig{
		ConfigKey:   key,
		ConfigValue: value,
		LastUpdated: time.Now(),
	}).Error
}
