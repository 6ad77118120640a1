package contact

import (
	"time"
)

// ContactSubmission is a customer service request captured by the website
// contact form. Sync fields track whether the record has been pushed to the
// Banadir Main system.
type ContactSubmission struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Phone         string    `gorm:"type:varchar(50);not null" json:"phone"`
	Email         string    `gorm:"type:varchar(255);not null" json:"email"`
	Service       string    `gorm:"type:varchar(100);not null" json:"service"`
	Vehicle       string    `gorm:"type:varchar(255);not null" json:"vehicle"`
	Message       *string   `gorm:"type:text" json:"message"`
	InsuranceHelp bool      `gorm:"column:insurance_help;default:false" json:"insuranceHelp"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`

	// Banadir Main integration state. syncedWithMain only ever moves
	// false -> true; mainSystemId is set in the same write.
	SyncedWithMain bool    `gorm:"column:synced_with_main;default:false" json:"syncedWithMain"`
	MainSystemID   *string `gorm:"column:main_system_id;type:varchar(255)" json:"mainSystemId"`

	// Claim flag held while a sync pass is pushing this record upstream.
	// Released on failure, cleared permanently once synced. Not exposed.
	SyncInFlight bool `gorm:"column:sync_in_flight;default:false" json:"-"`
}

// TableName specifies the table name for ContactSubmission
func (ContactSubmission) TableName() string {
	return "contact_submissions"
}
