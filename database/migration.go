package database

import (
	"auto-repair-site/models/appointment"
	"auto-repair-site/models/config"
	"auto-repair-site/models/contact"
	"auto-repair-site/models/log"
	"auto-repair-site/models/servicehistory"
	"auto-repair-site/models/user"

	"gorm.io/gorm"
)

// Migrate brings the schema up to date. The models are additive, so plain
// AutoMigrate is sufficient; main_service_history is migrated for schema
// parity with the main system even though no sync path writes it yet.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&user.User{},
		&contact.ContactSubmission{},
		&appointment.MainAppointment{},
		&servicehistory.MainServiceHistory{},
		&config.SystemConfig{},
		&log.Log{},
	); err != nil {
		return err
	}

	return createForeignKeyConstraints(db)
}

func createForeignKeyConstraints(db *gorm.DB) error {
	// AutoMigrate does not add these because the user reference is an
	// optional plain column, not a GORM association.
	constraints := []struct {
		table      string
		constraint string
		definition string
	}{
		{
			table:      "main_appointments",
			constraint: "fk_main_appointments_user",
			definition: "FOREIGN KEY (user_id) REFERENCES users(id)",
		},
		{
			table:      "main_service_history",
			constraint: "fk_main_service_history_user",
			definition: "FOREIGN KEY (user_id) REFERENCES users(id)",
		},
	}

	for _, fk := range constraints {
		var count int64
		db.Raw(
			"SELECT COUNT(*) FROM information_schema.table_constraints WHERE table_name = ? AND constraint_name = ?",
			fk.table, fk.constraint,
		).Scan(&count)
		if count > 0 {
			continue
		}
		stmt := "ALTER TABLE " + fk.table + " ADD CONSTRAINT " + fk.constraint + " " + fk.definition
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}
