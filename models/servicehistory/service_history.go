package servicehistory

import (
	"time"

	"gorm.io/datatypes"
)

// MainServiceHistory is a local cache of a service record from the Banadir
// Main system. The table is migrated so the schema stays aligned with the
// main system, but no sync path populates it yet.
type MainServiceHistory struct {
	ID             uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	MainServiceID  string         `gorm:"column:main_service_id;type:varchar(255);not null;unique" json:"mainServiceId"`
	UserID         *uint          `gorm:"column:user_id;index" json:"userId"`
	VehicleInfo    datatypes.JSON `gorm:"column:vehicle_info;type:jsonb;not null" json:"vehicleInfo"`
	ServiceDate    time.Time      `gorm:"column:service_date;not null" json:"serviceDate"`
	ServiceDetails datatypes.JSON `gorm:"column:service_details;type:jsonb" json:"serviceDetails"`
	Cost           *int           `gorm:"type:int" json:"cost"`
	LastSynced     time.Time      `gorm:"column:last_synced;autoCreateTime" json:"lastSynced"`
}

// TableName specifies the table name for MainServiceHistory
func (MainServiceHistory) TableName() string {
	return "main_service_history"
}
