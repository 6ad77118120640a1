package appointment

import (
	"time"

	"gorm.io/datatypes"
)

// MainAppointment is a local cache of an appointment owned by the Banadir
// Main system. Rows are inserted or fully overwritten by the sync service;
// nothing in this application creates appointments directly.
type MainAppointment struct {
	ID                uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	MainAppointmentID string         `gorm:"column:main_appointment_id;type:varchar(255);not null;unique" json:"mainAppointmentId"`
	UserID            *uint          `gorm:"column:user_id;index" json:"userId"`
	CustomerName      string         `gorm:"column:customer_name;type:varchar(255);not null" json:"customerName"`
	CustomerPhone     string         `gorm:"column:customer_phone;type:varchar(50);not null" json:"customerPhone"`
	AppointmentDate   time.Time      `gorm:"column:appointment_date;not null" json:"appointmentDate"`
	ServiceType       string         `gorm:"column:service_type;type:varchar(100);not null" json:"serviceType"`
	VehicleInfo       datatypes.JSON `gorm:"column:vehicle_info;type:jsonb" json:"vehicleInfo"`
	Notes             string         `gorm:"type:text" json:"notes"`
	Status            string         `gorm:"type:varchar(50);default:'pending'" json:"status"`
	LastSynced        time.Time      `gorm:"column:last_synced;autoCreateTime" json:"lastSynced"`
}

// TableName specifies the table name for MainAppointment
func (MainAppointment) TableName() string {
	return "main_appointments"
}
