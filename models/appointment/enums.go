package appointment

// AppointmentStatus mirrors the status values the Banadir Main system uses.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) String() string {
	return string(s)
}

func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsFinal returns true if the appointment can no longer change state upstream.
func (s AppointmentStatus) IsFinal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// GetAllAppointmentStatuses returns all valid appointment statuses
func GetAllAppointmentStatuses() []AppointmentStatus {
	return []AppointmentStatus{
		StatusPending,
		StatusConfirmed,
		StatusCompleted,
		StatusCancelled,
	}
}
