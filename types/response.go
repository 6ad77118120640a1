package types

// ApiResponse is the JSON envelope every endpoint returns.
type ApiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Errors  string      `json:"errors,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Token   string      `json:"token,omitempty"`
}

// SyncResponse is the envelope for the single-direction sync triggers.
type SyncResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// CompleteSyncData carries both counts from a full sync run.
type CompleteSyncData struct {
	ContactsSync     int `json:"contactsSync"`
	AppointmentsSync int `json:"appointmentsSync"`
}
