package banadirmain

import (
	"strings"

	"auto-repair-site/constants"
)

// ConfigUpdateRequest writes one integration setting through the key/value
// mechanism. Only known integration keys are accepted.
type ConfigUpdateRequest struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value" validate:"required"`
}

// LinkAccountRequest links a local user to its Banadir Main account by
// authenticating against the main system.
type LinkAccountRequest struct {
	UserID   uint   `json:"userId" validate:"required"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

var knownKeys = map[string]bool{
	constants.ConfigAPIUrl:          true,
	constants.ConfigAPIVersion:      true,
	constants.ConfigAppID:           true,
	constants.ConfigSyncInterval:    true,
	constants.ConfigFeaturesEnabled: true,
	constants.ConfigAPIKey:          true,
	constants.ConfigLastApptSync:    true,
}

func (r ConfigUpdateRequest) Validate() string {
	var errs []string
	if strings.TrimSpace(r.Key) == "" {
		errs = append(errs, "key is required")
	} else if !knownKeys[r.Key] {
		errs = append(errs, "key is not a recognized integration setting")
	}
	if r.Value == "" {
		errs = append(errs, "value is required")
	}
	return strings.Join(errs, "; ")
}

func (r LinkAccountRequest) Validate() string {
	var errs []string
	if r.UserID == 0 {
		errs = append(errs, "userId is required")
	}
	if strings.TrimSpace(r.Username) == "" {
		errs = append(errs, "username is required")
	}
	if r.Password == "" {
		errs = append(errs, "password is required")
	}
	return strings.Join(errs, "; ")
}
