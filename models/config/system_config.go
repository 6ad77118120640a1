package config

import (
	"time"
)

// SystemConfig is a key/value row holding Banadir Main integration settings
// (API URL, API key, feature flag, sync cursors). config_key is unique and
// every write refreshes last_updated.
type SystemConfig struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ConfigKey   string    `gorm:"column:config_key;type:varchar(255);not null;unique" json:"configKey"`
	ConfigValue string    `gorm:"column:config_value;type:text" json:"configValue"`
	LastUpdated time.Time `gorm:"column:last_updated;autoUpdateTime" json:"lastUpdated"`
}

// TableName specifies the table name for SystemConfig
func (SystemConfig) TableName() string {
	return "system_config"
}
