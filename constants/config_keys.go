package constants

// system_config keys for the Banadir Main integration.
const (
	ConfigAPIUrl          = "main_system_api_url"
	ConfigAPIVersion      = "main_system_api_version"
	ConfigAppID           = "main_system_app_id"
	ConfigSyncInterval    = "main_system_sync_interval"
	ConfigFeaturesEnabled = "main_system_features_enabled"
	ConfigAPIKey          = "main_system_api_key"
	ConfigLastApptSync    = "last_appointment_sync"
)

// Defaults seeded on integration init when no value exists yet.
const (
	DefaultAPIUrl          = "https://api.banadirmain.com/v1"
	DefaultAPIVersion      = "1.0.0"
	DefaultAppID           = "auto-repair-site"
	DefaultSyncInterval    = "30" // minutes
	DefaultFeaturesEnabled = "true"
)

// DefaultConfig returns the seedable keys in seeding order. The API key and
// the sync cursor are deliberately absent: both start unset.
func DefaultConfig() [][2]string {
	return [][2]string{
		{ConfigAPIUrl, DefaultAPIUrl},
		{ConfigAPIVersion, DefaultAPIVersion},
		{ConfigAppID, DefaultAppID},
		{ConfigSyncInterval, DefaultSyncInterval},
		{ConfigFeaturesEnabled, DefaultFeaturesEnabled},
	}
}
