package banadirmain

import (
	"strconv"
	"strings"

	"auto-repair-site/constants"
	"auto-repair-site/storage"
	"auto-repair-site/utils"
)

// encPrefix marks a config value that was encrypted at rest.
const encPrefix = "enc:"

// IntegrationConfig is the resolved Banadir Main configuration. It is
// loaded from the system_config table in one place instead of ad hoc key
// reads scattered through each sync function, and refreshed at the start
// of every operation so admin changes take effect without a restart.
type IntegrationConfig struct {
	Enabled      bool
	BaseURL      string
	APIVersion   string
	AppID        string
	APIKey       string
	SyncInterval int // minutes
}

// LoadIntegrationConfig reads the integration settings, applying the
// built-in defaults for keys that have never been written.
func LoadIntegrationConfig(store storage.Storage) (IntegrationConfig, error) {
	cfg := IntegrationConfig{}

	enabled, err := store.GetConfig(constants.ConfigFeaturesEnabled)
	if err != nil {
		return cfg, err
	}
	cfg.Enabled = enabled == "" || enabled == "true"

	if cfg.BaseURL, err = configOrDefault(store, constants.ConfigAPIUrl, constants.DefaultAPIUrl); err != nil {
		return cfg, err
	}
	if cfg.APIVersion, err = configOrDefault(store, constants.ConfigAPIVersion, constants.DefaultAPIVersion); err != nil {
		return cfg, err
	}
	if cfg.AppID, err = configOrDefault(store, constants.ConfigAppID, constants.DefaultAppID); err != nil {
		return cfg, err
	}

	interval, err := configOrDefault(store, constants.ConfigSyncInterval, constants.DefaultSyncInterval)
	if err != nil {
		return cfg, err
	}
	if cfg.SyncInterval, err = strconv.Atoi(interval); err != nil {
		cfg.SyncInterval, _ = strconv.Atoi(constants.DefaultSyncInterval)
	}

	if cfg.APIKey, err = ReadAPIKey(store); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func configOrDefault(store storage.Storage, key, def string) (string, error) {
	value, err := store.GetConfig(key)
	if err != nil {
		return "", err
	}
	if value == "" {
		return def, nil
	}
	return value, nil
}

// ReadAPIKey returns the remote API key, transparently decrypting a value
// stored encrypted.
func ReadAPIKey(store storage.Storage) (string, error) {
	value, err := store.GetConfig(constants.ConfigAPIKey)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(value, encPrefix) {
		return utils.DecryptData(strings.TrimPrefix(value, encPrefix))
	}
	return value, nil
}

// WriteAPIKey stores the remote API key, encrypting it at rest when an
// encryption key is configured.
func WriteAPIKey(store storage.Storage, value string) error {
	if utils.HasEncryptionKey() {
		encrypted, err := utils.EncryptData(value)
		if err != nil {
			return err
		}
		value = encPrefix + encrypted
	}
	return store.SetConfig(constants.ConfigAPIKey, value)
}
