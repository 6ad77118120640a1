package banadirmain

import (
	"errors"
	"fmt"
	"time"

	"auto-repair-site/constants"
	httpServices "auto-repair-site/httpServices/banadirmain"
	"auto-repair-site/logger"
	"auto-repair-site/models/appointment"
	"auto-repair-site/models/contact"
	"auto-repair-site/models/user"
	"auto-repair-site/storage"
	"auto-repair-site/types"
	"auto-repair-site/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// maxSyncBatch caps how many unsynced submissions one pass will push.
const maxSyncBatch = 100

// ErrAPIKeyNotConfigured aborts a sync operation before any remote call
// when no API key has been stored.
var ErrAPIKeyNotConfigured = errors.New("API key not configured for Banadir Main")

// ErrIntegrationDisabled is returned by operations that cannot silently
// no-op, such as account linking, while the integration is switched off.
var ErrIntegrationDisabled = errors.New("Banadir Main integration is disabled")

// Service moves data between local storage and the Banadir Main system.
type Service struct {
	store  storage.Storage
	client *httpServices.MainClient
}

// NewService wires the sync service to a storage implementation and a
// remote client.
func NewService(store storage.Storage, client *httpServices.MainClient) *Service {
	return &Service{store: store, client: client}
}

// SyncContactSubmissions pushes unsynced contact submissions to the main
// system's /leads endpoint and returns how many were synced in this pass.
// A single failing submission is released back to unsynced and never aborts
// the batch; a missing API key aborts before any remote call.
func (s *Service) SyncContactSubmissions() (int, error) {
	cfg, err := LoadIntegrationConfig(s.store)
	if err != nil {
		return 0, err
	}
	if !cfg.Enabled {
		return 0, nil
	}

	submissions, err := s.store.GetUnsyncedContactSubmissions(maxSyncBatch)
	if err != nil {
		return 0, err
	}
	if len(submissions) == 0 {
		return 0, nil
	}

	if cfg.APIKey == "" {
		return 0, ErrAPIKeyNotConfigured
	}

	runID := uuid.NewString()[:8]
	logger.Info(fmt.Sprintf("[sync %s] pushing %d contact submissions", runID, len(submissions)))

	syncCount := 0
	for _, sub := range submissions {
		claimed, err := s.store.ClaimContactSubmission(sub.ID)
		if err != nil {
			logger.Error(fmt.Sprintf("[sync %s] claiming submission %d", runID, sub.ID), err)
			continue
		}
		if !claimed {
			// Another sync pass got here first.
			continue
		}

		resp, err := s.client.PostLead(cfg.BaseURL, cfg.APIKey, buildLeadPayload(sub))
		if err != nil {
			logger.Error(fmt.Sprintf("[sync %s] syncing submission %d", runID, sub.ID), err)
			s.release(sub.ID, runID)
			continue
		}

		if err := s.store.MarkContactSubmissionSynced(sub.ID, resp.ID); err != nil {
			logger.Error(fmt.Sprintf("[sync %s] marking submission %d synced", runID, sub.ID), err)
			s.release(sub.ID, runID)
			continue
		}
		syncCount++
	}

	logger.Success(fmt.Sprintf("[sync %s] synced %d of %d contact submissions", runID, syncCount, len(submissions)))
	return syncCount, nil
}

func (s *Service) release(id uint, runID string) {
	if err := s.store.ReleaseContactSubmission(id); err != nil {
		logger.Error(fmt.Sprintf("[sync %s] releasing submission %d", runID, id), err)
	}
}

func buildLeadPayload(sub contact.ContactSubmission) httpServices.LeadPayload {
	message := ""
	if sub.Message != nil {
		message = *sub.Message
	}
	return httpServices.LeadPayload{
		Name:          sub.Name,
		Email:         sub.Email,
		Phone:         sub.Phone,
		Service:       sub.Service,
		Vehicle:       sub.Vehicle,
		Message:       message,
		InsuranceHelp: sub.InsuranceHelp,
		CreatedAt:     sub.CreatedAt.UTC().Format(time.RFC3339),
		Source:        "website",
	}
}

// FetchAppointments pulls the appointment list from the main system and
// upserts it into the local cache, returning the number of appointments
// processed. Every pass is a full refresh: the remote endpoint has no
// date-range parameter, so the stored sync cursor is informational only.
func (s *Service) FetchAppointments() (int, error) {
	cfg, err := LoadIntegrationConfig(s.store)
	if err != nil {
		return 0, err
	}
	if !cfg.Enabled {
		return 0, nil
	}

	lastSync, err := s.store.GetConfig(constants.ConfigLastApptSync)
	if err != nil {
		return 0, err
	}
	if lastSync == "" {
		lastSync = time.Unix(0, 0).UTC().Format(time.RFC3339)
	}

	if cfg.APIKey == "" {
		return 0, ErrAPIKeyNotConfigured
	}

	runID := uuid.NewString()[:8]
	logger.Info(fmt.Sprintf("[sync %s] fetching appointments (last sync %s)", runID, lastSync))

	remote, err := s.client.FetchAppointments(cfg.BaseURL, cfg.APIKey)
	if err != nil {
		if errors.Is(err, httpServices.ErrNotArray) {
			logger.Warning(fmt.Sprintf("[sync %s] appointments response was not an array", runID))
			return 0, nil
		}
		return 0, err
	}

	importCount := 0
	for _, remoteAppt := range remote {
		if err := remoteAppt.Validate(); err != nil {
			logger.Error(fmt.Sprintf("[sync %s] processing appointment %q", runID, remoteAppt.ID), err)
			continue
		}

		date, _ := remoteAppt.ParsedDate()
		status := remoteAppt.Status
		if status == "" {
			status = appointment.StatusPending.String()
		}

		cached := appointment.MainAppointment{
			MainAppointmentID: remoteAppt.ID,
			CustomerName:      remoteAppt.Customer.Name,
			CustomerPhone:     remoteAppt.Customer.Phone,
			AppointmentDate:   date,
			ServiceType:       remoteAppt.ServiceType,
			VehicleInfo:       datatypes.JSON(remoteAppt.Vehicle),
			Notes:             remoteAppt.Notes,
			Status:            status,
			LastSynced:        time.Now(),
		}

		if err := s.store.UpsertMainAppointment(&cached); err != nil {
			logger.Error(fmt.Sprintf("[sync %s] caching appointment %q", runID, remoteAppt.ID), err)
			continue
		}
		importCount++
	}

	// The cursor is advanced even when individual appointments failed; the
	// next pass re-fetches the full list anyway.
	if err := s.store.SetConfig(constants.ConfigLastApptSync, time.Now().UTC().Format(time.RFC3339)); err != nil {
		logger.Error(fmt.Sprintf("[sync %s] updating last appointment sync", runID), err)
	}

	logger.Success(fmt.Sprintf("[sync %s] imported %d of %d appointments", runID, importCount, len(remote)))
	return importCount, nil
}

// RunCompleteSync runs the contact push then the appointment pull, never
// concurrently. There is no rollback across the phases: when the second
// phase fails the first phase's effects remain committed.
func (s *Service) RunCompleteSync() (*types.CompleteSyncData, error) {
	contactsSync, err := s.SyncContactSubmissions()
	if err != nil {
		return nil, err
	}

	appointmentsSync, err := s.FetchAppointments()
	if err != nil {
		return nil, err
	}

	return &types.CompleteSyncData{
		ContactsSync:     contactsSync,
		AppointmentsSync: appointmentsSync,
	}, nil
}

// Initialize seeds the default integration configuration, writing each key
// only if no value exists yet. A failure on one key is logged and seeding
// continues with the next; the last failure is still reported so the
// caller knows the config is incomplete.
func (s *Service) Initialize() error {
	var seedErr error
	for _, kv := range constants.DefaultConfig() {
		key, value := kv[0], kv[1]

		existing, err := s.store.GetConfig(key)
		if err != nil {
			logger.Error(fmt.Sprintf("reading config %s during init", key), err)
			seedErr = err
			continue
		}
		if existing != "" {
			continue
		}
		if err := s.store.SetConfig(key, value); err != nil {
			logger.Error(fmt.Sprintf("seeding config %s", key), err)
			seedErr = err
		}
	}
	if seedErr != nil {
		return fmt.Errorf("seeding integration defaults: %w", seedErr)
	}

	logger.Success("Banadir Main integration initialized")
	return nil
}

// LinkAccount authenticates a local user against the main system's /auth
// endpoint and stores the issued token and linkage on the user row.
func (s *Service) LinkAccount(userID uint, username, password string) (*user.User, error) {
	cfg, err := LoadIntegrationConfig(s.store)
	if err != nil {
		return nil, err
	}
	if !cfg.Enabled {
		return nil, ErrIntegrationDisabled
	}

	auth, err := s.client.Authenticate(cfg.BaseURL, httpServices.AuthRequest{
		Username:      username,
		Password:      password,
		ApplicationID: cfg.AppID,
	})
	if err != nil {
		return nil, err
	}

	linked, err := s.store.LinkUserToMainSystem(userID, username, auth.Token, auth.ExpiryTime())
	if err != nil {
		return nil, err
	}

	logger.Success(fmt.Sprintf("Linked user %d to Banadir Main account %q", userID, username))
	return linked, nil
}

// Settings returns the current integration configuration for the admin
// dashboard, with the API key masked.
func (s *Service) Settings() (map[string]string, error) {
	settings := make(map[string]string)

	for _, key := range []string{
		constants.ConfigAPIUrl,
		constants.ConfigAPIVersion,
		constants.ConfigAppID,
		constants.ConfigSyncInterval,
		constants.ConfigFeaturesEnabled,
		constants.ConfigLastApptSync,
	} {
		value, err := s.store.GetConfig(key)
		if err != nil {
			return nil, err
		}
		settings[key] = value
	}

	apiKey, err := ReadAPIKey(s.store)
	if err != nil {
		return nil, err
	}
	settings[constants.ConfigAPIKey] = utils.MaskSecret(apiKey)

	return settings, nil
}

// UpdateSetting writes one integration setting. The API key is encrypted
// at rest when an encryption key is configured.
func (s *Service) UpdateSetting(key, value string) error {
	if key == constants.ConfigAPIKey {
		return WriteAPIKey(s.store, value)
	}
	return s.store.SetConfig(key, value)
}
