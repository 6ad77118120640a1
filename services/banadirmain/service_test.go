package banadirmain

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"auto-repair-site/constants"
	httpServices "auto-repair-site/httpServices/banadirmain"
	"auto-repair-site/models/appointment"
	"auto-repair-site/models/contact"
	"auto-repair-site/models/user"
	"auto-repair-site/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mainSystemMock struct {
	server       *httptest.Server
	leadCalls    int64
	apptCalls    int64
	failLeadName string
	appointments []map[string]interface{}
	apptBody     string
}

func newMainSystemMock(t *testing.T) *mainSystemMock {
	t.Helper()
	m := &mainSystemMock{}

	mux := http.NewServeMux()
	mux.HandleFunc("/leads", func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt64(&m.leadCalls, 1)

		var lead map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&lead); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if m.failLeadName != "" && lead["name"] == m.failLeadName {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":"remote-%d"}`, n)
	})
	mux.HandleFunc("/appointments", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&m.apptCalls, 1)
		w.Header().Set("Content-Type", "application/json")
		if m.apptBody != "" {
			fmt.Fprint(w, m.apptBody)
			return
		}
		_ = json.NewEncoder(w).Encode(m.appointments)
	})
	mux.HandleFunc("/auth", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"token":"main-token","refreshToken":"main-refresh","expiresAt":%d}`,
			time.Now().Add(time.Hour).UnixMilli())
	})

	m.server = httptest.NewServer(mux)
	t.Cleanup(m.server.Close)
	return m
}

func newTestService(t *testing.T, mock *mainSystemMock) (*Service, *storage.MemStorage) {
	t.Helper()
	store := storage.NewMemStorage()
	require.NoError(t, store.SetConfig(constants.ConfigAPIUrl, mock.server.URL))
	require.NoError(t, store.SetConfig(constants.ConfigAPIKey, "test-key"))
	return NewService(store, httpServices.NewClient()), store
}

func createSubmission(t *testing.T, store *storage.MemStorage, name string) *contact.ContactSubmission {
	t.Helper()
	sub, err := store.CreateContactSubmission(&contact.ContactSubmission{
		Name:    name,
		Phone:   "6125551234",
		Email:   name + "@example.com",
		Service: "collision",
		Vehicle: "2020 Honda Civic",
	})
	require.NoError(t, err)
	return sub
}

func remoteAppointment(id, customerName, status string) map[string]interface{} {
	return map[string]interface{}{
		"id":          id,
		"customer":    map[string]string{"name": customerName, "phone": "6125550000"},
		"date":        "2026-09-15T10:00:00Z",
		"serviceType": "collision",
		"vehicle":     map[string]string{"make": "Honda", "model": "Civic"},
		"notes":       "rear bumper",
		"status":      status,
	}
}

func TestSyncContactSubmissionsPushesUnsynced(t *testing.T) {
	mock := newMainSystemMock(t)
	svc, store := newTestService(t, mock)

	first := createSubmission(t, store, "Jane Doe")
	second := createSubmission(t, store, "John Roe")

	count, err := svc.SyncContactSubmissions()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	for _, id := range []uint{first.ID, second.ID} {
		stored, err := store.GetContactSubmissionByID(id)
		require.NoError(t, err)
		assert.True(t, stored.SyncedWithMain)
		require.NotNil(t, stored.MainSystemID)
		assert.NotEmpty(t, *stored.MainSystemID)
	}
}

func TestSyncContactSubmissionsIsMonotonic(t *testing.T) {
	mock := newMainSystemMock(t)
	svc, store := newTestService(t, mock)

	createSubmission(t, store, "Jane Doe")
	createSubmission(t, store, "John Roe")

	count, err := svc.SyncContactSubmissions()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// Synced records must never be pushed again.
	count, err = svc.SyncContactSubmissions()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, int64(2), atomic.LoadInt64(&mock.leadCalls))
}

func TestSyncContactSubmissionsPartialFailure(t *testing.T) {
	mock := newMainSystemMock(t)
	mock.failLeadName = "Flaky Customer"
	svc, store := newTestService(t, mock)

	createSubmission(t, store, "Jane Doe")
	failing := createSubmission(t, store, "Flaky Customer")
	createSubmission(t, store, "John Roe")

	count, err := svc.SyncContactSubmissions()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	stored, err := store.GetContactSubmissionByID(failing.ID)
	require.NoError(t, err)
	assert.False(t, stored.SyncedWithMain)
	assert.Nil(t, stored.MainSystemID)

	// The failed record is released and picked up by the next pass.
	unsynced, err := store.GetUnsyncedContactSubmissions(100)
	require.NoError(t, err)
	require.Len(t, unsynced, 1)
	assert.Equal(t, failing.ID, unsynced[0].ID)
}

func TestSyncContactSubmissionsRequiresAPIKey(t *testing.T) {
	mock := newMainSystemMock(t)
	svc, store := newTestService(t, mock)
	require.NoError(t, store.SetConfig(constants.ConfigAPIKey, ""))

	createSubmission(t, store, "Jane Doe")

	_, err := svc.SyncContactSubmissions()
	require.ErrorIs(t, err, ErrAPIKeyNotConfigured)
	assert.Equal(t, int64(0), atomic.LoadInt64(&mock.leadCalls))
}

func TestSyncContactSubmissionsNothingToDo(t *testing.T) {
	mock := newMainSystemMock(t)
	svc, store := newTestService(t, mock)
	// The API key precondition only applies once there is work to do.
	require.NoError(t, store.SetConfig(constants.ConfigAPIKey, ""))

	count, err := svc.SyncContactSubmissions()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestSyncContactSubmissionsDisabledIntegration(t *testing.T) {
	mock := newMainSystemMock(t)
	svc, store := newTestService(t, mock)
	require.NoError(t, store.SetConfig(constants.ConfigFeaturesEnabled, "false"))

	createSubmission(t, store, "Jane Doe")

	count, err := svc.SyncContactSubmissions()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, int64(0), atomic.LoadInt64(&mock.leadCalls))
}

func TestFetchAppointmentsImportsAndUpserts(t *testing.T) {
	mock := newMainSystemMock(t)
	svc, store := newTestService(t, mock)

	mock.appointments = []map[string]interface{}{
		remoteAppointment("appt-1", "Jane Doe", "pending"),
		remoteAppointment("appt-2", "John Roe", "confirmed"),
	}

	count, err := svc.FetchAppointments()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// Same remote id with new values must overwrite, not duplicate.
	mock.appointments = []map[string]interface{}{
		remoteAppointment("appt-1", "Jane Doe-Smith", "confirmed"),
	}
	count, err = svc.FetchAppointments()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	appts, err := store.ListMainAppointments()
	require.NoError(t, err)
	require.Len(t, appts, 2)

	cached, err := store.GetMainAppointmentByRemoteID("appt-1")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe-Smith", cached.CustomerName)
	assert.Equal(t, "confirmed", cached.Status)

	lastSync, err := store.GetConfig(constants.ConfigLastApptSync)
	require.NoError(t, err)
	assert.NotEmpty(t, lastSync)
}

func TestFetchAppointmentsSkipsMalformedElements(t *testing.T) {
	mock := newMainSystemMock(t)
	svc, store := newTestService(t, mock)

	broken := remoteAppointment("appt-broken", "", "pending")
	broken["customer"] = map[string]string{"phone": "6125550000"}
	mock.appointments = []map[string]interface{}{
		remoteAppointment("appt-1", "Jane Doe", "pending"),
		broken,
	}

	count, err := svc.FetchAppointments()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = store.GetMainAppointmentByRemoteID("appt-broken")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestFetchAppointmentsRejectsUnknownStatus(t *testing.T) {
	mock := newMainSystemMock(t)
	svc, store := newTestService(t, mock)

	mock.appointments = []map[string]interface{}{
		remoteAppointment("appt-1", "Jane Doe", "rescheduled"),
		remoteAppointment("appt-2", "John Roe", "confirmed"),
	}

	count, err := svc.FetchAppointments()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// The unrecognized status never reaches the cache.
	_, err = store.GetMainAppointmentByRemoteID("appt-1")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	cached, err := store.GetMainAppointmentByRemoteID("appt-2")
	require.NoError(t, err)
	assert.True(t, appointment.AppointmentStatus(cached.Status).IsValid())
}

func TestFetchAppointmentsDefaultsEmptyStatusToPending(t *testing.T) {
	mock := newMainSystemMock(t)
	svc, store := newTestService(t, mock)

	appt := remoteAppointment("appt-1", "Jane Doe", "")
	delete(appt, "status")
	mock.appointments = []map[string]interface{}{appt}

	count, err := svc.FetchAppointments()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	cached, err := store.GetMainAppointmentByRemoteID("appt-1")
	require.NoError(t, err)
	assert.Equal(t, appointment.StatusPending.String(), cached.Status)
}

func TestFetchAppointmentsNonArrayResponse(t *testing.T) {
	mock := newMainSystemMock(t)
	svc, _ := newTestService(t, mock)
	mock.apptBody = `{"error":"maintenance"}`

	count, err := svc.FetchAppointments()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestRunCompleteSyncReturnsBothCounts(t *testing.T) {
	mock := newMainSystemMock(t)
	svc, store := newTestService(t, mock)

	createSubmission(t, store, "Jane Doe")
	mock.appointments = []map[string]interface{}{
		remoteAppointment("appt-1", "Jane Doe", "pending"),
		remoteAppointment("appt-2", "John Roe", "pending"),
	}

	result, err := svc.RunCompleteSync()
	require.NoError(t, err)
	assert.Equal(t, 1, result.ContactsSync)
	assert.Equal(t, 2, result.AppointmentsSync)
}

func TestInitializeSeedsMissingDefaultsOnly(t *testing.T) {
	mock := newMainSystemMock(t)
	svc, store := newTestService(t, mock)
	require.NoError(t, store.SetConfig(constants.ConfigSyncInterval, "5"))

	require.NoError(t, svc.Initialize())

	interval, err := store.GetConfig(constants.ConfigSyncInterval)
	require.NoError(t, err)
	assert.Equal(t, "5", interval)

	appID, err := store.GetConfig(constants.ConfigAppID)
	require.NoError(t, err)
	assert.Equal(t, constants.DefaultAppID, appID)

	enabled, err := store.GetConfig(constants.ConfigFeaturesEnabled)
	require.NoError(t, err)
	assert.Equal(t, "true", enabled)
}

// brokenConfigStore fails every config write, leaving reads intact.
type brokenConfigStore struct {
	*storage.MemStorage
}

func (s *brokenConfigStore) SetConfig(key, value string) error {
	return errors.New("config table unavailable")
}

func TestInitializeReportsSeedingFailure(t *testing.T) {
	store := &brokenConfigStore{MemStorage: storage.NewMemStorage()}
	svc := NewService(store, httpServices.NewClient())

	err := svc.Initialize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seeding integration defaults")
}

func TestLinkAccountStoresMainSystemToken(t *testing.T) {
	mock := newMainSystemMock(t)
	svc, store := newTestService(t, mock)

	created, err := store.CreateUser(&user.User{Username: "shop-admin", Password: "secret123"})
	require.NoError(t, err)

	linked, err := svc.LinkAccount(created.ID, "shop-admin", "secret123")
	require.NoError(t, err)
	assert.True(t, linked.IsMainSystemLinked)
	require.NotNil(t, linked.MainSystemToken)
	assert.Equal(t, "main-token", *linked.MainSystemToken)
	assert.True(t, linked.HasValidMainToken())
}

func TestEndToEndLeadScenario(t *testing.T) {
	mock := newMainSystemMock(t)
	svc, store := newTestService(t, mock)

	sub, err := store.CreateContactSubmission(&contact.ContactSubmission{
		Name:          "Jane Doe",
		Phone:         "6125551234",
		Email:         "jane@example.com",
		Service:       "collision",
		Vehicle:       "2020 Honda Civic",
		InsuranceHelp: true,
	})
	require.NoError(t, err)
	assert.True(t, sub.InsuranceHelp)
	assert.False(t, sub.SyncedWithMain)

	count, err := svc.SyncContactSubmissions()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	stored, err := store.GetContactSubmissionByID(sub.ID)
	require.NoError(t, err)
	assert.True(t, stored.SyncedWithMain)
	require.NotNil(t, stored.MainSystemID)
	assert.Equal(t, "remote-1", *stored.MainSystemID)
}
