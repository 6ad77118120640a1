package storage

import (
	"testing"
	"time"

	"auto-repair-site/models/appointment"
	"auto-repair-site/models/contact"
	"auto-repair-site/models/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubmission(name string) *contact.ContactSubmission {
	return &contact.ContactSubmission{
		Name:    name,
		Phone:   "6125551234",
		Email:   "jane@example.com",
		Service: "collision",
		Vehicle: "2020 Honda Civic",
	}
}

func TestCreateContactSubmissionAssignsSystemFields(t *testing.T) {
	store := NewMemStorage()

	sub := newSubmission("Jane Doe")
	// Client-supplied system fields must be discarded.
	remoteID := "spoofed"
	sub.SyncedWithMain = true
	sub.MainSystemID = &remoteID

	stored, err := store.CreateContactSubmission(sub)
	require.NoError(t, err)
	assert.Equal(t, uint(1), stored.ID)
	assert.False(t, stored.SyncedWithMain)
	assert.Nil(t, stored.MainSystemID)
	assert.WithinDuration(t, time.Now(), stored.CreatedAt, time.Second)

	second, err := store.CreateContactSubmission(newSubmission("John Roe"))
	require.NoError(t, err)
	assert.Equal(t, uint(2), second.ID)
}

func TestGetContactSubmissionsOrdering(t *testing.T) {
	store := NewMemStorage()
	for _, name := range []string{"first", "second", "third"} {
		_, err := store.CreateContactSubmission(newSubmission(name))
		require.NoError(t, err)
	}

	subs, err := store.GetContactSubmissions()
	require.NoError(t, err)
	require.Len(t, subs, 3)
	assert.Equal(t, "first", subs[0].Name)
	assert.Equal(t, "third", subs[2].Name)
}

func TestGetContactSubmissionByIDNotFound(t *testing.T) {
	store := NewMemStorage()
	_, err := store.GetContactSubmissionByID(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClaimContactSubmission(t *testing.T) {
	store := NewMemStorage()
	stored, err := store.CreateContactSubmission(newSubmission("Jane Doe"))
	require.NoError(t, err)

	claimed, err := store.ClaimContactSubmission(stored.ID)
	require.NoError(t, err)
	assert.True(t, claimed)

	// A second claim while in flight must fail.
	claimed, err = store.ClaimContactSubmission(stored.ID)
	require.NoError(t, err)
	assert.False(t, claimed)

	// In-flight records are hidden from the unsynced listing.
	unsynced, err := store.GetUnsyncedContactSubmissions(100)
	require.NoError(t, err)
	assert.Empty(t, unsynced)

	// Release makes the record claimable again.
	require.NoError(t, store.ReleaseContactSubmission(stored.ID))
	claimed, err = store.ClaimContactSubmission(stored.ID)
	require.NoError(t, err)
	assert.True(t, claimed)
}

func TestMarkContactSubmissionSyncedIsTerminal(t *testing.T) {
	store := NewMemStorage()
	stored, err := store.CreateContactSubmission(newSubmission("Jane Doe"))
	require.NoError(t, err)

	require.NoError(t, store.MarkContactSubmissionSynced(stored.ID, "remote-42"))

	synced, err := store.GetContactSubmissionByID(stored.ID)
	require.NoError(t, err)
	assert.True(t, synced.SyncedWithMain)
	require.NotNil(t, synced.MainSystemID)
	assert.Equal(t, "remote-42", *synced.MainSystemID)

	claimed, err := store.ClaimContactSubmission(stored.ID)
	require.NoError(t, err)
	assert.False(t, claimed)

	unsynced, err := store.GetUnsyncedContactSubmissions(100)
	require.NoError(t, err)
	assert.Empty(t, unsynced)
}

func TestGetUnsyncedContactSubmissionsLimit(t *testing.T) {
	store := NewMemStorage()
	for i := 0; i < 5; i++ {
		_, err := store.CreateContactSubmission(newSubmission("customer"))
		require.NoError(t, err)
	}

	unsynced, err := store.GetUnsyncedContactSubmissions(3)
	require.NoError(t, err)
	assert.Len(t, unsynced, 3)
	assert.Equal(t, uint(1), unsynced[0].ID)
}

func TestCreateUserEnforcesUniqueUsername(t *testing.T) {
	store := NewMemStorage()

	created, err := store.CreateUser(&user.User{Username: "admin", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, uint(1), created.ID)

	_, err = store.CreateUser(&user.User{Username: "admin", Password: "other"})
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	found, err := store.GetUserByUsername("admin")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = store.GetUserByUsername("nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLinkUserToMainSystem(t *testing.T) {
	store := NewMemStorage()
	created, err := store.CreateUser(&user.User{Username: "admin", Password: "secret123"})
	require.NoError(t, err)

	expiry := time.Now().Add(time.Hour)
	linked, err := store.LinkUserToMainSystem(created.ID, "main-user-7", "token-abc", expiry)
	require.NoError(t, err)
	assert.True(t, linked.IsMainSystemLinked)
	require.NotNil(t, linked.MainUserID)
	assert.Equal(t, "main-user-7", *linked.MainUserID)
	assert.True(t, linked.HasValidMainToken())

	_, err = store.LinkUserToMainSystem(99, "x", "y", expiry)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpsertMainAppointmentOverwrites(t *testing.T) {
	store := NewMemStorage()

	first := &appointment.MainAppointment{
		MainAppointmentID: "appt-1",
		CustomerName:      "Jane Doe",
		CustomerPhone:     "6125550000",
		AppointmentDate:   time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC),
		ServiceType:       "collision",
		Status:            "pending",
		LastSynced:        time.Now(),
	}
	require.NoError(t, store.UpsertMainAppointment(first))

	updated := *first
	updated.CustomerName = "Jane Doe-Smith"
	updated.Status = "confirmed"
	require.NoError(t, store.UpsertMainAppointment(&updated))

	appts, err := store.ListMainAppointments()
	require.NoError(t, err)
	require.Len(t, appts, 1)
	assert.Equal(t, "Jane Doe-Smith", appts[0].CustomerName)
	assert.Equal(t, "confirmed", appts[0].Status)

	cached, err := store.GetMainAppointmentByRemoteID("appt-1")
	require.NoError(t, err)
	assert.Equal(t, appts[0].ID, cached.ID)
}

func TestUpsertMainAppointmentPreservesUserLink(t *testing.T) {
	store := NewMemStorage()

	localUser := uint(7)
	require.NoError(t, store.UpsertMainAppointment(&appointment.MainAppointment{
		MainAppointmentID: "appt-1",
		CustomerName:      "Jane Doe",
		CustomerPhone:     "6125550000",
		AppointmentDate:   time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC),
		ServiceType:       "collision",
		Status:            "pending",
		UserID:            &localUser,
	}))

	// A refresh carrying a different user reference must not disturb the
	// local linkage.
	otherUser := uint(99)
	require.NoError(t, store.UpsertMainAppointment(&appointment.MainAppointment{
		MainAppointmentID: "appt-1",
		CustomerName:      "Jane Doe",
		CustomerPhone:     "6125550000",
		AppointmentDate:   time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC),
		ServiceType:       "collision",
		Status:            "confirmed",
		UserID:            &otherUser,
	}))

	cached, err := store.GetMainAppointmentByRemoteID("appt-1")
	require.NoError(t, err)
	require.NotNil(t, cached.UserID)
	assert.Equal(t, localUser, *cached.UserID)
	assert.Equal(t, "confirmed", cached.Status)
}

func TestConfigReadWrite(t *testing.T) {
	store := NewMemStorage()

	value, err := store.GetConfig("main_system_api_key")
	require.NoError(t, err)
	assert.Empty(t, value)

	require.NoError(t, store.SetConfig("main_system_api_key", "key-1"))
	require.NoError(t, store.SetConfig("main_system_api_key", "key-2"))

	value, err = store.GetConfig("main_system_api_key")
	require.NoError(t, err)
	assert.Equal(t, "key-2", value)
}
