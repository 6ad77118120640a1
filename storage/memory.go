package storage

import (
	"sort"
	"sync"
	"time"

	"auto-repair-site/models/appointment"
	"auto-repair-site/models/contact"
	"auto-repair-site/models/user"
)

// MemStorage is the in-memory fallback implementation of Storage. It is used
// when no database is configured and by tests.
type MemStorage struct {
	mu sync.Mutex

	users              map[uint]user.User
	contactSubmissions map[uint]contact.ContactSubmission
	appointments       map[string]appointment.MainAppointment
	config             map[string]string

	userCurrentID        uint
	contactCurrentID     uint
	appointmentCurrentID uint
}

// NewMemStorage creates an empty in-memory store.
func NewMemStorage() *MemStorage {
	return &MemStorage{
		users:              make(map[uint]user.User),
		contactSubmissions: make(map[uint]contact.ContactSubmission),
		appointments:       make(map[string]appointment.MainAppointment),
		config:             make(map[string]string),
	}
}

// User methods

func (s *MemStorage) GetUser(id uint) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemStorage) GetUserByUsername(username string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStorage) CreateUser(u *user.User) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == u.Username {
			return nil, ErrDuplicateUsername
		}
	}

	s.userCurrentID++
	stored := *u
	stored.ID = s.userCurrentID
	s.users[stored.ID] = stored
	return &stored, nil
}

func (s *MemStorage) LinkUserToMainSystem(id uint, mainUserID, token string, expiry time.Time) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	u.MainUserID = &mainUserID
	u.MainSystemToken = &token
	u.MainSystemTokenExpiry = &expiry
	u.IsMainSystemLinked = true
	s.users[id] = u
	return &u, nil
}

// Contact submission methods

func (s *MemStorage) CreateContactSubmission(sub *contact.ContactSubmission) (*contact.ContactSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.contactCurrentID++
	stored := *sub
	stored.ID = s.contactCurrentID
	stored.CreatedAt = time.Now()
	stored.SyncedWithMain = false
	stored.MainSystemID = nil
	stored.SyncInFlight = false
	s.contactSubmissions[stored.ID] = stored
	return &stored, nil
}

func (s *MemStorage) GetContactSubmissions() ([]contact.ContactSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sortedSubmissions(), nil
}

func (s *MemStorage) GetContactSubmissionByID(id uint) (*contact.ContactSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.contactSubmissions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &sub, nil
}

func (s *MemStorage) GetUnsyncedContactSubmissions(limit int) ([]contact.ContactSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var unsynced []contact.ContactSubmission
	for _, sub := range s.sortedSubmissions() {
		if sub.SyncedWithMain || sub.SyncInFlight {
			continue
		}
		unsynced = append(unsynced, sub)
		if limit > 0 && len(unsynced) >= limit {
			break
		}
	}
	return unsynced, nil
}

func (s *MemStorage) ClaimContactSubmission(id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.contactSubmissions[id]
	if !ok {
		return false, ErrNotFound
	}
	if sub.SyncedWithMain || sub.SyncInFlight {
		return false, nil
	}
	sub.SyncInFlight = true
	s.contactSubmissions[id] = sub
	return true, nil
}

func (s *MemStorage) ReleaseContactSubmission(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.contactSubmissions[id]
	if !ok {
		return ErrNotFound
	}
	sub.SyncInFlight = false
	s.contactSubmissions[id] = sub
	return nil
}

func (s *MemStorage) MarkContactSubmissionSynced(id uint, mainSystemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.contactSubmissions[id]
	if !ok {
		return ErrNotFound
	}
	sub.SyncedWithMain = true
	sub.MainSystemID = &mainSystemID
	sub.SyncInFlight = false
	s.contactSubmissions[id] = sub
	return nil
}

// sortedSubmissions returns submissions ordered by id, which matches
// creation order. Caller must hold the mutex.
func (s *MemStorage) sortedSubmissions() []contact.ContactSubmission {
	subs := make([]contact.ContactSubmission, 0, len(s.contactSubmissions))
	for _, sub := range s.contactSubmissions {
		subs = append(subs, sub)
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].ID < subs[j].ID })
	return subs
}

// Main appointment cache

func (s *MemStorage) GetMainAppointmentByRemoteID(remoteID string) (*appointment.MainAppointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	appt, ok := s.appointments[remoteID]
	if !ok {
		return nil, ErrNotFound
	}
	return &appt, nil
}

func (s *MemStorage) UpsertMainAppointment(appt *appointment.MainAppointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *appt
	if existing, ok := s.appointments[appt.MainAppointmentID]; ok {
		stored.ID = existing.ID
		// The local user linkage is never owned by the remote payload.
		stored.UserID = existing.UserID
	} else {
		s.appointmentCurrentID++
		stored.ID = s.appointmentCurrentID
	}
	s.appointments[stored.MainAppointmentID] = stored
	return nil
}

func (s *MemStorage) ListMainAppointments() ([]appointment.MainAppointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	appts := make([]appointment.MainAppointment, 0, len(s.appointments))
	for _, appt := range s.appointments {
		appts = append(appts, appt)
	}
	sort.Slice(appts, func(i, j int) bool { return appts[i].ID < appts[j].ID })
	return appts, nil
}

// Integration config

func (s *MemStorage) GetConfig(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.config[key], nil
}

func (s *MemStorage) SetConfig(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.config[key] = value
	return nil
}
