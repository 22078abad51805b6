package session

import (
	"errors"
	"sync"
)

// ErrNotStored is returned when a key has no persisted value.
var ErrNotStored = errors.New("not stored")

// Credentials is a remembered username/password pair. It is only ever held
// transiently in memory or in the OS keyring, never written to plain files.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Store is the durable storage behind a session: the bearer token, the cached
// role flag, and optionally remembered credentials. Implementations return
// ErrNotStored for absent values; deleting an absent value is not an error.
//
// The production implementation is backed by the OS keyring and a state file
// (see NewOSStore); tests use NewMemStore.
type Store interface {
	LoadToken() (string, error)
	SaveToken(token string) error
	DeleteToken() error

	LoadIsAdmin() (bool, error)
	SaveIsAdmin(isAdmin bool) error
	DeleteIsAdmin() error

	LoadCredentials() (Credentials, error)
	SaveCredentials(creds Credentials) error
	DeleteCredentials() error
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	mu      sync.Mutex
	token   *string
	isAdmin *bool
	creds   *Credentials
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (m *MemStore) LoadToken() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == nil {
		return "", ErrNotStored
	}
	return *m.token, nil
}

func (m *MemStore) SaveToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = &token
	return nil
}

func (m *MemStore) DeleteToken() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = nil
	return nil
}

func (m *MemStore) LoadIsAdmin() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.isAdmin == nil {
		return false, ErrNotStored
	}
	return *m.isAdmin, nil
}

func (m *MemStore) SaveIsAdmin(isAdmin bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.isAdmin = &isAdmin
	return nil
}

func (m *MemStore) DeleteIsAdmin() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.isAdmin = nil
	return nil
}

func (m *MemStore) LoadCredentials() (Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.creds == nil {
		return Credentials{}, ErrNotStored
	}
	return *m.creds, nil
}

func (m *MemStore) SaveCredentials(creds Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = &creds
	return nil
}

func (m *MemStore) DeleteCredentials() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = nil
	return nil
}
