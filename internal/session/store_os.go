package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zalando/go-keyring"
)

const keyringService = "voltconsole"

// osStore is the production Store. Secrets (token, remembered credentials) go
// to the OS keychain/credential manager; the non-secret role flag goes to a
// JSON state file under ~/.config/voltconsole/. All entries are scoped per
// site so multiple consoles can coexist.
type osStore struct {
	site string
}

// NewOSStore returns a Store scoped to the named site.
func NewOSStore(site string) Store {
	return &osStore{site: site}
}

func (s *osStore) tokenKey() string {
	return fmt.Sprintf("token-%s", s.site)
}

func (s *osStore) credentialsKey() string {
	return fmt.Sprintf("credentials-%s", s.site)
}

func (s *osStore) LoadToken() (string, error) {
	token, err := keyring.Get(keyringService, s.tokenKey())
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotStored
		}
		return "", fmt.Errorf("failed to load token: %w", err)
	}
	return token, nil
}

func (s *osStore) SaveToken(token string) error {
	if err := keyring.Set(keyringService, s.tokenKey(), token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

func (s *osStore) DeleteToken() error {
	if err := keyring.Delete(keyringService, s.tokenKey()); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

func (s *osStore) LoadCredentials() (Credentials, error) {
	data, err := keyring.Get(keyringService, s.credentialsKey())
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return Credentials{}, ErrNotStored
		}
		return Credentials{}, fmt.Errorf("failed to load credentials: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal([]byte(data), &creds); err != nil {
		return Credentials{}, fmt.Errorf("failed to parse credentials: %w", err)
	}
	return creds, nil
}

func (s *osStore) SaveCredentials(creds Credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}
	if err := keyring.Set(keyringService, s.credentialsKey(), string(data)); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	return nil
}

func (s *osStore) DeleteCredentials() error {
	if err := keyring.Delete(keyringService, s.credentialsKey()); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete credentials: %w", err)
	}
	return nil
}

func (s *osStore) LoadIsAdmin() (bool, error) {
	state, err := loadStateFile()
	if err != nil {
		return false, err
	}
	isAdmin, ok := state.IsAdmin[s.site]
	if !ok {
		return false, ErrNotStored
	}
	return isAdmin, nil
}

func (s *osStore) SaveIsAdmin(isAdmin bool) error {
	state, err := loadStateFile()
	if err != nil {
		return err
	}
	if state.IsAdmin == nil {
		state.IsAdmin = make(map[string]bool)
	}
	state.IsAdmin[s.site] = isAdmin
	return saveStateFile(state)
}

func (s *osStore) DeleteIsAdmin() error {
	state, err := loadStateFile()
	if err != nil {
		return err
	}
	if _, ok := state.IsAdmin[s.site]; !ok {
		return nil
	}
	delete(state.IsAdmin, s.site)
	return saveStateFile(state)
}

const (
	stateDirName  = "voltconsole"
	stateFileName = "state.json"
)

// stateFile holds the non-secret persisted session state, keyed by site.
type stateFile struct {
	IsAdmin map[string]bool `json:"is_admin"`
}

func stateFilePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", stateDirName, stateFileName), nil
}

func loadStateFile() (*stateFile, error) {
	path, err := stateFilePath()
	if err != nil {
		return nil, err
	}

	// Missing file means empty state
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &stateFile{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var state stateFile
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	return &state, nil
}

func saveStateFile(state *stateFile) error {
	path, err := stateFilePath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}
