// Package directory holds the business-account records shown in the admin
// screens. It is a mutable in-memory dataset standing in for a future API;
// nothing here is persisted on purpose.
package directory

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

var ErrAccountNotFound = errors.New("account not found")

// Account is a business account of the user-management product.
type Account struct {
	ID           string    `json:"id"`
	BusinessName string    `json:"business_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	EIN          string    `json:"ein"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Username     string    `json:"username"`
	CreatedAt    time.Time `json:"created_at"`
}

// Service manages the account dataset. Safe for concurrent use.
type Service struct {
	mu       sync.RWMutex
	accounts map[string]Account
	logger   zerolog.Logger
}

// NewService creates a service pre-loaded with the sample dataset.
func NewService(log zerolog.Logger) *Service {
	s := &Service{
		accounts: make(map[string]Account),
		logger:   log,
	}
	for _, a := range seedAccounts() {
		s.accounts[a.ID] = a
	}
	return s
}

// List returns one page of accounts plus the total match count. The query is
// a case-insensitive substring match over business name and email. Accounts
// are ordered newest first.
func (s *Service) List(query string, offset, limit int) ([]Account, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	queryLower := strings.ToLower(query)
	matched := make([]Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		if queryLower == "" ||
			strings.Contains(strings.ToLower(a.BusinessName), queryLower) ||
			strings.Contains(strings.ToLower(a.Email), queryLower) {
			matched = append(matched, a)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []Account{}, total
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return matched[offset:end], total
}

// Get returns the account with the given ID.
func (s *Service) Get(id string) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[id]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return a, nil
}

// Create adds a new account and assigns it an ID.
func (s *Service) Create(account Account) Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	account.ID = ulid.Make().String()
	account.CreatedAt = time.Now().UTC()
	s.accounts[account.ID] = account

	s.logger.Info().Str("account_id", account.ID).Str("business", account.BusinessName).Msg("Account created")
	return account
}

// Update overwrites the mutable fields of an existing account.
func (s *Service) Update(id string, account Account) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.accounts[id]
	if !ok {
		return Account{}, ErrAccountNotFound
	}

	account.ID = existing.ID
	account.CreatedAt = existing.CreatedAt
	s.accounts[id] = account

	s.logger.Info().Str("account_id", id).Msg("Account updated")
	return account, nil
}

// Delete removes an account.
func (s *Service) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[id]; !ok {
		return ErrAccountNotFound
	}
	delete(s.accounts, id)

	s.logger.Info().Str("account_id", id).Msg("Account deleted")
	return nil
}
