// Package store provides the process-lifetime credential store. Credentials
// live for the life of the process only; a seller reconnects through the OAuth
// flow after a restart.
package store

import (
	"sync"

	"github.com/gmh-saber/daraz-seller-gateway/internal/domain/marketplace"
)

// MemoryStore is an in-memory CredentialStore guarded by a single RWMutex.
// Iteration order is insertion order, so aggregate output stays stable across
// calls while the set of accounts is unchanged.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[string]marketplace.Account
	order    []string
}

// NewMemoryStore creates an empty credential store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts: make(map[string]marketplace.Account),
	}
}

// Put creates or overwrites the account keyed by its SellerID
func (s *MemoryStore) Put(account marketplace.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.SellerID]; !exists {
		s.order = append(s.order, account.SellerID)
	}
	s.accounts[account.SellerID] = account
}

// Get returns the account for the seller ID, or ErrAccountNotFound
func (s *MemoryStore) Get(sellerID string) (marketplace.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[sellerID]
	if !ok {
		return marketplace.Account{}, marketplace.ErrAccountNotFound
	}
	return account, nil
}

// Delete removes the account and reports whether it existed
func (s *MemoryStore) Delete(sellerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[sellerID]; !ok {
		return false
	}
	delete(s.accounts, sellerID)
	for i, id := range s.order {
		if id == sellerID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// List returns all stored accounts in insertion order
func (s *MemoryStore) List() []marketplace.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]marketplace.Account, 0, len(s.order))
	for _, id := range s.order {
		accounts = append(accounts, s.accounts[id])
	}
	return accounts
}

// ListIdentities returns the public projection of all stored accounts in
// insertion order
func (s *MemoryStore) ListIdentities() []marketplace.AccountIdentity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	identities := make([]marketplace.AccountIdentity, 0, len(s.order))
	for _, id := range s.order {
		identities = append(identities, s.accounts[id].Identity())
	}
	return identities
}

// Len returns the number of stored accounts
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}

// Ensure MemoryStore implements the CredentialStore port
var _ marketplace.CredentialStore = (*MemoryStore)(nil)
