// Package connect implements the seller onboarding flow: issuing the OAuth
// authorize URL, redeeming the callback's authorization code for credentials,
// and managing the set of connected accounts.
package connect

import (
	"context"

	"go.uber.org/zap"

	"github.com/gmh-saber/daraz-seller-gateway/internal/domain/marketplace"
)

// Gateway is the slice of the marketplace integration the connect flow needs
type Gateway interface {
	AuthorizeURL(state string) (string, error)
	ExchangeCode(ctx context.Context, code string) (marketplace.Account, error)
}

// Service orchestrates seller account connection and removal
type Service struct {
	gateway Gateway
	store   marketplace.CredentialStore
	states  *stateRegistry
	logger  *zap.Logger
}

// NewService creates a connect service backed by the given gateway and store
func NewService(gateway Gateway, credStore marketplace.CredentialStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		gateway: gateway,
		store:   credStore,
		states:  newStateRegistry(stateTTL),
		logger:  logger.Named("connect"),
	}
}

// AuthorizeURL returns the seller-facing OAuth authorize URL carrying a fresh
// single-use state token
func (s *Service) AuthorizeURL() (string, error) {
	return s.gateway.AuthorizeURL(s.states.Issue())
}

// Connect redeems an OAuth callback into a stored, connected account. When the
// callback carries a state parameter it must match a token this service
// issued; callbacks without one are accepted for providers that drop it.
func (s *Service) Connect(ctx context.Context, code, state string) (marketplace.AccountIdentity, error) {
	if code == "" {
		return marketplace.AccountIdentity{}, marketplace.ErrMissingAuthCode
	}
	if state != "" && !s.states.Consume(state) {
		return marketplace.AccountIdentity{}, marketplace.ErrInvalidState
	}

	account, err := s.gateway.ExchangeCode(ctx, code)
	if err != nil {
		return marketplace.AccountIdentity{}, err
	}
	s.store.Put(account)

	s.logger.Info("Seller account connected",
		zap.String("seller_id", account.SellerID),
		zap.String("display_name", account.DisplayName),
	)
	return account.Identity(), nil
}

// Disconnect removes a connected account, reporting whether it existed
func (s *Service) Disconnect(sellerID string) bool {
	removed := s.store.Delete(sellerID)
	if removed {
		s.logger.Info("Seller account disconnected", zap.String("seller_id", sellerID))
	}
	return removed
}

// Accounts lists the connected accounts as display identities, never exposing
// token material
func (s *Service) Accounts() []marketplace.AccountIdentity {
	return s.store.ListIdentities()
}
