// Package dashboard aggregates marketplace data across every connected seller
// account: recent orders, payout statements, and the pack fulfillment action.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gmh-saber/daraz-seller-gateway/internal/domain/marketplace"
)

const (
	// defaultWindowDays is the order lookback window when the caller gives none
	defaultWindowDays = 30
	// ordersPageSize is the provider's maximum page size for order listings
	ordersPageSize = 100
)

// Service fans requests out to every connected account concurrently and
// merges the per-account results. One failing account never hides the data of
// the accounts that answered; failures are reported alongside the merged
// results and the operation only errors when every account failed.
type Service struct {
	gateway marketplace.Gateway
	store   marketplace.CredentialStore
	logger  *zap.Logger

	// now is injectable for deterministic window tests
	now func() time.Time
}

// NewService creates a dashboard service over the given gateway and store
func NewService(gateway marketplace.Gateway, credStore marketplace.CredentialStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		gateway: gateway,
		store:   credStore,
		logger:  logger.Named("dashboard"),
		now:     time.Now,
	}
}

// Orders returns orders created within the last windowDays across all
// connected accounts, each tagged with the account it came from. Results keep
// account connection order; order within one account is the provider's.
func (s *Service) Orders(ctx context.Context, windowDays int) ([]marketplace.TaggedOrder, []marketplace.AccountFailure, error) {
	if windowDays <= 0 {
		windowDays = defaultWindowDays
	}
	createdAfter := s.now().AddDate(0, 0, -windowDays)

	accounts := s.store.List()
	perAccount := make([][]marketplace.TaggedOrder, len(accounts))
	errs := make([]error, len(accounts))

	var wg sync.WaitGroup
	for i, account := range accounts {
		wg.Add(1)
		go func(i int, account marketplace.Account) {
			defer wg.Done()
			orders, err := s.gateway.FetchOrders(ctx, account.SellerID, createdAfter, ordersPageSize, 0)
			if err != nil {
				errs[i] = err
				return
			}
			tagged := make([]marketplace.TaggedOrder, 0, len(orders))
			for _, order := range orders {
				tagged = append(tagged, marketplace.TaggedOrder{Order: order, Account: account.Identity()})
			}
			perAccount[i] = tagged
		}(i, account)
	}
	wg.Wait()

	merged := make([]marketplace.TaggedOrder, 0)
	for _, orders := range perAccount {
		merged = append(merged, orders...)
	}
	failures := s.collectFailures(accounts, errs, "orders")

	if err := aggregateError(accounts, failures); err != nil {
		return nil, failures, err
	}
	return merged, failures, nil
}

// Financials returns payout statements across all connected accounts, each
// tagged with the account it came from
func (s *Service) Financials(ctx context.Context) ([]marketplace.TaggedPayout, []marketplace.AccountFailure, error) {
	accounts := s.store.List()
	perAccount := make([][]marketplace.TaggedPayout, len(accounts))
	errs := make([]error, len(accounts))

	var wg sync.WaitGroup
	for i, account := range accounts {
		wg.Add(1)
		go func(i int, account marketplace.Account) {
			defer wg.Done()
			payouts, err := s.gateway.FetchPayouts(ctx, account.SellerID)
			if err != nil {
				errs[i] = err
				return
			}
			tagged := make([]marketplace.TaggedPayout, 0, len(payouts))
			for _, payout := range payouts {
				tagged = append(tagged, marketplace.TaggedPayout{Payout: payout, Account: account.Identity()})
			}
			perAccount[i] = tagged
		}(i, account)
	}
	wg.Wait()

	merged := make([]marketplace.TaggedPayout, 0)
	for _, payouts := range perAccount {
		merged = append(merged, payouts...)
	}
	failures := s.collectFailures(accounts, errs, "financials")

	if err := aggregateError(accounts, failures); err != nil {
		return nil, failures, err
	}
	return merged, failures, nil
}

// Pack marks order items ready to ship on one specific account
func (s *Service) Pack(ctx context.Context, accountID string, orderItemIDs []int64) (json.RawMessage, error) {
	if _, err := s.store.Get(accountID); err != nil {
		return nil, err
	}
	return s.gateway.PackOrder(ctx, accountID, orderItemIDs)
}

// collectFailures pairs per-account errors with their account identity and
// logs each one
func (s *Service) collectFailures(accounts []marketplace.Account, errs []error, operation string) []marketplace.AccountFailure {
	var failures []marketplace.AccountFailure
	for i, err := range errs {
		if err == nil {
			continue
		}
		failures = append(failures, marketplace.AccountFailure{
			Account: accounts[i].Identity(),
			Err:     err,
		})
		s.logger.Warn("Account excluded from aggregate",
			zap.String("operation", operation),
			zap.String("seller_id", accounts[i].SellerID),
			zap.Error(err),
		)
	}
	return failures
}

// aggregateError returns ErrAggregateFailed when every connected account
// failed; partial failure is not an error
func aggregateError(accounts []marketplace.Account, failures []marketplace.AccountFailure) error {
	if len(accounts) > 0 && len(failures) == len(accounts) {
		return fmt.Errorf("%w: %v", marketplace.ErrAggregateFailed, failures[0].Err)
	}
	return nil
}
