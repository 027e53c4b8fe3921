package marketplace

import (
	"context"
	"encoding/json"
	"time"
)

// ---------------------------------------------------------------------------
// Seller Account Model
// ---------------------------------------------------------------------------

// Account represents one connected seller identity together with the OAuth
// credentials obtained for it. Token fields are secrets; they must never leave
// the store except through the signed request path.
type Account struct {
	// SellerID is the marketplace-assigned seller identifier (unique key)
	SellerID string
	// DisplayName is the seller's short code / shop name
	DisplayName string
	// LogoURL is a static display-only logo for the seller
	LogoURL string
	// AccessToken is the OAuth access token (secret)
	AccessToken string
	// RefreshToken is the OAuth refresh token (secret)
	RefreshToken string
	// AccessTokenExpireAt is exchange time plus the provider-declared expiry
	AccessTokenExpireAt time.Time
}

// Identity returns the public projection of the account. The projection type
// structurally omits token material, so secrets cannot leak by serialization.
func (a Account) Identity() AccountIdentity {
	return AccountIdentity{
		ID:          a.SellerID,
		DisplayName: a.DisplayName,
		LogoURL:     a.LogoURL,
	}
}

// TokenExpired reports whether the access token is past (or within skew of)
// its recorded expiry.
func (a Account) TokenExpired(now time.Time, skew time.Duration) bool {
	if a.AccessTokenExpireAt.IsZero() {
		return false
	}
	return !now.Before(a.AccessTokenExpireAt.Add(-skew))
}

// AccountIdentity is the externally projectable view of a connected seller
type AccountIdentity struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	LogoURL     string `json:"logoUrl"`
}

// ---------------------------------------------------------------------------
// Ports
// ---------------------------------------------------------------------------

// CredentialStore is the process-lifetime mapping from seller ID to stored
// credentials. Implementations must make every operation mutually exclusive
// with concurrent reads and iteration; each operation is atomic in isolation.
type CredentialStore interface {
	// Put creates or overwrites the account keyed by its SellerID
	Put(account Account)

	// Get returns the account for the seller ID, or ErrAccountNotFound
	Get(sellerID string) (Account, error)

	// Delete removes the account and reports whether it existed
	Delete(sellerID string) bool

	// List returns all stored accounts in insertion order
	List() []Account

	// ListIdentities returns the public projection of all stored accounts
	// in insertion order
	ListIdentities() []AccountIdentity
}

// Gateway is the port to the marketplace partner API. Implementations sign
// every request per the marketplace auth scheme and normalize provider and
// transport failures into the package error taxonomy.
type Gateway interface {
	// ExchangeCode converts an authorization code into a connected Account.
	// It does not persist the account; that is the caller's side effect.
	ExchangeCode(ctx context.Context, code string) (Account, error)

	// FetchOrders returns the seller's orders created after the given instant,
	// one page of at most limit entries starting at offset
	FetchOrders(ctx context.Context, sellerID string, createdAfter time.Time, limit, offset int) ([]Order, error)

	// FetchPayouts returns the seller's payout status records
	FetchPayouts(ctx context.Context, sellerID string) ([]Payout, error)

	// PackOrder marks the given order items ready to ship under the seller's
	// account and returns the provider's response payload
	PackOrder(ctx context.Context, sellerID string, orderItemIDs []int64) (json.RawMessage, error)
}
