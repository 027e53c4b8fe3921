package daraz

import (
	"encoding/json"

	"github.com/gmh-saber/daraz-seller-gateway/internal/domain/marketplace"
)

// envelopeSuccessCode is the provider's envelope code for a successful call
const envelopeSuccessCode = "0"

// envelope is the provider's uniform JSON response wrapper
type envelope struct {
	Code    string          `json:"code"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// isSuccess reports whether the envelope carries a successful response
func (e *envelope) isSuccess() bool {
	return e.Code == envelopeSuccessCode
}

// tokenData is the payload of /auth/token/create and /auth/token/refresh
type tokenData struct {
	AccessToken     string            `json:"access_token"`
	RefreshToken    string            `json:"refresh_token"`
	ExpiresIn       int64             `json:"expires_in"`
	CountryUserInfo []countryUserInfo `json:"country_user_info"`
}

// countryUserInfo identifies the seller behind a token grant. The first entry
// is authoritative for seller identity.
type countryUserInfo struct {
	Country   string `json:"country"`
	UserID    string `json:"user_id"`
	SellerID  string `json:"seller_id"`
	ShortCode string `json:"short_code"`
}

// ordersData is the payload of /orders/get
type ordersData struct {
	Count  int                 `json:"count"`
	Orders []marketplace.Order `json:"orders"`
}
