package marketplace

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// Error Taxonomy
// ---------------------------------------------------------------------------

var (
	// ErrNotConfigured indicates the app key/secret pair is missing; no
	// marketplace call can be made until it is configured.
	ErrNotConfigured = errors.New("marketplace: app credentials not configured")
	// ErrMissingAuthCode indicates the OAuth callback carried no authorization code
	ErrMissingAuthCode = errors.New("marketplace: authorization code is missing")
	// ErrInvalidState indicates the OAuth state parameter is unknown or expired
	ErrInvalidState = errors.New("marketplace: invalid or expired oauth state")
	// ErrAccountNotFound indicates the seller account is not in the credential store
	ErrAccountNotFound = errors.New("marketplace: account not found")
	// ErrNoValidToken indicates the account holds no usable access token;
	// the seller must re-authenticate
	ErrNoValidToken = errors.New("marketplace: no valid access token for account")
	// ErrTransport indicates a network or HTTP-level failure talking to the
	// marketplace; safe to retry with backoff
	ErrTransport = errors.New("marketplace: transport failure")
	// ErrMalformedResponse indicates a nominally successful envelope was
	// missing expected fields
	ErrMalformedResponse = errors.New("marketplace: malformed provider response")
	// ErrRefreshFailed indicates the provider rejected the refresh token
	ErrRefreshFailed = errors.New("marketplace: token refresh rejected")
	// ErrAggregateFailed indicates every constituent account failed during fan-out
	ErrAggregateFailed = errors.New("marketplace: aggregation failed for all accounts")
)

// LogicError is a marketplace-level rejection: the provider answered the call
// but refused it with a non-zero envelope code. Not retryable.
type LogicError struct {
	// Code is the provider's envelope code (never "0")
	Code string
	// Message is the provider's human-readable message
	Message string
}

// Error implements the error interface
func (e *LogicError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("marketplace: request rejected (code %s)", e.Code)
	}
	return fmt.Sprintf("marketplace: request rejected (code %s): %s", e.Code, e.Message)
}

// NewLogicError creates a LogicError with a generic fallback message
func NewLogicError(code, message string) *LogicError {
	if message == "" {
		message = "marketplace rejected the request"
	}
	return &LogicError{Code: code, Message: message}
}

// IsLogicError reports whether err is (or wraps) a provider rejection
func IsLogicError(err error) bool {
	var le *LogicError
	return errors.As(err, &le)
}
