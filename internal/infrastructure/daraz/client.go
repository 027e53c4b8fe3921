package daraz

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/gmh-saber/daraz-seller-gateway/internal/domain/marketplace"
)

// maxResponseSize is the maximum allowed response size from the Daraz API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// Partner API paths
const (
	tokenCreatePath  = "/auth/token/create"
	tokenRefreshPath = "/auth/token/refresh"
	ordersPath       = "/orders/get"
	payoutStatusPath = "/finance/payout/status/get"
	orderPackPath    = "/order/pack"
)

const (
	// signMethod is the provider-mandated value of the sign_method parameter
	signMethod = "sha256"
	// tokenExpirySkew refreshes tokens this long before their recorded expiry
	tokenExpirySkew = 5 * time.Minute
	// maxTransportRetries bounds retry attempts after the initial call
	maxTransportRetries = 2
	// sellerLogoURL is the static display logo attached to every connected seller
	sellerLogoURL = "https://static-gs.daraz.com.bd/images/daraz-logo.png"
)

// Client issues signed requests to the Daraz partner API. It reads seller
// credentials from the store, refreshes access tokens lazily before expiry,
// and normalizes provider and transport failures into the marketplace error
// taxonomy. Transport failures retry with bounded exponential backoff;
// provider rejections never retry.
type Client struct {
	config     *Config
	signer     *Signer
	httpClient *http.Client
	store      marketplace.CredentialStore
	logger     *zap.Logger

	// now is injectable for deterministic timestamp tests
	now func() time.Time
}

// NewClient creates a Daraz API client with the given configuration
func NewClient(config *Config, credStore marketplace.CredentialStore, logger *zap.Logger) *Client {
	config.normalize()
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		config: config,
		signer: NewSigner(config.AppSecret),
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		store:  credStore,
		logger: logger.Named("daraz"),
		now:    time.Now,
	}
}

// timestamp returns the current time in milliseconds as a decimal string,
// the provider's required timestamp format
func (c *Client) timestamp() string {
	return strconv.FormatInt(c.now().UnixMilli(), 10)
}

// ---------------------------------------------------------------------------
// Token Exchange
// ---------------------------------------------------------------------------

// ExchangeCode converts an OAuth authorization code into a connected Account.
// The caller owns persisting the account into the credential store.
func (c *Client) ExchangeCode(ctx context.Context, code string) (marketplace.Account, error) {
	if code == "" {
		return marketplace.Account{}, marketplace.ErrMissingAuthCode
	}
	if c.config.AppKey == "" || c.config.AppSecret == "" {
		return marketplace.Account{}, marketplace.ErrNotConfigured
	}

	data, err := c.requestToken(ctx, tokenCreatePath, map[string]string{"code": code})
	if err != nil {
		return marketplace.Account{}, err
	}
	if len(data.CountryUserInfo) == 0 || data.CountryUserInfo[0].SellerID == "" {
		return marketplace.Account{}, fmt.Errorf("%w: token grant carries no seller identity", marketplace.ErrMalformedResponse)
	}

	seller := data.CountryUserInfo[0]
	account := marketplace.Account{
		SellerID:            seller.SellerID,
		DisplayName:         seller.ShortCode,
		LogoURL:             sellerLogoURL,
		AccessToken:         data.AccessToken,
		RefreshToken:        data.RefreshToken,
		AccessTokenExpireAt: c.now().Add(time.Duration(data.ExpiresIn) * time.Second),
	}

	c.logger.Info("Token exchange completed",
		zap.String("seller_id", account.SellerID),
		zap.String("short_code", account.DisplayName),
		zap.Time("access_token_expire_at", account.AccessTokenExpireAt),
	)
	return account, nil
}

// requestToken calls a token endpoint (create or refresh). Token endpoints
// take every parameter, including the signature, as form-encoded body fields.
func (c *Client) requestToken(ctx context.Context, path string, extra map[string]string) (*tokenData, error) {
	params := map[string]string{
		"app_key":     c.config.AppKey,
		"app_secret":  c.config.AppSecret,
		"sign_method": signMethod,
		"timestamp":   c.timestamp(),
	}
	for k, v := range extra {
		params[k] = v
	}
	params["sign"] = c.signer.Sign(path, params)

	form := url.Values{}
	for k, v := range params {
		form.Set(k, v)
	}

	env, err := c.do(ctx, http.MethodPost, path, nil, form.Encode())
	if err != nil {
		return nil, err
	}
	if !env.isSuccess() {
		return nil, marketplace.NewLogicError(env.Code, env.Message)
	}

	var data tokenData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", marketplace.ErrMalformedResponse, err)
	}
	if data.AccessToken == "" {
		return nil, fmt.Errorf("%w: success envelope without access_token", marketplace.ErrMalformedResponse)
	}
	return &data, nil
}

// ensureFreshToken refreshes the account's access token when it is at or near
// expiry, persisting the rotated credential back into the store
func (c *Client) ensureFreshToken(ctx context.Context, account marketplace.Account) (marketplace.Account, error) {
	if !account.TokenExpired(c.now(), tokenExpirySkew) {
		return account, nil
	}
	if account.RefreshToken == "" {
		return account, fmt.Errorf("%w: access token expired and no refresh token held", marketplace.ErrNoValidToken)
	}

	data, err := c.requestToken(ctx, tokenRefreshPath, map[string]string{"refresh_token": account.RefreshToken})
	if err != nil {
		if marketplace.IsLogicError(err) {
			return account, fmt.Errorf("%w: %v", marketplace.ErrRefreshFailed, err)
		}
		return account, err
	}

	account.AccessToken = data.AccessToken
	if data.RefreshToken != "" {
		account.RefreshToken = data.RefreshToken
	}
	account.AccessTokenExpireAt = c.now().Add(time.Duration(data.ExpiresIn) * time.Second)
	c.store.Put(account)

	c.logger.Info("Access token refreshed",
		zap.String("seller_id", account.SellerID),
		zap.Time("access_token_expire_at", account.AccessTokenExpireAt),
	)
	return account, nil
}

// ---------------------------------------------------------------------------
// Signed Request Executor
// ---------------------------------------------------------------------------

// Call issues a signed request to an arbitrary partner API path on behalf of
// one seller account and returns the envelope's data payload.
//
// Parameter routing is method-dependent and must match the provider exactly:
// the signature always covers the union of protocol and business parameters;
// GET sends everything in the query string; POST keeps protocol parameters and
// the signature in the query string and moves business parameters into a
// form-encoded body.
func (c *Client) Call(ctx context.Context, path, sellerID string, business map[string]string, method string) (json.RawMessage, error) {
	account, err := c.store.Get(sellerID)
	if err != nil {
		return nil, fmt.Errorf("%w: account %q not connected", marketplace.ErrNoValidToken, sellerID)
	}
	if account.AccessToken == "" {
		return nil, fmt.Errorf("%w: account %q holds an empty access token", marketplace.ErrNoValidToken, sellerID)
	}
	account, err = c.ensureFreshToken(ctx, account)
	if err != nil {
		return nil, err
	}

	protocol := map[string]string{
		"app_key":      c.config.AppKey,
		"access_token": account.AccessToken,
		"sign_method":  signMethod,
		"timestamp":    c.timestamp(),
	}
	signed := make(map[string]string, len(protocol)+len(business))
	for k, v := range protocol {
		signed[k] = v
	}
	for k, v := range business {
		signed[k] = v
	}
	sign := c.signer.Sign(path, signed)

	query := url.Values{}
	var body string
	switch method {
	case http.MethodGet:
		for k, v := range signed {
			query.Set(k, v)
		}
		query.Set("sign", sign)
	case http.MethodPost:
		for k, v := range protocol {
			query.Set(k, v)
		}
		query.Set("sign", sign)
		form := url.Values{}
		for k, v := range business {
			form.Set(k, v)
		}
		body = form.Encode()
	default:
		return nil, fmt.Errorf("daraz: unsupported method %q", method)
	}

	env, err := c.do(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}
	if !env.isSuccess() {
		return nil, marketplace.NewLogicError(env.Code, env.Message)
	}
	return env.Data, nil
}

// do performs one logical HTTP exchange with the partner API, retrying
// transport-level failures (network errors, 5xx) with bounded exponential
// backoff. 4xx statuses and decode failures are permanent.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, form string) (*envelope, error) {
	endpoint := c.config.APIBaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var env *envelope
	attempt := func() error {
		var bodyReader io.Reader
		if form != "" {
			bodyReader = strings.NewReader(form)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("daraz: failed to create request: %w", err))
		}
		if form != "" {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("%w: %v", marketplace.ErrTransport, err)
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		if err != nil {
			return fmt.Errorf("%w: failed to read response: %v", marketplace.ErrTransport, err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			// The body may carry provider diagnostics; log it but never
			// surface it to callers beyond a generic message
			c.logger.Warn("Daraz API returned non-2xx status",
				zap.String("path", path),
				zap.Int("status", resp.StatusCode),
				zap.ByteString("body", respBody),
			)
			transportErr := fmt.Errorf("%w: HTTP %d", marketplace.ErrTransport, resp.StatusCode)
			if resp.StatusCode >= 500 {
				return transportErr
			}
			return backoff.Permanent(transportErr)
		}

		var decoded envelope
		if err := json.Unmarshal(respBody, &decoded); err != nil {
			return backoff.Permanent(fmt.Errorf("%w: %v", marketplace.ErrMalformedResponse, err))
		}
		env = &decoded
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxTransportRetries), ctx)
	if err := backoff.Retry(attempt, policy); err != nil {
		return nil, err
	}
	return env, nil
}

// ---------------------------------------------------------------------------
// Business Operations
// ---------------------------------------------------------------------------

// FetchOrders returns one page of the seller's orders created after the given
// instant
func (c *Client) FetchOrders(ctx context.Context, sellerID string, createdAfter time.Time, limit, offset int) ([]marketplace.Order, error) {
	business := map[string]string{
		"created_after": createdAfter.UTC().Format(time.RFC3339),
		"limit":         strconv.Itoa(limit),
		"offset":        strconv.Itoa(offset),
	}

	data, err := c.Call(ctx, ordersPath, sellerID, business, http.MethodGet)
	if err != nil {
		return nil, err
	}

	var payload ordersData
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", marketplace.ErrMalformedResponse, err)
	}
	return payload.Orders, nil
}

// FetchPayouts returns the seller's payout status records
func (c *Client) FetchPayouts(ctx context.Context, sellerID string) ([]marketplace.Payout, error) {
	data, err := c.Call(ctx, payoutStatusPath, sellerID, nil, http.MethodGet)
	if err != nil {
		return nil, err
	}

	var payouts []marketplace.Payout
	if err := json.Unmarshal(data, &payouts); err != nil {
		return nil, fmt.Errorf("%w: %v", marketplace.ErrMalformedResponse, err)
	}
	return payouts, nil
}

// PackOrder marks the given order items ready to ship. The provider takes
// order_item_ids as a JSON-encoded string value rather than a native array,
// and this integration always ships dropship via BD-DEX.
func (c *Client) PackOrder(ctx context.Context, sellerID string, orderItemIDs []int64) (json.RawMessage, error) {
	ids, err := json.Marshal(orderItemIDs)
	if err != nil {
		return nil, fmt.Errorf("daraz: failed to encode order item ids: %w", err)
	}

	business := map[string]string{
		"delivery_type":     "dropship",
		"shipping_provider": "BD-DEX",
		"order_item_ids":    string(ids),
	}
	return c.Call(ctx, orderPackPath, sellerID, business, http.MethodPost)
}

// AuthorizeURL builds the seller-facing OAuth authorize URL with the given
// CSRF state token
func (c *Client) AuthorizeURL(state string) (string, error) {
	if c.config.AppKey == "" {
		return "", marketplace.ErrNotConfigured
	}

	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("force_auth", "true")
	q.Set("client_id", c.config.AppKey)
	q.Set("redirect_uri", c.config.RedirectURI)
	if state != "" {
		q.Set("state", state)
	}
	return c.config.AuthBaseURL + "?" + q.Encode(), nil
}

// Ensure Client implements the Gateway port
var _ marketplace.Gateway = (*Client)(nil)
