package connect

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gmh-saber/daraz-seller-gateway/internal/domain/marketplace"
	"github.com/gmh-saber/daraz-seller-gateway/internal/infrastructure/store"
)

type fakeGateway struct {
	lastState string
	lastCode  string
	account   marketplace.Account
	err       error
}

func (g *fakeGateway) AuthorizeURL(state string) (string, error) {
	g.lastState = state
	return "https://auth.example.com/oauth/authorize?state=" + state, nil
}

func (g *fakeGateway) ExchangeCode(_ context.Context, code string) (marketplace.Account, error) {
	g.lastCode = code
	if g.err != nil {
		return marketplace.Account{}, g.err
	}
	return g.account, nil
}

func newTestService() (*Service, *fakeGateway, *store.MemoryStore) {
	gateway := &fakeGateway{
		account: marketplace.Account{
			SellerID:            "S100",
			DisplayName:         "BDSHOP",
			LogoURL:             "https://cdn.example.com/logo.png",
			AccessToken:         "at-1",
			RefreshToken:        "rt-1",
			AccessTokenExpireAt: time.Now().Add(time.Hour),
		},
	}
	st := store.NewMemoryStore()
	return NewService(gateway, st, zap.NewNop()), gateway, st
}

func TestService_Connect(t *testing.T) {
	svc, gateway, st := newTestService()

	url, err := svc.AuthorizeURL()
	require.NoError(t, err)
	assert.Contains(t, url, gateway.lastState)

	identity, err := svc.Connect(context.Background(), "code-1", gateway.lastState)
	require.NoError(t, err)
	assert.Equal(t, "code-1", gateway.lastCode)
	assert.Equal(t, marketplace.AccountIdentity{
		ID:          "S100",
		DisplayName: "BDSHOP",
		LogoURL:     "https://cdn.example.com/logo.png",
	}, identity)

	stored, err := st.Get("S100")
	require.NoError(t, err)
	assert.Equal(t, "at-1", stored.AccessToken)
}

func TestService_Connect_MissingCode(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Connect(context.Background(), "", "")
	assert.ErrorIs(t, err, marketplace.ErrMissingAuthCode)
}

func TestService_Connect_UnknownState(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Connect(context.Background(), "code-1", "never-issued")
	assert.ErrorIs(t, err, marketplace.ErrInvalidState)
}

func TestService_Connect_StateIsSingleUse(t *testing.T) {
	svc, gateway, _ := newTestService()
	_, err := svc.AuthorizeURL()
	require.NoError(t, err)

	_, err = svc.Connect(context.Background(), "code-1", gateway.lastState)
	require.NoError(t, err)

	_, err = svc.Connect(context.Background(), "code-2", gateway.lastState)
	assert.ErrorIs(t, err, marketplace.ErrInvalidState)
}

func TestService_Connect_WithoutState(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Connect(context.Background(), "code-1", "")
	assert.NoError(t, err)
}

func TestService_Connect_ExchangeFails(t *testing.T) {
	svc, gateway, st := newTestService()
	gateway.err = errors.New("provider unavailable")

	_, err := svc.Connect(context.Background(), "code-1", "")
	assert.Error(t, err)
	assert.Equal(t, 0, st.Len())
}

func TestService_DisconnectIdempotent(t *testing.T) {
	svc, _, st := newTestService()
	st.Put(marketplace.Account{SellerID: "S100"})

	assert.True(t, svc.Disconnect("S100"))
	assert.False(t, svc.Disconnect("S100"))
}

func TestService_Accounts(t *testing.T) {
	svc, _, st := newTestService()
	st.Put(marketplace.Account{SellerID: "S1", DisplayName: "first"})
	st.Put(marketplace.Account{SellerID: "S2", DisplayName: "second"})

	identities := svc.Accounts()
	require.Len(t, identities, 2)
	assert.Equal(t, "S1", identities[0].ID)
	assert.Equal(t, "S2", identities[1].ID)
}

func TestStateRegistry_Expiry(t *testing.T) {
	reg := newStateRegistry(time.Minute)
	current := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return current }

	token := reg.Issue()
	current = current.Add(2 * time.Minute)
	assert.False(t, reg.Consume(token))
}

func TestStateRegistry_PrunesOnIssue(t *testing.T) {
	reg := newStateRegistry(time.Minute)
	current := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return current }

	stale := reg.Issue()
	current = current.Add(2 * time.Minute)
	reg.Issue()

	assert.Len(t, reg.issued, 1)
	assert.False(t, reg.Consume(stale))
}
