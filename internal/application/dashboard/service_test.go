package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gmh-saber/daraz-seller-gateway/internal/domain/marketplace"
	"github.com/gmh-saber/daraz-seller-gateway/internal/infrastructure/store"
)

// fakeGateway serves canned per-seller results and records call arguments
type fakeGateway struct {
	mu           sync.Mutex
	orders       map[string][]marketplace.Order
	payouts      map[string][]marketplace.Payout
	errs         map[string]error
	createdAfter time.Time
	packedIDs    []int64
	packedSeller string
}

func (g *fakeGateway) ExchangeCode(context.Context, string) (marketplace.Account, error) {
	return marketplace.Account{}, nil
}

func (g *fakeGateway) FetchOrders(_ context.Context, sellerID string, createdAfter time.Time, _, _ int) ([]marketplace.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.createdAfter = createdAfter
	if err := g.errs[sellerID]; err != nil {
		return nil, err
	}
	return g.orders[sellerID], nil
}

func (g *fakeGateway) FetchPayouts(_ context.Context, sellerID string) ([]marketplace.Payout, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.errs[sellerID]; err != nil {
		return nil, err
	}
	return g.payouts[sellerID], nil
}

func (g *fakeGateway) PackOrder(_ context.Context, sellerID string, orderItemIDs []int64) (json.RawMessage, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.errs[sellerID]; err != nil {
		return nil, err
	}
	g.packedSeller = sellerID
	g.packedIDs = orderItemIDs
	return json.RawMessage(`{"order_items":[]}`), nil
}

func order(id int64) marketplace.Order {
	return marketplace.Order{OrderID: id, OrderNumber: id, Statuses: []string{"pending"}}
}

func newTestService(gateway *fakeGateway, sellers ...string) (*Service, *store.MemoryStore) {
	st := store.NewMemoryStore()
	for _, id := range sellers {
		st.Put(marketplace.Account{
			SellerID:    id,
			DisplayName: "shop-" + id,
			AccessToken: "access-" + id,
		})
	}
	svc := NewService(gateway, st, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc, st
}

func TestService_Orders_MergesAcrossAccounts(t *testing.T) {
	gateway := &fakeGateway{orders: map[string][]marketplace.Order{
		"S1": {order(1), order(2)},
		"S2": {order(3)},
	}}
	svc, _ := newTestService(gateway, "S1", "S2")

	orders, failures, err := svc.Orders(context.Background(), 30)
	require.NoError(t, err)
	assert.Empty(t, failures)
	require.Len(t, orders, 3)

	// Connection order is preserved across accounts
	assert.Equal(t, int64(1), orders[0].OrderID)
	assert.Equal(t, "S1", orders[0].Account.ID)
	assert.Equal(t, int64(3), orders[2].OrderID)
	assert.Equal(t, "S2", orders[2].Account.ID)
	assert.Equal(t, "shop-S2", orders[2].Account.DisplayName)
}

func TestService_Orders_DefaultWindow(t *testing.T) {
	gateway := &fakeGateway{orders: map[string][]marketplace.Order{"S1": {}}}
	svc, _ := newTestService(gateway, "S1")

	_, _, err := svc.Orders(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC), gateway.createdAfter)
}

func TestService_Orders_PartialFailure(t *testing.T) {
	gateway := &fakeGateway{
		orders: map[string][]marketplace.Order{"S1": {order(1)}},
		errs:   map[string]error{"S2": fmt.Errorf("%w: HTTP 502", marketplace.ErrTransport)},
	}
	svc, _ := newTestService(gateway, "S1", "S2")

	orders, failures, err := svc.Orders(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, failures, 1)
	assert.Equal(t, "S2", failures[0].Account.ID)
	assert.ErrorIs(t, failures[0].Err, marketplace.ErrTransport)
}

func TestService_Orders_AllAccountsFail(t *testing.T) {
	gateway := &fakeGateway{errs: map[string]error{
		"S1": marketplace.ErrNoValidToken,
		"S2": marketplace.ErrTransport,
	}}
	svc, _ := newTestService(gateway, "S1", "S2")

	_, failures, err := svc.Orders(context.Background(), 30)
	assert.ErrorIs(t, err, marketplace.ErrAggregateFailed)
	assert.Len(t, failures, 2)
}

func TestService_Orders_NoAccounts(t *testing.T) {
	svc, _ := newTestService(&fakeGateway{})

	orders, failures, err := svc.Orders(context.Background(), 30)
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
	assert.Empty(t, failures)
}

func TestService_Financials(t *testing.T) {
	gateway := &fakeGateway{
		payouts: map[string][]marketplace.Payout{
			"S1": {{StatementNumber: "ST-1"}},
			"S2": {{StatementNumber: "ST-2"}},
		},
	}
	svc, _ := newTestService(gateway, "S1", "S2")

	payouts, failures, err := svc.Financials(context.Background())
	require.NoError(t, err)
	assert.Empty(t, failures)
	require.Len(t, payouts, 2)
	assert.Equal(t, "ST-1", payouts[0].StatementNumber)
	assert.Equal(t, "S1", payouts[0].Account.ID)
	assert.Equal(t, "ST-2", payouts[1].StatementNumber)
}

func TestService_Financials_AllAccountsFail(t *testing.T) {
	gateway := &fakeGateway{errs: map[string]error{"S1": marketplace.ErrTransport}}
	svc, _ := newTestService(gateway, "S1")

	_, _, err := svc.Financials(context.Background())
	assert.ErrorIs(t, err, marketplace.ErrAggregateFailed)
}

func TestService_Pack(t *testing.T) {
	gateway := &fakeGateway{}
	svc, _ := newTestService(gateway, "S1")

	data, err := svc.Pack(context.Background(), "S1", []int64{11, 22})
	require.NoError(t, err)
	assert.JSONEq(t, `{"order_items":[]}`, string(data))
	assert.Equal(t, "S1", gateway.packedSeller)
	assert.Equal(t, []int64{11, 22}, gateway.packedIDs)
}

func TestService_Pack_UnknownAccount(t *testing.T) {
	svc, _ := newTestService(&fakeGateway{}, "S1")

	_, err := svc.Pack(context.Background(), "ghost", []int64{1})
	assert.ErrorIs(t, err, marketplace.ErrAccountNotFound)
}
