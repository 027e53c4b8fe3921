package handler_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gmh-saber/daraz-seller-gateway/internal/application/connect"
	"github.com/gmh-saber/daraz-seller-gateway/internal/application/dashboard"
	"github.com/gmh-saber/daraz-seller-gateway/internal/domain/marketplace"
	"github.com/gmh-saber/daraz-seller-gateway/internal/infrastructure/store"
	"github.com/gmh-saber/daraz-seller-gateway/internal/interfaces/http/handler"
	"github.com/gmh-saber/daraz-seller-gateway/internal/interfaces/http/middleware"
	"github.com/gmh-saber/daraz-seller-gateway/internal/interfaces/http/router"
)

const testFrontendURL = "https://dashboard.example.com"

// fakeGateway satisfies both the connect and dashboard gateway contracts
type fakeGateway struct {
	authorizeErr error
	lastState    string

	account     marketplace.Account
	exchangeErr error

	orders   map[string][]marketplace.Order
	payouts  map[string][]marketplace.Payout
	errs     map[string]error
	packData json.RawMessage
}

func (g *fakeGateway) AuthorizeURL(state string) (string, error) {
	if g.authorizeErr != nil {
		return "", g.authorizeErr
	}
	g.lastState = state
	return "https://auth.example.com/oauth/authorize?state=" + state, nil
}

func (g *fakeGateway) ExchangeCode(_ context.Context, code string) (marketplace.Account, error) {
	if g.exchangeErr != nil {
		return marketplace.Account{}, g.exchangeErr
	}
	return g.account, nil
}

func (g *fakeGateway) FetchOrders(_ context.Context, sellerID string, _ time.Time, _, _ int) ([]marketplace.Order, error) {
	if err := g.errs[sellerID]; err != nil {
		return nil, err
	}
	return g.orders[sellerID], nil
}

func (g *fakeGateway) FetchPayouts(_ context.Context, sellerID string) ([]marketplace.Payout, error) {
	if err := g.errs[sellerID]; err != nil {
		return nil, err
	}
	return g.payouts[sellerID], nil
}

func (g *fakeGateway) PackOrder(_ context.Context, sellerID string, _ []int64) (json.RawMessage, error) {
	if err := g.errs[sellerID]; err != nil {
		return nil, err
	}
	return g.packData, nil
}

type testRig struct {
	engine  *gin.Engine
	gateway *fakeGateway
	store   *store.MemoryStore
}

func newTestRig(t *testing.T) *testRig {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

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
	connectSvc := connect.NewService(gateway, st, zap.NewNop())
	dashboardSvc := dashboard.NewService(gateway, st, zap.NewNop())

	engine := gin.New()
	router.New(
		handler.NewSystemHandler("test"),
		handler.NewAuthHandler(connectSvc, testFrontendURL, zap.NewNop()),
		handler.NewAccountHandler(connectSvc),
		handler.NewDashboardHandler(dashboardSvc, zap.NewNop()),
		handler.NewFulfillmentHandler(dashboardSvc),
	).Register(engine)

	return &testRig{engine: engine, gateway: gateway, store: st}
}

func (r *testRig) do(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.engine.ServeHTTP(rec, req)
	return rec
}

func (r *testRig) seedAccount(id, name string) {
	r.store.Put(marketplace.Account{
		SellerID:            id,
		DisplayName:         name,
		LogoURL:             "https://cdn.example.com/" + id + ".png",
		AccessToken:         "access-" + id,
		AccessTokenExpireAt: time.Now().Add(time.Hour),
	})
}
