// Package router wires handlers onto the gin engine
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/gmh-saber/daraz-seller-gateway/internal/interfaces/http/handler"
)

// Router holds every handler and knows the route table
type Router struct {
	system      *handler.SystemHandler
	auth        *handler.AuthHandler
	account     *handler.AccountHandler
	dashboard   *handler.DashboardHandler
	fulfillment *handler.FulfillmentHandler
}

// New creates a router over the given handlers
func New(
	system *handler.SystemHandler,
	auth *handler.AuthHandler,
	account *handler.AccountHandler,
	dashboard *handler.DashboardHandler,
	fulfillment *handler.FulfillmentHandler,
) *Router {
	return &Router{
		system:      system,
		auth:        auth,
		account:     account,
		dashboard:   dashboard,
		fulfillment: fulfillment,
	}
}

// Register mounts all routes on the engine
func (r *Router) Register(engine *gin.Engine) {
	engine.GET("/health", r.system.Health)

	api := engine.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.GET("/initiate", r.auth.Initiate)
			auth.GET("/callback", r.auth.Callback)
		}

		api.GET("/accounts", r.account.List)
		api.POST("/accounts/disconnect", r.account.Disconnect)

		api.GET("/orders", r.dashboard.Orders)
		api.GET("/financials", r.dashboard.Financials)
		api.POST("/pack", r.fulfillment.Pack)
	}
}
