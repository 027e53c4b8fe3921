package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gmh-saber/daraz-seller-gateway/internal/application/dashboard"
)

// DashboardHandler serves the cross-account order and financial views
type DashboardHandler struct {
	BaseHandler
	dashboard *dashboard.Service
	logger    *zap.Logger
}

// NewDashboardHandler creates a dashboard handler
func NewDashboardHandler(dashboardSvc *dashboard.Service, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{
		dashboard: dashboardSvc,
		logger:    logger.Named("dashboard_handler"),
	}
}

// Orders handles GET /api/orders. Accounts that failed are dropped from the
// merged array; the request only fails when no account answered.
func (h *DashboardHandler) Orders(c *gin.Context) {
	orders, failures, err := h.dashboard.Orders(c.Request.Context(), 0)
	if err != nil {
		h.Fail(c, err)
		return
	}
	if len(failures) > 0 {
		h.logger.Warn("Orders view is partial", zap.Int("failed_accounts", len(failures)))
	}
	h.OK(c, orders)
}

// Financials handles GET /api/financials
func (h *DashboardHandler) Financials(c *gin.Context) {
	payouts, failures, err := h.dashboard.Financials(c.Request.Context())
	if err != nil {
		h.Fail(c, err)
		return
	}
	if len(failures) > 0 {
		h.logger.Warn("Financials view is partial", zap.Int("failed_accounts", len(failures)))
	}
	h.OK(c, payouts)
}
