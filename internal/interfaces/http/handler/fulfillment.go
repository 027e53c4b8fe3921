package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gmh-saber/daraz-seller-gateway/internal/application/dashboard"
	"github.com/gmh-saber/daraz-seller-gateway/internal/interfaces/http/dto"
	"github.com/gmh-saber/daraz-seller-gateway/internal/interfaces/http/middleware"
)

// FulfillmentHandler exposes the ready-to-ship action
type FulfillmentHandler struct {
	BaseHandler
	dashboard *dashboard.Service
}

// NewFulfillmentHandler creates a fulfillment handler
func NewFulfillmentHandler(dashboardSvc *dashboard.Service) *FulfillmentHandler {
	return &FulfillmentHandler{dashboard: dashboardSvc}
}

// Pack handles POST /api/pack, relaying the marketplace's own response body
// on success
func (h *FulfillmentHandler) Pack(c *gin.Context) {
	var req dto.PackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, middleware.ValidationMessage(err))
		return
	}

	data, err := h.dashboard.Pack(c.Request.Context(), req.AccountID, req.OrderItemIDs)
	if err != nil {
		h.Fail(c, err)
		return
	}
	if len(data) == 0 {
		c.Status(http.StatusOK)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}
