package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gmh-saber/daraz-seller-gateway/internal/application/connect"
	"github.com/gmh-saber/daraz-seller-gateway/internal/interfaces/http/dto"
	"github.com/gmh-saber/daraz-seller-gateway/internal/interfaces/http/middleware"
)

// AccountHandler exposes the set of connected seller accounts
type AccountHandler struct {
	BaseHandler
	connect *connect.Service
}

// NewAccountHandler creates an account handler
func NewAccountHandler(connectSvc *connect.Service) *AccountHandler {
	return &AccountHandler{connect: connectSvc}
}

// List handles GET /api/accounts. The body is a bare array of display
// identities; token material is never serialized.
func (h *AccountHandler) List(c *gin.Context) {
	h.OK(c, h.connect.Accounts())
}

// Disconnect handles POST /api/accounts/disconnect
func (h *AccountHandler) Disconnect(c *gin.Context) {
	var req dto.DisconnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, middleware.ValidationMessage(err))
		return
	}

	if !h.connect.Disconnect(req.AccountID) {
		c.JSON(http.StatusNotFound, dto.NewActionFailure("account not found"))
		return
	}
	c.JSON(http.StatusOK, dto.ActionOK)
}
