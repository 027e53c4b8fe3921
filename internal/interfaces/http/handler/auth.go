package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gmh-saber/daraz-seller-gateway/internal/application/connect"
)

// AuthHandler drives the seller OAuth flow: sending the browser to the
// marketplace authorize page and receiving the code callback
type AuthHandler struct {
	BaseHandler
	connect     *connect.Service
	frontendURL string
	logger      *zap.Logger
}

// NewAuthHandler creates an auth handler redirecting back to frontendURL
func NewAuthHandler(connectSvc *connect.Service, frontendURL string, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{
		connect:     connectSvc,
		frontendURL: frontendURL,
		logger:      logger.Named("auth_handler"),
	}
}

// Initiate handles GET /api/auth/initiate
func (h *AuthHandler) Initiate(c *gin.Context) {
	authorizeURL, err := h.connect.AuthorizeURL()
	if err != nil {
		h.Fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, authorizeURL)
}

// Callback handles GET /api/auth/callback. On success the browser is sent
// back to the frontend; on exchange failure it is sent back with the error in
// an auth_error query parameter so the UI can surface it.
func (h *AuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		h.Error(c, http.StatusBadRequest, "code query parameter is required")
		return
	}

	identity, err := h.connect.Connect(c.Request.Context(), code, c.Query("state"))
	if err != nil {
		h.logger.Error("OAuth callback failed", zap.Error(err))
		c.Redirect(http.StatusFound, h.frontendURL+"?auth_error="+url.QueryEscape(errorMessage(err)))
		return
	}

	h.logger.Info("OAuth callback completed", zap.String("seller_id", identity.ID))
	c.Redirect(http.StatusFound, h.frontendURL)
}
