package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	appingest "github.com/shopsync/backend/internal/application/ingest"
	"github.com/shopsync/backend/internal/domain/ingest"
	"github.com/shopsync/backend/internal/infrastructure/logger"
	"github.com/shopsync/backend/internal/infrastructure/shopify"
	"go.uber.org/zap"
)

// maxWebhookBody caps how much of a delivery is read before verification
const maxWebhookBody = 2 << 20

// WebhookHandler receives webhook deliveries from the upstream platform
type WebhookHandler struct {
	BaseHandler
	service *appingest.WebhookService
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(service *appingest.WebhookService) *WebhookHandler {
	return &WebhookHandler{service: service}
}

// RegisterRoutes registers webhook routes
func (h *WebhookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/shopify/webhooks", h.Receive)
}

// Receive handles POST /shopify/webhooks. The body is passed to verification
// exactly as received; gin's JSON binding would destroy the signature.
func (h *WebhookHandler) Receive(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		h.BadRequest(c, "Failed to read request body")
		return
	}

	delivery := appingest.WebhookDelivery{
		Body:       body,
		Signature:  c.GetHeader(shopify.HeaderHMAC),
		Topic:      ingest.Topic(c.GetHeader(shopify.HeaderTopic)),
		ShopDomain: c.GetHeader(shopify.HeaderShopDomain),
		WebhookID:  c.GetHeader(shopify.HeaderWebhookID),
	}

	result, err := h.service.Process(c.Request.Context(), delivery)
	if err != nil {
		logger.FromGin(c).Warn("Webhook rejected",
			zap.String("topic", string(delivery.Topic)),
			zap.String("shop_domain", delivery.ShopDomain),
			zap.Error(err),
		)
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSuccessResponse(gin.H{
		"applied":   result.Applied,
		"duplicate": result.Duplicate,
	}))
}
