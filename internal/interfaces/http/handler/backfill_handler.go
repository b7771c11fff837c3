package handler

import (
	"github.com/gin-gonic/gin"
	appingest "github.com/shopsync/backend/internal/application/ingest"
	"github.com/shopsync/backend/internal/domain/ingest"
)

// BackfillHandler exposes the manual import endpoints
type BackfillHandler struct {
	BaseHandler
	service *appingest.BackfillService
}

// NewBackfillHandler creates a new BackfillHandler
func NewBackfillHandler(service *appingest.BackfillService) *BackfillHandler {
	return &BackfillHandler{service: service}
}

// RegisterRoutes registers backfill routes
func (h *BackfillHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/shopify/fetch-products/:shopDomain", h.fetch(ingest.ResourceProducts))
	rg.GET("/shopify/fetch-customers/:shopDomain", h.fetch(ingest.ResourceCustomers))
	rg.GET("/shopify/fetch-orders/:shopDomain", h.fetch(ingest.ResourceOrders))
}

// fetch imports one resource for a store. ?all=true switches from a single
// page to full pagination.
func (h *BackfillHandler) fetch(resource ingest.Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		shopDomain := c.Param("shopDomain")
		all := c.Query("all") == "true"

		imported, err := h.service.SyncByDomain(c.Request.Context(), shopDomain, resource, all)
		if err != nil {
			h.HandleError(c, err)
			return
		}

		h.Success(c, gin.H{
			"resource": string(resource),
			"imported": imported,
			"full":     all,
		})
	}
}
