package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopsync/backend/internal/application/onboarding"
)

// TenantHandler exposes tenant and store onboarding
type TenantHandler struct {
	BaseHandler
	service *onboarding.Service
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(service *onboarding.Service) *TenantHandler {
	return &TenantHandler{service: service}
}

// RegisterRoutes registers tenant routes
func (h *TenantHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/tenants/register", h.Register)
}

type registerRequest struct {
	TenantName  string `json:"tenant_name"`
	ShopDomain  string `json:"shop_domain" binding:"required"`
	AccessToken string `json:"access_token" binding:"required"`
}

// Register handles POST /tenants/register
func (h *TenantHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "shop_domain and access_token are required")
		return
	}

	store, err := h.service.RegisterStore(c.Request.Context(), onboarding.RegisterStoreRequest{
		TenantName:  req.TenantName,
		ShopDomain:  req.ShopDomain,
		AccessToken: req.AccessToken,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, gin.H{
		"store_id":    store.ID,
		"shop_domain": store.ShopDomain,
		"tenant_id":   store.TenantID,
	})
}
