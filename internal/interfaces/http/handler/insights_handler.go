package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopsync/backend/internal/application/report"
)

// InsightsHandler serves the read-side aggregation endpoints
type InsightsHandler struct {
	BaseHandler
	service *report.InsightsService
}

// NewInsightsHandler creates a new InsightsHandler
func NewInsightsHandler(service *report.InsightsService) *InsightsHandler {
	return &InsightsHandler{service: service}
}

// RegisterRoutes registers insights routes
func (h *InsightsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/insights/orders-by-date/:shopDomain", h.OrdersByDate)
	rg.GET("/insights/top-customers/:shopDomain", h.TopCustomers)
}

// OrdersByDate handles GET /insights/orders-by-date/:shopDomain
func (h *InsightsHandler) OrdersByDate(c *gin.Context) {
	rows, err := h.service.OrdersByDate(c.Request.Context(), c.Param("shopDomain"), queryLimit(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// TopCustomers handles GET /insights/top-customers/:shopDomain
func (h *InsightsHandler) TopCustomers(c *gin.Context) {
	rows, err := h.service.TopCustomers(c.Request.Context(), c.Param("shopDomain"), queryLimit(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

func queryLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		return 0
	}
	return limit
}
