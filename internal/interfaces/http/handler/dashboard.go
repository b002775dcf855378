package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tradegate/backend/internal/application/analytics"
	"github.com/tradegate/backend/internal/domain/identity"
	"github.com/tradegate/backend/internal/interfaces/http/middleware"
)

// DashboardHandler serves per-user trading activity summaries.
type DashboardHandler struct {
	BaseHandler
	dashboardService *analytics.DashboardService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(dashboardService *analytics.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Summary returns activity counts and trade value totals for the
// authenticated user, shaped by their role.
func (h *DashboardHandler) Summary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	role := identity.Role(middleware.GetJWTRole(c))

	result, err := h.dashboardService.Summary(c.Request.Context(), userID, role)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
