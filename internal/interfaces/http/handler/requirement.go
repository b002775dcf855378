package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tradegate/backend/internal/application/sourcing"
)

// RequirementHandler handles sourcing requirement requests.
type RequirementHandler struct {
	BaseHandler
	requirementService *sourcing.RequirementService
}

// NewRequirementHandler creates a new requirement handler.
func NewRequirementHandler(requirementService *sourcing.RequirementService) *RequirementHandler {
	return &RequirementHandler{requirementService: requirementService}
}

// Create posts a new sourcing requirement for the authenticated importer.
func (h *RequirementHandler) Create(c *gin.Context) {
	importerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req sourcing.CreateRequirementRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	result, err := h.requirementService.Create(c.Request.Context(), importerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Get returns a single requirement by ID.
func (h *RequirementHandler) Get(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	result, err := h.requirementService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List returns requirements matching the query filters. Exporters use this
// to browse open requirements.
func (h *RequirementHandler) List(c *gin.Context) {
	var filter sourcing.RequirementListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.requirementService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize, result.TotalPages)
}

// ListMine returns the authenticated importer's own requirements.
func (h *RequirementHandler) ListMine(c *gin.Context) {
	importerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter sourcing.RequirementListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.requirementService.ListMine(c.Request.Context(), importerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize, result.TotalPages)
}

// Close closes an open requirement so it stops accepting bids.
func (h *RequirementHandler) Close(c *gin.Context) {
	importerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, ok := h.bindID(c)
	if !ok {
		return
	}

	result, err := h.requirementService.Close(c.Request.Context(), importerID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
