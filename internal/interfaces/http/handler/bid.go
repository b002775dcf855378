package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tradegate/backend/internal/application/sourcing"
)

// BidHandler handles bid submission, revision and award requests.
type BidHandler struct {
	BaseHandler
	bidService *sourcing.BidService
}

// NewBidHandler creates a new bid handler.
func NewBidHandler(bidService *sourcing.BidService) *BidHandler {
	return &BidHandler{bidService: bidService}
}

// Submit places a bid on an open requirement for the authenticated exporter.
// The requirement ID comes from the URL; any requirement_id in the body is
// overridden.
func (h *BidHandler) Submit(c *gin.Context) {
	exporterID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	requirementID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req sourcing.SubmitBidRequest
	if !h.bindAndValidate(c, &req) {
		return
	}
	req.RequirementID = requirementID

	result, err := h.bidService.Submit(c.Request.Context(), exporterID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// ListRanked returns a requirement's active bids in ranked order. Only the
// requirement's importer sees the full ranking.
func (h *BidHandler) ListRanked(c *gin.Context) {
	principalID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	requirementID, ok := h.bindID(c)
	if !ok {
		return
	}

	result, err := h.bidService.RankForRequirement(c.Request.Context(), principalID, requirementID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Get returns a single bid visible to the authenticated party.
func (h *BidHandler) Get(c *gin.Context) {
	principalID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	bidID, ok := h.bindID(c)
	if !ok {
		return
	}

	result, err := h.bidService.GetByID(c.Request.Context(), principalID, bidID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListMine returns the authenticated exporter's own bids.
func (h *BidHandler) ListMine(c *gin.Context) {
	exporterID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter sourcing.BidListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.bidService.ListMine(c.Request.Context(), exporterID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize, result.TotalPages)
}

// Update revises the terms of the authenticated exporter's active bid.
func (h *BidHandler) Update(c *gin.Context) {
	exporterID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	bidID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req sourcing.UpdateBidRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	result, err := h.bidService.Update(c.Request.Context(), exporterID, bidID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Withdraw withdraws the authenticated exporter's active bid.
func (h *BidHandler) Withdraw(c *gin.Context) {
	exporterID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	bidID, ok := h.bindID(c)
	if !ok {
		return
	}

	result, err := h.bidService.Withdraw(c.Request.Context(), exporterID, bidID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Accept awards the requirement to the given bid on behalf of the importer.
func (h *BidHandler) Accept(c *gin.Context) {
	importerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	bidID, ok := h.bindID(c)
	if !ok {
		return
	}

	result, err := h.bidService.Accept(c.Request.Context(), importerID, bidID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
