package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tradegate/backend/internal/application/fulfillment"
)

// OrderHandler handles order lifecycle requests.
type OrderHandler struct {
	BaseHandler
	orderService *fulfillment.OrderService
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orderService *fulfillment.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create derives an order from an accepted bid on behalf of the importer.
func (h *OrderHandler) Create(c *gin.Context) {
	importerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req fulfillment.CreateOrderRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	result, err := h.orderService.CreateFromBid(c.Request.Context(), importerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Get returns a single order visible to the authenticated party.
func (h *OrderHandler) Get(c *gin.Context) {
	principalID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, ok := h.bindID(c)
	if !ok {
		return
	}

	result, err := h.orderService.GetByID(c.Request.Context(), principalID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListMine returns the orders the authenticated user participates in,
// on either side of the trade.
func (h *OrderHandler) ListMine(c *gin.Context) {
	principalID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter fulfillment.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.orderService.ListMine(c.Request.Context(), principalID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize, result.TotalPages)
}

// AdvancePhase completes the current delivery phase and opens the next one.
func (h *OrderHandler) AdvancePhase(c *gin.Context) {
	principalID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req fulfillment.AdvancePhaseRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	result, err := h.orderService.AdvancePhase(c.Request.Context(), principalID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// AttachDocuments adds document references to a named phase without
// advancing the order.
func (h *OrderHandler) AttachDocuments(c *gin.Context) {
	principalID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req fulfillment.AttachDocumentsRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	result, err := h.orderService.AttachDocuments(c.Request.Context(), principalID, orderID, c.Param("phase"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Cancel cancels an active order within the cancellation window.
func (h *OrderHandler) Cancel(c *gin.Context) {
	principalID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req fulfillment.CancelOrderRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	result, err := h.orderService.Cancel(c.Request.Context(), principalID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
