package handler

import (
	appstore "github.com/michealzs/storemicroservice/internal/application/store"
	"github.com/michealzs/storemicroservice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderHandler handles placed-order lifecycle endpoints
type OrderHandler struct {
	BaseHandler
	orderService *appstore.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *appstore.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

type orderNumberRequest struct {
	Number string `uri:"number" binding:"required"`
}

// Get godoc
// @Summary      Get a placed order by order number
// @Tags         orders
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /orders/{number} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	var req orderNumberRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid order number")
		return
	}

	order, err := h.orderService.GetByNumber(c.Request.Context(), req.Number)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// History godoc
// @Summary      List the authenticated user's placed orders
// @Tags         orders
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Router       /orders [get]
func (h *OrderHandler) History(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	filter, ok := bindListFilter(c)
	if !ok {
		h.BadRequest(c, "Invalid pagination parameters")
		return
	}

	result, err := h.orderService.History(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Confirm godoc
// @Summary      Confirm a pending order
// @Tags         orders
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /orders/{number}/confirm [post]
func (h *OrderHandler) Confirm(c *gin.Context) {
	var req orderNumberRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid order number")
		return
	}

	order, err := h.orderService.Confirm(c.Request.Context(), req.Number)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// ShipOrderRequest carries the carrier tracking number assigned at dispatch
type ShipOrderRequest struct {
	TrackingNumber string `json:"tracking_number" binding:"required,max=100"`
}

// Ship godoc
// @Summary      Mark a confirmed order as shipped
// @Tags         orders
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /orders/{number}/ship [post]
func (h *OrderHandler) Ship(c *gin.Context) {
	var req orderNumberRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid order number")
		return
	}

	var body ShipOrderRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Ship(c.Request.Context(), req.Number, body.TrackingNumber)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Deliver godoc
// @Summary      Mark a shipped order as delivered
// @Tags         orders
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /orders/{number}/deliver [post]
func (h *OrderHandler) Deliver(c *gin.Context) {
	var req orderNumberRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid order number")
		return
	}

	order, err := h.orderService.MarkDelivered(c.Request.Context(), req.Number)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// ReturnOrderRequest carries the reason an order came back
type ReturnOrderRequest struct {
	Reason string `json:"reason" binding:"required,max=255"`
	Notes  string `json:"notes" binding:"omitempty,max=2000"`
}

// Return godoc
// @Summary      Mark an order as returned and record the reason
// @Tags         orders
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /orders/{number}/return [post]
func (h *OrderHandler) Return(c *gin.Context) {
	var req orderNumberRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid order number")
		return
	}

	var body ReturnOrderRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.MarkReturned(c.Request.Context(), req.Number, body.Reason, body.Notes)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// RequestRefund godoc
// @Summary      File a refund request against a placed order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Success      201 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /refunds [post]
func (h *OrderHandler) RequestRefund(c *gin.Context) {
	var req appstore.RequestRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	refund, err := h.orderService.RequestRefund(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, refund)
}

// ResolveRefundRequest carries the accept/reject decision for a refund
type ResolveRefundRequest struct {
	Accept *bool `json:"accept" binding:"required"`
}

// ResolveRefund godoc
// @Summary      Accept or reject a pending refund request
// @Tags         orders
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /refunds/{id}/resolve [post]
func (h *OrderHandler) ResolveRefund(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid refund ID")
		return
	}

	var body ResolveRefundRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	refund, err := h.orderService.ResolveRefund(c.Request.Context(), uuid.MustParse(idReq.ID), *body.Accept)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, refund)
}

// RegisterRoutes registers public order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/orders/:number", h.Get)
	rg.POST("/refunds", h.RequestRefund)
}

// RegisterUserRoutes registers routes that require an authenticated user
func (h *OrderHandler) RegisterUserRoutes(rg *gin.RouterGroup) {
	rg.GET("/orders", h.History)
}

// RegisterAdminRoutes registers order management routes
func (h *OrderHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("/:number/confirm", h.Confirm)
		orders.POST("/:number/ship", h.Ship)
		orders.POST("/:number/deliver", h.Deliver)
		orders.POST("/:number/return", h.Return)
	}
	rg.POST("/refunds/:id/resolve", h.ResolveRefund)
}
