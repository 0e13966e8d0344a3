package handler

import (
	"github.com/michealzs/storemicroservice/internal/application/checkout"
	"github.com/michealzs/storemicroservice/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// CheckoutHandler bridges the cart to the hosted payment provider
type CheckoutHandler struct {
	BaseHandler
	checkoutService *checkout.Service
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// CreateSession godoc
// @Summary      Open a hosted checkout session for the current cart
// @Tags         checkout
// @Produce      json
// @Success      201 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /checkout/session [post]
func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	scope, ok := middleware.GetCartScope(c)
	if !ok {
		h.Unauthorized(c, "Missing cart session")
		return
	}

	session, err := h.checkoutService.CreateSession(c.Request.Context(), scope)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, session)
}

// ConfirmSessionRequest carries the provider session identifier returned
// on the success redirect.
type ConfirmSessionRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

// ConfirmSession godoc
// @Summary      Finalize the order behind a completed checkout session
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      402 {object} dto.Response
// @Router       /checkout/confirm [post]
func (h *CheckoutHandler) ConfirmSession(c *gin.Context) {
	var req ConfirmSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.checkoutService.ConfirmSession(c.Request.Context(), req.SessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if order == nil {
		// stale session, already logged by the service
		h.Success(c, nil)
		return
	}
	h.Success(c, order)
}

// RegisterRoutes registers checkout routes
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	co := rg.Group("/checkout")
	{
		co.POST("/session", h.CreateSession)
		co.POST("/confirm", h.ConfirmSession)
	}
}
