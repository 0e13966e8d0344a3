package handler

import (
	appstore "github.com/michealzs/storemicroservice/internal/application/store"
	"github.com/michealzs/storemicroservice/internal/interfaces/http/dto"
	"github.com/michealzs/storemicroservice/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CartHandler handles shopping cart endpoints. Every endpoint operates on the
// caller's active cart, resolved from the session key or authenticated user.
type CartHandler struct {
	BaseHandler
	cartService *appstore.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *appstore.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Get godoc
// @Summary      Get the current cart
// @Tags         cart
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	scope, ok := middleware.GetCartScope(c)
	if !ok {
		h.Unauthorized(c, "Missing cart session")
		return
	}

	cart, err := h.cartService.Get(c.Request.Context(), scope)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// AddItem godoc
// @Summary      Add a product variant to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	scope, ok := middleware.GetCartScope(c)
	if !ok {
		h.Unauthorized(c, "Missing cart session")
		return
	}

	var req appstore.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), scope, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// UpdateItem godoc
// @Summary      Change the quantity of a cart line
// @Tags         cart
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /cart/items/{id} [patch]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	scope, ok := middleware.GetCartScope(c)
	if !ok {
		h.Unauthorized(c, "Missing cart session")
		return
	}

	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid cart item ID")
		return
	}

	var req appstore.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cart, err := h.cartService.UpdateItemQuantity(c.Request.Context(), scope, uuid.MustParse(idReq.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// RemoveItem godoc
// @Summary      Remove a line from the cart
// @Tags         cart
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	scope, ok := middleware.GetCartScope(c)
	if !ok {
		h.Unauthorized(c, "Missing cart session")
		return
	}

	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid cart item ID")
		return
	}

	cart, err := h.cartService.RemoveItem(c.Request.Context(), scope, uuid.MustParse(idReq.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// ApplyCoupon godoc
// @Summary      Apply a coupon code to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /cart/coupon [post]
func (h *CartHandler) ApplyCoupon(c *gin.Context) {
	scope, ok := middleware.GetCartScope(c)
	if !ok {
		h.Unauthorized(c, "Missing cart session")
		return
	}

	var req appstore.ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cart, err := h.cartService.ApplyCoupon(c.Request.Context(), scope, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// SetCheckoutDetails godoc
// @Summary      Set contact and shipping details on the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /cart/checkout-details [put]
func (h *CartHandler) SetCheckoutDetails(c *gin.Context) {
	scope, ok := middleware.GetCartScope(c)
	if !ok {
		h.Unauthorized(c, "Missing cart session")
		return
	}

	var req appstore.CheckoutDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cart, err := h.cartService.SetCheckoutDetails(c.Request.Context(), scope, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// RegisterRoutes registers cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	{
		cart.GET("", h.Get)
		cart.POST("/items", h.AddItem)
		cart.PATCH("/items/:id", h.UpdateItem)
		cart.DELETE("/items/:id", h.RemoveItem)
		cart.POST("/coupon", h.ApplyCoupon)
		cart.PUT("/checkout-details", h.SetCheckoutDetails)
	}
}
