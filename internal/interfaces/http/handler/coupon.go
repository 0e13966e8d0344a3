package handler

import (
	appstore "github.com/michealzs/storemicroservice/internal/application/store"
	"github.com/michealzs/storemicroservice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CouponHandler handles coupon management endpoints
type CouponHandler struct {
	BaseHandler
	couponService *appstore.CouponService
}

// NewCouponHandler creates a new CouponHandler
func NewCouponHandler(couponService *appstore.CouponService) *CouponHandler {
	return &CouponHandler{couponService: couponService}
}

// Create godoc
// @Summary      Create a coupon
// @Tags         coupons
// @Accept       json
// @Produce      json
// @Success      201 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Router       /coupons [post]
func (h *CouponHandler) Create(c *gin.Context) {
	var req appstore.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	coupon, err := h.couponService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, coupon)
}

// Approve godoc
// @Summary      Approve a coupon for redemption
// @Tags         coupons
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /coupons/{id}/approve [post]
func (h *CouponHandler) Approve(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid coupon ID")
		return
	}

	coupon, err := h.couponService.Approve(c.Request.Context(), uuid.MustParse(idReq.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, coupon)
}

// List godoc
// @Summary      List coupons
// @Tags         coupons
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /coupons [get]
func (h *CouponHandler) List(c *gin.Context) {
	filter, ok := bindListFilter(c)
	if !ok {
		h.BadRequest(c, "Invalid pagination parameters")
		return
	}

	result, err := h.couponService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Delete godoc
// @Summary      Delete a coupon
// @Tags         coupons
// @Produce      json
// @Success      204
// @Failure      404 {object} dto.Response
// @Router       /coupons/{id} [delete]
func (h *CouponHandler) Delete(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid coupon ID")
		return
	}

	if err := h.couponService.Delete(c.Request.Context(), uuid.MustParse(idReq.ID)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterAdminRoutes registers coupon management routes
func (h *CouponHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	coupons := rg.Group("/coupons")
	{
		coupons.POST("", h.Create)
		coupons.GET("", h.List)
		coupons.POST("/:id/approve", h.Approve)
		coupons.DELETE("/:id", h.Delete)
	}
}
