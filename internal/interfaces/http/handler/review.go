package handler

import (
	appstore "github.com/michealzs/storemicroservice/internal/application/store"
	"github.com/michealzs/storemicroservice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReviewHandler handles product review endpoints
type ReviewHandler struct {
	BaseHandler
	reviewService *appstore.ReviewService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService *appstore.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// Create godoc
// @Summary      Submit a review for a product
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Success      201 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /reviews [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appstore.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), &userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, review)
}

// ListForProduct godoc
// @Summary      List approved reviews for a product
// @Tags         reviews
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /catalog/products/{slug}/reviews [get]
func (h *ReviewHandler) ListForProduct(c *gin.Context) {
	var req dto.SlugRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid product slug")
		return
	}
	filter, ok := bindListFilter(c)
	if !ok {
		h.BadRequest(c, "Invalid pagination parameters")
		return
	}

	result, err := h.reviewService.ListForProduct(c.Request.Context(), req.Slug, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Approve godoc
// @Summary      Approve a review for public display
// @Tags         reviews
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /reviews/{id}/approve [post]
func (h *ReviewHandler) Approve(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid review ID")
		return
	}

	review, err := h.reviewService.Approve(c.Request.Context(), uuid.MustParse(idReq.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, review)
}

// Delete godoc
// @Summary      Delete a review
// @Tags         reviews
// @Produce      json
// @Success      204
// @Failure      404 {object} dto.Response
// @Router       /reviews/{id} [delete]
func (h *ReviewHandler) Delete(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid review ID")
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), uuid.MustParse(idReq.ID)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers public review routes
func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/catalog/products/:slug/reviews", h.ListForProduct)
}

// RegisterUserRoutes registers review routes requiring an authenticated user
func (h *ReviewHandler) RegisterUserRoutes(rg *gin.RouterGroup) {
	rg.POST("/reviews", h.Create)
}

// RegisterAdminRoutes registers review moderation routes
func (h *ReviewHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	reviews := rg.Group("/reviews")
	{
		reviews.POST("/:id/approve", h.Approve)
		reviews.DELETE("/:id", h.Delete)
	}
}
