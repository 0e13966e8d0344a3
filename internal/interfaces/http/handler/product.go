package handler

import (
	catalogapp "github.com/michealzs/storemicroservice/internal/application/catalog"
	"github.com/michealzs/storemicroservice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductHandler handles catalog product endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List godoc
// @Summary      List active products
// @Tags         catalog
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /catalog/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	filter, ok := bindListFilter(c)
	if !ok {
		h.BadRequest(c, "Invalid pagination parameters")
		return
	}

	result, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get godoc
// @Summary      Get a product by slug
// @Tags         catalog
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /catalog/products/{slug} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	var req dto.SlugRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid product slug")
		return
	}

	product, err := h.productService.GetBySlug(c.Request.Context(), req.Slug)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// ListFeatured godoc
// @Summary      List featured products
// @Tags         catalog
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /catalog/products/featured [get]
func (h *ProductHandler) ListFeatured(c *gin.Context) {
	products, err := h.productService.ListFeatured(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// Search godoc
// @Summary      Search active products by name or description
// @Tags         catalog
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /catalog/products/search [get]
func (h *ProductHandler) Search(c *gin.Context) {
	filter, ok := bindListFilter(c)
	if !ok {
		h.BadRequest(c, "Invalid pagination parameters")
		return
	}

	products, err := h.productService.Search(c.Request.Context(), c.Query("q"), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// Create godoc
// @Summary      Create a product
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Success      201 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Router       /catalog/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Update godoc
// @Summary      Update a product
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /catalog/products/{id} [patch]
func (h *ProductHandler) Update(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}
	id := uuid.MustParse(idReq.ID)

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// SetSaleRequest puts a product on sale at the given discount price
type SetSaleRequest struct {
	DiscountPrice decimal.Decimal `json:"discount_price" binding:"required"`
}

// SetSale godoc
// @Summary      Put a product on sale
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /catalog/products/{id}/sale [post]
func (h *ProductHandler) SetSale(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}
	id := uuid.MustParse(idReq.ID)

	var req SetSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.SetSale(c.Request.Context(), id, req.DiscountPrice)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// RegisterRoutes registers product routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/catalog/products")
	{
		products.GET("", h.List)
		products.GET("/featured", h.ListFeatured)
		products.GET("/search", h.Search)
		products.GET("/:slug", h.Get)
	}
}

// RegisterAdminRoutes registers product management routes
func (h *ProductHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/catalog/products")
	{
		products.POST("", h.Create)
		products.PATCH("/:id", h.Update)
		products.POST("/:id/sale", h.SetSale)
	}
}
