package handler

import (
	catalogapp "github.com/michealzs/storemicroservice/internal/application/catalog"
	"github.com/michealzs/storemicroservice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CategoryHandler handles catalog category endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *catalogapp.CategoryService
	productService  *catalogapp.ProductService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *catalogapp.CategoryService, productService *catalogapp.ProductService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, productService: productService}
}

// List godoc
// @Summary      List all categories
// @Tags         catalog
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /catalog/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// ListProducts godoc
// @Summary      List active products in a category
// @Tags         catalog
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /catalog/categories/{slug}/products [get]
func (h *CategoryHandler) ListProducts(c *gin.Context) {
	var req dto.SlugRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid category slug")
		return
	}
	filter, ok := bindListFilter(c)
	if !ok {
		h.BadRequest(c, "Invalid pagination parameters")
		return
	}

	products, err := h.productService.ListByCategory(c.Request.Context(), req.Slug, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// Create godoc
// @Summary      Create a category
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Success      201 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Router       /catalog/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req catalogapp.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

// Delete godoc
// @Summary      Delete a category
// @Tags         catalog
// @Produce      json
// @Success      204
// @Failure      404 {object} dto.Response
// @Router       /catalog/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), uuid.MustParse(idReq.ID)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers category routes
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/catalog/categories")
	{
		categories.GET("", h.List)
		categories.GET("/:slug/products", h.ListProducts)
	}
}

// RegisterAdminRoutes registers category management routes
func (h *CategoryHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/catalog/categories")
	{
		categories.POST("", h.Create)
		categories.DELETE("/:id", h.Delete)
	}
}
