package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/michealzs/storemicroservice/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest is the request to create a product
type CreateProductRequest struct {
	Name          string           `json:"name" binding:"required,min=1,max=255"`
	Vendor        string           `json:"vendor" binding:"max=255"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price" binding:"required"`
	DiscountPrice *decimal.Decimal `json:"discount_price"`
	IsFeatured    bool             `json:"is_featured"`
	CategorySlugs []string         `json:"category_slugs"`
}

// UpdateProductRequest is the request to update a product
type UpdateProductRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=255"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discount_price"`
	IsActive      *bool            `json:"is_active"`
	IsFeatured    *bool            `json:"is_featured"`
}

// ProductResponse is the API representation of a product
type ProductResponse struct {
	ID             uuid.UUID               `json:"id"`
	ExternalID     *string                 `json:"external_id,omitempty"`
	Name           string                  `json:"name"`
	Slug           string                  `json:"slug"`
	Vendor         string                  `json:"vendor,omitempty"`
	Description    string                  `json:"description,omitempty"`
	Price          decimal.Decimal         `json:"price"`
	DiscountPrice  *decimal.Decimal        `json:"discount_price,omitempty"`
	EffectivePrice decimal.Decimal         `json:"effective_price"`
	OnSale         bool                    `json:"on_sale"`
	IsActive       bool                    `json:"is_active"`
	IsFeatured     bool                    `json:"is_featured"`
	Categories     []CategoryResponse      `json:"categories,omitempty"`
	Variants       []ProductVariantResponse `json:"variants,omitempty"`
	Images         []string                `json:"images,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

// ProductVariantResponse is the API representation of a product variant
type ProductVariantResponse struct {
	ID                uuid.UUID       `json:"id"`
	ExternalVariantID string          `json:"external_variant_id,omitempty"`
	Title             string          `json:"title"`
	Price             decimal.Decimal `json:"price"`
	CompareAtPrice    decimal.Decimal `json:"compare_at_price,omitempty"`
	InventoryQuantity int             `json:"inventory_quantity"`
}

// CreateCategoryRequest is the request to create a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=255"`
	Description string `json:"description"`
}

// CategoryResponse is the API representation of a category
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
}

// ToProductResponse converts a domain product to its API representation
func ToProductResponse(product *catalog.Product) *ProductResponse {
	resp := &ProductResponse{
		ID:             product.ID,
		ExternalID:     product.ExternalID,
		Name:           product.Name,
		Slug:           product.Slug,
		Vendor:         product.Vendor,
		Description:    product.Description,
		Price:          product.Price,
		EffectivePrice: product.EffectivePrice().Amount(),
		OnSale:         product.OnSale(),
		IsActive:       product.IsActive,
		IsFeatured:     product.IsFeatured,
		CreatedAt:      product.CreatedAt,
		UpdatedAt:      product.UpdatedAt,
	}

	if product.DiscountPrice.IsPositive() {
		discount := product.DiscountPrice
		resp.DiscountPrice = &discount
	}

	for idx := range product.Categories {
		resp.Categories = append(resp.Categories, *ToCategoryResponse(&product.Categories[idx]))
	}
	for idx := range product.Variants {
		variant := &product.Variants[idx]
		resp.Variants = append(resp.Variants, ProductVariantResponse{
			ID:                variant.ID,
			ExternalVariantID: variant.ExternalVariantID,
			Title:             variant.Title,
			Price:             variant.Price,
			CompareAtPrice:    variant.CompareAtPrice,
			InventoryQuantity: variant.InventoryQuantity,
		})
	}
	for idx := range product.Images {
		resp.Images = append(resp.Images, product.Images[idx].ImageURL)
	}

	return resp
}

// ToCategoryResponse converts a domain category to its API representation
func ToCategoryResponse(category *catalog.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
	}
}
