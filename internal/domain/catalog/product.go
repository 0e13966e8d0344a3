package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/michealzs/storemicroservice/internal/domain/shared"
	"github.com/michealzs/storemicroservice/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Product represents a sellable item in the catalog.
// It is the aggregate root for product-related operations. Products imported
// from the external shop carry an ExternalID; admin-created products do not.
type Product struct {
	shared.BaseAggregateRoot
	ExternalID    *string         `gorm:"type:varchar(50);uniqueIndex"`
	Name          string          `gorm:"type:varchar(100);not null"`
	Slug          string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	Vendor        string          `gorm:"type:varchar(100)"`
	Description   string          `gorm:"type:text"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DiscountPrice decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	IsActive      bool            `gorm:"not null;default:true;index"`
	IsFeatured    bool            `gorm:"not null;default:false;index"`
	Categories    []Category      `gorm:"many2many:product_categories"`
	Variants      []ProductVariant `gorm:"foreignKey:ProductID"`
	Images        []ProductImage   `gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name string, price decimal.Decimal) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot exceed 100 characters")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              Slugify(name),
		Price:             price,
		DiscountPrice:     decimal.Zero,
		IsActive:          true,
	}, nil
}

// EffectivePrice returns the price a customer pays: the discount price when
// it is set, positive, and strictly below the list price; the list price
// otherwise.
func (p *Product) EffectivePrice() valueobject.Money {
	if p.DiscountPrice.IsPositive() && p.DiscountPrice.LessThan(p.Price) {
		return valueobject.NewMoneyUSD(p.DiscountPrice)
	}
	return valueobject.NewMoneyUSD(p.Price)
}

// OnSale returns true if the discount price is in effect
func (p *Product) OnSale() bool {
	return p.DiscountPrice.IsPositive() && p.DiscountPrice.LessThan(p.Price)
}

// SetPricing updates list and discount price
func (p *Product) SetPricing(price, discountPrice decimal.Decimal) error {
	if price.IsNegative() || discountPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}
	p.Price = price
	p.DiscountPrice = discountPrice
	p.Touch()
	return nil
}

// Rename updates the product name and regenerates the slug
func (p *Product) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	p.Name = name
	p.Slug = Slugify(name)
	p.Touch()
	return nil
}

// Deactivate soft-retires the product. Orders already referencing it keep
// their line items; the product just stops being offered.
func (p *Product) Deactivate() {
	p.IsActive = false
	p.Touch()
}

// Activate makes the product purchasable again
func (p *Product) Activate() {
	p.IsActive = true
	p.Touch()
}

// SetFeatured toggles the featured flag
func (p *Product) SetFeatured(featured bool) {
	p.IsFeatured = featured
	p.Touch()
}

// HasCategory reports whether the product is already linked to the category
func (p *Product) HasCategory(categoryID uuid.UUID) bool {
	for _, c := range p.Categories {
		if c.ID == categoryID {
			return true
		}
	}
	return false
}

// AddCategory links a category to the product. Adding an already linked
// category is a no-op so importer reruns stay idempotent.
func (p *Product) AddCategory(category Category) {
	if p.HasCategory(category.ID) {
		return
	}
	p.Categories = append(p.Categories, category)
	p.Touch()
}

// VariantByExternalID returns the variant with the given external id, or nil
func (p *Product) VariantByExternalID(externalVariantID string) *ProductVariant {
	for i := range p.Variants {
		if p.Variants[i].ExternalVariantID == externalVariantID {
			return &p.Variants[i]
		}
	}
	return nil
}

// ProductVariant is an external-catalog variant scoped to a product
type ProductVariant struct {
	shared.BaseEntity
	ProductID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	ExternalVariantID string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Title             string          `gorm:"type:varchar(100);not null"`
	Price             decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CompareAtPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	InventoryQuantity int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductVariant) TableName() string {
	return "product_variants"
}

// ProductImage links an image URL to a product and optionally a variant.
// The (product, URL, variant) triple is unique; importer reruns skip
// existing rows.
type ProductImage struct {
	shared.BaseEntity
	ProductID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_product_image_triple,priority:1"`
	ImageURL  string     `gorm:"type:varchar(500);not null;uniqueIndex:idx_product_image_triple,priority:2"`
	VariantID *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_product_image_triple,priority:3"`
}

// TableName returns the table name for GORM
func (ProductImage) TableName() string {
	return "product_images"
}
