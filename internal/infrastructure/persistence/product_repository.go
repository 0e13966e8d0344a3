package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/michealzs/storemicroservice/internal/domain/catalog"
	"github.com/michealzs/storemicroservice/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("Categories").
		Preload("Variants").
		Preload("Images").
		First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindBySlug finds a product by its URL slug
func (r *GormProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("Categories").
		Preload("Variants").
		Preload("Images").
		Where("slug = ?", slug).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByExternalID finds a product by its upstream catalog identifier
func (r *GormProductRepository) FindByExternalID(ctx context.Context, externalID string) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("Categories").
		Preload("Variants").
		Preload("Images").
		Where("external_id = ?", externalID).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindActive lists active products with pagination and sorting
func (r *GormProductRepository) FindActive(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&catalog.Product{}).Where("is_active = ?", true),
		filter,
	)
	if err := query.Preload("Images").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindFeatured lists active featured products
func (r *GormProductRepository) FindFeatured(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("Images").
		Where("is_active = ? AND is_featured = ?", true, true).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByCategorySlug lists active products attached to a category
func (r *GormProductRepository) FindByCategorySlug(ctx context.Context, categorySlug string, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&catalog.Product{}).
			Joins("JOIN product_categories pc ON pc.product_id = products.id").
			Joins("JOIN categories c ON c.id = pc.category_id").
			Where("c.slug = ? AND products.is_active = ?", categorySlug, true),
		filter,
	)
	if err := query.Preload("Images").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Search finds active products whose name or description matches the query
func (r *GormProductRepository) Search(ctx context.Context, search string, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	pattern := "%" + search + "%"
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&catalog.Product{}).
			Where("is_active = ? AND (name ILIKE ? OR description ILIKE ?)", true, pattern, pattern),
		filter,
	)
	if err := query.Preload("Images").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Save creates or updates a product with its variants and images
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Categories", "Variants", "Images").Save(product).Error; err != nil {
			return err
		}

		if err := tx.Model(product).Association("Categories").Replace(product.Categories); err != nil {
			return err
		}

		// Remove variants and images dropped from the aggregate, then
		// upsert the remaining ones
		variantIDs := make([]uuid.UUID, len(product.Variants))
		for i, v := range product.Variants {
			variantIDs[i] = v.ID
		}
		if len(variantIDs) > 0 {
			if err := tx.Where("product_id = ? AND id NOT IN ?", product.ID, variantIDs).
				Delete(&catalog.ProductVariant{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("product_id = ?", product.ID).
				Delete(&catalog.ProductVariant{}).Error; err != nil {
				return err
			}
		}
		for i := range product.Variants {
			product.Variants[i].ProductID = product.ID
			if err := tx.Save(&product.Variants[i]).Error; err != nil {
				return err
			}
		}

		imageIDs := make([]uuid.UUID, len(product.Images))
		for i, img := range product.Images {
			imageIDs[i] = img.ID
		}
		if len(imageIDs) > 0 {
			if err := tx.Where("product_id = ? AND id NOT IN ?", product.ID, imageIDs).
				Delete(&catalog.ProductImage{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("product_id = ?", product.ID).
				Delete(&catalog.ProductImage{}).Error; err != nil {
				return err
			}
		}
		for i := range product.Images {
			product.Images[i].ProductID = product.ID
			if err := tx.Save(&product.Images[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// CountActive counts active products matching the filter
func (r *GormProductRepository) CountActive(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&catalog.Product{}).Where("is_active = ?", true)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("(name ILIKE ? OR description ILIKE ?)", pattern, pattern)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies pagination and sorting to a query
func (r *GormProductRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	sortField := ValidateSortField(filter.OrderBy, ProductSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		if offset < 0 {
			offset = 0
		}
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}
