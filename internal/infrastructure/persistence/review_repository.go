package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/michealzs/storemicroservice/internal/domain/shared"
	"github.com/michealzs/storemicroservice/internal/domain/store"
	"github.com/michealzs/storemicroservice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormReviewRepository implements store.ReviewRepository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// FindByID finds a review by its ID
func (r *GormReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*store.Review, error) {
	var model models.ReviewModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindApprovedByProduct lists published reviews for a product
func (r *GormReviewRepository) FindApprovedByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) (*shared.Paginated[store.Review], error) {
	base := r.db.WithContext(ctx).Model(&models.ReviewModel{}).
		Where("product_id = ? AND is_approved = ?", productID, true)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}

	sortField := ValidateSortField(filter.OrderBy, ReviewSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query := base.Session(&gorm.Session{}).Order(fmt.Sprintf("%s %s", sortField, sortOrder))
	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		if offset < 0 {
			offset = 0
		}
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var rows []models.ReviewModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	reviews := make([]store.Review, len(rows))
	for i := range rows {
		reviews[i] = *rows[i].ToDomain()
	}
	paginated := shared.NewPaginated(reviews, total, filter.Page, filter.PageSize)
	return &paginated, nil
}

// Save creates or updates a review
func (r *GormReviewRepository) Save(ctx context.Context, review *store.Review) error {
	return r.db.WithContext(ctx).Save(models.ReviewModelFromDomain(review)).Error
}

// Delete removes a review
func (r *GormReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ReviewModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
