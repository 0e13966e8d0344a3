package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/michealzs/storemicroservice/internal/domain/shared"
	"github.com/michealzs/storemicroservice/internal/domain/store"
	"github.com/michealzs/storemicroservice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCouponRepository implements store.CouponRepository using GORM
type GormCouponRepository struct {
	db *gorm.DB
}

// NewGormCouponRepository creates a new GormCouponRepository
func NewGormCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

// FindByID finds a coupon by its ID
func (r *GormCouponRepository) FindByID(ctx context.Context, id uuid.UUID) (*store.Coupon, error) {
	var model models.CouponModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a coupon by its code, case-insensitively
func (r *GormCouponRepository) FindByCode(ctx context.Context, code string) (*store.Coupon, error) {
	var model models.CouponModel
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists coupons with pagination
func (r *GormCouponRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[store.Coupon], error) {
	base := r.db.WithContext(ctx).Model(&models.CouponModel{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}

	sortField := ValidateSortField(filter.OrderBy, CouponSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query := base.Session(&gorm.Session{}).Order(fmt.Sprintf("%s %s", sortField, sortOrder))
	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		if offset < 0 {
			offset = 0
		}
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var rows []models.CouponModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	coupons := make([]store.Coupon, len(rows))
	for i := range rows {
		coupons[i] = *rows[i].ToDomain()
	}
	paginated := shared.NewPaginated(coupons, total, filter.Page, filter.PageSize)
	return &paginated, nil
}

// Save creates or updates a coupon
func (r *GormCouponRepository) Save(ctx context.Context, coupon *store.Coupon) error {
	model := models.CouponModelFromDomain(coupon)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewDomainError("ALREADY_EXISTS", "A coupon with this code already exists")
		}
		return err
	}
	return nil
}

// Delete removes a coupon
func (r *GormCouponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CouponModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
