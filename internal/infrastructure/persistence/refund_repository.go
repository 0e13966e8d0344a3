package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/michealzs/storemicroservice/internal/domain/shared"
	"github.com/michealzs/storemicroservice/internal/domain/store"
	"github.com/michealzs/storemicroservice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRefundRepository implements store.RefundRepository using GORM
type GormRefundRepository struct {
	db *gorm.DB
}

// NewGormRefundRepository creates a new GormRefundRepository
func NewGormRefundRepository(db *gorm.DB) *GormRefundRepository {
	return &GormRefundRepository{db: db}
}

// FindByID finds a refund request by its ID
func (r *GormRefundRepository) FindByID(ctx context.Context, id uuid.UUID) (*store.Refund, error) {
	var model models.RefundModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrder lists refund requests for an order, newest first
func (r *GormRefundRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]store.Refund, error) {
	var rows []models.RefundModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	refunds := make([]store.Refund, len(rows))
	for i := range rows {
		refunds[i] = *rows[i].ToDomain()
	}
	return refunds, nil
}

// Save creates or updates a refund request
func (r *GormRefundRepository) Save(ctx context.Context, refund *store.Refund) error {
	return r.db.WithContext(ctx).Save(models.RefundModelFromDomain(refund)).Error
}
