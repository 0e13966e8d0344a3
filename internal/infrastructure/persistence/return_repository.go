package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/michealzs/storemicroservice/internal/domain/store"
	"github.com/michealzs/storemicroservice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormReturnRepository implements store.ReturnRepository using GORM
type GormReturnRepository struct {
	db *gorm.DB
}

// NewGormReturnRepository creates a new GormReturnRepository
func NewGormReturnRepository(db *gorm.DB) *GormReturnRepository {
	return &GormReturnRepository{db: db}
}

// FindByOrder lists return records for an order, newest first
func (r *GormReturnRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]store.Return, error) {
	var rows []models.ReturnModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	returns := make([]store.Return, len(rows))
	for i := range rows {
		returns[i] = *rows[i].ToDomain()
	}
	return returns, nil
}

// Save creates a return record
func (r *GormReturnRepository) Save(ctx context.Context, ret *store.Return) error {
	return r.db.WithContext(ctx).Save(models.ReturnModelFromDomain(ret)).Error
}
