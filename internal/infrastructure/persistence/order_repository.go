package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/michealzs/storemicroservice/internal/domain/shared"
	"github.com/michealzs/storemicroservice/internal/domain/store"
	"github.com/michealzs/storemicroservice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderRepository implements store.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID loads an order with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*store.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrderNumber loads a placed order by its order number
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*store.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("order_number = ? AND ordered = ?", orderNumber, true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindUnorderedByScope returns the active cart for a scope key
func (r *GormOrderRepository) FindUnorderedByScope(ctx context.Context, scope store.ScopeKey) (*store.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("scope_key = ? AND ordered = ?", scope.Key(), false).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindOrCreateUnordered returns the active cart for a scope key, creating
// it when absent. The partial unique index on scope_key (where ordered is
// false) arbitrates concurrent creation: the loser of the race gets a
// duplicate-key error and reloads the winner's row.
func (r *GormOrderRepository) FindOrCreateUnordered(ctx context.Context, scope store.ScopeKey) (*store.Order, error) {
	existing, err := r.FindUnorderedByScope(ctx, scope)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	order, err := store.NewOrder(scope)
	if err != nil {
		return nil, err
	}
	model := models.OrderModelFromDomain(order)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateKeyError(err) {
			return r.FindUnorderedByScope(ctx, scope)
		}
		return nil, err
	}
	return order, nil
}

// FindByCheckoutSession loads the order correlated with a checkout session
func (r *GormOrderRepository) FindByCheckoutSession(ctx context.Context, checkoutSessionID string) (*store.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("checkout_session_id = ?", checkoutSessionID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindUnorderedByCoupon lists open carts currently holding a coupon
func (r *GormOrderRepository) FindUnorderedByCoupon(ctx context.Context, couponID uuid.UUID) ([]store.Order, error) {
	var rows []models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("coupon_id = ? AND ordered = ?", couponID, false).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	orders := make([]store.Order, 0, len(rows))
	for i := range rows {
		orders = append(orders, *rows[i].ToDomain())
	}
	return orders, nil
}

// FindPlacedByUser lists a user's placed orders, newest first
func (r *GormOrderRepository) FindPlacedByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[store.Order], error) {
	base := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("user_id = ? AND ordered = ?", userID, true)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []models.OrderModel
	query := r.applyFilter(base.Session(&gorm.Session{}), filter, "ordered_at")
	if err := query.Preload("Items").Find(&rows).Error; err != nil {
		return nil, err
	}

	orders := make([]store.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	paginated := shared.NewPaginated(orders, total, filter.Page, filter.PageSize)
	return &paginated, nil
}

// Save persists the order and its items in one transaction
func (r *GormOrderRepository) Save(ctx context.Context, order *store.Order) error {
	model := models.OrderModelFromDomain(order)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(model).Error; err != nil {
			return err
		}

		currentItemIDs := make([]uuid.UUID, len(model.Items))
		for i, item := range model.Items {
			currentItemIDs[i] = item.ID
		}
		if len(currentItemIDs) > 0 {
			if err := tx.Where("order_id = ? AND id NOT IN ?", model.ID, currentItemIDs).
				Delete(&models.CartItemModel{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("order_id = ?", model.ID).
				Delete(&models.CartItemModel{}).Error; err != nil {
				return err
			}
		}
		for i := range model.Items {
			model.Items[i].OrderID = model.ID
			if err := tx.Save(&model.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteItem removes a single cart line row
func (r *GormOrderRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CartItemModel{}, "id = ?", itemID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// PurgeAbandoned deletes empty unordered orders untouched since the cutoff
func (r *GormOrderRepository) PurgeAbandoned(ctx context.Context, olderThan time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("ordered = ? AND updated_at < ?", false, olderThan).
		Where("NOT EXISTS (SELECT 1 FROM cart_items WHERE cart_items.order_id = orders.id)").
		Delete(&models.OrderModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// applyFilter applies pagination and sorting to an order query
func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter, defaultField string) *gorm.DB {
	sortField := ValidateSortField(filter.OrderBy, OrderSortFields, defaultField)
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

// isDuplicateKeyError reports whether err is a unique constraint violation
func isDuplicateKeyError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
