package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/michealzs/storemicroservice/internal/domain/shared"
)

// OrderRepository persists orders and their cart lines
type OrderRepository interface {
	// FindByID loads an order with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// FindByOrderNumber loads a placed order by its order number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
	// FindUnorderedByScope returns the active cart for a scope key, or
	// shared.ErrNotFound when the scope has no cart yet
	FindUnorderedByScope(ctx context.Context, scope ScopeKey) (*Order, error)
	// FindOrCreateUnordered returns the active cart for a scope key,
	// creating it atomically when absent. Concurrent callers for the same
	// scope observe the same cart.
	FindOrCreateUnordered(ctx context.Context, scope ScopeKey) (*Order, error)
	// FindByCheckoutSession loads the order correlated with a payment
	// checkout session
	FindByCheckoutSession(ctx context.Context, checkoutSessionID string) (*Order, error)
	// FindPlacedByUser lists a user's placed orders, newest first
	FindPlacedByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[Order], error)
	// FindUnorderedByCoupon lists open carts currently holding a coupon
	FindUnorderedByCoupon(ctx context.Context, couponID uuid.UUID) ([]Order, error)
	// Save persists the order and its items in one transaction
	Save(ctx context.Context, order *Order) error
	// DeleteItem removes a single cart line row
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	// PurgeAbandoned deletes empty unordered orders untouched since the
	// cutoff and returns how many were removed
	PurgeAbandoned(ctx context.Context, olderThan time.Time) (int64, error)
}

// CouponRepository persists coupons
type CouponRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Coupon, error)
	FindByCode(ctx context.Context, code string) (*Coupon, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Coupon], error)
	Save(ctx context.Context, coupon *Coupon) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReviewRepository persists product reviews
type ReviewRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)
	// FindApprovedByProduct lists published reviews for a product
	FindApprovedByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) (*shared.Paginated[Review], error)
	Save(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RefundRepository persists refund requests
type RefundRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Refund, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]Refund, error)
	Save(ctx context.Context, refund *Refund) error
}

// ReturnRepository persists return records
type ReturnRepository interface {
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]Return, error)
	Save(ctx context.Context, ret *Return) error
}
