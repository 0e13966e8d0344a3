package store

import (
	"time"

	"github.com/michealzs/storemicroservice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Coupon is a fixed-amount discount code. Codes are unique and a coupon
// is redeemable only while approved and before its expiration date.
type Coupon struct {
	shared.BaseAggregateRoot
	Code           string
	Description    string
	Discount       decimal.Decimal
	ExpirationDate time.Time
	IsApproved     bool
}

// NewCoupon creates a coupon pending approval
func NewCoupon(code, description string, discount decimal.Decimal, expirationDate time.Time) (*Coupon, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_COUPON_CODE", "Coupon code cannot be empty")
	}
	if !discount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Coupon discount must be positive")
	}

	return &Coupon{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Description:       description,
		Discount:          discount,
		ExpirationDate:    expirationDate,
	}, nil
}

// IsUsable reports whether the coupon can be applied at the given time
func (c *Coupon) IsUsable(now time.Time) bool {
	return c.IsApproved && c.ExpirationDate.After(now)
}

// Approve marks the coupon redeemable
func (c *Coupon) Approve() {
	c.IsApproved = true
	c.Touch()
}

// Revoke withdraws approval without deleting the coupon
func (c *Coupon) Revoke() {
	c.IsApproved = false
	c.Touch()
}

// ExtendExpiration pushes the expiration date forward
func (c *Coupon) ExtendExpiration(until time.Time) error {
	if until.Before(c.ExpirationDate) {
		return shared.NewDomainError("INVALID_EXPIRATION", "New expiration must be after the current one")
	}
	c.ExpirationDate = until
	c.Touch()
	return nil
}
