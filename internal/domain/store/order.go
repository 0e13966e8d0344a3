package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/michealzs/storemicroservice/internal/domain/shared"
	"github.com/michealzs/storemicroservice/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the fulfillment status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusReturned  OrderStatus = "RETURNED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered, OrderStatusReturned:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Fulfillment moves Pending → Confirmed → Shipped → Delivered; Returned is
// a side branch reachable from any post-Confirmed state.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusConfirmed
	case OrderStatusConfirmed:
		return target == OrderStatusShipped || target == OrderStatusReturned
	case OrderStatusShipped:
		return target == OrderStatusDelivered || target == OrderStatusReturned
	case OrderStatusDelivered:
		return target == OrderStatusReturned
	case OrderStatusReturned:
		return false
	}
	return false
}

// ScopeKey identifies the owner of a cart: an authenticated user or an
// anonymous session. At most one unordered order exists per scope key.
type ScopeKey struct {
	UserID     *uuid.UUID
	SessionKey string
}

// UserScope builds a scope key for an authenticated user
func UserScope(userID uuid.UUID) ScopeKey {
	return ScopeKey{UserID: &userID}
}

// SessionScope builds a scope key for an anonymous session
func SessionScope(sessionKey string) ScopeKey {
	return ScopeKey{SessionKey: sessionKey}
}

// Key returns the canonical string form used for the unordered-order
// uniqueness constraint.
func (k ScopeKey) Key() string {
	if k.UserID != nil {
		return "user:" + k.UserID.String()
	}
	return "session:" + k.SessionKey
}

// IsZero reports whether the scope key identifies nobody
func (k ScopeKey) IsZero() bool {
	return k.UserID == nil && k.SessionKey == ""
}

// CartItem is a line in a cart. Once its order is placed it is soft-retired
// via the Ordered flag and kept for order history. Unit prices are
// snapshotted from the product at add time.
type CartItem struct {
	ID                uuid.UUID
	OrderID           uuid.UUID
	ProductID         uuid.UUID
	ProductName       string
	ProductSlug       string
	UnitPrice         decimal.Decimal
	UnitDiscountPrice decimal.Decimal
	Quantity          int
	Ordered           bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewCartItem creates a cart line for a product with quantity 1
func NewCartItem(orderID, productID uuid.UUID, productName, productSlug string, unitPrice, unitDiscountPrice decimal.Decimal) (*CartItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if unitPrice.IsNegative() || unitDiscountPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit prices cannot be negative")
	}

	now := time.Now()
	return &CartItem{
		ID:                uuid.New(),
		OrderID:           orderID,
		ProductID:         productID,
		ProductName:       productName,
		ProductSlug:       productSlug,
		UnitPrice:         unitPrice,
		UnitDiscountPrice: unitDiscountPrice,
		Quantity:          1,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// EffectiveUnitPrice returns the per-unit price the customer pays
func (i *CartItem) EffectiveUnitPrice() decimal.Decimal {
	if i.UnitDiscountPrice.IsPositive() && i.UnitDiscountPrice.LessThan(i.UnitPrice) {
		return i.UnitDiscountPrice
	}
	return i.UnitPrice
}

// FinalPrice returns quantity times the effective unit price
func (i *CartItem) FinalPrice() decimal.Decimal {
	return i.EffectiveUnitPrice().Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// SetQuantity replaces the line quantity
func (i *CartItem) SetQuantity(quantity int) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	i.Quantity = quantity
	i.UpdatedAt = time.Now()
	return nil
}

// Order is the aggregate root for the cart and order lifecycle. While
// Ordered is false it acts as the active cart for its scope key; once
// finalized it is the placed order.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber       string
	ScopeKey          string
	UserID            *uuid.UUID
	SessionKey        string
	Email             string
	PhoneNumber       string
	CustomerName      string
	ShippingName      string
	AddressLine1      string
	AddressLine2      string
	City              string
	State             string
	Country           string
	PostalCode        string
	Items             []CartItem
	Total             decimal.Decimal
	AmountDiscount    decimal.Decimal
	AmountShipping    decimal.Decimal
	AmountTax         decimal.Decimal
	Status            OrderStatus
	PaymentStatus     string
	Ordered           bool
	OrderedAt         *time.Time
	TrackingNumber    *string
	CouponID          *uuid.UUID
	CouponDiscount    decimal.Decimal
	CheckoutSessionID *string
	IPAddress         string
}

// NewOrder creates an empty, unordered order (an active cart) for a scope
func NewOrder(scope ScopeKey) (*Order, error) {
	if scope.IsZero() {
		return nil, shared.NewDomainError("INVALID_SCOPE", "Order scope key cannot be empty")
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ScopeKey:          scope.Key(),
		UserID:            scope.UserID,
		SessionKey:        scope.SessionKey,
		Items:             make([]CartItem, 0),
		Total:             decimal.Zero,
		AmountDiscount:    decimal.Zero,
		AmountShipping:    decimal.Zero,
		AmountTax:         decimal.Zero,
		CouponDiscount:    decimal.Zero,
		Status:            OrderStatusPending,
	}, nil
}

// AddProduct adds one unit of a product to the cart. A repeated add of the
// same product merges into the existing line (quantity+1) instead of
// creating a second row.
func (o *Order) AddProduct(productID uuid.UUID, productName, productSlug string, unitPrice, unitDiscountPrice decimal.Decimal) (*CartItem, error) {
	if o.Ordered {
		return nil, shared.ErrOrderFinalized
	}

	for idx := range o.Items {
		if o.Items[idx].ProductID == productID && !o.Items[idx].Ordered {
			o.Items[idx].Quantity++
			o.Items[idx].UpdatedAt = time.Now()
			o.RecalculateTotal()
			o.Touch()
			return &o.Items[idx], nil
		}
	}

	item, err := NewCartItem(o.ID, productID, productName, productSlug, unitPrice, unitDiscountPrice)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.RecalculateTotal()
	o.Touch()
	return &o.Items[len(o.Items)-1], nil
}

// UpdateItemQuantity sets the quantity of an existing cart line
func (o *Order) UpdateItemQuantity(itemID uuid.UUID, quantity int) error {
	if o.Ordered {
		return shared.ErrOrderFinalized
	}

	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			if err := o.Items[idx].SetQuantity(quantity); err != nil {
				return err
			}
			o.RecalculateTotal()
			o.Touch()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Cart item not found")
}

// RemoveItem removes a line from the cart. Removing the last line leaves
// the order behind as an empty unordered cart; abandoned empties are
// reaped separately.
func (o *Order) RemoveItem(itemID uuid.UUID) error {
	if o.Ordered {
		return shared.ErrOrderFinalized
	}

	for idx, item := range o.Items {
		if item.ID == itemID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			o.RecalculateTotal()
			o.Touch()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Cart item not found")
}

// ItemForProduct returns the unordered line for a product, or nil
func (o *Order) ItemForProduct(productID uuid.UUID) *CartItem {
	for idx := range o.Items {
		if o.Items[idx].ProductID == productID && !o.Items[idx].Ordered {
			return &o.Items[idx]
		}
	}
	return nil
}

// Subtotal returns the sum of line final prices
func (o *Order) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for idx := range o.Items {
		subtotal = subtotal.Add(o.Items[idx].FinalPrice())
	}
	return subtotal
}

// RecalculateTotal recomputes the order total from its parts:
// sum of line final prices, minus the coupon discount, plus shipping and
// tax, minus the order-level discount. The result never goes below zero.
// Callers persist the order in the same transaction as the mutation that
// triggered the recomputation.
func (o *Order) RecalculateTotal() {
	total := o.Subtotal().
		Sub(o.CouponDiscount).
		Add(o.AmountShipping).
		Add(o.AmountTax).
		Sub(o.AmountDiscount)

	if total.IsNegative() {
		total = decimal.Zero
	}
	o.Total = total
}

// TotalMoney returns the order total as Money
func (o *Order) TotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.Total)
}

// ApplyCoupon attaches a coupon and recomputes the total. The coupon must
// be usable now and its discount cannot exceed the cart subtotal.
func (o *Order) ApplyCoupon(coupon *Coupon, now time.Time) error {
	if o.Ordered {
		return shared.ErrOrderFinalized
	}
	if coupon == nil || !coupon.IsUsable(now) {
		return shared.ErrCouponInvalid
	}
	if coupon.Discount.GreaterThan(o.Subtotal()) {
		return shared.ErrCouponInvalid
	}

	o.CouponID = &coupon.ID
	o.CouponDiscount = coupon.Discount
	o.RecalculateTotal()
	o.Touch()
	return nil
}

// DetachCoupon drops the coupon reference (used when a coupon is deleted)
// and recomputes the total.
func (o *Order) DetachCoupon() {
	o.CouponID = nil
	o.CouponDiscount = decimal.Zero
	o.RecalculateTotal()
	o.Touch()
}

// SetContact fills customer contact information
func (o *Order) SetContact(email, phone, customerName string) {
	o.Email = email
	o.PhoneNumber = phone
	o.CustomerName = customerName
	o.Touch()
}

// SetShippingAddress fills the shipping address fields
func (o *Order) SetShippingAddress(name, line1, line2, city, state, country, postalCode string) {
	o.ShippingName = name
	o.AddressLine1 = line1
	o.AddressLine2 = line2
	o.City = city
	o.State = state
	o.Country = country
	o.PostalCode = postalCode
	o.Touch()
}

// AttachCheckoutSession records the payment session correlated with this
// order at checkout-session-creation time.
func (o *Order) AttachCheckoutSession(sessionID string) {
	o.CheckoutSessionID = &sessionID
	o.Touch()
}

// Finalize places the order: generates the order number if absent,
// recomputes the total, and retires all cart lines. Calling it on an
// already placed order is a no-op, not an error.
func (o *Order) Finalize() error {
	if o.Ordered {
		return nil
	}
	if len(o.Items) == 0 {
		return shared.ErrEmptyCart
	}

	if o.OrderNumber == "" {
		o.OrderNumber = GenerateOrderNumber()
	}
	o.RecalculateTotal()

	now := time.Now()
	for idx := range o.Items {
		o.Items[idx].Ordered = true
		o.Items[idx].UpdatedAt = now
	}
	o.Ordered = true
	o.OrderedAt = &now
	o.Touch()
	return nil
}

// SetPaymentStatus records the payment processor's view of this order
func (o *Order) SetPaymentStatus(status string) {
	o.PaymentStatus = status
	o.Touch()
}

// SetTrackingNumber records the shipment tracking number
func (o *Order) SetTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return shared.NewDomainError("INVALID_TRACKING_NUMBER", "Tracking number cannot be empty")
	}
	o.TrackingNumber = &trackingNumber
	o.Touch()
	return nil
}

// TransitionTo moves the order through the fulfillment state machine
func (o *Order) TransitionTo(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", target))
	}
	if !o.Ordered {
		return shared.NewDomainError("INVALID_STATE", "Order must be placed before fulfillment transitions")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot transition order from %s to %s", o.Status, target))
	}

	o.Status = target
	o.Touch()
	return nil
}

// IsEmpty reports whether the cart has no lines
func (o *Order) IsEmpty() bool {
	return len(o.Items) == 0
}

// ItemCount returns the total quantity across all lines
func (o *Order) ItemCount() int {
	count := 0
	for idx := range o.Items {
		count += o.Items[idx].Quantity
	}
	return count
}

// GenerateOrderNumber derives a human-readable 12-character uppercase hex
// order number from a random unique identifier.
func GenerateOrderNumber() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return strings.ToUpper(raw[:12])
}
