package store

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/michealzs/storemicroservice/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	order, err := NewOrder(SessionScope("sess-1234"))
	require.NoError(t, err)
	return order
}

func TestNewOrder(t *testing.T) {
	t.Run("valid session scope", func(t *testing.T) {
		order, err := NewOrder(SessionScope("sess-abc"))
		require.NoError(t, err)
		assert.Equal(t, "session:sess-abc", order.ScopeKey)
		assert.False(t, order.Ordered)
		assert.Equal(t, OrderStatusPending, order.Status)
		assert.True(t, order.Total.IsZero())
		assert.True(t, order.IsEmpty())
	})

	t.Run("valid user scope", func(t *testing.T) {
		userID := uuid.New()
		order, err := NewOrder(UserScope(userID))
		require.NoError(t, err)
		assert.Equal(t, "user:"+userID.String(), order.ScopeKey)
		require.NotNil(t, order.UserID)
		assert.Equal(t, userID, *order.UserID)
	})

	t.Run("empty scope rejected", func(t *testing.T) {
		_, err := NewOrder(ScopeKey{})
		assert.Error(t, err)
	})
}

func TestOrderAddProduct(t *testing.T) {
	order := newTestOrder(t)
	productID := uuid.New()

	item, err := order.AddProduct(productID, "Blue Mug", "blue-mug",
		decimal.RequireFromString("19.99"), decimal.RequireFromString("8.00"))
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, "8.00", order.Total.StringFixed(2))

	// adding the same product again merges into the existing line
	item, err = order.AddProduct(productID, "Blue Mug", "blue-mug",
		decimal.RequireFromString("19.99"), decimal.RequireFromString("8.00"))
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, "16.00", order.Total.StringFixed(2))

	// a different product gets its own line
	_, err = order.AddProduct(uuid.New(), "Red Mug", "red-mug",
		decimal.RequireFromString("10.00"), decimal.Zero)
	require.NoError(t, err)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, 3, order.ItemCount())
}

func TestCartItemFinalPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		discount string
		quantity int
		want     string
	}{
		{"discount applies", "19.99", "8.00", 2, "16.00"},
		{"no discount", "10.00", "0", 3, "30.00"},
		{"discount equal to price ignored", "10.00", "10.00", 1, "10.00"},
		{"discount above price ignored", "10.00", "12.00", 1, "10.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := NewCartItem(uuid.New(), uuid.New(), "p", "p",
				decimal.RequireFromString(tt.price), decimal.RequireFromString(tt.discount))
			require.NoError(t, err)
			require.NoError(t, item.SetQuantity(tt.quantity))
			assert.Equal(t, tt.want, item.FinalPrice().StringFixed(2))
		})
	}
}

func TestOrderUpdateAndRemoveItem(t *testing.T) {
	order := newTestOrder(t)
	item, err := order.AddProduct(uuid.New(), "Blue Mug", "blue-mug",
		decimal.RequireFromString("19.99"), decimal.Zero)
	require.NoError(t, err)

	require.NoError(t, order.UpdateItemQuantity(item.ID, 4))
	assert.Equal(t, "79.96", order.Total.StringFixed(2))

	assert.Error(t, order.UpdateItemQuantity(item.ID, 0))
	assert.Error(t, order.UpdateItemQuantity(uuid.New(), 2))

	require.NoError(t, order.RemoveItem(item.ID))
	assert.True(t, order.IsEmpty())
	assert.True(t, order.Total.IsZero())

	err = order.RemoveItem(item.ID)
	assert.Error(t, err)
}

func TestOrderApplyCoupon(t *testing.T) {
	newCoupon := func(t *testing.T, discount string, approved bool, expires time.Time) *Coupon {
		t.Helper()
		coupon, err := NewCoupon("SAVE5", "five off", decimal.RequireFromString(discount), expires)
		require.NoError(t, err)
		if approved {
			coupon.Approve()
		}
		return coupon
	}

	now := time.Now()
	future := now.Add(24 * time.Hour)

	t.Run("usable coupon reduces total", func(t *testing.T) {
		order := newTestOrder(t)
		_, err := order.AddProduct(uuid.New(), "Blue Mug", "blue-mug",
			decimal.RequireFromString("19.99"), decimal.RequireFromString("8.00"))
		require.NoError(t, err)
		require.NoError(t, order.UpdateItemQuantity(order.Items[0].ID, 2))

		require.NoError(t, order.ApplyCoupon(newCoupon(t, "5.00", true, future), now))
		assert.Equal(t, "11.00", order.Total.StringFixed(2))
	})

	t.Run("unapproved coupon rejected", func(t *testing.T) {
		order := newTestOrder(t)
		_, _ = order.AddProduct(uuid.New(), "p", "p", decimal.RequireFromString("20.00"), decimal.Zero)
		err := order.ApplyCoupon(newCoupon(t, "5.00", false, future), now)
		assert.ErrorIs(t, err, shared.ErrCouponInvalid)
	})

	t.Run("expired coupon rejected", func(t *testing.T) {
		order := newTestOrder(t)
		_, _ = order.AddProduct(uuid.New(), "p", "p", decimal.RequireFromString("20.00"), decimal.Zero)
		err := order.ApplyCoupon(newCoupon(t, "5.00", true, now.Add(-time.Hour)), now)
		assert.ErrorIs(t, err, shared.ErrCouponInvalid)
	})

	t.Run("discount exceeding subtotal rejected", func(t *testing.T) {
		order := newTestOrder(t)
		_, _ = order.AddProduct(uuid.New(), "p", "p", decimal.RequireFromString("3.00"), decimal.Zero)
		err := order.ApplyCoupon(newCoupon(t, "5.00", true, future), now)
		assert.ErrorIs(t, err, shared.ErrCouponInvalid)
	})
}

func TestOrderFinalize(t *testing.T) {
	t.Run("empty cart cannot be placed", func(t *testing.T) {
		order := newTestOrder(t)
		assert.ErrorIs(t, order.Finalize(), shared.ErrEmptyCart)
	})

	t.Run("finalize is idempotent", func(t *testing.T) {
		order := newTestOrder(t)
		_, err := order.AddProduct(uuid.New(), "Blue Mug", "blue-mug",
			decimal.RequireFromString("19.99"), decimal.RequireFromString("8.00"))
		require.NoError(t, err)

		require.NoError(t, order.Finalize())
		assert.True(t, order.Ordered)
		assert.Regexp(t, regexp.MustCompile(`^[0-9A-F]{12}$`), order.OrderNumber)
		assert.True(t, order.Items[0].Ordered)
		require.NotNil(t, order.OrderedAt)

		number := order.OrderNumber
		placedAt := *order.OrderedAt
		require.NoError(t, order.Finalize())
		assert.Equal(t, number, order.OrderNumber)
		assert.Equal(t, placedAt, *order.OrderedAt)
	})

	t.Run("placed order rejects cart mutations", func(t *testing.T) {
		order := newTestOrder(t)
		item, err := order.AddProduct(uuid.New(), "p", "p", decimal.RequireFromString("5.00"), decimal.Zero)
		require.NoError(t, err)
		require.NoError(t, order.Finalize())

		_, err = order.AddProduct(uuid.New(), "q", "q", decimal.RequireFromString("5.00"), decimal.Zero)
		assert.ErrorIs(t, err, shared.ErrOrderFinalized)
		assert.ErrorIs(t, order.UpdateItemQuantity(item.ID, 2), shared.ErrOrderFinalized)
		assert.ErrorIs(t, order.RemoveItem(item.ID), shared.ErrOrderFinalized)
	})
}

func TestOrderRecalculateTotal(t *testing.T) {
	order := newTestOrder(t)
	_, err := order.AddProduct(uuid.New(), "Blue Mug", "blue-mug",
		decimal.RequireFromString("19.99"), decimal.RequireFromString("8.00"))
	require.NoError(t, err)
	require.NoError(t, order.UpdateItemQuantity(order.Items[0].ID, 2))

	order.CouponDiscount = decimal.RequireFromString("5.00")
	order.AmountShipping = decimal.RequireFromString("15.00")
	order.AmountTax = decimal.RequireFromString("1.50")
	order.AmountDiscount = decimal.RequireFromString("2.00")
	order.RecalculateTotal()

	// 16.00 - 5.00 + 15.00 + 1.50 - 2.00
	assert.Equal(t, "25.50", order.Total.StringFixed(2))
}

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusPending, OrderStatusReturned, false},
		{OrderStatusConfirmed, OrderStatusShipped, true},
		{OrderStatusConfirmed, OrderStatusReturned, true},
		{OrderStatusConfirmed, OrderStatusDelivered, false},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusReturned, true},
		{OrderStatusDelivered, OrderStatusReturned, true},
		{OrderStatusReturned, OrderStatusPending, false},
		{OrderStatusDelivered, OrderStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			order := newTestOrder(t)
			_, err := order.AddProduct(uuid.New(), "p", "p", decimal.RequireFromString("5.00"), decimal.Zero)
			require.NoError(t, err)
			require.NoError(t, order.Finalize())
			order.Status = tt.from

			err = order.TransitionTo(tt.to)
			if tt.allowed {
				assert.NoError(t, err)
				assert.Equal(t, tt.to, order.Status)
			} else {
				assert.Error(t, err)
				assert.Equal(t, tt.from, order.Status)
			}
		})
	}

	t.Run("unplaced order cannot transition", func(t *testing.T) {
		order := newTestOrder(t)
		assert.Error(t, order.TransitionTo(OrderStatusConfirmed))
	})
}

func TestGenerateOrderNumber(t *testing.T) {
	seen := make(map[string]bool)
	pattern := regexp.MustCompile(`^[0-9A-F]{12}$`)
	for i := 0; i < 100; i++ {
		number := GenerateOrderNumber()
		assert.Regexp(t, pattern, number)
		assert.False(t, seen[number], "order number collision: %s", number)
		seen[number] = true
	}
}
