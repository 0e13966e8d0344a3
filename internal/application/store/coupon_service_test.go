package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/michealzs/storemicroservice/internal/domain/shared"
	"github.com/michealzs/storemicroservice/internal/domain/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCouponFixture(t *testing.T) (*CouponService, *MockCouponRepository, *MockOrderRepository) {
	t.Helper()
	couponRepo := new(MockCouponRepository)
	orderRepo := new(MockOrderRepository)
	return NewCouponService(couponRepo, orderRepo), couponRepo, orderRepo
}

func approvedCoupon(t *testing.T, code string, discount string) *store.Coupon {
	t.Helper()
	coupon, err := store.NewCoupon(code, "", decimal.RequireFromString(discount), time.Now().Add(time.Hour))
	require.NoError(t, err)
	coupon.Approve()
	return coupon
}

func TestCouponServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate code rejected", func(t *testing.T) {
		service, couponRepo, _ := newCouponFixture(t)

		existing := approvedCoupon(t, "SAVE5", "5.00")
		couponRepo.On("FindByCode", ctx, "SAVE5").Return(existing, nil)

		_, err := service.Create(ctx, CreateCouponRequest{
			Code:           "save5",
			Discount:       decimal.RequireFromString("5.00"),
			ExpirationDate: time.Now().Add(time.Hour),
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		couponRepo.AssertNotCalled(t, "Save")
	})
}

func TestCouponServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("detaches coupon from open carts", func(t *testing.T) {
		service, couponRepo, orderRepo := newCouponFixture(t)

		coupon := approvedCoupon(t, "SAVE5", "5.00")

		cart, err := store.NewOrder(store.SessionScope("sess-blue"))
		require.NoError(t, err)
		item, err := cart.AddProduct(uuid.New(), "Blue Mug", "blue-mug",
			decimal.RequireFromString("19.99"), decimal.RequireFromString("8.00"))
		require.NoError(t, err)
		require.NoError(t, cart.UpdateItemQuantity(item.ID, 2))
		require.NoError(t, cart.ApplyCoupon(coupon, time.Now()))
		require.Equal(t, "11.00", cart.Total.StringFixed(2))

		couponRepo.On("FindByID", ctx, coupon.ID).Return(coupon, nil)
		orderRepo.On("FindUnorderedByCoupon", ctx, coupon.ID).Return([]store.Order{*cart}, nil)

		var saved *store.Order
		orderRepo.On("Save", ctx, mock.AnythingOfType("*store.Order")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*store.Order) }).
			Return(nil)
		couponRepo.On("Delete", ctx, coupon.ID).Return(nil)

		require.NoError(t, service.Delete(ctx, coupon.ID))

		require.NotNil(t, saved)
		assert.Nil(t, saved.CouponID)
		assert.True(t, saved.CouponDiscount.IsZero())
		assert.Equal(t, "16.00", saved.Total.StringFixed(2))
		couponRepo.AssertCalled(t, "Delete", ctx, coupon.ID)
	})

	t.Run("unknown coupon is not found", func(t *testing.T) {
		service, couponRepo, orderRepo := newCouponFixture(t)

		id := uuid.New()
		couponRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		err := service.Delete(ctx, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		orderRepo.AssertNotCalled(t, "FindUnorderedByCoupon")
		couponRepo.AssertNotCalled(t, "Delete")
	})
}
