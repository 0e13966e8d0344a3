package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/michealzs/storemicroservice/internal/domain/shared"
	"github.com/michealzs/storemicroservice/internal/domain/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockOrderRepository is a mock implementation of store.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*store.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*store.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Order), args.Error(1)
}

func (m *MockOrderRepository) FindUnorderedByScope(ctx context.Context, scope store.ScopeKey) (*store.Order, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Order), args.Error(1)
}

func (m *MockOrderRepository) FindOrCreateUnordered(ctx context.Context, scope store.ScopeKey) (*store.Order, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByCheckoutSession(ctx context.Context, checkoutSessionID string) (*store.Order, error) {
	args := m.Called(ctx, checkoutSessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Order), args.Error(1)
}

func (m *MockOrderRepository) FindPlacedByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[store.Order], error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[store.Order]), args.Error(1)
}

func (m *MockOrderRepository) FindUnorderedByCoupon(ctx context.Context, couponID uuid.UUID) ([]store.Order, error) {
	args := m.Called(ctx, couponID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *store.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *MockOrderRepository) PurgeAbandoned(ctx context.Context, olderThan time.Time) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

// MockPaymentProvider is a mock implementation of PaymentProvider
type MockPaymentProvider struct {
	mock.Mock
}

func (m *MockPaymentProvider) CreateSession(ctx context.Context, params CreateSessionParams) (*Session, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Session), args.Error(1)
}

func (m *MockPaymentProvider) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Session), args.Error(1)
}

// fakeIdempotencyStore is a map-backed IdempotencyStore for tests
type fakeIdempotencyStore struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{seen: make(map[string]bool)}
}

func (f *fakeIdempotencyStore) MarkProcessed(_ context.Context, key string, _ time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seen[key] {
		return false, nil
	}
	f.seen[key] = true
	return true, nil
}

func (f *fakeIdempotencyStore) IsProcessed(_ context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen[key], nil
}

func (f *fakeIdempotencyStore) Close() error { return nil }

func testOptions() Options {
	opts := DefaultOptions()
	opts.SuccessURL = "https://shop.example.com/success?session_id={CHECKOUT_SESSION_ID}"
	opts.CancelURL = "https://shop.example.com/cart"
	return opts
}

func cartWithBlueMug(t *testing.T) *store.Order {
	t.Helper()
	order, err := store.NewOrder(store.SessionScope("sess-42"))
	require.NoError(t, err)
	item, err := order.AddProduct(uuid.New(), "Blue Mug", "blue-mug",
		decimal.RequireFromString("19.99"), decimal.RequireFromString("8.00"))
	require.NoError(t, err)
	require.NoError(t, order.UpdateItemQuantity(item.ID, 2))
	return order
}

func TestCreateSession(t *testing.T) {
	ctx := context.Background()
	scope := store.SessionScope("sess-42")

	t.Run("opens session for non-empty cart", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		provider := new(MockPaymentProvider)
		service := NewService(orderRepo, provider, newFakeIdempotencyStore(), testOptions(), zap.NewNop())

		order := cartWithBlueMug(t)
		orderRepo.On("FindUnorderedByScope", ctx, scope).Return(order, nil)
		orderRepo.On("Save", ctx, order).Return(nil)

		var captured CreateSessionParams
		provider.On("CreateSession", ctx, mock.AnythingOfType("CreateSessionParams")).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).(CreateSessionParams)
			}).
			Return(&Session{ID: "cs_test_123", URL: "https://pay.example.com/cs_test_123"}, nil)

		resp, err := service.CreateSession(ctx, scope)
		require.NoError(t, err)
		assert.Equal(t, "cs_test_123", resp.SessionID)

		require.Len(t, captured.LineItems, 1)
		assert.Equal(t, int64(800), captured.LineItems[0].UnitAmount)
		assert.Equal(t, int64(2), captured.LineItems[0].Quantity)
		assert.Equal(t, int64(10), captured.LineItems[0].MaxQuantity)
		require.Len(t, captured.ShippingOptions, 2)
		assert.Equal(t, int64(0), captured.ShippingOptions[0].Amount)
		assert.Equal(t, int64(1500), captured.ShippingOptions[1].Amount)

		require.NotNil(t, order.CheckoutSessionID)
		assert.Equal(t, "cs_test_123", *order.CheckoutSessionID)
	})

	t.Run("empty cart rejected", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		provider := new(MockPaymentProvider)
		service := NewService(orderRepo, provider, newFakeIdempotencyStore(), testOptions(), zap.NewNop())

		empty, err := store.NewOrder(scope)
		require.NoError(t, err)
		orderRepo.On("FindUnorderedByScope", ctx, scope).Return(empty, nil)

		_, err = service.CreateSession(ctx, scope)
		assert.ErrorIs(t, err, shared.ErrEmptyCart)
		provider.AssertNotCalled(t, "CreateSession")
	})

	t.Run("no cart at all rejected as empty", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		provider := new(MockPaymentProvider)
		service := NewService(orderRepo, provider, newFakeIdempotencyStore(), testOptions(), zap.NewNop())

		orderRepo.On("FindUnorderedByScope", ctx, scope).Return(nil, shared.ErrNotFound)

		_, err := service.CreateSession(ctx, scope)
		assert.ErrorIs(t, err, shared.ErrEmptyCart)
	})
}

func TestConfirmSession(t *testing.T) {
	ctx := context.Background()

	t.Run("paid session places the order once", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		provider := new(MockPaymentProvider)
		service := NewService(orderRepo, provider, newFakeIdempotencyStore(), testOptions(), zap.NewNop())

		order := cartWithBlueMug(t)
		order.AttachCheckoutSession("cs_test_123")

		orderRepo.On("FindByCheckoutSession", ctx, "cs_test_123").Return(order, nil)
		provider.On("GetSession", ctx, "cs_test_123").Return(&Session{ID: "cs_test_123", PaymentStatus: SessionPaid}, nil)
		orderRepo.On("Save", ctx, order).Return(nil)

		resp, err := service.ConfirmSession(ctx, "cs_test_123")
		require.NoError(t, err)
		assert.True(t, order.Ordered)
		assert.NotEmpty(t, resp.OrderNumber)
		assert.Equal(t, "16.00", resp.Total.StringFixed(2))

		// the second confirmation sees the placed order and does not save again
		resp2, err := service.ConfirmSession(ctx, "cs_test_123")
		require.NoError(t, err)
		assert.Equal(t, resp.OrderNumber, resp2.OrderNumber)
		orderRepo.AssertNumberOfCalls(t, "Save", 1)
	})

	t.Run("unknown session is ignored", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		provider := new(MockPaymentProvider)
		service := NewService(orderRepo, provider, newFakeIdempotencyStore(), testOptions(), zap.NewNop())

		orderRepo.On("FindByCheckoutSession", ctx, "cs_gone").Return(nil, shared.ErrNotFound)

		resp, err := service.ConfirmSession(ctx, "cs_gone")
		require.NoError(t, err)
		assert.Nil(t, resp)
		provider.AssertNotCalled(t, "GetSession")
	})

	t.Run("failed persistence leaves session confirmable", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		provider := new(MockPaymentProvider)
		idem := newFakeIdempotencyStore()
		service := NewService(orderRepo, provider, idem, testOptions(), zap.NewNop())

		// separate loads model the DB row staying unordered after the
		// failed write
		first := cartWithBlueMug(t)
		first.AttachCheckoutSession("cs_flaky")
		second := cartWithBlueMug(t)
		second.AttachCheckoutSession("cs_flaky")

		orderRepo.On("FindByCheckoutSession", ctx, "cs_flaky").Return(first, nil).Once()
		orderRepo.On("FindByCheckoutSession", ctx, "cs_flaky").Return(second, nil).Once()
		provider.On("GetSession", ctx, "cs_flaky").Return(&Session{ID: "cs_flaky", PaymentStatus: SessionPaid}, nil)
		orderRepo.On("Save", ctx, first).Return(errors.New("connection reset by peer")).Once()
		orderRepo.On("Save", ctx, second).Return(nil).Once()

		_, err := service.ConfirmSession(ctx, "cs_flaky")
		require.Error(t, err)

		// the confirmation key must not be burned by the failed attempt
		processed, err := idem.IsProcessed(ctx, confirmKey("cs_flaky"))
		require.NoError(t, err)
		assert.False(t, processed)

		resp, err := service.ConfirmSession(ctx, "cs_flaky")
		require.NoError(t, err)
		assert.True(t, second.Ordered)
		assert.NotEmpty(t, resp.OrderNumber)
		orderRepo.AssertNumberOfCalls(t, "Save", 2)
	})

	t.Run("unpaid session rejected", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		provider := new(MockPaymentProvider)
		service := NewService(orderRepo, provider, newFakeIdempotencyStore(), testOptions(), zap.NewNop())

		order := cartWithBlueMug(t)
		order.AttachCheckoutSession("cs_unpaid")
		orderRepo.On("FindByCheckoutSession", ctx, "cs_unpaid").Return(order, nil)
		provider.On("GetSession", ctx, "cs_unpaid").Return(&Session{ID: "cs_unpaid", PaymentStatus: "unpaid"}, nil)

		_, err := service.ConfirmSession(ctx, "cs_unpaid")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PAYMENT_INCOMPLETE", domainErr.Code)
		assert.False(t, order.Ordered)
	})

	t.Run("empty session id is ignored", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewService(orderRepo, new(MockPaymentProvider), newFakeIdempotencyStore(), testOptions(), zap.NewNop())
		resp, err := service.ConfirmSession(ctx, "")
		require.NoError(t, err)
		assert.Nil(t, resp)
		orderRepo.AssertNotCalled(t, "FindByCheckoutSession")
	})
}
