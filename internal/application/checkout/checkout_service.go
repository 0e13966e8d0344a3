package checkout

import (
	"context"
	"errors"

	appstore "github.com/michealzs/storemicroservice/internal/application/store"
	"github.com/michealzs/storemicroservice/internal/domain/shared"
	"github.com/michealzs/storemicroservice/internal/domain/shared/valueobject"
	"github.com/michealzs/storemicroservice/internal/domain/store"
	"go.uber.org/zap"
)

// Options tunes the hosted checkout session contents
type Options struct {
	Currency        string
	SuccessURL      string
	CancelURL       string
	MaxLineQuantity int64
	// StandardShippingDays is the free-option delivery window
	StandardMinDays int64
	StandardMaxDays int64
	// NextDayAmount is the express rate in minor units
	NextDayAmount int64
}

// DefaultOptions returns the storefront's stock checkout options: free
// 5-to-7-day shipping plus a flat $15 next-day rate, lines adjustable up
// to 10 units.
func DefaultOptions() Options {
	return Options{
		Currency:        "usd",
		MaxLineQuantity: 10,
		StandardMinDays: 5,
		StandardMaxDays: 7,
		NextDayAmount:   1500,
	}
}

// SessionResponse is returned to the storefront after opening a session
type SessionResponse struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

// Service bridges the cart to the hosted payment provider: it opens
// checkout sessions for non-empty carts and finalizes orders when the
// customer lands back on the success page.
type Service struct {
	orderRepo   store.OrderRepository
	provider    PaymentProvider
	idempotency shared.IdempotencyStore
	opts        Options
	logger      *zap.Logger
}

// NewService creates a new checkout Service
func NewService(
	orderRepo store.OrderRepository,
	provider PaymentProvider,
	idempotency shared.IdempotencyStore,
	opts Options,
	logger *zap.Logger,
) *Service {
	return &Service{
		orderRepo:   orderRepo,
		provider:    provider,
		idempotency: idempotency,
		opts:        opts,
		logger:      logger,
	}
}

// CreateSession opens a hosted checkout session for the scope's cart.
// The session id is stored on the order so the success callback can find
// it again; the order id rides along as the provider-side reference.
func (s *Service) CreateSession(ctx context.Context, scope store.ScopeKey) (*SessionResponse, error) {
	order, err := s.orderRepo.FindUnorderedByScope(ctx, scope)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrEmptyCart
		}
		return nil, err
	}
	if order.IsEmpty() {
		return nil, shared.ErrEmptyCart
	}

	order.RecalculateTotal()

	lineItems := make([]LineItem, 0, len(order.Items))
	for idx := range order.Items {
		item := &order.Items[idx]
		lineItems = append(lineItems, LineItem{
			Name:        item.ProductName,
			UnitAmount:  minorUnits(item),
			Currency:    s.opts.Currency,
			Quantity:    int64(item.Quantity),
			MinQuantity: 1,
			MaxQuantity: s.opts.MaxLineQuantity,
		})
	}

	session, err := s.provider.CreateSession(ctx, CreateSessionParams{
		OrderID:        order.ID.String(),
		IdempotencyKey: "checkout-create-" + order.ID.String(),
		CustomerEmail:  order.Email,
		LineItems:      lineItems,
		ShippingOptions: []ShippingOption{
			{
				DisplayName: "Free shipping",
				Amount:      0,
				Currency:    s.opts.Currency,
				MinDays:     s.opts.StandardMinDays,
				MaxDays:     s.opts.StandardMaxDays,
			},
			{
				DisplayName: "Next day air",
				Amount:      s.opts.NextDayAmount,
				Currency:    s.opts.Currency,
				MinDays:     1,
				MaxDays:     1,
			},
		},
		SuccessURL: s.opts.SuccessURL,
		CancelURL:  s.opts.CancelURL,
	})
	if err != nil {
		return nil, err
	}

	order.AttachCheckoutSession(session.ID)
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("checkout session created",
		zap.String("order_id", order.ID.String()),
		zap.String("session_id", session.ID))

	return &SessionResponse{SessionID: session.ID, CheckoutURL: session.URL}, nil
}

// ConfirmSession finalizes the order tied to a paid checkout session.
// Repeated confirmations of the same session (double-loaded success page,
// retried callback) are absorbed: the first one places the order, the rest
// return it unchanged. A session that no longer maps to an order is logged
// and treated as a no-op; callers get a nil response.
func (s *Service) ConfirmSession(ctx context.Context, sessionID string) (*appstore.OrderResponse, error) {
	if sessionID == "" {
		s.logger.Warn("confirmation without a session id ignored")
		return nil, nil
	}

	order, err := s.orderRepo.FindByCheckoutSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("stale checkout session ignored",
				zap.String("session_id", sessionID))
			return nil, nil
		}
		return nil, err
	}
	if order.Ordered {
		return appstore.ToOrderResponse(order), nil
	}

	session, err := s.provider.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.PaymentStatus != SessionPaid {
		return nil, shared.NewDomainError("PAYMENT_INCOMPLETE", "Checkout session has not been paid")
	}

	order.SetPaymentStatus(session.PaymentStatus)
	if err := order.Finalize(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	// Recorded only once the order is durably placed, so a failed Save
	// leaves the session confirmable on retry. The Ordered flag on the
	// row absorbs redelivery if this write is lost.
	if _, err := s.idempotency.MarkProcessed(ctx, confirmKey(sessionID), shared.DefaultIdempotencyConfig().TTL); err != nil {
		s.logger.Warn("failed to record confirmation key",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}

	s.logger.Info("order placed",
		zap.String("order_number", order.OrderNumber),
		zap.String("session_id", sessionID),
		zap.String("total", order.Total.StringFixed(2)))

	return appstore.ToOrderResponse(order), nil
}

func confirmKey(sessionID string) string {
	return "checkout:confirm:" + sessionID
}

// minorUnits converts a cart line's effective unit price to cents
func minorUnits(item *store.CartItem) int64 {
	return valueobject.NewMoneyUSD(item.EffectiveUnitPrice()).MinorUnits()
}
