package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"
	"go.uber.org/zap"

	"github.com/michealzs/storemicroservice/internal/application/checkout"
	"github.com/michealzs/storemicroservice/internal/domain/shared"
	"github.com/michealzs/storemicroservice/internal/infrastructure/config"
)

// StripeAdapter implements checkout.PaymentProvider using Stripe hosted
// Checkout Sessions.
type StripeAdapter struct {
	config *config.StripeConfig
	logger *zap.Logger
}

// NewStripeAdapter creates a new Stripe adapter and initializes the
// Stripe client with the configured secret key.
func NewStripeAdapter(cfg *config.StripeConfig, logger *zap.Logger) (*StripeAdapter, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("stripe: secret key is required")
	}
	stripe.Key = cfg.SecretKey

	return &StripeAdapter{
		config: cfg,
		logger: logger,
	}, nil
}

// CreateSession opens a hosted checkout session for an order
func (a *StripeAdapter) CreateSession(ctx context.Context, params checkout.CreateSessionParams) (*checkout.Session, error) {
	a.logger.Debug("Creating Stripe checkout session",
		zap.String("order_id", params.OrderID),
		zap.Int("line_items", len(params.LineItems)))

	sessionParams := &stripe.CheckoutSessionParams{
		Params:     stripe.Params{Context: ctx},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(params.SuccessURL),
		CancelURL:  stripe.String(params.CancelURL),
	}
	if params.CustomerEmail != "" {
		sessionParams.CustomerEmail = stripe.String(params.CustomerEmail)
	}
	sessionParams.Metadata = map[string]string{
		"order_id": params.OrderID,
	}
	if params.IdempotencyKey != "" {
		sessionParams.SetIdempotencyKey(params.IdempotencyKey)
	}

	for _, item := range params.LineItems {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(item.Name),
		}
		if item.Description != "" {
			productData.Description = stripe.String(item.Description)
		}
		lineItem := &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(item.Currency),
				UnitAmount:  stripe.Int64(item.UnitAmount),
				ProductData: productData,
			},
			Quantity: stripe.Int64(item.Quantity),
			AdjustableQuantity: &stripe.CheckoutSessionLineItemAdjustableQuantityParams{
				Enabled: stripe.Bool(true),
				Minimum: stripe.Int64(item.MinQuantity),
				Maximum: stripe.Int64(item.MaxQuantity),
			},
		}
		sessionParams.LineItems = append(sessionParams.LineItems, lineItem)
	}

	for _, option := range params.ShippingOptions {
		sessionParams.ShippingOptions = append(sessionParams.ShippingOptions,
			&stripe.CheckoutSessionShippingOptionParams{
				ShippingRateData: &stripe.CheckoutSessionShippingOptionShippingRateDataParams{
					Type:        stripe.String("fixed_amount"),
					DisplayName: stripe.String(option.DisplayName),
					FixedAmount: &stripe.CheckoutSessionShippingOptionShippingRateDataFixedAmountParams{
						Amount:   stripe.Int64(option.Amount),
						Currency: stripe.String(option.Currency),
					},
					DeliveryEstimate: &stripe.CheckoutSessionShippingOptionShippingRateDataDeliveryEstimateParams{
						Minimum: &stripe.CheckoutSessionShippingOptionShippingRateDataDeliveryEstimateMinimumParams{
							Unit:  stripe.String("business_day"),
							Value: stripe.Int64(option.MinDays),
						},
						Maximum: &stripe.CheckoutSessionShippingOptionShippingRateDataDeliveryEstimateMaximumParams{
							Unit:  stripe.String("business_day"),
							Value: stripe.Int64(option.MaxDays),
						},
					},
				},
			})
	}

	sess, err := session.New(sessionParams)
	if err != nil {
		a.logger.Error("Failed to create Stripe checkout session",
			zap.String("order_id", params.OrderID),
			zap.Error(err))
		return nil, providerError("Failed to create checkout session", err)
	}

	a.logger.Info("Created Stripe checkout session",
		zap.String("order_id", params.OrderID),
		zap.String("session_id", sess.ID))

	return convertSession(sess), nil
}

// GetSession fetches the current state of a checkout session
func (a *StripeAdapter) GetSession(ctx context.Context, sessionID string) (*checkout.Session, error) {
	sess, err := session.Get(sessionID, &stripe.CheckoutSessionParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		a.logger.Error("Failed to get Stripe checkout session",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return nil, providerError("Failed to look up checkout session", err)
	}
	return convertSession(sess), nil
}

// providerError wraps a Stripe client error into a domain error carrying
// the upstream status, code, and message as detail.
func providerError(message string, err error) *shared.DomainError {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return shared.NewExternalServiceError("PAYMENT_PROVIDER", message,
			fmt.Sprintf("HTTP %d %s: %s", stripeErr.HTTPStatusCode, stripeErr.Code, stripeErr.Msg))
	}
	return shared.NewExternalServiceError("PAYMENT_PROVIDER", message, err.Error())
}

// convertSession maps a Stripe session onto the provider-neutral view
func convertSession(sess *stripe.CheckoutSession) *checkout.Session {
	return &checkout.Session{
		ID:            sess.ID,
		URL:           sess.URL,
		PaymentStatus: string(sess.PaymentStatus),
		AmountTotal:   sess.AmountTotal,
	}
}

var _ checkout.PaymentProvider = (*StripeAdapter)(nil)
