package checkout

import "context"

// LineItem is one purchasable line handed to the payment provider.
// UnitAmount is in minor currency units (cents).
type LineItem struct {
	Name        string
	Description string
	UnitAmount  int64
	Currency    string
	Quantity    int64
	MinQuantity int64
	MaxQuantity int64
}

// ShippingOption is a shipping rate offered at checkout.
// Amount is in minor currency units; zero means free shipping.
type ShippingOption struct {
	DisplayName string
	Amount      int64
	Currency    string
	MinDays     int64
	MaxDays     int64
}

// Session is the provider-neutral view of a hosted checkout session
type Session struct {
	ID            string
	URL           string
	PaymentStatus string
	AmountTotal   int64
}

// SessionPaid is the provider payment status meaning the customer paid
const SessionPaid = "paid"

// CreateSessionParams carries everything needed to open a hosted session
type CreateSessionParams struct {
	OrderID         string
	IdempotencyKey  string
	CustomerEmail   string
	LineItems       []LineItem
	ShippingOptions []ShippingOption
	SuccessURL      string
	CancelURL       string
}

// PaymentProvider is the outbound port to the hosted-checkout processor
type PaymentProvider interface {
	// CreateSession opens a hosted checkout session and returns its id and
	// redirect URL
	CreateSession(ctx context.Context, params CreateSessionParams) (*Session, error)
	// GetSession fetches the current state of a session by id
	GetSession(ctx context.Context, sessionID string) (*Session, error)
}
